package gamedata

import (
	"errors"
	"fmt"
)

// BiomeRegistry holds loaded biome definitions in file order. The position of a
// definition is its biome kind.
type BiomeRegistry struct {
	biomes []BiomeDef
}

// NewBiomeRegistry creates a registry from loaded biome definitions.
// Definitions must have unique IDs and valid colors.
func NewBiomeRegistry(biomes []BiomeDef) (*BiomeRegistry, error) {
	if len(biomes) == 0 {
		return nil, errors.New("no biome definitions")
	}

	seen := make(map[string]bool, len(biomes))
	for _, b := range biomes {
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate biome id %q", b.ID)
		}
		if _, err := ParseHexColor(b.Color); err != nil {
			return nil, fmt.Errorf("biome %q: %w", b.ID, err)
		}
		seen[b.ID] = true
	}
	return &BiomeRegistry{biomes: biomes}, nil
}

// LoadBiomeRegistry loads and creates a registry from the embedded biomes.json.
func LoadBiomeRegistry() (*BiomeRegistry, error) {
	biomes, err := LoadBiomes()
	if err != nil {
		return nil, err
	}
	return NewBiomeRegistry(biomes)
}

// MustLoadBiomeRegistry loads a registry, panicking on error.
func MustLoadBiomeRegistry() *BiomeRegistry {
	registry, err := LoadBiomeRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// ByKind returns the definition at position kind, or nil if out of range.
func (r *BiomeRegistry) ByKind(kind int) *BiomeDef {
	if kind < 0 || kind >= len(r.biomes) {
		return nil
	}
	return &r.biomes[kind]
}

// Count returns the number of biome kinds in the registry.
func (r *BiomeRegistry) Count() int {
	return len(r.biomes)
}
