package gamedata

import "github.com/lucasb-eyer/go-colorful"

// BiomeDef defines a biome kind loaded from JSON.
type BiomeDef struct {
	ID    string `json:"id"`    // Unique identifier (e.g., "tropical_rainforest")
	Name  string `json:"name"`  // Display name (e.g., "TropicalRainforest")
	Glyph string `json:"glyph"` // Single character for text dumps (e.g., "&")
	Color string `json:"color"` // Base hex color before lightness shading
}

// GlyphRune returns the glyph as a rune for rendering.
func (b *BiomeDef) GlyphRune() rune {
	if len(b.Glyph) == 0 {
		return '?'
	}
	return rune(b.Glyph[0])
}

// BaseColor returns the base color, or black if it cannot be parsed.
func (b *BiomeDef) BaseColor() colorful.Color {
	c, err := ParseHexColor(b.Color)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// BiomesFile represents the structure of biomes.json.
type BiomesFile struct {
	Biomes []BiomeDef `json:"biomes"`
}

// LoadBiomes loads biome definitions from the embedded biomes.json file.
func LoadBiomes() ([]BiomeDef, error) {
	file, err := Load[BiomesFile]("biomes.json")
	if err != nil {
		return nil, err
	}
	return file.Biomes, nil
}
