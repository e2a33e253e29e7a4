package biome

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/worldsynth/internal/gamedata"
)

// Kind is a biome type. Values index the embedded biome definitions.
type Kind int

const (
	Desert Kind = iota
	Savanna
	TropicalRainforest
	Grassland
	Woodland
	SeasonalForest
	TemperateRainforest
	BorealForest
	Tundra
	Ice
	Beach
	Rocky
	River
	Ocean
	Empty

	kindCount
)

// Layout of the biome table. Rows hold six entries, coldest to hottest.
const (
	CoastOffset = 36
	RiverOffset = 42
	LakeOffset  = 48
	OceanOffset = 54
	EmptyCode   = 60
	TableSize   = 61
)

// biomeTable encodes each slot as kind + lightness, with lightness in [0, 1).
// Interior rows run driest to wettest.
var biomeTable = [TableSize]float64{
	9.7, 9.65, 3.9, 0.75, 0.8, 0.85, // driest
	9.6, 8.9, 3.6, 3.3, 0.65, 0.7, // drier
	9.5, 8.7, 4.4, 4.6, 1.8, 0.6, // dry
	9.4, 8.5, 5.3, 5.5, 1.6, 1.4, // wet
	9.2, 8.3, 7.35, 6.4, 2.6, 1.2, // wetter
	9.0, 7.0, 7.15, 6.2, 2.4, 2.2, // wettest
	11.9, 11.6, 10.4, 10.55, 10.75, 10.9, // coasts
	9.3, 12.8, 12.7, 12.6, 12.5, 12.4, // rivers
	9.2, 12.7, 12.6, 12.5, 12.4, 12.3, // lakes
	13.9, 13.75, 13.6, 13.45, 13.3, 13.15, // oceans
	14.0, // empty
}

// slot splits a table entry into its kind and lightness.
func slot(code int) (Kind, float64) {
	k, frac := math.Modf(biomeTable[code])
	return Kind(k), frac
}

// KindOf returns the biome kind of a table code. Out-of-range codes are Empty.
func KindOf(code int) Kind {
	if code < 0 || code >= TableSize {
		return Empty
	}
	k, _ := slot(code)
	return k
}

// Palette is the color table for all biome codes.
type Palette struct {
	light  [TableSize]colorful.Color
	dark   [TableSize]colorful.Color
	names  [kindCount]string
	glyphs [kindCount]rune
}

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// NewPalette derives the color table from biome definitions ordered by Kind.
func NewPalette(registry *gamedata.BiomeRegistry) (*Palette, error) {
	if registry.Count() < int(kindCount) {
		return nil, fmt.Errorf("need %d biome definitions, got %d", kindCount, registry.Count())
	}

	p := &Palette{}
	for k := range kindCount {
		def := registry.ByKind(int(k))
		p.names[k] = def.Name
		p.glyphs[k] = def.GlyphRune()
	}

	for code := range TableSize {
		kind, lightness := slot(code)
		base := registry.ByKind(int(kind)).BaseColor()
		diff := (lightness - 0.48) * 0.27
		if diff >= 0 {
			p.light[code] = base.BlendRgb(white, diff)
		} else {
			p.light[code] = base.BlendRgb(black, -diff)
		}
		p.dark[code] = p.light[code].BlendRgb(black, 0.08)
	}
	return p, nil
}

// DefaultPalette derives the color table from the embedded biome definitions.
func DefaultPalette() *Palette {
	p, err := NewPalette(gamedata.MustLoadBiomeRegistry())
	if err != nil {
		panic(err)
	}
	return p
}

func validCode(code int) int {
	if code < 0 || code >= TableSize {
		return EmptyCode
	}
	return code
}

// Light returns the main color of a biome code.
func (p *Palette) Light(code int) colorful.Color {
	return p.light[validCode(code)]
}

// Dark returns the shaded color of a biome code.
func (p *Palette) Dark(code int) colorful.Color {
	return p.dark[validCode(code)]
}

// Name returns the biome name of a code.
func (p *Palette) Name(code int) string {
	return p.names[KindOf(code)]
}

// Glyph returns the text glyph of a code.
func (p *Palette) Glyph(code int) rune {
	return p.glyphs[KindOf(code)]
}

// Blend interpolates from the light color of lower toward the dark color of upper.
func (p *Palette) Blend(upper, lower int, blend float64) colorful.Color {
	return p.Light(lower).BlendRgb(p.Dark(upper), max(0, min(1, blend)))
}

// TCellBlend is Blend as a terminal color.
func (p *Palette) TCellBlend(upper, lower int, blend float64) tcell.Color {
	return gamedata.TCellColor(p.Blend(upper, lower, blend))
}

// TCellLight is Light as a terminal color.
func (p *Palette) TCellLight(code int) tcell.Color {
	return gamedata.TCellColor(p.Light(code))
}
