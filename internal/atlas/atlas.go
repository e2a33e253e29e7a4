package atlas

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/worldsynth/internal/biome"
	"github.com/samdwyer/worldsynth/internal/config"
	"github.com/samdwyer/worldsynth/internal/noise"
	"github.com/samdwyer/worldsynth/internal/telemetry"
	"github.com/samdwyer/worldsynth/internal/world"
)

// Atlas holds a world generator and the biome map classified from its latest output.
type Atlas struct {
	mu sync.Mutex

	gen     *world.Generator
	biomes  *biome.Map
	palette *biome.Palette
	workers int
	last    Op

	generations metric.Int64Counter
}

// New creates an atlas from cfg. The configuration is validated first.
func New(cfg config.Config) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	src, err := noise.New(cfg.Noise)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	return NewWithSource(cfg, src, biome.DefaultPalette())
}

// NewWithSource creates an atlas sampling src and coloring with palette.
func NewWithSource(cfg config.Config, src noise.Source, palette *biome.Palette) (*Atlas, error) {
	projection, err := world.ParseProjection(cfg.Projection)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	gen, err := world.NewGenerator(cfg.Width, cfg.Height, src,
		world.WithDetail(cfg.Detail), world.WithProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	if palette == nil {
		palette = biome.DefaultPalette()
	}

	counter, err := telemetry.Meter("atlas").Int64Counter(
		"worldsynth.generations",
		metric.WithDescription("World field generations by operation"),
	)
	if err != nil {
		return nil, fmt.Errorf("atlas: generation counter: %w", err)
	}

	return &Atlas{
		gen:         gen,
		biomes:      biome.NewMap(cfg.Width, cfg.Height),
		palette:     palette,
		workers:     cfg.Workers,
		generations: counter,
	}, nil
}

// Generate builds a whole new map. Non-positive modifiers are derived from the seed.
func (a *Atlas) Generate(ctx context.Context, seed int64, landModifier, heatModifier float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.run(ctx, "atlas.generate", OpGenerate, func(ctx context.Context) error {
		return a.gen.Generate(ctx, seed, landModifier, heatModifier)
	})
}

// Reroll generates a new map from a seed derived from the current one, with
// modifiers derived from that seed.
func (a *Atlas) Reroll(ctx context.Context) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	seed := world.NextSeed(a.gen.State().Seed)
	err := a.run(ctx, "atlas.generate", OpReroll, func(ctx context.Context) error {
		return a.gen.Generate(ctx, seed, 0, 0)
	})
	return seed, err
}

// ZoomIn magnifies the map steps times around view cell (cx, cy).
func (a *Atlas) ZoomIn(ctx context.Context, steps, cx, cy int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.run(ctx, "atlas.zoom", OpZoomIn, func(ctx context.Context) error {
		return a.gen.ZoomIn(ctx, steps, cx, cy)
	})
}

// ZoomOut reduces magnification steps times around view cell (cx, cy).
func (a *Atlas) ZoomOut(ctx context.Context, steps, cx, cy int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.run(ctx, "atlas.zoom", OpZoomOut, func(ctx context.Context) error {
		return a.gen.ZoomOut(ctx, steps, cx, cy)
	})
}

// Regenerate resamples region of the source grid onto the whole map. The zoom level
// returns to 0.
func (a *Atlas) Regenerate(ctx context.Context, region world.Region) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.run(ctx, "atlas.regenerate", OpRegenerate, func(ctx context.Context) error {
		return a.gen.Regenerate(ctx, region)
	})
}

// run generates fields with step, then reclassifies them. Callers hold a.mu.
func (a *Atlas) run(ctx context.Context, spanName string, op Op, step func(context.Context) error) error {
	tracer := telemetry.Tracer("atlas")
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	if err := step(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	st := a.gen.State()
	if err := a.biomes.Build(ctx, a.gen.Fields(), st, a.workers); err != nil {
		span.RecordError(err)
		return err
	}
	a.last = op

	region := a.gen.Region()
	span.SetAttributes(
		attribute.String("atlas.op", op.String()),
		attribute.Int64("world.seed", st.Seed),
		attribute.Int("world.zoom", a.gen.Zoom()),
		attribute.Int("region.width", region.Width),
		attribute.Int("region.height", region.Height),
	)
	a.generations.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", op.String())))
	return nil
}

// Width returns the map width in cells.
func (a *Atlas) Width() int { return a.gen.Width() }

// Height returns the map height in cells.
func (a *Atlas) Height() int { return a.gen.Height() }

// Palette returns the color table.
func (a *Atlas) Palette() *biome.Palette { return a.palette }

// Snapshot is a copy of the atlas output that stays valid across later calls.
type Snapshot struct {
	Op     Op
	State  world.GenerationState
	Region world.Region
	Zoom   int
	Fields *world.Fields
	Biomes *biome.Map
}

// Snapshot copies the current fields and biome map.
func (a *Atlas) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Snapshot{
		Op:     a.last,
		State:  a.gen.State(),
		Region: a.gen.Region(),
		Zoom:   a.gen.Zoom(),
		Fields: a.gen.Fields().Clone(),
		Biomes: a.biomes.Clone(),
	}
}

// BiomeShare is the number of cells of one biome kind in the current map.
type BiomeShare struct {
	Kind  biome.Kind
	Name  string
	Glyph rune
	Cells int
	Color tcell.Color // Light color of the most common code of this kind
}

// Summary counts cells per biome kind of the upper code, most common first. Ties are
// ordered by name.
func (a *Atlas) Summary() []BiomeShare {
	a.mu.Lock()
	defer a.mu.Unlock()

	codes := a.biomes.Histogram()
	rep := make(map[biome.Kind]int)
	for code, n := range codes {
		k := biome.KindOf(code)
		if cur, ok := rep[k]; n > 0 && (!ok || n > codes[cur]) {
			rep[k] = code
		}
	}

	shares := make([]BiomeShare, 0, len(rep))
	for kind, cells := range a.biomes.KindHistogram() {
		code := rep[kind]
		shares = append(shares, BiomeShare{
			Kind:  kind,
			Name:  a.palette.Name(code),
			Glyph: a.palette.Glyph(code),
			Cells: cells,
			Color: a.palette.TCellLight(code),
		})
	}
	slices.SortFunc(shares, func(x, y BiomeShare) int {
		return cmp.Or(cmp.Compare(y.Cells, x.Cells), cmp.Compare(x.Name, y.Name))
	})
	return shares
}

// Inspection describes one cell of the current map.
type Inspection struct {
	X, Y  int
	Cell  world.Cell
	Biome biome.Classification
	Name  string
	Color tcell.Color // Upper and lower colors mixed by the blend
}

// Inspect returns the fields and biome of view cell (x, y). It reports false when the
// cell lies off the map.
func (a *Atlas) Inspect(x, y int) (Inspection, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := a.gen.Fields()
	if !f.InBounds(x, y) {
		return Inspection{}, false
	}
	cls := a.biomes.At(x, y)
	return Inspection{
		X:     x,
		Y:     y,
		Cell:  f.CellAt(x, y),
		Biome: cls,
		Name:  a.palette.Name(cls.Upper),
		Color: a.palette.TCellBlend(cls.Upper, cls.Lower, cls.Blend),
	}, true
}

// WriteGlyphs writes one line of biome glyphs per map row.
func (a *Atlas) WriteGlyphs(w io.Writer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	bw := bufio.NewWriter(w)
	m := a.biomes
	for y := range m.Height {
		for x := range m.Width {
			bw.WriteRune(a.palette.Glyph(m.At(x, y).Upper))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
