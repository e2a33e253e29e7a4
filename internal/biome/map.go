package biome

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/worldsynth/internal/telemetry"
	"github.com/samdwyer/worldsynth/internal/world"
)

// Map holds the classification of every cell of a generated world, row-major.
type Map struct {
	Width, Height int
	Upper         []int
	Lower         []int
	Blend         []float64
}

// NewMap allocates a map for a width×height grid.
func NewMap(width, height int) *Map {
	n := width * height
	return &Map{
		Width:  width,
		Height: height,
		Upper:  make([]int, n),
		Lower:  make([]int, n),
		Blend:  make([]float64, n),
	}
}

// At returns the classification of (x, y).
func (m *Map) At(x, y int) Classification {
	i := y*m.Width + x
	return Classification{Upper: m.Upper[i], Lower: m.Lower[i], Blend: m.Blend[i]}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	return &Map{
		Width:  m.Width,
		Height: m.Height,
		Upper:  slices.Clone(m.Upper),
		Lower:  slices.Clone(m.Lower),
		Blend:  slices.Clone(m.Blend),
	}
}

// Build classifies every cell of f. Rows are classified concurrently by up to workers
// goroutines, or GOMAXPROCS when workers is not positive. f must not change while
// Build runs.
func (m *Map) Build(ctx context.Context, f *world.Fields, st world.GenerationState, workers int) error {
	if f.Width != m.Width || f.Height != m.Height {
		return fmt.Errorf("biome: map is %dx%d, fields are %dx%d", m.Width, m.Height, f.Width, f.Height)
	}

	tracer := telemetry.Tracer("biome")
	ctx, span := tracer.Start(ctx, "biome.classify")
	defer span.End()

	startTime := time.Now()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	c := ClassifierFor(st)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := range m.Height {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := y * m.Width
			for i := row; i < row+m.Width; i++ {
				cls := c.Classify(f.Heat[i], f.Moisture[i], f.HeightCodes[i])
				m.Upper[i] = cls.Upper
				m.Lower[i] = cls.Lower
				m.Blend[i] = cls.Blend
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("biome: classify: %w", err)
	}

	span.SetAttributes(
		attribute.Int("biome.width", m.Width),
		attribute.Int("biome.height", m.Height),
		attribute.Int("biome.workers", workers),
		attribute.Int64("biome.classify_ms", time.Since(startTime).Milliseconds()),
	)
	return nil
}

// Histogram counts cells per upper biome code.
func (m *Map) Histogram() [TableSize]int {
	var counts [TableSize]int
	for _, code := range m.Upper {
		counts[validCode(code)]++
	}
	return counts
}

// KindHistogram counts cells per biome kind of the upper code.
func (m *Map) KindHistogram() map[Kind]int {
	counts := make(map[Kind]int)
	for _, code := range m.Upper {
		counts[KindOf(code)]++
	}
	return counts
}
