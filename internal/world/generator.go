package world

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/worldsynth/internal/noise"
	"github.com/samdwyer/worldsynth/internal/telemetry"
)

const (
	// Default map dimensions
	DefaultWidth  = 256
	DefaultHeight = 128

	// Noise frequencies
	terrainFreq       = 0.95
	terrainRidgedFreq = 3.1
	heatFreq          = 2.1
	moistureFreq      = 2.125
	otherFreq         = 3.375

	// Octaves at detail 1.0
	terrainOctaves       = 8
	terrainRidgedOctaves = 10
	heatOctaves          = 3
	moistureOctaves      = 4
	otherRidgedOctaves   = 6
)

var (
	// ErrInvalidSize is returned for grids too small to carry a latitude gradient.
	ErrInvalidSize = errors.New("world: grid must be at least 2x2")
	// ErrInvalidRegion is returned for regions without usable width or height.
	ErrInvalidRegion = errors.New("world: region has no usable width or height")
	// ErrStaleExtrema is returned when a partial regeneration is requested before any
	// full generation captured the field statistics.
	ErrStaleExtrema = errors.New("world: no fresh generation has captured field extrema")
)

// Generator owns the fields and statistics of one world map. Calls are serialized;
// the fields returned by Fields must not be read while another call is running.
type Generator struct {
	mu sync.Mutex

	width, height int
	fields        *Fields
	state         GenerationState
	region        Region

	terrain       *noise.Layered
	terrainRidged *noise.Ridged
	heatNoise     *noise.Layered
	moistureNoise *noise.Layered
	otherRidged   *noise.Ridged

	projection Projection
	trig       []float64
	frames     []rowFrame

	zoom         int
	zoomCenterX  int
	zoomCenterY  int
	maxZoomLevel int
}

// Option configures a Generator.
type Option func(*generatorOptions)

type generatorOptions struct {
	detail     float64
	projection Projection
}

// WithDetail scales every octave count. Values below or equal to 0 are ignored.
func WithDetail(detail float64) Option {
	return func(o *generatorOptions) {
		if detail > 0 && !math.IsInf(detail, 0) {
			o.detail = detail
		}
	}
}

// WithProjection selects the surface the map is sampled on. The default is Torus.
func WithProjection(p Projection) Option {
	return func(o *generatorOptions) {
		o.projection = p
	}
}

// NewGenerator creates a generator for a width×height map sampling src.
func NewGenerator(width, height int, src noise.Source, opts ...Option) (*Generator, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if src == nil {
		return nil, errors.New("world: nil noise source")
	}

	o := generatorOptions{detail: 1}
	for _, opt := range opts {
		opt(&o)
	}

	return &Generator{
		width:         width,
		height:        height,
		fields:        NewFields(width, height),
		region:        Region{Width: width, Height: height},
		terrain:       noise.NewLayered(src, octaves(o.detail, terrainOctaves), terrainFreq),
		terrainRidged: noise.NewRidged(src, octaves(o.detail, terrainRidgedOctaves), terrainRidgedFreq),
		heatNoise:     noise.NewLayered(src, octaves(o.detail, heatOctaves), heatFreq),
		moistureNoise: noise.NewLayered(src, octaves(o.detail, moistureOctaves), moistureFreq),
		otherRidged:   noise.NewRidged(src, octaves(o.detail, otherRidgedOctaves), otherFreq),
		projection:    o.projection,
		trig:          make([]float64, width*2),
		frames:        make([]rowFrame, height),
		zoomCenterX:   width >> 1,
		zoomCenterY:   height >> 1,
		maxZoomLevel:  maxZoom(width, height),
	}, nil
}

func octaves(detail float64, base int) int {
	return max(1, int(0.5+detail*float64(base)))
}

// Width returns the grid width.
func (g *Generator) Width() int { return g.width }

// Height returns the grid height.
func (g *Generator) Height() int { return g.height }

// Fields returns the generated fields. They are overwritten by the next call.
func (g *Generator) Fields() *Fields {
	return g.fields
}

// State returns a copy of the current generation state.
func (g *Generator) State() GenerationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Region returns the source-grid rectangle the fields currently show.
func (g *Generator) Region() Region {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.region
}

// Zoom returns the current zoom level, 0 for the whole map.
func (g *Generator) Zoom() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.zoom
}

// Generate regenerates the whole map. Modifiers that are not positive and finite are
// derived from the seed instead. A seed or modifier change recaptures all extrema.
func (g *Generator) Generate(ctx context.Context, seed int64, landModifier, heatModifier float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	land := sanitizeModifier(landModifier)
	heat := sanitizeModifier(heatModifier)
	fresh := !g.state.matches(seed, land, heat)
	if fresh {
		g.state.reset(seed, land, heat)
	}

	g.zoom = 0
	g.zoomCenterX = g.width >> 1
	g.zoomCenterY = g.height >> 1
	g.regenerate(ctx, Region{Width: g.width, Height: g.height}, fresh)
	return nil
}

// Regenerate resamples region onto the whole grid using the captured extrema. The
// zoom state returns to level 0, so later zoom calls start again from the whole map.
func (g *Generator) Regenerate(ctx context.Context, region Region) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.Captured {
		return ErrStaleExtrema
	}
	if region.Empty() {
		return fmt.Errorf("%w: %dx%d", ErrInvalidRegion, region.Width, region.Height)
	}
	g.zoom = 0
	g.zoomCenterX = g.width >> 1
	g.zoomCenterY = g.height >> 1
	g.regenerate(ctx, region, false)
	return nil
}

// regenerate fills every field by sampling region. Callers hold g.mu.
func (g *Generator) regenerate(ctx context.Context, r Region, fresh bool) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()
	st := &g.state
	f := g.fields
	w, h := g.width, g.height

	seedA, seedB, seedC := subSeeds(st.Seed)

	stepX := float64(r.Width) / float64(w)
	stepY := float64(r.Height) / float64(h)
	angleX := 2 * math.Pi / float64(w)

	for x := range w {
		xPos := float64(r.X) + float64(x)*stepX
		g.trig[x<<1], g.trig[x<<1|1] = math.Sincos(xPos * angleX)
	}
	for y := range h {
		g.frames[y] = g.projection.frame(float64(r.Y)+float64(y)*stepY, h)
	}

	// Raw samples.
	for y := range h {
		fr := g.frames[y]
		qc, qs := fr.z, fr.w
		row := y * w
		for x := range w {
			ps, pc := g.trig[x<<1]*fr.scale, g.trig[x<<1|1]*fr.scale

			hv := finite(g.terrain.Sample4D(
				pc+g.terrainRidged.Sample4D(pc, ps, qc, qs, seedA+seedB)*0.25,
				ps, qc, qs, seedA))
			p := sign(hv) + st.WaterModifier
			hv *= p * p

			heat := finite(g.heatNoise.Sample4D(pc, ps,
				qc+g.otherRidged.Sample4D(pc, ps, qc, qs, seedB+seedC),
				qs, seedB))
			moisture := finite(g.moistureNoise.Sample4D(pc, ps, qc,
				qs+g.otherRidged.Sample4D(pc, ps, qc, qs, seedC+seedA),
				seedC))

			f.Heights[row+x] = hv
			f.Heat[row+x] = heat
			f.Moisture[row+x] = moisture

			if fresh {
				st.RawHeight.Observe(hv)
				st.RawHeat.Observe(heat)
				st.RawMoisture.Observe(moisture)
			}
		}
	}

	// Height bands and latitude-shaped heat.
	flatHeat := st.RawHeat.Flat()
	for y := range h {
		lat := g.frames[y].lat
		row := y * w
		for x := range w {
			i := row + x

			height := 0.0
			if n, ok := st.RawHeight.Normalize(f.Heights[i]); ok {
				height = n*2 - 1
			}
			code := CodeHeight(height)
			f.Heights[i] = height
			f.HeightCodes[i] = code

			if flatHeat {
				continue
			}
			heat, _ := st.RawHeat.Normalize(f.Heat[i])
			f.Heat[i] = elevationAdjustedHeat(heat, height, code) * lat
			if fresh {
				st.AdjustedHeat.Observe(f.Heat[i])
			}
		}
	}

	// Final rescale.
	invWarmth := 1 / st.Warmth
	for i := range f.Heat {
		heat := 0.5
		if !flatHeat {
			if n, ok := st.AdjustedHeat.Normalize(f.Heat[i]); ok {
				heat = math.Pow(n, invWarmth)
			}
		}
		moisture := 0.5
		if n, ok := st.RawMoisture.Normalize(f.Moisture[i]); ok {
			moisture = n
		}

		f.Heat[i] = heat
		f.HeatCodes[i] = sextile(heat)
		f.Moisture[i] = moisture
		f.MoistureCodes[i] = sextile(moisture)

		if fresh {
			st.Heat.Observe(heat)
			st.Moisture.Observe(moisture)
		}
	}

	if fresh {
		st.Captured = true
	}
	g.region = r

	span.SetAttributes(
		attribute.Int("world.width", w),
		attribute.Int("world.height", h),
		attribute.Int64("world.seed", st.Seed),
		attribute.Bool("world.fresh", fresh),
		attribute.Int("world.zoom", g.zoom),
		attribute.String("world.projection", g.projection.String()),
		attribute.Int("world.region_x", r.X),
		attribute.Int("world.region_y", r.Y),
		attribute.Int("world.region_width", r.Width),
		attribute.Int("world.region_height", r.Height),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// elevationAdjustedHeat flattens heat over water and cools high ground.
// heat is the pass-one value in [0, 1], height the normalized elevation.
func elevationAdjustedHeat(heat, height float64, code HeightCode) float64 {
	mod := 1.0
	switch {
	case code.IsWater():
		height = 0.4
		mod = 0.2
	case code == Forest:
		height = -0.1 * (height - forestLower - 0.08)
	case code == Rock:
		height *= -0.25
	case code == Snow:
		height *= -0.4
	default:
		height *= 0.05
	}
	return heat*0.8*mod + height + 0.6
}

// latitude is 2.2 on the equator (t = 0) and 0.8 at the poles (t = 1).
func latitude(t float64) float64 {
	return 2.2 - (2.4-t)*t
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
