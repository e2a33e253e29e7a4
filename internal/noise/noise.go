// Package noise provides seeded 4D coherent noise and the fractal layers built on top of it.
//
// Every Source is a pure function of its coordinates and seed, returning values in [-1, 1].
// World generation samples noise on a torus, so all four dimensions are used.
package noise

import (
	"fmt"
	"math"
)

// Noise backends selectable by name.
const (
	KindSimplex = "simplex"
	KindPerlin  = "perlin"
)

// goldenGamma is 0x9E3779B97F4A7C15 as a signed 64-bit value. Octaves advance their seed by it.
const goldenGamma int64 = -0x61C8864680B583EB

// maxCachedSeeds bounds the per-seed basis caches of the library-backed sources.
const maxCachedSeeds = 512

// Source is a deterministic 4D coherent-noise function.
type Source interface {
	// Sample4D returns the noise value at (x, y, z, w) for seed, in [-1, 1].
	Sample4D(x, y, z, w float64, seed int64) float64
}

// Func adapts an ordinary function to the Source interface.
type Func func(x, y, z, w float64, seed int64) float64

// Sample4D calls f and clamps the result.
func (f Func) Sample4D(x, y, z, w float64, seed int64) float64 {
	return clamp(f(x, y, z, w, seed))
}

// Constant is a Source that ignores its inputs. Useful for degenerate-field tests.
type Constant float64

// Sample4D returns the constant, clamped to [-1, 1].
func (c Constant) Sample4D(x, y, z, w float64, seed int64) float64 {
	return clamp(float64(c))
}

// New returns the Source registered under kind.
func New(kind string) (Source, error) {
	switch kind {
	case KindSimplex, "":
		return NewSimplex(), nil
	case KindPerlin:
		return NewPerlin(), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}

// clamp limits v to [-1, 1] and maps NaN to 0.
func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(-1, min(1, v))
}
