package noise

import (
	"sync"

	"github.com/aquilax/go-perlin"
)

// Perlin parameters for a single octave; layering is done by Layered and Ridged.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 1
)

// Perlin samples classic Perlin noise. The library only offers three dimensions, so the
// fourth is folded in by averaging two 3D samples over different axis triples.
type Perlin struct {
	mu    sync.RWMutex
	cache map[int64]*perlin.Perlin
}

// NewPerlin creates a Perlin-backed Source.
func NewPerlin() *Perlin {
	return &Perlin{cache: make(map[int64]*perlin.Perlin)}
}

// Sample4D evaluates folded 4D Perlin noise for the given seed.
func (p *Perlin) Sample4D(x, y, z, w float64, seed int64) float64 {
	gen := p.basis(seed)
	a := gen.Noise3D(x, y, z)
	b := gen.Noise3D(z+0.5, w, x+y)
	return clamp((a + b) * 0.75)
}

func (p *Perlin) basis(seed int64) *perlin.Perlin {
	p.mu.RLock()
	gen, ok := p.cache[seed]
	p.mu.RUnlock()
	if ok {
		return gen
	}

	gen = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)

	p.mu.Lock()
	if len(p.cache) >= maxCachedSeeds {
		clear(p.cache)
	}
	p.cache[seed] = gen
	p.mu.Unlock()
	return gen
}
