package noise

import (
	"sync"

	"github.com/ojrac/opensimplex-go"
)

// Simplex samples OpenSimplex noise, building one permutation table per seed.
// It is safe for concurrent use.
type Simplex struct {
	mu    sync.RWMutex
	cache map[int64]opensimplex.Noise
}

// NewSimplex creates an OpenSimplex-backed Source.
func NewSimplex() *Simplex {
	return &Simplex{cache: make(map[int64]opensimplex.Noise)}
}

// Sample4D evaluates 4D OpenSimplex noise for the given seed.
func (s *Simplex) Sample4D(x, y, z, w float64, seed int64) float64 {
	return clamp(s.basis(seed).Eval4(x, y, z, w))
}

func (s *Simplex) basis(seed int64) opensimplex.Noise {
	s.mu.RLock()
	n, ok := s.cache[seed]
	s.mu.RUnlock()
	if ok {
		return n
	}

	n = opensimplex.New(seed)

	s.mu.Lock()
	if len(s.cache) >= maxCachedSeeds {
		clear(s.cache)
	}
	s.cache[seed] = n
	s.mu.Unlock()
	return n
}
