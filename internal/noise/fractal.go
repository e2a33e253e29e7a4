package noise

import "math"

const maxOctaves = 63

// Layered sums octaves of a basis from the highest frequency down. Each octave halves
// both frequency and weight and uses the next seed in the golden-ratio sequence.
type Layered struct {
	basis      Source
	octaves    int
	frequency  float64
	lacunarity float64
}

// NewLayered creates a layered fractal over basis. Octaves are clamped to [1, 63].
func NewLayered(basis Source, octaves int, frequency float64) *Layered {
	return &Layered{
		basis:      basis,
		octaves:    clampOctaves(octaves),
		frequency:  frequency,
		lacunarity: 0.5,
	}
}

// Octaves returns the number of octaves summed.
func (l *Layered) Octaves() int { return l.octaves }

// Sample4D returns the weighted octave sum, normalized to [-1, 1].
func (l *Layered) Sample4D(x, y, z, w float64, seed int64) float64 {
	x *= l.frequency
	y *= l.frequency
	z *= l.frequency
	w *= l.frequency

	weight := math.Exp2(float64(l.octaves - 1))
	scale := 2.0
	sum := 0.0
	for range l.octaves {
		scale *= l.lacunarity
		seed += goldenGamma
		sum += l.basis.Sample4D(x*scale, y*scale, z*scale, w*scale, seed) * weight
		weight *= 0.5
	}
	return clamp(sum / (math.Exp2(float64(l.octaves)) - 1))
}

// Ridged folds each octave around zero so sharp crests form where the basis crosses it.
// Output lies in [-1, 0.41].
type Ridged struct {
	basis     Source
	frequency float64
	exp       []float64
	correct   float64
}

// NewRidged creates a ridged fractal over basis. Octaves are clamped to [1, 63].
func NewRidged(basis Source, octaves int, frequency float64) *Ridged {
	octaves = clampOctaves(octaves)
	r := &Ridged{
		basis:     basis,
		frequency: frequency,
		exp:       make([]float64, octaves),
	}
	total := 0.0
	for i := range r.exp {
		r.exp[i] = math.Pow(2, -0.9*float64(i))
		total += r.exp[i]
	}
	r.correct = 1.41 / total
	return r
}

// Octaves returns the number of octaves summed.
func (r *Ridged) Octaves() int { return len(r.exp) }

// Sample4D returns the ridged octave sum.
func (r *Ridged) Sample4D(x, y, z, w float64, seed int64) float64 {
	x *= r.frequency
	y *= r.frequency
	z *= r.frequency
	w *= r.frequency

	sum := 0.0
	for _, e := range r.exp {
		seed += goldenGamma
		n := 1 - math.Abs(r.basis.Sample4D(x, y, z, w, seed))
		sum += n * n * e
		x *= 2
		y *= 2
		z *= 2
		w *= 2
	}
	return clamp(sum*r.correct - 1)
}

func clampOctaves(n int) int {
	return max(1, min(maxOctaves, n))
}
