package world

import (
	"fmt"
	"math"
	"strings"
)

// Projection selects the surface the grid is wrapped onto before sampling noise.
type Projection int

const (
	// Torus wraps both axes, so the map tiles seamlessly in every direction.
	Torus Projection = iota
	// Sphere wraps columns around the equator and runs rows from pole to pole with
	// equal-area spacing. Rows do not wrap.
	Sphere
)

// String returns the projection name.
func (p Projection) String() string {
	switch p {
	case Torus:
		return "torus"
	case Sphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// ParseProjection parses a projection name.
func ParseProjection(name string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "torus", "":
		return Torus, nil
	case "sphere":
		return Sphere, nil
	default:
		return Torus, fmt.Errorf("world: unknown projection %q", name)
	}
}

// rowFrame is the per-row part of a cell's noise coordinates. A cell at column
// angle (cos, sin) samples (cos*scale, sin*scale, z, w).
type rowFrame struct {
	scale float64
	z, w  float64
	lat   float64
}

// frame computes the row frame for source-grid row position yPos.
func (p Projection) frame(yPos float64, height int) rowFrame {
	h := float64(height)
	if p == Sphere {
		u := max(-1, min(1, (yPos+0.5)*2/h-1))
		return rowFrame{
			scale: math.Sqrt(1 - u*u),
			z:     u,
			lat:   latitude(math.Abs(u)),
		}
	}

	qs, qc := math.Sincos(yPos * (2 * math.Pi / h))
	wrapped := math.Mod(yPos, h)
	if wrapped < 0 {
		wrapped += h
	}
	half := (h - 1) * 0.5
	return rowFrame{
		scale: 1,
		z:     qc,
		w:     qs,
		lat:   latitude(min(1, math.Abs(wrapped-half)/half)),
	}
}
