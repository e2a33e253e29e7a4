package world

import "slices"

// Fields holds the per-cell output of a generation as flat row-major arrays.
// Arrays are allocated once and overwritten in place by every generation.
type Fields struct {
	Width, Height int

	Heights       []float64    // [-1, 1]
	HeightCodes   []HeightCode // 0..8
	Heat          []float64    // [0, 1]
	HeatCodes     []int        // 0..5
	Moisture      []float64    // [0, 1]
	MoistureCodes []int        // 0..5
}

// NewFields allocates fields for a width×height grid.
func NewFields(width, height int) *Fields {
	n := width * height
	return &Fields{
		Width:         width,
		Height:        height,
		Heights:       make([]float64, n),
		HeightCodes:   make([]HeightCode, n),
		Heat:          make([]float64, n),
		HeatCodes:     make([]int, n),
		Moisture:      make([]float64, n),
		MoistureCodes: make([]int, n),
	}
}

// Index returns the array index of (x, y).
func (f *Fields) Index(x, y int) int {
	return y*f.Width + x
}

// InBounds reports whether (x, y) lies on the grid.
func (f *Fields) InBounds(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Cell is a read-only view of one grid cell.
type Cell struct {
	Height       float64
	HeightCode   HeightCode
	Heat         float64
	HeatCode     int
	Moisture     float64
	MoistureCode int
}

// CellAt returns the cell at (x, y), or the zero Cell when out of bounds.
func (f *Fields) CellAt(x, y int) Cell {
	if !f.InBounds(x, y) {
		return Cell{}
	}
	i := f.Index(x, y)
	return Cell{
		Height:       f.Heights[i],
		HeightCode:   f.HeightCodes[i],
		Heat:         f.Heat[i],
		HeatCode:     f.HeatCodes[i],
		Moisture:     f.Moisture[i],
		MoistureCode: f.MoistureCodes[i],
	}
}

// Clone returns a deep copy.
func (f *Fields) Clone() *Fields {
	return &Fields{
		Width:         f.Width,
		Height:        f.Height,
		Heights:       slices.Clone(f.Heights),
		HeightCodes:   slices.Clone(f.HeightCodes),
		Heat:          slices.Clone(f.Heat),
		HeatCodes:     slices.Clone(f.HeatCodes),
		Moisture:      slices.Clone(f.Moisture),
		MoistureCodes: slices.Clone(f.MoistureCodes),
	}
}

// Equal reports whether two field sets are bit-identical.
func (f *Fields) Equal(other *Fields) bool {
	return f.Width == other.Width && f.Height == other.Height &&
		slices.Equal(f.Heights, other.Heights) &&
		slices.Equal(f.HeightCodes, other.HeightCodes) &&
		slices.Equal(f.Heat, other.Heat) &&
		slices.Equal(f.HeatCodes, other.HeatCodes) &&
		slices.Equal(f.Moisture, other.Moisture) &&
		slices.Equal(f.MoistureCodes, other.MoistureCodes)
}

// sextile buckets a value in [0, 1] into 0..5.
func sextile(v float64) int {
	return min(5, max(0, int(v*6)))
}
