package world

// Region is a rectangle of the source grid that gets resampled onto the whole output grid.
// Coordinates may fall outside the grid; the map wraps in both axes.
type Region struct {
	X, Y          int // Top-left corner in source-grid cells
	Width, Height int // Span in source-grid cells
}

// Center returns the center coordinates of the region.
func (r Region) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the region covers no cells.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
