// Package world generates the height, heat and moisture fields of a world map wrapped
// onto a torus or a sphere.
package world

// HeightCode is the coarse elevation band of a cell.
type HeightCode int

const (
	DeepWater HeightCode = iota
	MediumWater
	ShallowWater
	CoastalWater
	Sand
	Grass
	Forest
	Rock
	Snow
)

// Upper bounds of each band below Snow. A height exactly on a bound belongs to the band above.
const (
	deepWaterUpper    = -0.7
	mediumWaterUpper  = -0.3
	shallowWaterUpper = -0.1
	coastalWaterUpper = 0.02
	sandUpper         = 0.12
	grassUpper        = 0.35
	forestUpper       = 0.6
	rockUpper         = 0.8
)

// forestLower is where the forest band starts; heat over forest cools with height above it.
const forestLower = 0.35

var heightBounds = [...]float64{
	deepWaterUpper,
	mediumWaterUpper,
	shallowWaterUpper,
	coastalWaterUpper,
	sandUpper,
	grassUpper,
	forestUpper,
	rockUpper,
}

// CodeHeight returns the band containing a normalized height in [-1, 1].
func CodeHeight(h float64) HeightCode {
	for i, upper := range heightBounds {
		if h < upper {
			return HeightCode(i)
		}
	}
	return Snow
}

// IsWater reports whether the band is one of the four water bands.
func (c HeightCode) IsWater() bool {
	return c <= CoastalWater
}

// IsCoast reports whether the band is the sand band bordering the sea.
func (c HeightCode) IsCoast() bool {
	return c == Sand
}

// String returns a human-readable band name.
func (c HeightCode) String() string {
	switch c {
	case DeepWater:
		return "deep water"
	case MediumWater:
		return "medium water"
	case ShallowWater:
		return "shallow water"
	case CoastalWater:
		return "coastal water"
	case Sand:
		return "sand"
	case Grass:
		return "grass"
	case Forest:
		return "forest"
	case Rock:
		return "rock"
	case Snow:
		return "snow"
	default:
		return "unknown"
	}
}
