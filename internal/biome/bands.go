// Package biome classifies generated world fields into biome table codes and derives
// the color table renderers draw them with.
package biome

import "math"

// Band is one interval of a heat or moisture scale.
type Band struct {
	Lower, Upper float64
}

// Width returns the span of the band.
func (b Band) Width() float64 { return b.Upper - b.Lower }

// HeatBands run from coldest to warmest.
var HeatBands = [6]Band{
	{0.00, 0.15},
	{0.15, 0.31},
	{0.31, 0.50},
	{0.50, 0.69},
	{0.69, 0.85},
	{0.85, 1.00},
}

// MoistureBands run from driest to wettest.
var MoistureBands = [6]Band{
	{0.00, 0.27},
	{0.27, 0.40},
	{0.40, 0.60},
	{0.60, 0.80},
	{0.80, 0.90},
	{0.90, 1.00},
}

// bandOverlap is the fraction of a neighboring band's width each threshold shifts by.
const bandOverlap = 0.2

// cascade holds the ascending thresholds selecting indices 1..5; anything below
// bounds[0] is index 0.
type cascade struct {
	bounds [5]float64
}

// upperCascade pulls each threshold toward the lower side.
func upperCascade(bands [6]Band, scale float64) cascade {
	var c cascade
	for k := 1; k < len(bands); k++ {
		c.bounds[k-1] = (bands[k].Upper - bands[k-1].Width()*bandOverlap) * scale
	}
	return c
}

// lowerCascade pushes each threshold toward the upper side.
func lowerCascade(bands [6]Band, scale float64) cascade {
	var c cascade
	for k := 1; k < len(bands); k++ {
		c.bounds[k-1] = (bands[k-1].Upper + bands[k].Width()*bandOverlap) * scale
	}
	return c
}

// index returns the highest band whose threshold v reaches.
func (c cascade) index(v float64) int {
	for k := len(c.bounds); k >= 1; k-- {
		if v >= c.bounds[k-1] {
			return k
		}
	}
	return 0
}

// lean places v relative to the nearest overlap zone, the interval between the upper
// and lower thresholds of one cascade index where the two passes disagree. It runs
// linearly from 0 at the upper threshold to 1 at the lower threshold and saturates
// past either end. gap is the distance from v to that zone, 0 inside it.
func lean(v float64, upper, lower cascade) (position, gap float64) {
	best, gap := 0, math.Inf(1)
	for k := range upper.bounds {
		if d := zoneGap(v, upper.bounds[k], lower.bounds[k]); d < gap {
			best, gap = k, d
		}
	}
	return ramp(v, upper.bounds[best], lower.bounds[best]), gap
}

func zoneGap(v, a, b float64) float64 {
	lo, hi := min(a, b), max(a, b)
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}

// ramp is the clamped position of v on the way from "from" to "to". The direction
// matters: ramp(v, b, a) == 1 - ramp(v, a, b).
func ramp(v, from, to float64) float64 {
	if from == to {
		switch {
		case v > to:
			return 1
		case v < to:
			return 0
		default:
			return 0.5
		}
	}
	return max(0, min(1, (v-from)/(to-from)))
}
