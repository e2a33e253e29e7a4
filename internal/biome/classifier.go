package biome

import (
	"math"

	"github.com/samdwyer/worldsynth/internal/world"
)

// Classification is the biome pair chosen for one cell.
type Classification struct {
	Upper int     // Biome table code, coast row for sand cells
	Lower int     // Biome table code from the interior grid
	Blend float64 // How far the cell leans from Lower toward Upper, in [0, 1]
}

// Classifier maps heat, moisture and height band to biome codes. Its heat thresholds
// adapt to the heat range realized by one generation.
type Classifier struct {
	heatUpper, heatLower         cascade
	moistureUpper, moistureLower cascade
}

// NewClassifier builds thresholds for fields whose hottest value is maxHeat.
// A non-positive or non-finite maximum is treated as 1.
func NewClassifier(maxHeat float64) *Classifier {
	invHot := 1 / positiveOr1(maxHeat)
	return &Classifier{
		heatUpper:     upperCascade(HeatBands, invHot),
		heatLower:     lowerCascade(HeatBands, invHot),
		moistureUpper: upperCascade(MoistureBands, 1),
		moistureLower: lowerCascade(MoistureBands, 1),
	}
}

// ClassifierFor builds a classifier from the captured state of a generation.
func ClassifierFor(st world.GenerationState) *Classifier {
	return NewClassifier(st.MaxHeat())
}

// Classify returns the biome pair for one cell.
func (c *Classifier) Classify(heat, moisture float64, code world.HeightCode) Classification {
	hu, mu := c.heatUpper.index(heat), c.moistureUpper.index(moisture)
	hl, ml := c.heatLower.index(heat), c.moistureLower.index(moisture)

	upper := hu + mu*6
	if code.IsCoast() {
		upper = hu + CoastOffset
	}

	return Classification{
		Upper: upper,
		Lower: hl + ml*6,
		Blend: c.blend(heat, moisture),
	}
}

func (c *Classifier) blend(heat, moisture float64) float64 {
	heatLean, heatGap := lean(heat, c.heatUpper, c.heatLower)
	moistureLean, moistureGap := lean(moisture, c.moistureUpper, c.moistureLower)
	return Blend(heatLean, heatGap, moistureLean, moistureGap)
}

// Blend combines the per-axis leans of a cell. Axes sitting inside an overlap zone
// (gap 0) are averaged; otherwise the axis closest to its zone decides, so cells deep
// inside a band get 0 or 1 and cells on a band edge get about 0.5.
func Blend(heatLean, heatGap, moistureLean, moistureGap float64) float64 {
	var b float64
	switch {
	case heatGap == 0 && moistureGap == 0:
		b = (heatLean + moistureLean) / 2
	case heatGap <= moistureGap:
		b = heatLean
	default:
		b = moistureLean
	}
	if math.IsNaN(b) {
		return 0.5
	}
	return max(0, min(1, b))
}

func positiveOr1(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 1
	}
	return v
}
