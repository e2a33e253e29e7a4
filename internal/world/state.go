package world

import "math"

// Extrema is the running minimum and maximum of a field.
type Extrema struct {
	Min, Max float64
}

func emptyExtrema() Extrema {
	return Extrema{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Observe widens the range to include v. NaN is ignored.
func (e *Extrema) Observe(v float64) {
	if math.IsNaN(v) {
		return
	}
	e.Min = min(e.Min, v)
	e.Max = max(e.Max, v)
}

// Flat reports whether the range has no usable contrast.
func (e Extrema) Flat() bool {
	span := e.Max - e.Min
	return !(span > 0) || math.IsInf(span, 0)
}

// Normalize maps v onto [0, 1] relative to the range, clamping values outside it.
// It returns false when the range is flat.
func (e Extrema) Normalize(v float64) (float64, bool) {
	if e.Flat() {
		return 0, false
	}
	return clamp01((v - e.Min) / (e.Max - e.Min)), true
}

// GenerationState is everything a generation derives from its seed and modifiers.
// Extrema are captured on fresh generations and reused by zoom and region regeneration.
type GenerationState struct {
	Seed int64
	// LandModifier and HeatModifier are the values requested by the caller.
	// 0 means they were derived from the seed.
	LandModifier float64
	HeatModifier float64

	WaterModifier   float64
	CoolingModifier float64
	// Warmth is the exponent divisor applied to the final heat, CoolingModifier times the
	// effective heat modifier.
	Warmth float64

	RawHeight    Extrema
	RawHeat      Extrema
	AdjustedHeat Extrema
	RawMoisture  Extrema
	Heat         Extrema
	Moisture     Extrema

	Captured bool
}

// MaxHeat returns the hottest final heat of the captured generation, or 1 when unknown.
func (s GenerationState) MaxHeat() float64 {
	if !s.Captured || !(s.Heat.Max > 0) || math.IsInf(s.Heat.Max, 0) {
		return 1
	}
	return s.Heat.Max
}

// matches reports whether a request would reuse this state instead of starting fresh.
func (s GenerationState) matches(seed int64, land, heat float64) bool {
	return s.Captured && s.Seed == seed && s.LandModifier == land && s.HeatModifier == heat
}

// reset prepares the state for a fresh generation.
func (s *GenerationState) reset(seed int64, land, heat float64) {
	effectiveLand := land
	if effectiveLand == 0 {
		effectiveLand = randomLandModifier(seed)
	}
	effectiveHeat := heat
	if effectiveHeat == 0 {
		effectiveHeat = 1
	}

	cooling := coolingModifier(seed)
	*s = GenerationState{
		Seed:            seed,
		LandModifier:    land,
		HeatModifier:    heat,
		WaterModifier:   waterModifier(seed, effectiveLand),
		CoolingModifier: cooling,
		Warmth:          cooling * effectiveHeat,
		RawHeight:       emptyExtrema(),
		RawHeat:         emptyExtrema(),
		AdjustedHeat:    emptyExtrema(),
		RawMoisture:     emptyExtrema(),
		Heat:            emptyExtrema(),
		Moisture:        emptyExtrema(),
	}
}

// sanitizeModifier maps unusable modifiers to 0, the "derive from seed" marker.
func sanitizeModifier(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(1, v))
}
