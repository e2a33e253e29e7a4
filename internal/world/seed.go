package world

import "math"

// Multipliers taken from the world-map demos so the same seed yields the same modifiers.
const (
	curveMultiplier  uint64 = 0x2545F4914F6CDD1D
	landSalt         uint64 = 0x123456789ABCD
	landMultiplier   uint64 = 0x12345689AB
	coolMultiplier   uint64 = 0x12345
	coolIncrement    uint64 = 0x54321
	waterSalt        uint64 = 0xC13FA9A902A6328F
	halfExponentBits uint64 = 0x3FE0000000000000
)

// splitMix64 advances state and returns the next output of the SplitMix64 sequence.
func splitMix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// subSeeds derives the terrain, heat and moisture seeds.
func subSeeds(seed int64) (a, b, c int64) {
	state := uint64(seed)
	a = int64(splitMix64(&state))
	b = int64(splitMix64(&state))
	c = int64(splitMix64(&state))
	return a, b, c
}

// NextSeed derives a new seed from a previous one.
func NextSeed(seed int64) int64 {
	state := uint64(seed)
	return int64(splitMix64(&state))
}

// uniform maps x to a float64 in [0, 1).
func uniform(x uint64) float64 {
	state := x
	return float64(splitMix64(&state)>>11) * 0x1p-53
}

// curved maps x to (-1, 1), concentrated around 0.
func curved(x uint64) float64 {
	a := halfUnit(x)
	x *= curveMultiplier
	b := halfUnit(x)
	x *= curveMultiplier
	c := halfUnit(x)
	x *= curveMultiplier
	d := halfUnit(x)
	return a + b - c - d
}

// halfUnit builds a float64 in [0.5, 1) from the top 52 bits of x.
func halfUnit(x uint64) float64 {
	return math.Float64frombits(x>>12 | halfExponentBits)
}

// randomLandModifier is the land bias used when the caller leaves it unset.
func randomLandModifier(seed int64) float64 {
	return 1 + curved((uint64(seed)^landSalt)*landMultiplier)*0.3
}

// waterModifier biases the height shaping toward land or water.
func waterModifier(seed int64, landModifier float64) float64 {
	jitter := curved(uint64(seed)^waterSalt) * 0.1
	return max(-0.9, min(0.9, landModifier-1+jitter))
}

// coolingModifier scales how far heat is pushed toward warm values.
func coolingModifier(seed int64) float64 {
	return uniform(uint64(seed)*coolMultiplier+coolIncrement)*0.35 + 0.9
}
