// Package atlas sequences world generation and biome classification behind one lock.
package atlas

// Op identifies the operation that produced the current map.
type Op int

const (
	// OpNone means nothing has been generated yet.
	OpNone Op = iota
	// OpGenerate is a full regeneration at zoom level 0.
	OpGenerate
	// OpZoomIn resamples a smaller source region.
	OpZoomIn
	// OpZoomOut resamples a larger source region.
	OpZoomOut
	// OpReroll is a full regeneration with a seed derived from the previous one.
	OpReroll
	// OpRegenerate resamples an arbitrary source region with the captured extrema.
	OpRegenerate
)

// String returns a human-readable operation name.
func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpGenerate:
		return "generate"
	case OpZoomIn:
		return "zoom_in"
	case OpZoomOut:
		return "zoom_out"
	case OpReroll:
		return "reroll"
	case OpRegenerate:
		return "regenerate"
	default:
		return "unknown"
	}
}
