// Package finance holds the advisory calculators. Every exported calculator
// is a pure function: inputs are clamped rather than rejected, and the same
// input always yields the same output.
package finance

import "math"

// Lakh and Crore are the Indian numbering units used across the calculators.
const (
	Thousand = 1_000.0
	Lakh     = 100_000.0
	Crore    = 10_000_000.0
)

// roundUpTo rounds v up to the next multiple of unit.
func roundUpTo(v, unit float64) float64 {
	return math.Ceil(v/unit) * unit
}

// clampRange bounds v to [lo, hi]. A non-positive hi means no upper bound.
func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func nonNegativeInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
