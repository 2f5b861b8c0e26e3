package utils

import "math"

// Clamp01 clamps x to the [0.0, 1.0] range.
func Clamp01(x float64) float64 {
	return math.Max(0.0, math.Min(1.0, x))
}

// Round3 rounds x to three decimal places. Used when scores are surfaced
// to callers so provenance annotations stay readable.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
