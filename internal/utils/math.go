package utils

import "math"

// RoundTo rounds v to the given number of decimal places using half-up
// semantics (0.5 rounds away from zero). Negative decimals return v
// unchanged.
func RoundTo(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	shift := math.Pow(10, float64(decimals))
	return math.Round(v*shift) / shift
}

// ClampInt limits v to the inclusive range [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
