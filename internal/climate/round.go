package climate

import "math"

// roundHalfUp rounds to the nearest integer with ties going towards +Inf,
// matching the rounding the published scores were computed with.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return roundHalfUp(x*10) / 10
}

// clampScore rounds a raw score and clamps it to [0, 100].
func clampScore(raw float64) int {
	v := int(roundHalfUp(raw))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
