package anim

import "math"

// EaseInOutQuart maps t in [0, 1] onto a quartic S-curve. Inputs outside the
// range are clamped.
func EaseInOutQuart(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

// Linear is the identity easing, useful in tests.
func Linear(t float64) float64 {
	return clamp01(t)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
