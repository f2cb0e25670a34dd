package engine

import "math"

// RoundUpTo rounds x up to the next multiple of increment. For negative x
// this still rounds toward +Inf, so -450 at increment 100 becomes -400.
func RoundUpTo(x float64, increment int) float64 {
	inc := float64(increment)
	return math.Ceil(x/inc) * inc
}

// round1 rounds to one decimal place, half away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
