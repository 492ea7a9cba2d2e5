package common

import "math"

// BaseWidth and BaseHeight are the logical screen size.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// MoveToward steps from toward to by at most maxDelta.
func MoveToward(from, to, maxDelta float64) float64 {
	if math.Abs(to-from) <= maxDelta {
		return to
	}
	if to > from {
		return from + maxDelta
	}
	return from - maxDelta
}
