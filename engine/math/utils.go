package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// ClampVec2 clamps each component of v to [low, high].
func ClampVec2(v, low, high Vec2) Vec2 {
	return Vec2{
		X: Clamp(v.X, low.X, high.X),
		Y: Clamp(v.Y, low.Y, high.Y),
	}
}
