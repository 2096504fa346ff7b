package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon below which a vector length is treated as zero.
const Epsilon = 1e-9

// Vec2 is a shorthand constructor for mgl64.Vec2.
func Vec2(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{x, y}
}

// Normalize returns v scaled to unit length, or the zero vector when v is
// too short to have a direction.
func Normalize(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// ClampLength rescales v so its length does not exceed max.
func ClampLength(v mgl64.Vec2, max float64) mgl64.Vec2 {
	l := v.Len()
	if l <= max || l < Epsilon {
		return v
	}
	return v.Mul(max / l)
}

// Div divides v by s, returning the zero vector when s is zero.
func Div(v mgl64.Vec2, s float64) mgl64.Vec2 {
	if s == 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{v[0] / s, v[1] / s}
}

// Finite reports whether both components are neither NaN nor Inf.
func Finite(v mgl64.Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// FromAngle returns a vector of the given length pointing at angle radians.
func FromAngle(angle, length float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(angle) * length, math.Sin(angle) * length}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
