package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec2 is a 2D float vector used for screen and content space coordinates.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Div divides component-wise. Zero components in o yield zero.
func (v Vec2) Div(o Vec2) Vec2 {
	out := Vec2{}
	if o.X != 0 {
		out.X = v.X / o.X
	}
	if o.Y != 0 {
		out.Y = v.Y / o.Y
	}
	return out
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// ClampTo clamps each component into [lo, hi].
func (v Vec2) ClampTo(lo, hi Vec2) Vec2 {
	return Vec2{X: Clamp(v.X, lo.X, hi.X), Y: Clamp(v.Y, lo.Y, hi.Y)}
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Int2 is an integer width/height pair.
type Int2 struct {
	X int
	Y int
}

func (i Int2) Vec2() Vec2 {
	return Vec2{X: float64(i.X), Y: float64(i.Y)}
}
