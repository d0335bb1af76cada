// Package sim is the pure pinball simulation: table geometry, flippers,
// ball dynamics, collision response, hole layout generation and the
// money/time outcome machine. It has no rendering, text or persistence
// and is driven from a single goroutine.
package sim

import "math"

// Vec2 is a 2D vector in table units (pixels of the logical table).
// The Y axis grows downward.
type Vec2 struct {
	X, Y float64
}

// V is a short constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len2 returns the squared length.
func (v Vec2) Len2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.Len2())
}

// Dist2 returns the squared distance between two points.
func Dist2(a, b Vec2) float64 {
	return a.Sub(b).Len2()
}

// Rect is an axis-aligned rectangle with inclusive bounds.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Center returns the centre point.
func (r Rect) Center() Vec2 {
	return Vec2{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Range is a closed interval used for randomised launch and kick speeds.
type Range struct {
	Min, Max float64
}

// Sample draws a uniform value in [Min, Max) from rng.
func (r Range) Sample(rng interface{ Float64() float64 }) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
