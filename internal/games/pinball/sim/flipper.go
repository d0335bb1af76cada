package sim

import "math"

// Side identifies a flipper.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// toCenter is the horizontal sign pointing from this flipper toward the table centre.
func (s Side) toCenter() float64 {
	if s == SideLeft {
		return 1
	}
	return -1
}

// FlipperSpec is the fixed geometry of a flipper. Angles are radians
// measured from +X toward +Y (downward).
type FlipperSpec struct {
	Side      Side
	Pivot     Vec2
	Length    float64
	Rest      float64
	Engaged   float64
	SpeedUp   float64 // rad/s while engaging
	SpeedDown float64 // rad/s while returning to rest
}

// Flipper is a rotating arm with bounded angular speed.
type Flipper struct {
	Spec    FlipperSpec
	Angle   float64
	Engaged bool
}

// NewFlipper returns a flipper at its rest angle.
func NewFlipper(spec FlipperSpec) Flipper {
	return Flipper{Spec: spec, Angle: spec.Rest}
}

// Reset snaps the flipper back to rest.
func (f *Flipper) Reset() {
	f.Angle = f.Spec.Rest
	f.Engaged = false
}

// Update moves the angle toward the engaged or rest target,
// limited to speed*dt per call.
func (f *Flipper) Update(dt float64, engaged bool) {
	f.Engaged = engaged
	target, speed := f.Spec.Rest, f.Spec.SpeedDown
	if engaged {
		target, speed = f.Spec.Engaged, f.Spec.SpeedUp
	}
	limit := speed * dt
	f.Angle += clampF(target-f.Angle, -limit, limit)
}

// Line returns the current arm as a segment from pivot to tip.
func (f Flipper) Line() Segment {
	return FlipperLine(f.Spec.Pivot, f.Angle, f.Spec.Length)
}

// FlipperLine computes a flipper arm from its pivot, angle and length.
// It is pure: the endpoints are never cached.
func FlipperLine(pivot Vec2, angle, length float64) Segment {
	tip := Vec2{
		X: pivot.X + math.Cos(angle)*length,
		Y: pivot.Y + math.Sin(angle)*length,
	}
	return Segment{A: pivot, B: tip}
}
