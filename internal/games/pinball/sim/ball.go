package sim

import "math"

// Ball is the single ball on the table.
type Ball struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	// Active is false while the ball waits in the launch lane.
	Active bool
	// LaunchMode is true from launch until the exit gate fires.
	LaunchMode bool
}

// Integrate applies gravity, moves the ball and damps its velocity.
// Damping is expressed per 60 Hz frame and scaled to dt.
func (b *Ball) Integrate(dt, gravity, damping float64) {
	b.Vel.Y += gravity * dt
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Vel = b.Vel.Scale(math.Pow(damping, dt*60))
}

// Park puts the ball at rest in the launch lane.
func (b *Ball) Park(at Vec2) {
	b.Pos = at
	b.Vel = Vec2{}
	b.Active = false
	b.LaunchMode = true
}

// Stop freezes the ball where it is.
func (b *Ball) Stop() {
	b.Vel = Vec2{}
	b.Active = false
}

// ConfineToLane clamps x into the launch lane band.
func (b *Ball) ConfineToLane(minX, maxX float64) {
	b.Pos.X = clampF(b.Pos.X, minX, maxX)
}
