package sim

import "time"

// Clock is the time source of a Driver.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Driver advances a World from a clock. The first frame after construction
// or Reset has a zero delta; later frames use the time since the previous one.
type Driver struct {
	world   *World
	clock   Clock
	last    time.Time
	started bool
}

// NewDriver wraps world with clock. A nil clock means SystemClock.
func NewDriver(world *World, clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{world: world, clock: clock}
}

// World returns the driven simulation context.
func (d *Driver) World() *World {
	return d.world
}

// Frame reads the clock and advances the world by the elapsed time.
func (d *Driver) Frame(in Input) []Event {
	now := d.clock.Now()
	var dt time.Duration
	if d.started {
		dt = now.Sub(d.last)
	}
	d.last = now
	d.started = true
	return d.world.Advance(dt, in)
}

// Advance steps the world by an explicit delta, bypassing the clock.
func (d *Driver) Advance(dt time.Duration, in Input) []Event {
	return d.world.Advance(dt, in)
}

// Resume restarts frame timing so that time spent outside Frame, such as
// a pause, is not simulated.
func (d *Driver) Resume() {
	d.started = false
}

// Reset rebuilds the world and restarts frame timing.
func (d *Driver) Reset(seed int64) {
	d.world.Reset(seed)
	d.Resume()
}

// Snapshot returns a read-only view of the world.
func (d *Driver) Snapshot() Snapshot {
	return d.world.Snapshot()
}
