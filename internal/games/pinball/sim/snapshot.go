package sim

import "math"

// BallView is the ball as seen by presentation.
type BallView struct {
	Pos        Vec2
	Vel        Vec2
	Radius     float64
	Active     bool
	LaunchMode bool
}

// FlipperView is a flipper's current arm.
type FlipperView struct {
	Side    Side
	Line    Segment
	Angle   float64
	Engaged bool
}

// Snapshot is a deep copy of everything presentation needs for one frame.
// Mutating it never affects the world.
type Snapshot struct {
	Width, Height float64
	Ball          BallView
	Segments      []Segment
	Border        int // leading Segments that form the outer border
	Bumpers       []Bumper
	Flippers      [2]FlipperView
	Holes         []Hole
	LaneMinX      float64
	LaneMaxX      float64
	ExitY         float64

	Money      int
	Goal       int
	LaunchCost int
	TimeLeft   int
	Phase      Phase
	Reason     Reason
	Running    bool
	GameOver   bool
	Launches   int
}

// Snapshot returns a read-only view of the world.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Width:  w.table.width,
		Height: w.table.height,
		Ball: BallView{
			Pos:        w.ball.Pos,
			Vel:        w.ball.Vel,
			Radius:     w.ball.Radius,
			Active:     w.ball.Active,
			LaunchMode: w.ball.LaunchMode,
		},
		Segments: w.table.Segments(),
		Border:   w.table.BorderCount(),
		Bumpers:  w.table.Bumpers(),
		Holes:    w.Holes(),
		LaneMinX: w.params.Launch.LaneMinX,
		LaneMaxX: w.params.Launch.LaneMaxX,
		ExitY:    w.params.Gate.ExitY,

		Money:      w.econ.Money,
		Goal:       w.params.Rules.Goal,
		LaunchCost: w.params.Rules.LaunchCost,
		TimeLeft:   w.econ.TimeLeft,
		Phase:      w.econ.Phase,
		Reason:     w.econ.Reason,
		Running:    w.econ.Running,
		GameOver:   w.econ.GameOver,
		Launches:   w.econ.Launches,
	}
	for i, f := range w.flippers {
		s.Flippers[i] = FlipperView{
			Side:    f.Spec.Side,
			Line:    f.Line(),
			Angle:   f.Angle,
			Engaged: f.Engaged,
		}
	}
	return s
}

// Status returns the HUD status label.
func (s Snapshot) Status() string {
	return s.Phase.String()
}

// Message returns the end-of-run explanation, empty while playing.
func (s Snapshot) Message() string {
	return s.Reason.Describe(s.Money, s.Goal, s.LaunchCost)
}

// Hash returns a simple hash of the dynamic state for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := uint64(s.Money)          //#nosec G115 -- hash computation
	h = h*31 + uint64(s.TimeLeft) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Phase)    //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Reason)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Launches) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(s.Ball.Pos.X)
	h = h*31 + math.Float64bits(s.Ball.Pos.Y)
	h = h*31 + math.Float64bits(s.Ball.Vel.X)
	h = h*31 + math.Float64bits(s.Ball.Vel.Y)
	for _, f := range s.Flippers {
		h = h*31 + math.Float64bits(f.Angle)
	}
	for _, hole := range s.Holes {
		h = h*31 + math.Float64bits(hole.Pos.X)
		h = h*31 + math.Float64bits(hole.Pos.Y)
	}
	return h
}
