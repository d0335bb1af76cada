package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Input is the logical input for one frame. Left and Right are held
// states; Launch is an edge event.
type Input struct {
	Left   bool
	Right  bool
	Launch bool
}

// World is the explicit simulation context: the table, the ball, both
// flippers, the hole layout, the economy and the RNG. It is owned by a
// single goroutine.
type World struct {
	params   Params
	table    *Table
	holeGen  *HoleGenerator
	rng      *rand.Rand
	ball     Ball
	flippers [2]Flipper
	holes    []Hole
	econ     Economy
	elapsed  time.Duration

	events      []Event
	endReported bool
}

// NewWorld validates params and builds a ready table seeded with seed.
func NewWorld(p Params, seed int64) (*World, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	p = p.Clone()
	w := &World{
		params:  p,
		table:   NewTable(p),
		holeGen: NewHoleGenerator(p),
	}
	w.Reset(seed)
	return w, nil
}

func validate(p Params) error {
	if p.Physics.Substeps < 1 {
		return errors.New("sim: substeps must be at least 1")
	}
	if p.Physics.BallRadius <= 0 {
		return errors.New("sim: ball radius must be positive")
	}
	if p.Rules.Goal <= 0 || p.Rules.LaunchCost < 0 || p.Rules.TotalTime < time.Second {
		return fmt.Errorf("sim: invalid rules %+v", p.Rules)
	}
	if err := ValidateTemplates(p.Holes.Templates); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	return nil
}

// Reset rebuilds the run from scratch: new hole layout from seed, ball
// parked in the lane, flippers at rest and a fresh economy whose clock is
// already running.
func (w *World) Reset(seed int64) {
	w.rng = rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness, not security
	w.holes = w.holeGen.Generate(w.rng)
	w.ball = Ball{Radius: w.params.Physics.BallRadius}
	w.ball.Park(w.params.Launch.Start)
	for i, spec := range w.params.Flippers {
		w.flippers[i] = NewFlipper(spec)
	}
	w.econ = NewEconomy(w.params.Rules)
	w.econ.Start()
	w.elapsed = 0
	w.events = w.events[:0]
	w.endReported = false
}

// Params returns a copy of the parameters the world was built with.
func (w *World) Params() Params {
	return w.params.Clone()
}

// Table returns the static geometry.
func (w *World) Table() *Table {
	return w.table
}

// Economy returns a copy of the current economy state.
func (w *World) Economy() Economy {
	return w.econ
}

// Ball returns a copy of the ball.
func (w *World) Ball() Ball {
	return w.ball
}

// Holes returns a copy of the current layout.
func (w *World) Holes() []Hole {
	return append([]Hole(nil), w.holes...)
}

// Elapsed is the simulated play time since the run started.
func (w *World) Elapsed() time.Duration {
	return w.elapsed
}

// Launch fires the ball from the lane. It is ignored once the run is over
// or while a ball is already in play.
func (w *World) Launch() {
	if w.econ.GameOver || w.ball.Active {
		return
	}
	if !w.econ.ChargeLaunch() {
		w.settle()
		return
	}

	lp := w.params.Launch
	w.ball.Pos = lp.Start
	w.ball.Vel = Vec2{X: lp.VX.Sample(w.rng), Y: lp.VY.Sample(w.rng)}
	w.ball.Active = true
	w.ball.LaunchMode = true
	w.emit(Event{Kind: EventLaunched, Money: w.econ.Money, Delta: -w.params.Rules.LaunchCost})
}

// Advance runs one frame of dt. The launch edge is applied first, dt is
// clamped to MaxStep, the countdown runs before physics and the frame is
// split into equal substeps. It returns the events of this frame.
func (w *World) Advance(dt time.Duration, in Input) []Event {
	w.events = w.events[:0]

	if in.Launch {
		w.Launch()
	}

	if dt < 0 {
		dt = 0
	}
	if dt > w.params.Physics.MaxStep {
		dt = w.params.Physics.MaxStep
	}

	if !w.econ.Running || w.econ.GameOver {
		return w.flush()
	}

	w.elapsed += dt
	if w.econ.Countdown(dt) {
		w.emit(Event{Kind: EventTimeout, Money: w.econ.Money, Reason: ReasonTimeout})
		w.settle()
		return w.flush()
	}

	n := w.params.Physics.Substeps
	sub := dt.Seconds() / float64(n)
	for range n {
		if w.econ.GameOver {
			break
		}
		w.step(sub, in)
	}
	return w.flush()
}

// step is a single substep in fixed order: flippers, integration, exit
// gate, contacts and holes or lane confinement, goal check, drain.
func (w *World) step(dt float64, in Input) {
	w.flippers[SideLeft].Update(dt, in.Left)
	w.flippers[SideRight].Update(dt, in.Right)

	b := &w.ball
	if !b.Active {
		return
	}

	ph := w.params.Physics
	b.Integrate(dt, ph.Gravity, ph.Damping)

	if ApplyExitGate(b, w.params.Gate, w.rng) {
		w.emit(Event{Kind: EventGateOpened, Money: w.econ.Money})
	}

	if b.LaunchMode {
		b.ConfineToLane(w.params.Launch.LaneMinX, w.params.Launch.LaneMaxX)
	} else {
		w.collide()
		if !b.Active {
			return
		}
		w.econ.CheckGoal()
		if w.econ.GameOver {
			w.settle()
			return
		}
	}

	w.recycleIfOut()
}

func (w *World) collide() {
	b := &w.ball
	ph := w.params.Physics

	for _, s := range w.table.segments {
		ResolveSegment(b, s, ph)
	}

	for _, bp := range w.table.bumpers {
		if !ResolveBumper(b, bp, ph) {
			continue
		}
		w.econ.Credit(bp.Delta)
		w.emit(Event{Kind: EventBumperHit, Money: w.econ.Money, Delta: bp.Delta})
		if w.econ.GameOver {
			w.settle()
			return
		}
	}

	for _, f := range w.flippers {
		if ResolveFlipper(b, f, ph) && f.Engaged {
			w.emit(Event{Kind: EventFlipperHit, Money: w.econ.Money, Side: f.Spec.Side})
		}
	}

	// First hole in layout order wins when several overlap.
	for _, h := range w.holes {
		if !h.Captures(b.Pos, ph.HoleSlack) {
			continue
		}
		before := w.econ.Money
		b.Stop()
		cont := w.econ.EnterHole(h)
		w.emit(Event{Kind: EventHoleEntered, Money: w.econ.Money, Delta: w.econ.Money - before, Hole: h.Type})
		if cont {
			b.Park(w.params.Launch.Start)
		} else {
			w.settle()
		}
		return
	}
}

func (w *World) recycleIfOut() {
	b := &w.ball
	if !b.Active || b.Pos.Y <= w.table.FloorY(b.Radius) {
		return
	}
	b.Park(w.params.Launch.Start)
	w.econ.Recycled()
	w.emit(Event{Kind: EventDrained, Money: w.econ.Money})
}

// settle reports the terminal transition once and freezes the ball.
func (w *World) settle() {
	if !w.econ.GameOver || w.endReported {
		return
	}
	w.endReported = true
	w.ball.Stop()
	kind := EventDied
	if w.econ.Won() {
		kind = EventCleared
	}
	w.emit(Event{Kind: kind, Money: w.econ.Money, Reason: w.econ.Reason})
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

func (w *World) flush() []Event {
	if len(w.events) == 0 {
		return nil
	}
	return append([]Event(nil), w.events...)
}
