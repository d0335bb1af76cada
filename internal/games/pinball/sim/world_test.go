package sim

import (
	"testing"
	"time"
)

const frame = time.Second / 60

func newTestWorld(t *testing.T, seed int64, mutate func(*Params)) *World {
	t.Helper()
	p := DefaultParams()
	if mutate != nil {
		mutate(&p)
	}
	w, err := NewWorld(p, seed)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	return w
}

// putInPlay launches and then moves the ball onto the open table.
func putInPlay(t *testing.T, w *World, pos, vel Vec2) {
	t.Helper()
	w.Advance(0, Input{Launch: true})
	if !w.ball.Active {
		t.Fatal("launch failed")
	}
	w.ball.Pos = pos
	w.ball.Vel = vel
	w.ball.LaunchMode = false
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewWorldRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"no substeps", func(p *Params) { p.Physics.Substeps = 0 }},
		{"no death hole", func(p *Params) { p.Holes.Templates = p.Holes.Templates[:5] }},
		{"zero goal", func(p *Params) { p.Rules.Goal = 0 }},
		{"short clock", func(p *Params) { p.Rules.TotalTime = time.Millisecond }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			if _, err := NewWorld(p, 1); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWorldInitialState(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	s := w.Snapshot()

	if s.Money != 50 || s.TimeLeft != 300 || s.Goal != 500 {
		t.Errorf("unexpected rules in snapshot: money=%d time=%d goal=%d", s.Money, s.TimeLeft, s.Goal)
	}
	if s.Phase != PhaseReady || !s.Running || s.GameOver {
		t.Errorf("expected READY with the clock running, got %s running=%v", s.Phase, s.Running)
	}
	if s.Ball.Active || !s.Ball.LaunchMode || s.Ball.Pos != DefaultParams().Launch.Start {
		t.Errorf("ball should be parked in the lane: %+v", s.Ball)
	}

	// The clock runs while the ball waits in the lane
	for range 100 {
		w.Advance(20*time.Millisecond, Input{Left: true})
	}
	s = w.Snapshot()
	if s.TimeLeft != 298 || s.Money != 50 || s.Ball.Active {
		t.Errorf("two idle seconds should only cost time: time=%d money=%d ball=%+v", s.TimeLeft, s.Money, s.Ball)
	}
}

func TestWorldTimesOutWithoutLaunch(t *testing.T) {
	w := newTestWorld(t, 1, nil)

	step := 20 * time.Millisecond
	var events []Event
	for range int(400 * time.Second / step) {
		events = append(events, w.Advance(step, Input{})...)
	}

	s := w.Snapshot()
	if s.Phase != PhaseDead || s.Reason != ReasonTimeout || s.TimeLeft != 0 {
		t.Fatalf("an idle table should time out, got %s %s %ds", s.Phase, s.Reason, s.TimeLeft)
	}
	if s.Money != 50 || s.Launches != 0 {
		t.Errorf("timeout without a launch keeps the start money, got $%d after %d launches", s.Money, s.Launches)
	}
	if countKind(events, EventTimeout) != 1 || countKind(events, EventDied) != 1 {
		t.Errorf("expected one timeout and one died event, got %v", events)
	}
	if got := w.Elapsed(); got != 300*time.Second {
		t.Errorf("elapsed = %v, expected the full 5 minutes", got)
	}
}

func TestLaunchWithInsufficientFunds(t *testing.T) {
	w := newTestWorld(t, 1, func(p *Params) { p.Rules.StartMoney = 5 })

	events := w.Advance(frame, Input{Launch: true})
	s := w.Snapshot()

	if s.Phase != PhaseDead || s.Money != 5 || s.Reason != ReasonInsufficientFunds {
		t.Errorf("expected DEAD with $5 (insufficient funds), got %s $%d %s", s.Phase, s.Money, s.Reason)
	}
	if s.Ball.Active {
		t.Error("ball must not be launched")
	}
	if countKind(events, EventDied) != 1 || countKind(events, EventLaunched) != 0 {
		t.Errorf("unexpected events: %v", events)
	}
}

func TestLaunchIgnoredWhileBallActive(t *testing.T) {
	w := newTestWorld(t, 1, nil)

	w.Advance(frame, Input{Launch: true})
	w.Advance(frame, Input{Launch: true})
	w.Advance(frame, Input{Launch: true})

	s := w.Snapshot()
	if s.Launches != 1 || s.Money != 40 {
		t.Errorf("relaunch while in play should be ignored: launches=%d money=%d", s.Launches, s.Money)
	}
}

func TestLaunchLaneAndExitGate(t *testing.T) {
	w := newTestWorld(t, 3, nil)
	p := DefaultParams()

	events := w.Advance(frame, Input{Launch: true})
	if countKind(events, EventLaunched) != 1 {
		t.Fatalf("expected a launch event, got %v", events)
	}

	gates := 0
	for range 600 {
		if w.ball.LaunchMode && w.ball.Active {
			if w.ball.Pos.X < p.Launch.LaneMinX || w.ball.Pos.X > p.Launch.LaneMaxX {
				t.Fatalf("ball left the lane band in launch mode: x=%.2f", w.ball.Pos.X)
			}
		}
		evs := w.Advance(frame, Input{})
		gates += countKind(evs, EventGateOpened)
		if !w.ball.Active {
			break
		}
	}

	if gates != 1 {
		t.Errorf("exit gate should fire exactly once per launch, fired %d times", gates)
	}
}

func TestExitGateKick(t *testing.T) {
	w := newTestWorld(t, 5, nil)
	g := DefaultParams().Gate

	w.ball.Active = true
	w.ball.LaunchMode = true
	w.ball.Pos = V(840, g.ExitY-1)

	if !ApplyExitGate(&w.ball, g, w.rng) {
		t.Fatal("gate should fire above the exit height")
	}
	if w.ball.LaunchMode || w.ball.Pos != g.Inject {
		t.Errorf("ball should be injected at %v, got %v", g.Inject, w.ball.Pos)
	}
	v := w.ball.Vel
	if v.X < g.KickVX.Min || v.X > g.KickVX.Max || v.Y < g.KickVY.Min || v.Y > g.KickVY.Max {
		t.Errorf("kick %v outside configured ranges", v)
	}

	if ApplyExitGate(&w.ball, g, w.rng) {
		t.Error("gate must not fire twice")
	}
}

func TestDeathHoleForcesDead(t *testing.T) {
	for seed := range int64(20) {
		w := newTestWorld(t, seed, nil)
		var death Hole
		for _, h := range w.holes {
			if h.Type == HoleDeath {
				death = h
			}
		}

		putInPlay(t, w, death.Pos, Vec2{})
		w.econ.Money = 400
		events := w.Advance(time.Millisecond, Input{})

		s := w.Snapshot()
		if s.Phase != PhaseDead || s.Reason != ReasonDeathHole {
			t.Fatalf("seed %d: death hole gave %s (%s)", seed, s.Phase, s.Reason)
		}
		if countKind(events, EventDied) != 1 {
			t.Errorf("seed %d: expected one died event, got %v", seed, events)
		}
	}
}

func TestHoleTieBreakFirstInList(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	at := V(300, 400)
	w.holes = []Hole{
		{HoleTemplate: HoleTemplate{Type: HoleBonus, Radius: 22, Amount: 35}, Pos: at},
		{HoleTemplate: HoleTemplate{Type: HolePenalty, Radius: 18, Amount: 20}, Pos: at},
		{HoleTemplate: HoleTemplate{Type: HoleDeath, Radius: 20}, Pos: at},
	}

	putInPlay(t, w, at, Vec2{})
	events := w.Advance(time.Millisecond, Input{})

	s := w.Snapshot()
	if s.Money != 40+35 {
		t.Errorf("first hole in list should win: money=%d, expected 75", s.Money)
	}
	if s.Phase != PhaseReady || s.Ball.Active || s.Ball.Pos != DefaultParams().Launch.Start {
		t.Errorf("ball should be recycled to the lane, got %s %+v", s.Phase, s.Ball)
	}
	if countKind(events, EventHoleEntered) != 1 {
		t.Errorf("expected exactly one hole event, got %v", events)
	}
}

func TestGoalClearsExactlyOnce(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	at := V(300, 400)
	w.holes = []Hole{
		{HoleTemplate: HoleTemplate{Type: HoleBonus, Radius: 22, Amount: 60}, Pos: at},
		{HoleTemplate: HoleTemplate{Type: HoleDeath, Radius: 20}, Pos: V(600, 420)},
	}

	putInPlay(t, w, at, Vec2{})
	w.econ.Money = 470

	var all []Event
	all = append(all, w.Advance(time.Millisecond, Input{})...)
	for range 60 {
		all = append(all, w.Advance(frame, Input{Launch: true, Left: true})...)
	}

	if n := countKind(all, EventCleared); n != 1 {
		t.Errorf("expected exactly one CLEAR, got %d", n)
	}
	s := w.Snapshot()
	if s.Phase != PhaseClear || s.Money != 530 || s.Launches != 1 {
		t.Errorf("state changed after CLEAR: %s $%d launches=%d", s.Phase, s.Money, s.Launches)
	}
}

func TestBumperChangesMoney(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	w.holes = nil
	bp := DefaultParams().Bumpers[3] // penalty bumper

	putInPlay(t, w, bp.Center.Add(V(bp.Radius+5, 0)), V(-200, 0))
	events := w.Advance(time.Millisecond, Input{})

	if countKind(events, EventBumperHit) != 1 {
		t.Fatalf("expected one bumper hit, got %v", events)
	}
	if got := w.Snapshot().Money; got != 40+bp.Delta {
		t.Errorf("money = %d, expected %d", got, 40+bp.Delta)
	}
}

func TestBumperBankrupt(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	w.holes = nil
	bp := DefaultParams().Bumpers[4]

	putInPlay(t, w, bp.Center.Add(V(0, -(bp.Radius+5))), V(0, 200))
	w.econ.Money = 2
	w.Advance(time.Millisecond, Input{})

	s := w.Snapshot()
	if s.Phase != PhaseDead || s.Reason != ReasonBankrupt || s.Money != 0 {
		t.Errorf("penalty bumper at $2 should bankrupt, got %s %s $%d", s.Phase, s.Reason, s.Money)
	}
}

// openDrain opens the bottom border between the flipper pivots.
func openDrain(p *Params) {
	p.DrainMinX = p.Flippers[SideLeft].Pivot.X
	p.DrainMaxX = p.Flippers[SideRight].Pivot.X
}

func TestDrainRecyclesBall(t *testing.T) {
	w := newTestWorld(t, 1, openDrain)
	w.holes = nil

	putInPlay(t, w, V(450, 670), V(0, 300))
	events := w.Advance(frame, Input{})

	s := w.Snapshot()
	if countKind(events, EventDrained) != 1 {
		t.Fatalf("expected a drain, got %v", events)
	}
	if s.Ball.Active || !s.Ball.LaunchMode || s.Phase != PhaseReady {
		t.Errorf("drained ball should wait in the lane: %+v %s", s.Ball, s.Phase)
	}
	if !s.Running || s.Money != 40 {
		t.Errorf("drain should not end the run or cost money: running=%v money=%d", s.Running, s.Money)
	}
}

func TestOutlaneBallIsCaught(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"closed bottom", nil},
		{"open drain", openDrain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, 1, tc.mutate)
			w.holes = nil

			putInPlay(t, w, V(280, 600), V(0, 50))
			var events []Event
			for range 30 {
				events = append(events, w.Advance(frame, Input{Left: true, Right: true})...)
			}

			s := w.Snapshot()
			if countKind(events, EventDrained) != 0 {
				t.Fatalf("ball beside the flippers should not drain: %v", events)
			}
			if !s.Ball.Active || s.Phase != PhasePlay || s.Money != 40 {
				t.Errorf("ball should stay in play: %+v %s $%d", s.Ball, s.Phase, s.Money)
			}
			if floor := DefaultHeight - DefaultPad - s.Ball.Radius; s.Ball.Pos.Y > floor {
				t.Errorf("ball at y=%.1f is below the floor %.1f", s.Ball.Pos.Y, floor)
			}
		})
	}
}

func TestClosedBottomHasNoDrain(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	segs := w.Table().Segments()
	bottom := segs[w.Table().BorderCount()-1]
	if w.Table().BorderCount() != 4 || bottom.A.X-bottom.B.X != DefaultWidth-2*DefaultPad {
		t.Errorf("default table should have a single full-width bottom border, got %+v", segs[:w.Table().BorderCount()])
	}
}

func TestFrameDeltaClamped(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	w.Advance(0, Input{Launch: true})
	w.ball.Stop()
	w.ball.Park(DefaultParams().Launch.Start)

	// One huge frame advances at most MaxStep
	for range 40 {
		w.Advance(10*time.Second, Input{})
	}
	if got := w.Elapsed(); got != 40*DefaultParams().Physics.MaxStep {
		t.Errorf("elapsed = %v, expected %v", got, 40*DefaultParams().Physics.MaxStep)
	}

	// Negative deltas are treated as zero
	before := w.Elapsed()
	w.Advance(-time.Second, Input{})
	if w.Elapsed() != before {
		t.Error("negative frame delta should not advance time")
	}
}

func TestWorldTimeout(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	w.Advance(0, Input{Launch: true})
	w.ball.Park(DefaultParams().Launch.Start)

	step := 20 * time.Millisecond
	frames := int(300 * time.Second / step)

	var timeouts int
	for i := range frames {
		if w.Snapshot().GameOver {
			t.Fatalf("run ended early at frame %d", i)
		}
		timeouts += countKind(w.Advance(step, Input{}), EventTimeout)
	}

	s := w.Snapshot()
	if s.Phase != PhaseDead || s.Reason != ReasonTimeout || s.TimeLeft != 0 {
		t.Errorf("expected DEAD timeout, got %s %s %ds", s.Phase, s.Reason, s.TimeLeft)
	}
	if timeouts != 1 {
		t.Errorf("expected one timeout event, got %d", timeouts)
	}
}

// scriptedInput flips and launches on a fixed pattern.
func scriptedInput(i int) Input {
	return Input{
		Launch: i%45 == 0,
		Left:   i%20 < 6,
		Right:  (i+10)%20 < 6,
	}
}

func TestMoneyBookkeeping(t *testing.T) {
	for seed := range int64(10) {
		w := newTestWorld(t, seed, nil)
		rules := DefaultParams().Rules

		deltas := 0
		for i := range 6000 {
			for _, e := range w.Advance(frame, scriptedInput(i)) {
				if e.Kind == EventBumperHit || e.Kind == EventHoleEntered {
					deltas += e.Delta
				}
			}

			s := w.Snapshot()
			want := rules.StartMoney - s.Launches*rules.LaunchCost + deltas
			if s.Money != want {
				t.Fatalf("seed %d frame %d: money=%d, expected %d", seed, i, s.Money, want)
			}
			if s.GameOver {
				break
			}
		}
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() Snapshot {
		w := newTestWorld(t, 12345, nil)
		for i := range 3000 {
			w.Advance(frame, scriptedInput(i))
		}
		return w.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Money != b.Money || a.Ball.Pos != b.Ball.Pos {
		t.Errorf("determinism failed: money %d/%d ball %v/%v", a.Money, b.Money, a.Ball.Pos, b.Ball.Pos)
	}
}

func TestWorldResetRegenerates(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	for i := range 200 {
		w.Advance(frame, scriptedInput(i))
	}

	w.Reset(2)
	s := w.Snapshot()
	if s.Money != 50 || s.TimeLeft != 300 || !s.Running || s.GameOver || s.Launches != 0 {
		t.Errorf("reset should restore a fresh run: %+v", s)
	}
	if s.Ball.Active || s.Ball.Pos != DefaultParams().Launch.Start {
		t.Errorf("reset should park the ball: %+v", s.Ball)
	}

	fresh := newTestWorld(t, 2, nil)
	for i, h := range fresh.Holes() {
		if s.Holes[i] != h {
			t.Errorf("hole %d after Reset(2) should match a new world seeded with 2", i)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	w := newTestWorld(t, 1, nil)
	s := w.Snapshot()
	s.Holes[0].Pos = V(-1, -1)
	s.Segments[0].A = V(-1, -1)
	s.Bumpers[0].Delta = 99

	again := w.Snapshot()
	if again.Holes[0].Pos == V(-1, -1) || again.Segments[0].A == V(-1, -1) || again.Bumpers[0].Delta == 99 {
		t.Error("mutating a snapshot must not change the world")
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestDriverUsesClock(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := NewDriver(newTestWorld(t, 1, nil), clock)

	// First frame launches with zero delta
	d.Frame(Input{Launch: true})
	if got := d.World().Elapsed(); got != 0 {
		t.Errorf("first frame should have zero delta, elapsed=%v", got)
	}

	clock.advance(10 * time.Millisecond)
	d.Frame(Input{})
	if got := d.World().Elapsed(); got != 10*time.Millisecond {
		t.Errorf("elapsed = %v, expected 10ms", got)
	}

	// A stall is clamped to one max step
	clock.advance(2 * time.Second)
	d.Frame(Input{})
	want := 10*time.Millisecond + DefaultParams().Physics.MaxStep
	if got := d.World().Elapsed(); got != want {
		t.Errorf("elapsed = %v, expected %v", got, want)
	}

	// Time spent paused is skipped
	d.Resume()
	clock.advance(time.Minute)
	d.Frame(Input{})
	if got := d.World().Elapsed(); got != want {
		t.Errorf("frame after Resume should have zero delta, elapsed=%v", got)
	}

	d.Reset(9)
	clock.advance(time.Minute)
	d.Frame(Input{})
	if got := d.World().Elapsed(); got != 0 {
		t.Errorf("frame after reset should have zero delta, elapsed=%v", got)
	}
}
