package sim

import (
	"fmt"
	"time"
)

// Phase is the visible status of a run.
type Phase int

const (
	PhaseReady Phase = iota // ball parked in the launch lane
	PhasePlay               // ball in flight
	PhaseDead               // run lost
	PhaseClear              // goal reached
)

// String returns the HUD label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "READY"
	case PhasePlay:
		return "PLAY"
	case PhaseDead:
		return "DEAD"
	case PhaseClear:
		return "CLEAR"
	default:
		return "UNKNOWN"
	}
}

// Reason explains why a run ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonInsufficientFunds
	ReasonBankrupt
	ReasonDeathHole
	ReasonTimeout
	ReasonGoal
)

// String returns a short machine-friendly name, stored with finished runs.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonInsufficientFunds:
		return "insufficient_funds"
	case ReasonBankrupt:
		return "bankrupt"
	case ReasonDeathHole:
		return "death_hole"
	case ReasonTimeout:
		return "timeout"
	case ReasonGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Describe returns the player-facing explanation of a finished run.
func (r Reason) Describe(money, goal, cost int) string {
	switch r {
	case ReasonInsufficientFunds:
		return fmt.Sprintf("Not enough money to launch (need $%d).", cost)
	case ReasonBankrupt:
		return "You ran out of money."
	case ReasonDeathHole:
		return "The ball fell into the death hole."
	case ReasonTimeout:
		return fmt.Sprintf("Time is up. You finished with $%d of $%d.", money, goal)
	case ReasonGoal:
		return fmt.Sprintf("You reached $%d!", money)
	default:
		return ""
	}
}

// Economy tracks money, the countdown and the outcome of a run.
// Once GameOver is set no operation changes it again.
type Economy struct {
	rules Rules

	Money    int
	TimeLeft int // whole seconds
	Running  bool
	GameOver bool
	Phase    Phase
	Reason   Reason
	Launches int

	debt time.Duration
}

// NewEconomy builds a fresh run: start money, full time, clock stopped.
func NewEconomy(r Rules) Economy {
	return Economy{
		rules:    r,
		Money:    r.StartMoney,
		TimeLeft: int(r.TotalTime / time.Second),
		Phase:    PhaseReady,
	}
}

// Rules returns the rules the economy was built with.
func (e *Economy) Rules() Rules {
	return e.rules
}

// Won reports whether the run ended by reaching the goal.
func (e *Economy) Won() bool {
	return e.GameOver && e.Phase == PhaseClear
}

// Start runs the clock. The countdown is idle until Start or the first
// launch, and a finished run never restarts.
func (e *Economy) Start() {
	if !e.GameOver {
		e.Running = true
	}
}

// ChargeLaunch starts the run if needed and charges the launch cost.
// It returns true when the ball may be launched.
func (e *Economy) ChargeLaunch() bool {
	if e.GameOver {
		return false
	}
	e.Running = true

	if e.Money < e.rules.LaunchCost {
		e.die(ReasonInsufficientFunds)
		return false
	}
	e.Money -= e.rules.LaunchCost
	e.Launches++
	if e.Money <= 0 {
		e.die(ReasonBankrupt)
		return false
	}
	e.Phase = PhasePlay
	return true
}

// Credit applies a money change from a bumper. Dropping to zero ends the run.
func (e *Economy) Credit(delta int) {
	if e.GameOver {
		return
	}
	e.Money += delta
	if e.Money <= 0 {
		e.die(ReasonBankrupt)
	}
}

// EnterHole applies the effect of a captured hole. It returns true when the
// run continues and the ball should be recycled to the launch lane.
func (e *Economy) EnterHole(h Hole) bool {
	if e.GameOver {
		return false
	}
	switch h.Type {
	case HoleDeath:
		e.die(ReasonDeathHole)
		return false
	case HoleBonus:
		e.Money += h.Amount
	case HolePenalty:
		e.Money -= h.Amount
	}

	if e.Money <= 0 {
		e.die(ReasonBankrupt)
		return false
	}
	if e.Money >= e.rules.Goal {
		e.clear()
		return false
	}
	e.Phase = PhaseReady
	return true
}

// CheckGoal clears the run when money has reached the goal.
func (e *Economy) CheckGoal() {
	if !e.GameOver && e.Money >= e.rules.Goal {
		e.clear()
	}
}

// Countdown accumulates elapsed time and removes whole seconds from the
// clock. It returns true if the run timed out during this call.
func (e *Economy) Countdown(dt time.Duration) bool {
	if e.GameOver || !e.Running {
		return false
	}
	e.debt += dt
	for e.debt >= time.Second {
		e.debt -= time.Second
		e.TimeLeft--
		if e.TimeLeft <= 0 {
			e.TimeLeft = 0
			e.die(ReasonTimeout)
			return true
		}
	}
	return false
}

// Recycled marks the ball as back in the lane after a drain.
func (e *Economy) Recycled() {
	if !e.GameOver {
		e.Phase = PhaseReady
	}
}

func (e *Economy) die(r Reason) {
	if e.GameOver {
		return
	}
	e.GameOver = true
	e.Running = false
	e.Phase = PhaseDead
	e.Reason = r
}

func (e *Economy) clear() {
	if e.GameOver {
		return
	}
	e.GameOver = true
	e.Running = false
	e.Phase = PhaseClear
	e.Reason = ReasonGoal
}
