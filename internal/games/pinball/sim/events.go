package sim

import "fmt"

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventLaunched EventKind = iota
	EventGateOpened
	EventBumperHit
	EventFlipperHit
	EventHoleEntered
	EventDrained
	EventTimeout
	EventDied
	EventCleared
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventLaunched:
		return "launched"
	case EventGateOpened:
		return "gate_opened"
	case EventBumperHit:
		return "bumper_hit"
	case EventFlipperHit:
		return "flipper_hit"
	case EventHoleEntered:
		return "hole_entered"
	case EventDrained:
		return "drained"
	case EventTimeout:
		return "timeout"
	case EventDied:
		return "died"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is a single frame event. Fields not relevant to the kind are zero.
type Event struct {
	Kind   EventKind
	Money  int // money after the event
	Delta  int
	Hole   HoleType
	Side   Side
	Reason Reason
}

// String formats the event for logs and the HUD ticker.
func (e Event) String() string {
	switch e.Kind {
	case EventBumperHit:
		return fmt.Sprintf("bumper %+d -> $%d", e.Delta, e.Money)
	case EventHoleEntered:
		return fmt.Sprintf("%s hole %+d -> $%d", e.Hole, e.Delta, e.Money)
	case EventFlipperHit:
		return fmt.Sprintf("%s flipper", e.Side)
	case EventDied, EventTimeout:
		return fmt.Sprintf("%s (%s)", e.Kind, e.Reason)
	default:
		return fmt.Sprintf("%s $%d", e.Kind, e.Money)
	}
}
