package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pinball/internal/core"
)

// Terminals report key repeats but never key releases, so a held key is
// seen as one press, a pause of the initial repeat delay (usually 250 to
// 600ms), then a fast stream of repeats. A first press is held long enough
// to bridge that pause; each repeat only needs to cover the repeat rate.
const (
	firstHoldWindow  = 650 * time.Millisecond
	repeatHoldWindow = 140 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionLaunch, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// isHeld reports whether an action is a held flipper rather than an edge.
func isHeld(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight
}

// holdLatch turns repeated key presses into a held state.
type holdLatch struct {
	until map[core.Action]time.Time
}

func newHoldLatch() holdLatch {
	return holdLatch{until: make(map[core.Action]time.Time)}
}

// Press extends the hold of a. A press while a is still held counts as a
// key repeat.
func (h holdLatch) Press(a core.Action, now time.Time) {
	if until, ok := h.until[a]; ok && now.Before(until) {
		h.until[a] = now.Add(repeatHoldWindow)
		return
	}
	h.until[a] = now.Add(firstHoldWindow)
}

// Apply sets every action still held at now on frame.
func (h holdLatch) Apply(frame *core.InputFrame, now time.Time) {
	for a, until := range h.until {
		if now.Before(until) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
}

// Release drops all holds.
func (h holdLatch) Release() {
	clear(h.until)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
