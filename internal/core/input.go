package core

// Action represents an abstract input intent, decoupled from physical keys,
// pointer clicks or SSH key sequences.
type Action int

const (
	ActionNone    Action = iota
	ActionTrigger        // Space, Up, W, left click - flap; starts the game from the menu
	ActionConfirm        // Enter - start / resume / play again
	ActionPause          // P, Escape - pause/unpause
	ActionRestart        // R - back to menu after game over
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTrigger:
		return "Trigger"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions requested between two ticks.
// Each action is a flag, so any number of triggers inside one tick
// collapses into a single request.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as requested for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was requested this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action is pending.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
