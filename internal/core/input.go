package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - cursor up
	ActionDown           // S, Down arrow - cursor down
	ActionLeft           // A, Left arrow - cursor left
	ActionRight          // D, Right arrow - cursor right
	ActionGrab           // Space - pick up or drop the cell under the cursor
	ActionConfirm        // Enter - run/stop the simulation, next level when solved
	ActionStep           // N - advance exactly one tick
	ActionRestart        // R - rewind to the arrangement before the run
	ActionCycle          // C - cycle the cell kind under the cursor (sandbox)
	ActionRotate         // O - rotate the cell under the cursor (sandbox)
	ActionDelete         // X - delete the cell under the cursor (sandbox)
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionGrab:
		return "Grab"
	case ActionConfirm:
		return "Confirm"
	case ActionStep:
		return "Step"
	case ActionRestart:
		return "Restart"
	case ActionCycle:
		return "Cycle"
	case ActionRotate:
		return "Rotate"
	case ActionDelete:
		return "Delete"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one UI frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
