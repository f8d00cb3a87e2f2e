package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow - cursor one row up
	ActionDown            // S, Down arrow - cursor one row down
	ActionLeft            // A, Left arrow - cursor one column left
	ActionRight           // D, Right arrow - cursor one column right
	ActionConfirm         // Enter, Space - select unit / confirm order
	ActionCancel          // Esc, B - drop the current selection
	ActionFortify         // F - engineer builds a trench
	ActionEndTurn         // E - hand the turn to the opponent
	ActionNextUnit        // N, Tab - jump to the next ready unit
	ActionRestart         // R - start a new match
	ActionQuit            // Q, Ctrl+C - leave the session
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionConfirm:  "Confirm",
	ActionCancel:   "Cancel",
	ActionFortify:  "Fortify",
	ActionEndTurn:  "EndTurn",
	ActionNextUnit: "NextUnit",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds every action triggered during one simulation tick.
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
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
