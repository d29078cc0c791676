package core

// Action represents a semantic game action, abstracted from physical key presses.
// Frontends map keys and buttons to actions; the world only sees intents.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - walk left
	ActionRight          // Right arrow, D - walk right
	ActionUp             // Up arrow, W - walk up
	ActionDown           // Down arrow, S - walk down
	ActionAnswer         // Digit key - answer with InputFrame.Digit
	ActionHint           // H - same as clicking the hint button
	ActionDismiss        // X, Escape - same as clicking the close button
	ActionClick          // Pointer click at InputFrame.Pointer
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionAnswer:
		return "Answer"
	case ActionHint:
		return "Hint"
	case ActionDismiss:
		return "Dismiss"
	case ActionClick:
		return "Click"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the action is one of the four walk directions.
func (a Action) IsMovement() bool {
	return a == ActionLeft || a == ActionRight || a == ActionUp || a == ActionDown
}

// InputFrame represents the input state during one simulation tick.
//
// Actions holds one-shot events (answers, clicks). Held holds the keys that
// are currently down; movement reads only Held. Pointer is the last known
// pointer position in canvas pixels.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool

	Digit        int   // Digit pressed with ActionAnswer
	Pointer      Point // Pointer position in canvas pixels
	PointerValid bool  // Whether Pointer has ever been reported
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetDigit records a digit key press.
func (f *InputFrame) SetDigit(d int) {
	f.Digit = d
	f.Set(ActionAnswer)
}

// Hold marks a key as held down (or released when down is false).
func (f *InputFrame) Hold(a Action, down bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if down {
		f.Held[a] = true
		return
	}
	delete(f.Held, a)
}

// IsHeld returns true if the key for the action is currently down.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// MovePointer records the pointer position.
func (f *InputFrame) MovePointer(p Point) {
	f.Pointer = p
	f.PointerValid = true
}

// Click records a pointer click at p.
func (f *InputFrame) Click(p Point) {
	f.MovePointer(p)
	f.Set(ActionClick)
}

// Clear resets the one-shot actions for the next frame.
// Held keys and the pointer position survive, they describe device state.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Digit = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Digit = f.Digit
	clone.Pointer = f.Pointer
	clone.PointerValid = f.PointerValid
	return clone
}
