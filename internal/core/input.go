package core

// Action represents a semantic player action, abstracted from physical key presses.
// Screens react to intents rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, k - previous menu entry
	ActionDown           // Down arrow, j - next menu entry
	ActionLeft           // Left arrow, h - previous character in the pool
	ActionRight          // Right arrow, l - next character in the pool
	ActionConfirm        // Enter - select, or drop the character into the next free slot
	ActionPlace          // 1-9 - place the character into a numbered slot
	ActionPull           // Space, p - pull the turnip
	ActionSkip           // s - skip the intro
	ActionBack           // Esc, b - back to the menu
	ActionQuit           // q, Ctrl+C - exit
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
	case ActionConfirm:
		return "Confirm"
	case ActionPlace:
		return "Place"
	case ActionPull:
		return "Pull"
	case ActionSkip:
		return "Skip"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded key press.
type Input struct {
	Action Action
	Slot   int // zero-based slot index, set for ActionPlace
}

// None reports whether the input carries no action.
func (in Input) None() bool {
	return in.Action == ActionNone
}

// PlaceInput returns the input for placing into the given zero-based slot.
func PlaceInput(slot int) Input {
	return Input{Action: ActionPlace, Slot: slot}
}
