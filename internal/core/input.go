package core

// Action is a semantic player intent, abstracted from physical key presses.
// The platform maps keys to actions; the engine never sees key codes.
type Action int

const (
	ActionNone Action = iota

	// Held actions: active for as long as the key is down.
	ActionMoveLeft
	ActionMoveRight
	ActionSoftDrop
	ActionRotate

	// Edge-triggered actions: fire once on the tick the key goes down.
	ActionHardDrop
	ActionHold
	ActionPauseToggle
	ActionRestart
	ActionToMenu
	ActionStart
)

// Held reports whether the action stays active while its key is down.
func (a Action) Held() bool {
	return a >= ActionMoveLeft && a <= ActionRotate
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotate:
		return "Rotate"
	case ActionHardDrop:
		return "HardDrop"
	case ActionHold:
		return "Hold"
	case ActionPauseToggle:
		return "PauseToggle"
	case ActionRestart:
		return "Restart"
	case ActionToMenu:
		return "ToMenu"
	case ActionStart:
		return "Start"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions active during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an input frame with the given actions active.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
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
