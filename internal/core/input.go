package core

// Action is a semantic player intent, decoupled from the key or mouse event
// that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionSelect         // Left click
	ActionRestart        // R - start a new session after game over
	ActionHelp           // ? - toggle the full help line
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSelect:
		return "Select"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
