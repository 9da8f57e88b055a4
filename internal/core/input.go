package core

// Action is a control command issued by the foreground task.
// Surfaces map their own key events onto these.
type Action int

const (
	ActionNone  Action = iota
	ActionSand         // Space - start falling sand
	ActionSaver        // S - start screen saver
	ActionCrawl        // C - start crawler
	ActionNoise        // N - start draw test
	ActionStop         // Esc - stop the scheduler
	ActionReset        // R - reseed the current mode
	ActionFill         // F - diagnostic fill
	ActionHelp         // ? - toggle help
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSand:
		return "Sand"
	case ActionSaver:
		return "Saver"
	case ActionCrawl:
		return "Crawl"
	case ActionNoise:
		return "Noise"
	case ActionStop:
		return "Stop"
	case ActionReset:
		return "Reset"
	case ActionFill:
		return "Fill"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ModeID returns the mode an action starts, or "" for non-mode actions.
func (a Action) ModeID() string {
	switch a {
	case ActionSand:
		return "sand"
	case ActionSaver:
		return "saver"
	case ActionCrawl:
		return "crawl"
	case ActionNoise:
		return "noise"
	default:
		return ""
	}
}
