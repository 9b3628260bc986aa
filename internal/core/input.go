package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - menu navigation
	ActionDown           // S, Down arrow - menu navigation
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionWaveFull       // Space, Enter - full wave from the core
	ActionWaveTL         // 1, U - wave into the top-left quadrant
	ActionWaveTR         // 2, I - wave into the top-right quadrant
	ActionWaveBL         // 3, J - wave into the bottom-left quadrant
	ActionWaveBR         // 4, K - wave into the bottom-right quadrant
)

// WaveAction returns the quadrant wave action aimed at q.
func WaveAction(q Quadrant) Action {
	switch q {
	case QuadrantTL:
		return ActionWaveTL
	case QuadrantTR:
		return ActionWaveTR
	case QuadrantBL:
		return ActionWaveBL
	default:
		return ActionWaveBR
	}
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionWaveFull:
		return "WaveFull"
	case ActionWaveTL:
		return "WaveTL"
	case ActionWaveTR:
		return "WaveTR"
	case ActionWaveBL:
		return "WaveBL"
	case ActionWaveBR:
		return "WaveBR"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input gathered between two simulation steps.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Taps holds pointer taps in screen cell coordinates, in arrival order.
	Taps []Point
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Tap queues a pointer tap at p.
func (f *InputFrame) Tap(p Point) {
	f.Taps = append(f.Taps, p)
}

// Clear resets all actions and taps for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Taps = f.Taps[:0]
}
