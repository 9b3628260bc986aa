package core

// Signal is a discrete, fire-and-forget event raised by a game step.
// The platform forwards signals to audio/haptic collaborators; games never
// wait for them to be handled.
type Signal int

const (
	SignalNone Signal = iota
	SignalWaveFull
	SignalWaveQuadrant
	SignalWaveRejected
	SignalObstacleExploded
	SignalOrbDrained
	SignalRunStarted
	SignalRunLost
)

// String returns the signal name used in logs and traces.
func (s Signal) String() string {
	switch s {
	case SignalWaveFull:
		return "wave-emitted-full"
	case SignalWaveQuadrant:
		return "wave-emitted-quadrant"
	case SignalWaveRejected:
		return "wave-rejected"
	case SignalObstacleExploded:
		return "obstacle-exploded"
	case SignalOrbDrained:
		return "orb-drained"
	case SignalRunStarted:
		return "run-started"
	case SignalRunLost:
		return "run-lost"
	default:
		return "none"
	}
}
