// Package audio turns simulation signals into synthesized sound.
// Playback is best effort: failures are logged and never reach the game.
package audio

import "github.com/vovakirdan/echo-arcade/internal/core"

// Cue identifies a one-shot sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueWaveFull
	CueWaveQuadrant
	CueRejected
	CueExplode
	CueLose
)

// String returns the cue name used in logs.
func (c Cue) String() string {
	switch c {
	case CueWaveFull:
		return "wave-full"
	case CueWaveQuadrant:
		return "wave-quadrant"
	case CueRejected:
		return "rejected"
	case CueExplode:
		return "explode"
	case CueLose:
		return "lose"
	default:
		return "none"
	}
}

// CueFor returns the sound effect for a signal. Orb drains have no sound.
func CueFor(s core.Signal) (Cue, bool) {
	switch s {
	case core.SignalWaveFull:
		return CueWaveFull, true
	case core.SignalWaveQuadrant:
		return CueWaveQuadrant, true
	case core.SignalWaveRejected:
		return CueRejected, true
	case core.SignalObstacleExploded:
		return CueExplode, true
	case core.SignalRunLost:
		return CueLose, true
	default:
		return CueNone, false
	}
}
