package config

import "math"

// ticksPerSecond is the reference rate the per-tick ramp factors are tuned for.
const ticksPerSecond = 60

// DifficultyManager advances the spawn interval and speed multiplier.
// Factors compound per 60Hz-equivalent tick so the ramp is framerate independent.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// InitialInterval returns the spawn interval a fresh run starts with, in ms.
func (d *DifficultyManager) InitialInterval() float64 {
	return math.Max(d.cfg.SpawnIntervalMs, d.cfg.SpawnFloorMs)
}

// InitialSpeed returns the speed multiplier a fresh run starts with.
func (d *DifficultyManager) InitialSpeed() float64 {
	return math.Min(d.cfg.SpeedStart, d.cfg.SpeedCeiling)
}

// Advance applies dtSeconds of ramp to the current interval and speed multiplier.
func (d *DifficultyManager) Advance(interval, speed, dtSeconds float64) (float64, float64) {
	if !d.cfg.Enabled || dtSeconds <= 0 {
		return interval, speed
	}
	ticks := dtSeconds * ticksPerSecond
	interval = math.Max(d.cfg.SpawnFloorMs, interval*math.Pow(d.cfg.SpawnDecay, ticks))
	speed = math.Min(d.cfg.SpeedCeiling, speed*math.Pow(d.cfg.SpeedGrowth, ticks))
	return interval, speed
}
