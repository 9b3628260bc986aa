// Package config provides YAML-based game configuration loading and
// difficulty management for the echo arcade.
package config

import (
	"errors"
	"fmt"
	"time"
)

// EchoConfig contains all tunables for the Echo simulation.
type EchoConfig struct {
	Field      EchoField        `yaml:"field"`
	Ripple     EchoRipple       `yaml:"ripple"`
	Energy     EchoEnergy       `yaml:"energy"`
	Input      EchoInput        `yaml:"input"`
	Push       EchoPush         `yaml:"push"`
	Obstacles  EchoObstacles    `yaml:"obstacles"`
	PowerOrb   EchoPowerOrb     `yaml:"power_orb"`
	Elite      EchoElite        `yaml:"elite"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Loop       EchoLoop         `yaml:"loop"`
	Theme      EchoTheme        `yaml:"theme"`
}

// EchoField defines the playfield geometry in pixels.
type EchoField struct {
	CoreRadius     float64 `yaml:"core_radius"`
	Padding        float64 `yaml:"padding"`        // Added to max(cx, cy) to get the field radius
	SpawnMargin    float64 `yaml:"spawn_margin"`   // Spawn distance beyond the field radius
	RemovalMargin  float64 `yaml:"removal_margin"` // Obstacles past fieldRadius+margin are dropped
	AngleMarginDeg float64 `yaml:"angle_margin_deg"`
	CellWidth      int     `yaml:"cell_width"` // Pixels per terminal column
	CellHeight     int     `yaml:"cell_height"`
}

// EchoRipple defines wave propagation.
type EchoRipple struct {
	Speed     float64 `yaml:"speed"`      // px/s
	MaxRadius float64 `yaml:"max_radius"` // Ripples at or beyond this radius are dropped
	Thickness float64 `yaml:"thickness"`  // Collision band half-width
}

// EchoEnergy defines the player resource.
type EchoEnergy struct {
	Max      float64 `yaml:"max"`
	Regen    float64 `yaml:"regen"` // Per second
	CostQuad float64 `yaml:"cost_quad"`
	CostFull float64 `yaml:"cost_full"`
	OrbDrain float64 `yaml:"orb_drain"`
}

// EchoInput defines tap classification and cooldowns.
type EchoInput struct {
	CenterTapRadius float64 `yaml:"center_tap_radius"`
	CooldownQuadMs  float64 `yaml:"cooldown_quad_ms"`
	CooldownFullMs  float64 `yaml:"cooldown_full_ms"`
}

// EchoPush defines ripple knockback against obstacles.
type EchoPush struct {
	Full        float64 `yaml:"full"`
	Quad        float64 `yaml:"quad"`
	ToughMult   float64 `yaml:"tough_mult"`
	Tier3Mult   float64 `yaml:"tier3_mult"`
	SlowSeconds float64 `yaml:"slow_seconds"`
	SlowFactor  float64 `yaml:"slow_factor"`
}

// EchoObstacles defines regular obstacle spawning.
type EchoObstacles struct {
	BaseSpeed       float64 `yaml:"base_speed"`
	SizeMin         float64 `yaml:"size_min"`
	SizeRange       float64 `yaml:"size_range"`
	ClusterChance   float64 `yaml:"cluster_chance"`
	Tier3Chance     float64 `yaml:"tier3_chance"`
	Tier3CooldownMs float64 `yaml:"tier3_cooldown_ms"`
	Tier3JitterMs   float64 `yaml:"tier3_jitter_ms"`
	Tier2Chance     float64 `yaml:"tier2_chance"`
	Tier2CooldownMs float64 `yaml:"tier2_cooldown_ms"`
	Tier2JitterMs   float64 `yaml:"tier2_jitter_ms"`
}

// EchoPowerOrb defines the energy-refill orb.
type EchoPowerOrb struct {
	HP        int     `yaml:"hp"`
	SizeMin   float64 `yaml:"size_min"`
	SizeRange float64 `yaml:"size_range"`
	CadenceMs float64 `yaml:"cadence_ms"`
}

// EchoElite defines the Blink Stalker.
type EchoElite struct {
	HP                 int     `yaml:"hp"`
	Size               float64 `yaml:"size"`
	SpeedMult          float64 `yaml:"speed_mult"`
	ScoreThreshold     float64 `yaml:"score_threshold"`
	TeleportCooldownMs float64 `yaml:"teleport_cooldown_ms"`
	TelegraphMs        float64 `yaml:"telegraph_ms"`
	FadeInMs           float64 `yaml:"fade_in_ms"`
	DeathMs            float64 `yaml:"death_ms"`
	ScreenMarginPct    float64 `yaml:"screen_margin_pct"`
	CenterSafePct      float64 `yaml:"center_safe_pct"`
	PlayerSafePct      float64 `yaml:"player_safe_pct"`
	TeleportAttempts   int     `yaml:"teleport_attempts"`
}

// EchoLoop defines frame timing.
type EchoLoop struct {
	MaxFrameMs int `yaml:"max_frame_ms"`
}

// MaxFrame returns the frame clamp as a duration.
func (l EchoLoop) MaxFrame() time.Duration {
	return time.Duration(l.MaxFrameMs) * time.Millisecond
}

// EchoTheme holds palette names for the waves and the core.
type EchoTheme struct {
	Full string `yaml:"full"`
	Quad string `yaml:"quad"`
	Core string `yaml:"core"`
}

// DifficultyConfig defines the compounding ramp applied per 60Hz-equivalent tick.
type DifficultyConfig struct {
	Enabled         bool    `yaml:"enabled"`
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"` // Starting interval
	SpawnDecay      float64 `yaml:"spawn_decay"`       // Interval factor per tick
	SpawnFloorMs    float64 `yaml:"spawn_floor_ms"`
	SpeedStart      float64 `yaml:"speed_start"`
	SpeedGrowth     float64 `yaml:"speed_growth"` // Speed factor per tick
	SpeedCeiling    float64 `yaml:"speed_ceiling"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyEchoPreset modifies the config based on a difficulty preset.
func ApplyEchoPreset(cfg *EchoConfig, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.SpawnIntervalMs = 1500
		cfg.Difficulty.SpeedCeiling = 2.2
		cfg.Energy.Regen = 8
	case DifficultyHard:
		cfg.Difficulty.SpawnIntervalMs = 950
		cfg.Difficulty.SpeedStart = 1.2
		cfg.Difficulty.SpeedCeiling = 3.0
		cfg.Energy.Regen = 5.5
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c EchoConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("field.core_radius", c.Field.CoreRadius)
	positive("field.cell_width", float64(c.Field.CellWidth))
	positive("field.cell_height", float64(c.Field.CellHeight))
	positive("ripple.speed", c.Ripple.Speed)
	positive("ripple.max_radius", c.Ripple.MaxRadius)
	positive("ripple.thickness", c.Ripple.Thickness)
	positive("energy.max", c.Energy.Max)
	positive("obstacles.base_speed", c.Obstacles.BaseSpeed)
	positive("difficulty.spawn_interval_ms", c.Difficulty.SpawnIntervalMs)
	positive("difficulty.spawn_floor_ms", c.Difficulty.SpawnFloorMs)
	positive("difficulty.speed_start", c.Difficulty.SpeedStart)
	positive("loop.max_frame_ms", float64(c.Loop.MaxFrameMs))
	unit("obstacles.cluster_chance", c.Obstacles.ClusterChance)
	unit("obstacles.tier2_chance", c.Obstacles.Tier2Chance)
	unit("obstacles.tier3_chance", c.Obstacles.Tier3Chance)
	unit("push.slow_factor", c.Push.SlowFactor)

	if c.Energy.CostQuad > c.Energy.Max || c.Energy.CostFull > c.Energy.Max {
		errs = append(errs, errors.New("wave costs must not exceed energy.max"))
	}
	if c.PowerOrb.HP < 1 || c.Elite.HP < 1 {
		errs = append(errs, errors.New("power_orb.hp and elite.hp must be at least 1"))
	}
	if c.Elite.TeleportAttempts < 1 {
		errs = append(errs, errors.New("elite.teleport_attempts must be at least 1"))
	}
	if c.Difficulty.SpeedCeiling < c.Difficulty.SpeedStart {
		errs = append(errs, errors.New("difficulty.speed_ceiling is below speed_start"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid echo config: %w", errors.Join(errs...))
	}
	return nil
}
