package config

import (
	_ "embed"
)

//go:embed defaults/echo.yaml
var defaultEchoYAML []byte

// DefaultEchoConfig returns the default Echo configuration.
// Must stay in sync with defaults/echo.yaml.
func DefaultEchoConfig() EchoConfig {
	return EchoConfig{
		Field: EchoField{
			CoreRadius:     16,
			Padding:        60,
			SpawnMargin:    80,
			RemovalMargin:  200,
			AngleMarginDeg: 6,
			CellWidth:      8,
			CellHeight:     16,
		},
		Ripple: EchoRipple{
			Speed:     480,
			MaxRadius: 900,
			Thickness: 22,
		},
		Energy: EchoEnergy{
			Max:      100,
			Regen:    6.5,
			CostQuad: 8,
			CostFull: 40,
			OrbDrain: 5,
		},
		Input: EchoInput{
			CenterTapRadius: 56,
			CooldownQuadMs:  120,
			CooldownFullMs:  320,
		},
		Push: EchoPush{
			Full:        320,
			Quad:        260,
			ToughMult:   1.25,
			Tier3Mult:   1.15,
			SlowSeconds: 0.5,
			SlowFactor:  0.55,
		},
		Obstacles: EchoObstacles{
			BaseSpeed:       70,
			SizeMin:         10,
			SizeRange:       12,
			ClusterChance:   0.25,
			Tier3Chance:     0.8,
			Tier3CooldownMs: 4000,
			Tier3JitterMs:   1000,
			Tier2Chance:     0.7,
			Tier2CooldownMs: 2000,
			Tier2JitterMs:   1000,
		},
		PowerOrb: EchoPowerOrb{
			HP:        3,
			SizeMin:   12,
			SizeRange: 10,
			CadenceMs: 7000,
		},
		Elite: EchoElite{
			HP:                 12,
			Size:               16,
			SpeedMult:          0.7,
			ScoreThreshold:     15,
			TeleportCooldownMs: 2000,
			TelegraphMs:        300,
			FadeInMs:           150,
			DeathMs:            220,
			ScreenMarginPct:    0.08,
			CenterSafePct:      0.18,
			PlayerSafePct:      0.22,
			TeleportAttempts:   10,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			SpawnIntervalMs: 1200,
			SpawnDecay:      0.995,
			SpawnFloorMs:    350,
			SpeedStart:      1.0,
			SpeedGrowth:     1.003,
			SpeedCeiling:    2.7,
		},
		Loop: EchoLoop{
			MaxFrameMs: 64,
		},
		Theme: EchoTheme{
			Full: "cyan",
			Quad: "bright-blue",
			Core: "bright-white",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "echo":
		return defaultEchoYAML
	default:
		return nil
	}
}
