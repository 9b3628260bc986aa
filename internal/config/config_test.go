package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultEchoConfig()
	var embedded EchoConfig
	if err := yaml.Unmarshal(GetDefaultYAML("echo"), &embedded); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, embedded) {
		t.Errorf("embedded defaults differ from DefaultEchoConfig():\n got %+v\nwant %+v", embedded, cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadEchoCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "echo.yaml")
	content := "ripple:\n  speed: 600\nenergy:\n  regen: 9\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadEcho(path)
	if err != nil {
		t.Fatalf("LoadEcho() error = %v", err)
	}
	if cfg.Ripple.Speed != 600 {
		t.Errorf("Ripple.Speed = %v, expected 600", cfg.Ripple.Speed)
	}
	if cfg.Energy.Regen != 9 {
		t.Errorf("Energy.Regen = %v, expected 9", cfg.Energy.Regen)
	}
	if cfg.Ripple.Thickness != 22 {
		t.Errorf("Ripple.Thickness = %v, expected default 22", cfg.Ripple.Thickness)
	}
}

func TestLoadEchoCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadEcho(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadEcho() with missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("ripple: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEcho(bad); err == nil {
		t.Error("LoadEcho() with malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("ripple:\n  speed: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadEcho(invalid)
	if err == nil || !strings.Contains(err.Error(), "ripple.speed") {
		t.Errorf("LoadEcho() with negative speed error = %v, expected ripple.speed complaint", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EchoConfig)
	}{
		{"zero thickness", func(c *EchoConfig) { c.Ripple.Thickness = 0 }},
		{"cost above max", func(c *EchoConfig) { c.Energy.CostFull = 150 }},
		{"chance above one", func(c *EchoConfig) { c.Obstacles.Tier3Chance = 1.5 }},
		{"no teleport attempts", func(c *EchoConfig) { c.Elite.TeleportAttempts = 0 }},
		{"ceiling below start", func(c *EchoConfig) { c.Difficulty.SpeedCeiling = 0.5 }},
		{"zero elite hp", func(c *EchoConfig) { c.Elite.HP = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEchoConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestApplyEchoPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		enabled  bool
		interval float64
		ceiling  float64
	}{
		{DifficultyEasy, true, 1500, 2.2},
		{DifficultyNormal, true, 1200, 2.7},
		{DifficultyHard, true, 950, 3.0},
		{DifficultyFixed, false, 1200, 2.7},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultEchoConfig()
			ApplyEchoPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.SpawnIntervalMs != tc.interval {
				t.Errorf("SpawnIntervalMs = %v, expected %v", cfg.Difficulty.SpawnIntervalMs, tc.interval)
			}
			if cfg.Difficulty.SpeedCeiling != tc.ceiling {
				t.Errorf("SpeedCeiling = %v, expected %v", cfg.Difficulty.SpeedCeiling, tc.ceiling)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config should validate: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %v, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestDifficultyRampBounds(t *testing.T) {
	dm := NewDifficultyManager(DefaultEchoConfig().Difficulty)
	interval, speed := dm.InitialInterval(), dm.InitialSpeed()

	// One 60Hz tick applies exactly one factor.
	i1, s1 := dm.Advance(interval, speed, 1.0/60)
	if diff := i1 - 1200*0.995; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("interval after one tick = %v, expected %v", i1, 1200*0.995)
	}
	if diff := s1 - 1.003; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("speed after one tick = %v, expected 1.003", s1)
	}

	for i := 0; i < 100000; i++ {
		interval, speed = dm.Advance(interval, speed, 0.064)
		if interval < 350 {
			t.Fatalf("interval dropped below floor: %v", interval)
		}
		if speed > 2.7 {
			t.Fatalf("speed exceeded ceiling: %v", speed)
		}
	}
	if interval != 350 || speed != 2.7 {
		t.Errorf("long run settled at interval=%v speed=%v, expected 350 and 2.7", interval, speed)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := DefaultEchoConfig().Difficulty
	cfg.Enabled = false
	dm := NewDifficultyManager(cfg)
	i, s := dm.Advance(1200, 1, 10)
	if i != 1200 || s != 1 {
		t.Errorf("Advance() with progression off = %v, %v, expected unchanged", i, s)
	}
}

func TestWatchEchoDeliversValidReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "echo.yaml")
	if err := os.WriteFile(path, []byte("ripple:\n  speed: 480\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := WatchEcho(path, nil)
	if err != nil {
		t.Fatalf("WatchEcho() error = %v", err)
	}
	defer w.Close() //nolint:errcheck // Test cleanup

	if err := os.WriteFile(path, []byte("ripple:\n  speed: 700\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		if cfg.Ripple.Speed != 700 {
			t.Errorf("reloaded Ripple.Speed = %v, expected 700", cfg.Ripple.Speed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
