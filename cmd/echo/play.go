package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/audio"
	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/platform/tui"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run straight away.

Controls:
  Space/Enter    - Full wave from the core (costs 40 energy)
  1-4 / u i j k  - Quadrant wave: top-left, top-right, bottom-left, bottom-right
  Mouse click    - Near the core: full wave, elsewhere: wave into that quadrant
  P              - Pause
  R              - Restart (when paused or after game over)
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Slow spawns and fast energy regen
  normal - The standard ramp
  hard   - Fast spawns and a higher speed ceiling
  fixed  - No progression

The config file is watched while playing; edits apply on the next run.

Examples:
  echo play
  echo play --difficulty easy
  echo play --config ./my-echo.yaml
  echo play --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

// session bundles the resources a full-screen command holds.
type session struct {
	logger  *log.Logger
	store   *storage.Store
	audio   *audio.Dispatcher
	sound   *audio.SoundManager
	watcher *config.Watcher
	deps    tui.Deps
	closeFn func()
}

// openSession opens storage, audio and the config watcher.
func openSession() (*session, error) {
	if _, err := loadRuntimeConfig(); err != nil {
		return nil, err
	}

	logger, closeLog := newLogger(io.Discard)
	s := &session{logger: logger, closeFn: closeLog}
	s.store = openStore(logger)

	sfx, music := true, true
	if s.store != nil {
		sfx = s.store.BoolSetting(settingSFX, true)
		music = s.store.BoolSetting(settingMusic, true)
	}
	s.audio, s.sound = audio.Open(sfx, music, logger)
	s.watcher = watchConfig(logger)

	s.deps = gameDeps(s.store, logger)
	s.deps.Audio = s.audio
	if s.watcher != nil {
		s.deps.ConfigUpdates = s.watcher.Updates
	}
	return s, nil
}

// Close releases everything in reverse order.
func (s *session) Close() {
	if s.watcher != nil {
		//nolint:errcheck // Best-effort shutdown
		s.watcher.Close()
	}
	s.audio.Close()
	if s.sound != nil {
		s.sound.Cleanup()
	}
	if s.store != nil {
		s.store.Close()
	}
	s.closeFn()
}

// play runs one game screen. Returns true when the player asked for the menu.
func (s *session) play(preset config.DifficultyPreset, cfg core.RuntimeConfig) (bool, error) {
	game, err := s.deps.NewGame(preset)
	if err != nil {
		return false, fmt.Errorf("cannot create game: %w", err)
	}
	back, err := tui.Run(game, s.deps, preset, cfg)
	if s.sound != nil {
		//nolint:errcheck // Music may already be stopped by the loss
		s.sound.StopMusic()
	}
	if err != nil {
		return false, fmt.Errorf("error running game: %w", err)
	}
	return back, nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.play(difficulty(), runtimeConfig())
	return err
}
