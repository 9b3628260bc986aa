package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start Echo in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a difficulty.
After a run ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start a run
  Tab          - Run history
  Q            - Quit

Examples:
  echo menu
  echo menu --fps 30
  echo menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	cfg := runtimeConfig()
	preset := difficulty()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(s.store, cfg, preset)
		if err != nil {
			return fmt.Errorf("error running menu: %w", err)
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(s.store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		preset = menuResult.Preset
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := s.play(preset, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if !back {
			return nil
		}
	}
}
