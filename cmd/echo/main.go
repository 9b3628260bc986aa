// echo is a ripple-defense arcade game for the terminal.
//
// Usage:
//
//	echo play                - Play a run
//	echo menu                - Pick a difficulty interactively
//	echo serve               - Start SSH server for remote play
//	echo scores              - Show the run history
//	echo sim                 - Run the simulation headless
//	echo settings            - Show or change player settings
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Use a custom echo.yaml
//	--difficulty <name>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/games/echo"
	"github.com/vovakirdan/echo-arcade/internal/platform/tui"
	"github.com/vovakirdan/echo-arcade/internal/registry"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "echo",
	Short: "Echo - defend the core with ripples",
	Long: `Echo is a terminal arcade game. Obstacles drift toward the core from
every direction; send full or quadrant ripples to push them back.

Available commands:
  play      - Play a run directly
  menu      - Interactive difficulty picker
  serve     - Start SSH server for remote play
  scores    - View the run history
  sim       - Run the simulation headless
  settings  - Show or change player settings

Examples:
  echo play
  echo play --difficulty hard
  echo menu
  echo serve --ssh :2222
  echo sim --autopilot --duration 2m --trace run.msgpack`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDifficulty == "" {
			return nil
		}
		_, err := config.ParsePreset(flagDifficulty)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom echo.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(settingsCmd)
}

// newLogger builds the process logger. Full-screen commands pass
// io.Discard as fallback so logs never scribble over the game.
func newLogger(fallback io.Writer) (*log.Logger, func()) {
	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		//#nosec G304 -- user-provided log path
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err == nil {
			out = f
			closeFn = func() { f.Close() }
		} else {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "echo",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}

// difficulty returns the selected preset, normal when unset.
func difficulty() config.DifficultyPreset {
	if flagDifficulty == "" {
		return config.DifficultyNormal
	}
	// Validated in PersistentPreRunE
	p, _ := config.ParsePreset(flagDifficulty)
	return p
}

// runtimeConfig creates the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// loadRuntimeConfig loads the echo config once up front so an explicit
// --config path that is broken fails before the terminal is taken over.
func loadRuntimeConfig() (config.EchoConfig, error) {
	cfg, err := config.LoadEcho(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

// settingsTheme reads appearance overrides from the settings table.
func settingsTheme(store *storage.Store) *config.EchoTheme {
	if store == nil {
		return nil
	}
	var theme config.EchoTheme
	theme.Full, _ = store.Setting(settingThemeFull)
	theme.Quad, _ = store.Setting(settingThemeQuad)
	theme.Core, _ = store.Setting(settingThemeCore)
	if theme == (config.EchoTheme{}) {
		return nil
	}
	return &theme
}

// gameDeps wires the collaborators shared by play, menu and serve.
func gameDeps(store *storage.Store, logger *log.Logger) tui.Deps {
	var best echo.BestScoreStore
	if store != nil {
		best = store.Best("echo")
	}
	theme := settingsTheme(store)

	opts := echo.Options{
		ConfigPath: flagConfig,
		Preset:     difficulty(),
		Store:      best,
		Logger:     logger,
		Theme:      theme,
	}
	echo.Configure(opts)

	deps := tui.Deps{
		Store:  store,
		Logger: logger,
		NewGame: func(preset config.DifficultyPreset) (registry.Game, error) {
			o := opts
			o.Preset = preset
			return echo.NewWithOptions(o), nil
		},
	}
	if cfg, err := config.LoadEcho(flagConfig); err == nil {
		deps.MaxFrame = cfg.Loop.MaxFrame()
	}
	if store != nil {
		deps.Mono = store.BoolSetting(settingMono, false)
	}
	return deps
}

// watchConfig starts hot reload for the active config file, if any.
func watchConfig(logger *log.Logger) *config.Watcher {
	path := config.ResolveEchoPath(flagConfig)
	if path == "" {
		return nil
	}
	w, err := config.WatchEcho(path, logger)
	if err != nil {
		logger.Warn("config hot reload disabled", "path", filepath.Clean(path), "error", err)
		return nil
	}
	return w
}
