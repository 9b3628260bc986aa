package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/games/echo"
	"github.com/vovakirdan/echo-arcade/internal/loop"
)

var (
	flagSimDuration   time.Duration
	flagSimAutopilot  bool
	flagSimTrace      string
	flagSimTraceEvery int
	flagSimWidth      float64
	flagSimHeight     float64
	flagSimRealtime   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation without a terminal",
	Long: `Run Echo headless for balance testing. Frames are a fixed 1/60s unless
--realtime is set.

The run ends when the core falls or --duration of simulated time passes.
With --autopilot a scripted player fires waves at nearby threats.
With --trace every frame snapshot is written as msgpack for later analysis.
With --realtime frames are paced at --fps and measured like the interactive game.
The best score is never written by headless runs.

Examples:
  echo sim --seed 42
  echo sim --autopilot --duration 5m
  echo sim --autopilot --difficulty hard --trace run.msgpack --trace-every 6`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 10*time.Minute, "Simulated time limit (0 = until the core falls)")
	simCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", false, "Let a scripted player defend the core")
	simCmd.Flags().StringVar(&flagSimTrace, "trace", "", "Write msgpack frame snapshots to this file")
	simCmd.Flags().IntVar(&flagSimTraceEvery, "trace-every", 1, "Write every Nth frame to the trace")
	simCmd.Flags().Float64Var(&flagSimWidth, "width", 800, "Field width in pixels")
	simCmd.Flags().Float64Var(&flagSimHeight, "height", 600, "Field height in pixels")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace frames at --fps in wall-clock time")
}

func runSim(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	config.ApplyEchoPreset(&cfg, difficulty())
	if flagSimWidth <= 0 || flagSimHeight <= 0 {
		return fmt.Errorf("field size must be positive, got %vx%v", flagSimWidth, flagSimHeight)
	}

	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	//#nosec G404 -- gameplay randomness
	rng := rand.New(rand.NewSource(seed))
	sim := echo.NewSim(cfg, rng, nil, logger)
	view := echo.Viewport{W: flagSimWidth, H: flagSimHeight}

	opts := echo.HeadlessOptions{
		View:        view,
		Frame:       time.Second / 60,
		MaxDuration: flagSimDuration,
		TraceEvery:  flagSimTraceEvery,
	}
	var driver *loop.Driver
	if flagSimRealtime {
		driver = loop.NewDriver(flagFPS, cfg.Loop.MaxFrame(), logger)
		opts.Driver = driver
	}
	if flagSimAutopilot {
		pilot := echo.DefaultAutopilot(sim, view)
		opts.Pilot = &pilot
	}

	var trace *echo.TraceWriter
	if flagSimTrace != "" {
		//#nosec G304 -- user-provided trace path
		f, err := os.Create(flagSimTrace)
		if err != nil {
			return fmt.Errorf("cannot create trace file: %w", err)
		}
		defer f.Close()
		trace = echo.NewTraceWriter(f)
		opts.Trace = trace
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulation started", "seed", seed, "difficulty", difficulty(), "autopilot", flagSimAutopilot)
	res, runErr := echo.RunHeadless(ctx, sim, opts)
	if trace != nil {
		if err := trace.Flush(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed:       %d\n", seed)
	fmt.Fprintf(out, "Score:      %d\n", int(res.Score))
	fmt.Fprintf(out, "Simulated:  %v (%d frames)\n", res.Elapsed.Round(time.Millisecond), res.Frames)
	fmt.Fprintf(out, "Core fell:  %v\n", res.Lost)
	fmt.Fprintf(out, "Waves:      %d full, %d quadrant, %d rejected\n",
		res.Stats.WavesFull, res.Stats.WavesQuad, res.Stats.Rejected)
	fmt.Fprintf(out, "Kills:      %d\n", res.Stats.Kills)
	fmt.Fprintf(out, "Orbs:       %d refilled, %d drained\n", res.Stats.OrbsRefill, res.Stats.OrbsDrained)
	fmt.Fprintf(out, "Teleports:  %d (%d failed)\n", res.Stats.Teleports, res.Stats.TeleportsKO)
	if driver != nil {
		fmt.Fprintf(out, "Paced:      %d frames measured, %d clamped to %v\n", driver.Frames(), driver.Clamped(), driver.MaxFrame)
	}
	if trace != nil {
		fmt.Fprintf(out, "Trace:      %d frames -> %s\n", trace.Frames(), flagSimTrace)
	}
	return runErr
}
