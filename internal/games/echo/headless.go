package echo

import (
	"context"
	"time"

	"github.com/vovakirdan/echo-arcade/internal/loop"
)

// HeadlessOptions configures a simulation run without a terminal.
type HeadlessOptions struct {
	View        Viewport
	Frame       time.Duration // Fixed simulated frame length
	MaxDuration time.Duration // Simulated time limit, zero for none
	Pilot       *Autopilot    // Nil runs without input
	Trace       *TraceWriter  // Optional frame trace
	TraceEvery  int           // Write every Nth frame, defaults to 1
	Driver      *loop.Driver  // Paces frames in wall-clock time when set
}

// HeadlessResult summarizes a headless run.
type HeadlessResult struct {
	Score   float64
	Best    int
	Frames  int
	Elapsed time.Duration // Simulated time
	Lost    bool
	Stats   Stats
}

// RunHeadless steps s until the run is lost, the time limit passes or ctx
// is cancelled. Without a Driver frames have the fixed length opts.Frame and
// run as fast as possible; with one they are paced and measured by it.
func RunHeadless(ctx context.Context, s *Sim, opts HeadlessOptions) (HeadlessResult, error) {
	if opts.Frame <= 0 {
		opts.Frame = time.Second / 60
	}
	if opts.TraceEvery <= 0 {
		opts.TraceEvery = 1
	}
	theme := ThemeFromConfig(s.cfg.Theme)

	var res HeadlessResult
	var traceErr error
	step := func(dt time.Duration) bool {
		if s.Over() || (opts.MaxDuration > 0 && res.Elapsed >= opts.MaxDuration) {
			return false
		}
		if opts.Pilot != nil {
			if p, ok := opts.Pilot.Decide(s, opts.View); ok {
				s.Tap(p, opts.View)
			}
		}
		s.Step(dt, opts.View)
		res.Elapsed += dt

		if opts.Trace != nil && (res.Frames%opts.TraceEvery == 0 || s.Over()) {
			if err := opts.Trace.Write(s.Snapshot(opts.View, theme)); err != nil {
				traceErr = err
				return false
			}
		}
		res.Frames++
		return !s.Over()
	}

	if opts.Driver != nil {
		err := opts.Driver.Run(ctx, step)
		if err == nil {
			err = traceErr
		}
		return res.finish(s), err
	}

	for !s.Over() {
		if err := ctx.Err(); err != nil {
			return res.finish(s), err
		}
		if !step(opts.Frame) {
			break
		}
	}
	return res.finish(s), traceErr
}

func (r HeadlessResult) finish(s *Sim) HeadlessResult {
	r.Score = s.Score()
	r.Best = s.Best()
	r.Lost = s.Over()
	r.Stats = s.Stats()
	return r
}
