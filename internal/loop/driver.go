// Package loop measures frame time for variable-step simulations and
// drives them from a ticker.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultMaxFrame caps a single step so a stall does not teleport the world.
const DefaultMaxFrame = 64 * time.Millisecond

// Driver turns wall clock readings into clamped frame durations.
type Driver struct {
	TickRate int           // Frames per second requested from Run
	MaxFrame time.Duration // Upper bound for one frame

	last    time.Time
	started bool
	frames  uint64
	clamped uint64
	logger  *log.Logger
}

// NewDriver creates a driver. Non-positive values fall back to 60 fps and
// DefaultMaxFrame.
func NewDriver(tickRate int, maxFrame time.Duration, logger *log.Logger) *Driver {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{TickRate: tickRate, MaxFrame: maxFrame, logger: logger}
}

// Frame returns the time elapsed since the previous call, clamped to
// [0, MaxFrame]. The first frame after creation or Reset is zero.
func (d *Driver) Frame(now time.Time) time.Duration {
	d.frames++
	if !d.started {
		d.started = true
		d.last = now
		return 0
	}

	dt := now.Sub(d.last)
	d.last = now
	switch {
	case dt < 0:
		return 0
	case dt > d.MaxFrame:
		d.clamped++
		d.logger.Debug("frame clamped", "elapsed", dt, "max", d.MaxFrame)
		return d.MaxFrame
	}
	return dt
}

// Reset forgets the previous reading, e.g. after returning from a menu.
func (d *Driver) Reset() {
	d.started = false
}

// Frames returns how many frames were measured.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Clamped returns how many frames hit MaxFrame.
func (d *Driver) Clamped() uint64 {
	return d.clamped
}

// Interval returns the ticker period for TickRate.
func (d *Driver) Interval() time.Duration {
	return time.Second / time.Duration(d.TickRate)
}

// Run calls step once per tick with the measured frame duration until step
// returns false or ctx is cancelled.
func (d *Driver) Run(ctx context.Context, step func(dt time.Duration) bool) error {
	ticker := time.NewTicker(d.Interval())
	defer ticker.Stop()

	d.Reset()
	d.Frame(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if !step(d.Frame(now)) {
				return nil
			}
		}
	}
}
