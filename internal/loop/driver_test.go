package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDriverFrame(t *testing.T) {
	d := NewDriver(60, 0, nil)
	base := time.Unix(1000, 0)

	tests := []struct {
		name string
		at   time.Duration
		want time.Duration
	}{
		{"first frame", 0, 0},
		{"normal frame", 16 * time.Millisecond, 16 * time.Millisecond},
		{"exactly max", 80 * time.Millisecond, 64 * time.Millisecond},
		{"stall is clamped", 2 * time.Second, 64 * time.Millisecond},
		{"clock goes back", time.Second, 0},
		{"recovers", time.Second + 10*time.Millisecond, 10 * time.Millisecond},
	}

	for _, tc := range tests {
		if got := d.Frame(base.Add(tc.at)); got != tc.want {
			t.Errorf("%s: Frame() = %v, expected %v", tc.name, got, tc.want)
		}
	}
	if d.Frames() != uint64(len(tests)) {
		t.Errorf("Frames() = %d, expected %d", d.Frames(), len(tests))
	}
	if d.Clamped() != 1 {
		t.Errorf("Clamped() = %d, expected 1", d.Clamped())
	}
}

func TestDriverReset(t *testing.T) {
	d := NewDriver(30, 50*time.Millisecond, nil)
	now := time.Now()
	d.Frame(now)
	d.Reset()
	if got := d.Frame(now.Add(time.Hour)); got != 0 {
		t.Errorf("Frame() after Reset = %v, expected 0", got)
	}
	if d.Interval() != time.Second/30 {
		t.Errorf("Interval() = %v", d.Interval())
	}
}

func TestDriverDefaults(t *testing.T) {
	d := NewDriver(0, -1, nil)
	if d.TickRate != 60 || d.MaxFrame != DefaultMaxFrame {
		t.Errorf("NewDriver() = %d fps, %v max, expected defaults", d.TickRate, d.MaxFrame)
	}
}

func TestDriverRunStops(t *testing.T) {
	d := NewDriver(200, 0, nil)
	var total time.Duration
	calls := 0
	err := d.Run(context.Background(), func(dt time.Duration) bool {
		if dt < 0 || dt > d.MaxFrame {
			t.Errorf("dt = %v out of range", dt)
		}
		total += dt
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 5 {
		t.Errorf("step called %d times, expected 5", calls)
	}
	if total <= 0 {
		t.Error("frames should measure elapsed time")
	}
}

func TestDriverRunCancel(t *testing.T) {
	d := NewDriver(100, 0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := d.Run(ctx, func(time.Duration) bool { return true })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, expected deadline exceeded", err)
	}
}
