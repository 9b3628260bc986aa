package echo

import (
	"testing"

	"github.com/vovakirdan/echo-arcade/internal/core"
)

func TestTapFullWave(t *testing.T) {
	s := newTestSim(nil)
	center := testView.Center()

	res := s.Tap(core.Point{X: center.X + 40, Y: center.Y - 30}, testView) // 50px away
	if res != TapFull {
		t.Fatalf("Tap() = %v, expected full wave", res)
	}
	if res.Signal() != core.SignalWaveFull {
		t.Errorf("Signal() = %v, expected wave-emitted-full", res.Signal())
	}
	if s.Energy() != 60 {
		t.Errorf("Energy() = %v, expected 60", s.Energy())
	}
	if s.tapCooldown != 320 {
		t.Errorf("tapCooldown = %v, expected 320", s.tapCooldown)
	}
	r := s.Ripples()[0]
	if r.Kind != RippleFull || r.Radius != 16 {
		t.Errorf("ripple = %+v, expected full wave at core radius", r)
	}
}

func TestTapQuadrantWave(t *testing.T) {
	tests := []struct {
		name string
		p    core.Point
		want core.Quadrant
	}{
		{"top-left", core.Point{X: 100, Y: 100}, core.QuadrantTL},
		{"top-right", core.Point{X: 700, Y: 100}, core.QuadrantTR},
		{"bottom-left", core.Point{X: 100, Y: 500}, core.QuadrantBL},
		{"bottom-right", core.Point{X: 700, Y: 500}, core.QuadrantBR},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(nil)
			if res := s.Tap(tc.p, testView); res != TapQuadrant {
				t.Fatalf("Tap() = %v, expected quadrant wave", res)
			}
			r := s.Ripples()[0]
			if r.Quadrant != tc.want {
				t.Errorf("Quadrant = %v, expected %v", r.Quadrant, tc.want)
			}
			start, end := core.QuadrantAngles(tc.want)
			if r.StartAngle != start || r.EndAngle != end {
				t.Errorf("arc = [%v, %v], expected [%v, %v]", r.StartAngle, r.EndAngle, start, end)
			}
			if s.Energy() != 92 || s.tapCooldown != 120 {
				t.Errorf("energy=%v cooldown=%v, expected 92 and 120", s.Energy(), s.tapCooldown)
			}
		})
	}
}

func TestTapEnergyRejection(t *testing.T) {
	s := newTestSim(nil)
	s.energy = 5

	res := s.Tap(core.Point{X: 700, Y: 100}, testView)
	if res != TapRejected {
		t.Fatalf("Tap() = %v, expected rejected", res)
	}
	if res.Signal() != core.SignalWaveRejected {
		t.Errorf("Signal() = %v, expected wave-rejected", res.Signal())
	}
	if s.Energy() != 5 {
		t.Errorf("Energy() = %v, expected unchanged 5", s.Energy())
	}
	if len(s.Ripples()) != 0 {
		t.Error("rejected tap must not create a ripple")
	}
	if s.tapCooldown != 0 {
		t.Error("rejected tap must not start a cooldown")
	}
}

func TestTapCooldownRejection(t *testing.T) {
	s := newTestSim(nil)
	if res := s.Tap(testView.Center(), testView); res != TapFull {
		t.Fatalf("first Tap() = %v", res)
	}
	if res := s.Tap(core.Point{X: 10, Y: 10}, testView); res != TapRejected {
		t.Errorf("Tap() during cooldown = %v, expected rejected", res)
	}
	if s.Energy() != 60 || len(s.Ripples()) != 1 {
		t.Errorf("cooldown rejection changed state: energy=%v ripples=%d", s.Energy(), len(s.Ripples()))
	}
	if s.Stats().Rejected != 1 {
		t.Errorf("Rejected = %d, expected 1", s.Stats().Rejected)
	}
}

func TestTapIgnoredWhenOver(t *testing.T) {
	s := newTestSim(nil)
	s.over = true
	res := s.Tap(testView.Center(), testView)
	if res != TapIgnored || res.Signal() != core.SignalNone || res.Accepted() {
		t.Errorf("Tap() after loss = %v, expected ignored", res)
	}
}

func TestRippleIDsShareObstacleCounter(t *testing.T) {
	s := newTestSim(nil)
	o := s.factory.Regular(s.FieldRadius(testView), 1)
	s.Tap(testView.Center(), testView)
	if s.Ripples()[0].ID != o.ID+1 {
		t.Errorf("ripple id = %d, expected %d", s.Ripples()[0].ID, o.ID+1)
	}
}

func TestQuadrantTargetClassifies(t *testing.T) {
	s := newTestSim(nil)
	small := Viewport{W: 120, H: 90}
	for _, view := range []Viewport{testView, small} {
		for _, q := range core.Quadrants {
			p := s.QuadrantTarget(view, q)
			if got := core.ClassifyQuadrant(view.Center(), p); got != q {
				t.Errorf("QuadrantTarget(%v) lands in %v", q, got)
			}
			if p.Dist(view.Center()) <= 56 {
				t.Errorf("QuadrantTarget(%v) is inside the full-wave radius", q)
			}
		}
	}
}
