package echo

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
)

func TestTeleportSafety(t *testing.T) {
	cfg := config.DefaultEchoConfig().Elite
	views := []Viewport{{W: 800, H: 600}, {W: 390, H: 844}, {W: 1920, H: 1080}}

	for _, view := range views {
		center := view.Center()
		minDim := view.MinDim()
		rng := rand.New(rand.NewSource(int64(view.W)))
		f := newTestFactory(rng)

		successes := 0
		for i := 0; i < 500; i++ {
			o := f.Elite(400, 1)
			last := o.Elite.LastQuadrant
			angle, radius := o.Angle, o.Radius

			if !PlanTeleport(o, view, cfg, rng) {
				if o.Angle != angle || o.Radius != radius {
					t.Fatal("failed teleport must not move the elite")
				}
				if o.Elite.FailedTeleports != 1 {
					t.Fatalf("FailedTeleports = %d, expected 1", o.Elite.FailedTeleports)
				}
				continue
			}
			successes++

			p := o.Position(center)
			if d := p.Dist(center); d < minDim*cfg.CenterSafePct || d < minDim*cfg.PlayerSafePct {
				t.Fatalf("teleported %v px from the core, inside exclusion", d)
			}
			q := core.ClassifyQuadrant(center, p)
			if q == last {
				t.Fatalf("teleported back into %v", last)
			}
			if o.Elite.LastQuadrant != q {
				t.Fatalf("LastQuadrant = %v, expected %v", o.Elite.LastQuadrant, q)
			}
			if p.X < view.W*cfg.ScreenMarginPct-1e-6 || p.X > view.W*(1-cfg.ScreenMarginPct)+1e-6 {
				t.Fatalf("x = %v outside the inset", p.X)
			}
		}
		if successes == 0 {
			t.Errorf("no teleport succeeded for %vx%v", view.W, view.H)
		}
	}
}

func TestTeleportFailsWhenNoCandidateFits(t *testing.T) {
	cfg := config.DefaultEchoConfig().Elite
	view := Viewport{W: 800, H: 600}
	f := newTestFactory(&seqRand{floats: []float64{0.5}})
	o := f.Elite(400, 1)
	o.Radius = 300

	// Every candidate lands on the exact center.
	rng := &seqRand{floats: []float64{0.5}, ints: []int{0}}
	for i := 1; i <= 3; i++ {
		if PlanTeleport(o, view, cfg, rng) {
			t.Fatal("teleport onto the core must be rejected")
		}
		if o.Elite.FailedTeleports != i {
			t.Errorf("FailedTeleports = %d, expected %d", o.Elite.FailedTeleports, i)
		}
	}
	if o.Radius != 300 {
		t.Errorf("radius = %v, expected unchanged", o.Radius)
	}
}

func TestTeleportFirstFit(t *testing.T) {
	cfg := config.DefaultEchoConfig().Elite
	view := Viewport{W: 800, H: 600}
	o := newTestFactory(&seqRand{}).Elite(400, 1)
	o.Elite.LastQuadrant = core.QuadrantTL

	// Target choices exclude TL: [TR, BL, BR]; index 0 picks TR.
	// First candidate is in TL (skipped), second lands in TR.
	rng := &seqRand{
		ints:   []int{0},
		floats: []float64{0.1, 0.1, 0.9, 0.1, 0.95, 0.05},
	}
	if !PlanTeleport(o, view, cfg, rng) {
		t.Fatal("expected success on the second candidate")
	}
	want := core.Point{X: 64 + 0.9*672, Y: 48 + 0.1*504}
	got := o.Position(view.Center())
	if got.Dist(want) > 1e-6 {
		t.Errorf("teleported to %v, expected first fit %v", got, want)
	}
	if o.Elite.LastQuadrant != core.QuadrantTR {
		t.Errorf("LastQuadrant = %v, expected TR", o.Elite.LastQuadrant)
	}
}

func TestTeleportIgnoresNonElite(t *testing.T) {
	o := &Obstacle{Kind: KindRegular}
	if PlanTeleport(o, Viewport{W: 100, H: 100}, config.DefaultEchoConfig().Elite, &seqRand{}) {
		t.Error("regular obstacles never teleport")
	}
}
