package echo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
)

func newTestFactory(rng core.Rand) *Factory {
	cfg := config.DefaultEchoConfig()
	return NewFactory(&cfg, rng, &idSource{next: 1})
}

func TestRegularTierGates(t *testing.T) {
	tests := []struct {
		name      string
		tier2Gate float64
		tier3Gate float64
		floats    []float64 // angle, size, then tier rolls and jitter
		wantHP    int
		wantShape Shape
		wantGate2 float64
		wantGate3 float64
	}{
		{
			name:      "tier 3 wins when its gate is open",
			floats:    []float64{0.5, 0.5, 0.1, 0.5},
			wantHP:    3,
			wantShape: ShapeCircle,
			wantGate2: 0,
			wantGate3: 4500,
		},
		{
			name:      "tier 2 when tier 3 is gated",
			tier3Gate: 1000,
			floats:    []float64{0.5, 0.5, 0.1, 0.5},
			wantHP:    2,
			wantShape: ShapeSquare,
			wantGate2: 2500,
			wantGate3: 1000,
		},
		{
			name:      "tier 2 after tier 3 roll fails",
			floats:    []float64{0.5, 0.5, 0.9, 0.6, 0.25},
			wantHP:    2,
			wantShape: ShapeSquare,
			wantGate2: 2250,
			wantGate3: 0,
		},
		{
			name:      "tier 1 when both rolls fail",
			floats:    []float64{0.5, 0.5, 0.9, 0.9},
			wantHP:    1,
			wantShape: ShapeCircle,
		},
		{
			name:      "tier 1 when both gates are closed",
			tier2Gate: 10,
			tier3Gate: 10,
			floats:    []float64{0.5, 0.5, 0.0},
			wantHP:    1,
			wantShape: ShapeCircle,
			wantGate2: 10,
			wantGate3: 10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestFactory(&seqRand{floats: tc.floats})
			f.Tier2Gate = tc.tier2Gate
			f.Tier3Gate = tc.tier3Gate

			o := f.Regular(460, 1)
			if o.HP != tc.wantHP || o.MaxHP != tc.wantHP {
				t.Errorf("HP = %d/%d, expected %d", o.HP, o.MaxHP, tc.wantHP)
			}
			if o.Shape != tc.wantShape {
				t.Errorf("Shape = %v, expected %v", o.Shape, tc.wantShape)
			}
			if o.Tough() != (tc.wantHP > 1) {
				t.Errorf("Tough() = %v for tier %d", o.Tough(), tc.wantHP)
			}
			if f.Tier2Gate != tc.wantGate2 {
				t.Errorf("Tier2Gate = %v, expected %v", f.Tier2Gate, tc.wantGate2)
			}
			if f.Tier3Gate != tc.wantGate3 {
				t.Errorf("Tier3Gate = %v, expected %v", f.Tier3Gate, tc.wantGate3)
			}
		})
	}
}

func TestRegularSpawnPlacement(t *testing.T) {
	f := newTestFactory(rand.New(rand.NewSource(1)))
	margin := 6 * math.Pi / 180

	for i := 0; i < 500; i++ {
		o := f.Regular(460, 1.5)
		if o.Radius != 540 {
			t.Fatalf("spawn radius = %v, expected 540", o.Radius)
		}
		if o.Size < 10 || o.Size >= 22 {
			t.Fatalf("size %v outside [10, 22)", o.Size)
		}
		if o.Speed != 70*1.5 {
			t.Fatalf("speed = %v, expected %v", o.Speed, 70*1.5)
		}
		start, end := core.QuadrantAngles(o.Quadrant)
		if o.Angle < start+margin || o.Angle > end-margin {
			t.Fatalf("angle %v outside %v quadrant margin", o.Angle, o.Quadrant)
		}
		if got := core.ClassifyQuadrant(core.Point{}, core.Polar(core.Point{}, o.Angle, 1)); got != o.Quadrant {
			t.Fatalf("spawned in %v but tagged %v", got, o.Quadrant)
		}
		if o.HP < 1 || o.HP > 3 {
			t.Fatalf("tier %d out of range", o.HP)
		}
		f.Tick(400)
	}
}

func TestGateTickClamps(t *testing.T) {
	f := newTestFactory(&seqRand{})
	f.Tier2Gate, f.Tier3Gate, f.OrbCadence = 100, 50, 7000

	f.Tick(80)
	if f.Tier2Gate != 20 || f.Tier3Gate != 0 || f.OrbCadence != 6920 {
		t.Errorf("gates after tick = %v/%v/%v", f.Tier2Gate, f.Tier3Gate, f.OrbCadence)
	}
	if f.OrbDue() {
		t.Error("orb should not be due yet")
	}
	f.Tick(10000)
	if !f.OrbDue() {
		t.Error("orb should be due after cadence elapsed")
	}
}

func TestPowerOrbAndElite(t *testing.T) {
	f := newTestFactory(&seqRand{floats: []float64{0.5}, ints: []int{2}})

	orb := f.PowerOrb(460, 2)
	if orb.Kind != KindPowerOrb || orb.Orb == nil || orb.Elite != nil {
		t.Fatalf("orb variant = %v orb=%v elite=%v", orb.Kind, orb.Orb, orb.Elite)
	}
	if orb.HP != 3 || orb.Shape != ShapeCircle || orb.Size != 17 {
		t.Errorf("orb hp=%d shape=%v size=%v", orb.HP, orb.Shape, orb.Size)
	}
	if f.OrbCadence != 7000 {
		t.Errorf("OrbCadence = %v, expected 7000", f.OrbCadence)
	}

	elite := f.Elite(460, 2)
	if elite.Kind != KindElite || elite.Elite == nil || elite.Orb != nil {
		t.Fatalf("elite variant = %v", elite.Kind)
	}
	if elite.HP != 12 || elite.Size != 16 || elite.Shape != ShapeCircle {
		t.Errorf("elite hp=%d size=%v shape=%v", elite.HP, elite.Size, elite.Shape)
	}
	if math.Abs(elite.Speed-70*2*0.7) > 1e-9 {
		t.Errorf("elite speed = %v, expected %v", elite.Speed, 70*2*0.7)
	}
	if elite.Elite.TeleportCooldown != 2000 || elite.Elite.Pending {
		t.Errorf("elite state = %+v", *elite.Elite)
	}
	if elite.Elite.LastQuadrant != core.QuadrantBL || elite.Quadrant != core.QuadrantBL {
		t.Errorf("elite last quadrant = %v, expected spawn quadrant BL", elite.Elite.LastQuadrant)
	}

	if orb.ID == elite.ID {
		t.Error("ids must be unique")
	}
}

func TestCluster(t *testing.T) {
	tests := []struct {
		floats []float64
		ints   []int
		want   int
	}{
		{[]float64{0.5}, nil, 1},
		{[]float64{0.1}, []int{0}, 2},
		{[]float64{0.1}, []int{1}, 3},
	}
	for _, tc := range tests {
		f := newTestFactory(&seqRand{floats: tc.floats, ints: tc.ints})
		if got := f.Cluster(); got != tc.want {
			t.Errorf("Cluster() with %v/%v = %d, expected %d", tc.floats, tc.ints, got, tc.want)
		}
	}
}
