package core

import (
	"math"
	"testing"
)

// seqRand returns scripted Float64 values, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func (r *seqRand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

func TestClassifyQuadrant(t *testing.T) {
	center := Point{X: 100, Y: 100}

	tests := []struct {
		name     string
		p        Point
		expected Quadrant
	}{
		{"top-left", Point{50, 50}, QuadrantTL},
		{"top-right", Point{150, 50}, QuadrantTR},
		{"bottom-left", Point{50, 150}, QuadrantBL},
		{"bottom-right", Point{150, 150}, QuadrantBR},
		{"on vertical axis goes right", Point{100, 50}, QuadrantTR},
		{"on horizontal axis goes bottom", Point{50, 100}, QuadrantBL},
		{"exact center", Point{100, 100}, QuadrantBR},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyQuadrant(center, tc.p); got != tc.expected {
				t.Errorf("ClassifyQuadrant(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestQuadrantAnglesCoverCircle(t *testing.T) {
	total := 0.0
	for _, q := range Quadrants {
		start, end := QuadrantAngles(q)
		width := end - start
		if math.Abs(width-math.Pi/2) > 1e-9 {
			t.Errorf("QuadrantAngles(%v) width = %f, expected π/2", q, width)
		}
		total += width

		// The midpoint of each range must classify back to the same quadrant.
		mid := Polar(Point{}, start+width/2, 10)
		if got := ClassifyQuadrant(Point{}, mid); got != q {
			t.Errorf("midpoint of %v classified as %v", q, got)
		}
	}
	if math.Abs(total-2*math.Pi) > 1e-9 {
		t.Errorf("quadrant ranges cover %f radians, expected 2π", total)
	}
}

func TestRandomAngleInRange(t *testing.T) {
	margin := 6 * math.Pi / 180

	for _, v := range []float64{0, 0.25, 0.5, 0.999} {
		rng := &seqRand{vals: []float64{v}}
		a := RandomAngleInRange(rng, 0, math.Pi/2, margin)
		if a < margin || a > math.Pi/2-margin {
			t.Errorf("RandomAngleInRange with roll %f = %f, outside narrowed range", v, a)
		}
	}

	// Margin wider than half the range falls back to the midpoint.
	rng := &seqRand{vals: []float64{0.9}}
	a := RandomAngleInRange(rng, 0, 1, 0.6)
	if a != 0.5 {
		t.Errorf("RandomAngleInRange with inverted range = %f, expected midpoint 0.5", a)
	}
}

func TestPolarRoundTrip(t *testing.T) {
	center := Point{X: 40, Y: 30}
	p := Polar(center, -math.Pi/3, 120)
	angle, radius := ToPolar(center, p)

	if math.Abs(angle+math.Pi/3) > 1e-9 {
		t.Errorf("ToPolar angle = %f, expected %f", angle, -math.Pi/3)
	}
	if math.Abs(radius-120) > 1e-9 {
		t.Errorf("ToPolar radius = %f, expected 120", radius)
	}
}

func TestArcPath(t *testing.T) {
	start, end := QuadrantAngles(QuadrantBR)
	arc := ArcPath(Point{X: 0, Y: 0}, 100, start, end)

	if math.Abs(arc.From.X-100) > 1e-9 || math.Abs(arc.From.Y) > 1e-9 {
		t.Errorf("From = %v, expected (100, 0)", arc.From)
	}
	if math.Abs(arc.To.X) > 1e-9 || math.Abs(arc.To.Y-100) > 1e-9 {
		t.Errorf("To = %v, expected (0, 100)", arc.To)
	}
	if arc.LargeArc {
		t.Error("quarter arc should not be flagged as large")
	}

	pts := arc.Sample(4)
	if len(pts) != 5 {
		t.Fatalf("Sample(4) returned %d points, expected 5", len(pts))
	}
	for _, p := range pts {
		if math.Abs(p.Dist(arc.Center)-100) > 1e-9 {
			t.Errorf("sampled point %v is not on the arc", p)
		}
	}

	full := ArcPath(Point{}, 10, 0, 2*math.Pi)
	if !full.LargeArc {
		t.Error("full circle should be flagged as large")
	}
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor(" Cyan ")
	if !ok || c != ColorCyan {
		t.Errorf("ParseColor(cyan) = %v, %v, expected cyan, true", c, ok)
	}
	if _, ok := ParseColor("chartreuse"); ok {
		t.Error("ParseColor should reject unknown names")
	}
	if len(ColorNames()) != int(ColorPurple)+1 {
		t.Errorf("ColorNames() returned %d names", len(ColorNames()))
	}
}
