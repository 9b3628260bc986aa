package core

import "math"

// Point is a position in field space (pixels, y grows downward).
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Polar returns the point at the given angle and radius from center.
func Polar(center Point, angle, radius float64) Point {
	return Point{
		X: center.X + math.Cos(angle)*radius,
		Y: center.Y + math.Sin(angle)*radius,
	}
}

// ToPolar converts p to an (angle, radius) pair relative to center.
func ToPolar(center, p Point) (angle, radius float64) {
	dx := p.X - center.X
	dy := p.Y - center.Y
	return math.Atan2(dy, dx), math.Hypot(dx, dy)
}

// Quadrant identifies one quarter of the field around its center.
type Quadrant uint8

const (
	QuadrantTL Quadrant = iota
	QuadrantTR
	QuadrantBL
	QuadrantBR
)

// Quadrants lists all quadrants in spawn-roll order.
var Quadrants = [4]Quadrant{QuadrantTL, QuadrantTR, QuadrantBL, QuadrantBR}

// String returns the short quadrant name.
func (q Quadrant) String() string {
	switch q {
	case QuadrantTL:
		return "TL"
	case QuadrantTR:
		return "TR"
	case QuadrantBL:
		return "BL"
	case QuadrantBR:
		return "BR"
	default:
		return "??"
	}
}

// ClassifyQuadrant reports which quadrant p falls in relative to center.
// A point exactly on an axis belongs to the right/bottom side.
func ClassifyQuadrant(center, p Point) Quadrant {
	left := p.X < center.X
	top := p.Y < center.Y
	switch {
	case left && top:
		return QuadrantTL
	case !left && top:
		return QuadrantTR
	case left && !top:
		return QuadrantBL
	default:
		return QuadrantBR
	}
}

// QuadrantAngles returns the angular range [start, end] covered by q.
// Ranges are π/2 wide, wound clockwise on screen starting at -π.
func QuadrantAngles(q Quadrant) (start, end float64) {
	switch q {
	case QuadrantTL:
		return -math.Pi, -math.Pi / 2
	case QuadrantTR:
		return -math.Pi / 2, 0
	case QuadrantBR:
		return 0, math.Pi / 2
	default:
		return math.Pi / 2, math.Pi
	}
}

// Rand is the random source used by simulation code.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// RandomAngleInRange draws a uniform angle inside [start, end] narrowed by
// margin on both sides. Falls back to the midpoint when the margin leaves no room.
func RandomAngleInRange(rng Rand, start, end, margin float64) float64 {
	innerStart := start + margin
	innerEnd := end - margin
	if innerEnd <= innerStart {
		return start + (end-start)/2
	}
	return innerStart + rng.Float64()*(innerEnd-innerStart)
}

// Arc describes a circular arc stroke independently of any renderer.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	From       Point // Point at StartAngle
	To         Point // Point at EndAngle
	LargeArc   bool  // Sweep exceeds π
}

// ArcPath builds the arc description for a stroke from start to end.
func ArcPath(center Point, radius, start, end float64) Arc {
	return Arc{
		Center:     center,
		Radius:     radius,
		StartAngle: start,
		EndAngle:   end,
		From:       Polar(center, start, radius),
		To:         Polar(center, end, radius),
		LargeArc:   end-start > math.Pi,
	}
}

// Sample returns n+1 evenly spaced points along the arc, endpoints included.
func (a Arc) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	step := (a.EndAngle - a.StartAngle) / float64(n)
	for i := 0; i <= n; i++ {
		pts = append(pts, Polar(a.Center, a.StartAngle+step*float64(i), a.Radius))
	}
	return pts
}
