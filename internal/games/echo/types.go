package echo

import (
	"math"

	"github.com/vovakirdan/echo-arcade/internal/core"
)

// Viewport is the field size in pixels. It may change between steps;
// everything positional is stored as angle/radius around its center.
type Viewport struct {
	W, H float64
}

// Center returns the core position.
func (v Viewport) Center() core.Point {
	return core.Point{X: v.W / 2, Y: v.H / 2}
}

// MinDim returns the shorter side.
func (v Viewport) MinDim() float64 {
	return math.Min(v.W, v.H)
}

// RippleKind distinguishes full-circle waves from quadrant arcs.
type RippleKind uint8

const (
	RippleFull RippleKind = iota
	RippleQuadrant
)

// String returns the ripple kind name.
func (k RippleKind) String() string {
	if k == RippleQuadrant {
		return "quadrant"
	}
	return "full"
}

// Ripple is an expanding wave emitted by the player.
type Ripple struct {
	ID         uint64
	Radius     float64
	Kind       RippleKind
	Quadrant   core.Quadrant // Meaningful only for RippleQuadrant
	StartAngle float64       // Meaningful only for RippleQuadrant
	EndAngle   float64
}

// Affects reports whether the ripple can push and damage something in q.
func (r Ripple) Affects(q core.Quadrant) bool {
	return r.Kind == RippleFull || r.Quadrant == q
}

// Shape is the drawn outline of an obstacle.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
)

// Kind tags the obstacle variant. Exactly one of Obstacle.Orb and
// Obstacle.Elite is non-nil for KindPowerOrb and KindElite respectively.
type Kind uint8

const (
	KindRegular Kind = iota
	KindPowerOrb
	KindElite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPowerOrb:
		return "orb"
	case KindElite:
		return "elite"
	default:
		return "regular"
	}
}

// OrbState is the power orb extension.
type OrbState struct {
	Rewarded bool // Energy refill already granted
}

// EliteState is the Blink Stalker extension. Timers are in milliseconds.
type EliteState struct {
	TeleportCooldown float64
	Telegraph        float64 // Pre-teleport warning, harmless while > 0
	FadeIn           float64 // Post-teleport visual fade
	LastQuadrant     core.Quadrant
	FailedTeleports  int
	Pending          bool
	Death            float64 // Death animation remaining
	Exploded         bool
}

// Obstacle is an entity converging on the core.
type Obstacle struct {
	ID        uint64
	Kind      Kind
	Angle     float64 // Fixed polar direction
	Radius    float64 // Distance from the core
	Speed     float64 // Inward px/s
	Size      float64
	Shape     Shape
	HP        int
	MaxHP     int
	SlowTimer float64 // Seconds of post-hit slowdown left
	Quadrant  core.Quadrant

	Orb   *OrbState
	Elite *EliteState

	damagedBy map[uint64]struct{}
}

// Tough reports whether the obstacle takes more than one hit.
func (o *Obstacle) Tough() bool {
	return o.MaxHP > 1
}

// Position returns the cartesian position relative to center.
func (o *Obstacle) Position(center core.Point) core.Point {
	return core.Polar(center, o.Angle, o.Radius)
}

// Dying reports whether the elite is playing its death animation.
func (o *Obstacle) Dying() bool {
	return o.Elite != nil && o.Elite.Exploded && o.Elite.Death > 0
}

// Telegraphing reports whether the elite is warning before a teleport.
func (o *Obstacle) Telegraphing() bool {
	return o.Elite != nil && o.Elite.Telegraph > 0
}

// DamagedBy reports whether ripple id has already been credited.
func (o *Obstacle) DamagedBy(id uint64) bool {
	_, ok := o.damagedBy[id]
	return ok
}

func (o *Obstacle) markDamaged(id uint64) {
	if o.damagedBy == nil {
		o.damagedBy = make(map[uint64]struct{})
	}
	o.damagedBy[id] = struct{}{}
}
