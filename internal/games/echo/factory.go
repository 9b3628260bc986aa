package echo

import (
	"math"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
)

// idSource hands out ids shared by ripples and obstacles.
type idSource struct {
	next uint64
}

func (s *idSource) Next() uint64 {
	id := s.next
	s.next++
	return id
}

// Factory builds obstacles and owns the spawn gates that shape their mix.
// Gate and cadence timers count down in milliseconds; zero means open.
type Factory struct {
	cfg *config.EchoConfig
	rng core.Rand
	ids *idSource

	Tier2Gate  float64
	Tier3Gate  float64
	OrbCadence float64
}

// NewFactory creates a factory with all gates open.
func NewFactory(cfg *config.EchoConfig, rng core.Rand, ids *idSource) *Factory {
	return &Factory{cfg: cfg, rng: rng, ids: ids}
}

// Tick counts every gate down by dtMs, clamping at zero.
func (f *Factory) Tick(dtMs float64) {
	f.Tier2Gate = math.Max(0, f.Tier2Gate-dtMs)
	f.Tier3Gate = math.Max(0, f.Tier3Gate-dtMs)
	f.OrbCadence = math.Max(0, f.OrbCadence-dtMs)
}

// OrbDue reports whether the power orb cadence has elapsed.
func (f *Factory) OrbDue() bool {
	return f.OrbCadence <= 0
}

// spawnPoint picks a uniform quadrant and an angle safely inside it.
func (f *Factory) spawnPoint() (core.Quadrant, float64) {
	q := core.Quadrants[f.rng.Intn(len(core.Quadrants))]
	start, end := core.QuadrantAngles(q)
	margin := f.cfg.Field.AngleMarginDeg * math.Pi / 180
	return q, core.RandomAngleInRange(f.rng, start, end, margin)
}

// rollTier picks the HP tier. The tier-3 gate is consulted first, and
// triggering a tier only rearms that tier's own gate.
func (f *Factory) rollTier() int {
	oc := f.cfg.Obstacles
	if f.Tier3Gate <= 0 && f.rng.Float64() < oc.Tier3Chance {
		f.Tier3Gate = oc.Tier3CooldownMs + f.rng.Float64()*oc.Tier3JitterMs
		return 3
	}
	if f.Tier2Gate <= 0 && f.rng.Float64() < oc.Tier2Chance {
		f.Tier2Gate = oc.Tier2CooldownMs + f.rng.Float64()*oc.Tier2JitterMs
		return 2
	}
	return 1
}

// Regular creates a tiered obstacle at the spawn ring.
func (f *Factory) Regular(fieldRadius, speedMult float64) *Obstacle {
	q, angle := f.spawnPoint()
	oc := f.cfg.Obstacles
	size := oc.SizeMin + f.rng.Float64()*oc.SizeRange
	tier := f.rollTier()

	shape := ShapeCircle
	if tier == 2 {
		shape = ShapeSquare
	}

	speed := oc.BaseSpeed * speedMult
	return &Obstacle{
		ID:       f.ids.Next(),
		Kind:     KindRegular,
		Angle:    angle,
		Radius:   fieldRadius + f.cfg.Field.SpawnMargin,
		Speed:    speed,
		Size:     size,
		Shape:    shape,
		HP:       tier,
		MaxHP:    tier,
		Quadrant: q,
	}
}

// PowerOrb creates an energy orb and rearms the orb cadence.
func (f *Factory) PowerOrb(fieldRadius, speedMult float64) *Obstacle {
	q, angle := f.spawnPoint()
	pc := f.cfg.PowerOrb
	size := pc.SizeMin + f.rng.Float64()*pc.SizeRange
	f.OrbCadence = pc.CadenceMs

	speed := f.cfg.Obstacles.BaseSpeed * speedMult
	return &Obstacle{
		ID:       f.ids.Next(),
		Kind:     KindPowerOrb,
		Angle:    angle,
		Radius:   fieldRadius + f.cfg.Field.SpawnMargin,
		Speed:    speed,
		Size:     size,
		Shape:    ShapeCircle,
		HP:       pc.HP,
		MaxHP:    pc.HP,
		Quadrant: q,
		Orb:      &OrbState{},
	}
}

// Elite creates the Blink Stalker.
func (f *Factory) Elite(fieldRadius, speedMult float64) *Obstacle {
	q, angle := f.spawnPoint()
	ec := f.cfg.Elite

	speed := f.cfg.Obstacles.BaseSpeed * speedMult * ec.SpeedMult
	return &Obstacle{
		ID:       f.ids.Next(),
		Kind:     KindElite,
		Angle:    angle,
		Radius:   fieldRadius + f.cfg.Field.SpawnMargin,
		Speed:    speed,
		Size:     ec.Size,
		Shape:    ShapeCircle,
		HP:       ec.HP,
		MaxHP:    ec.HP,
		Quadrant: q,
		Elite: &EliteState{
			TeleportCooldown: ec.TeleportCooldownMs,
			LastQuadrant:     q,
		},
	}
}

// Cluster returns how many regular obstacles the next interval spawns.
func (f *Factory) Cluster() int {
	if f.rng.Float64() < f.cfg.Obstacles.ClusterChance {
		return 2 + f.rng.Intn(2)
	}
	return 1
}
