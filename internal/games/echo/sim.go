// Package echo implements Echo, a ripple-defense survival game.
// The player guards a central core by emitting expanding waves that push
// back and destroy obstacles converging on it.
package echo

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
)

// BestScoreStore persists the best whole-second score.
// BestScore reports false when no score has been stored yet.
type BestScoreStore interface {
	BestScore() (int, bool, error)
	SetBestScore(score int) error
}

// Stats counts notable events of the current run.
type Stats struct {
	WavesFull   int
	WavesQuad   int
	Rejected    int
	Kills       int
	OrbsRefill  int
	OrbsDrained int
	Teleports   int
	TeleportsKO int // Failed teleport attempts
}

// Sim holds the complete state of one run. It is owned by a single
// goroutine; readers must not touch it while Step or Tap runs.
type Sim struct {
	cfg        config.EchoConfig
	rng        core.Rand
	ids        idSource
	factory    *Factory
	difficulty *config.DifficultyManager
	store      BestScoreStore
	logger     *log.Logger

	ripples   []Ripple
	obstacles []*Obstacle

	energy        float64
	score         float64 // Seconds survived
	best          int
	tapCooldown   float64 // ms
	spawnTimer    float64 // ms
	spawnInterval float64 // ms
	speedMult     float64
	eliteSpawned  bool
	eliteAlive    bool
	paused        bool
	over          bool
	stats         Stats
}

// NewSim creates a simulation ready to run. store and logger may be nil.
func NewSim(cfg config.EchoConfig, rng core.Rand, store BestScoreStore, logger *log.Logger) *Sim {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Sim{
		cfg:    cfg,
		rng:    rng,
		store:  store,
		logger: logger,
	}
	s.Reset()
	return s
}

// Reset starts a fresh run. The known best score survives and is
// refreshed from the store.
func (s *Sim) Reset() {
	s.ids = idSource{next: 1}
	s.factory = NewFactory(&s.cfg, s.rng, &s.ids)
	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)

	s.ripples = s.ripples[:0]
	s.obstacles = s.obstacles[:0]
	s.energy = s.cfg.Energy.Max
	s.score = 0
	s.tapCooldown = 0
	s.spawnTimer = 0
	s.spawnInterval = s.difficulty.InitialInterval()
	s.speedMult = s.difficulty.InitialSpeed()
	s.eliteSpawned = false
	s.eliteAlive = false
	s.paused = false
	s.over = false
	s.stats = Stats{}

	s.loadBest()
}

func (s *Sim) loadBest() {
	if s.store == nil {
		return
	}
	best, ok, err := s.store.BestScore()
	if err != nil {
		s.logger.Warn("could not load best score", "error", err)
		return
	}
	if ok && best > s.best {
		s.best = best
	}
}

// FieldRadius returns the radius beyond which the field is considered empty.
func (s *Sim) FieldRadius(view Viewport) float64 {
	c := view.Center()
	return math.Max(c.X, c.Y) + s.cfg.Field.Padding
}

// Step advances the run by dt and returns the signals raised on the way.
func (s *Sim) Step(dt time.Duration, view Viewport) []core.Signal {
	dtMs := math.Max(0, float64(dt)/float64(time.Millisecond))
	dtS := dtMs / 1000

	// Cooldowns tick even while paused so resuming does not burst.
	s.tapCooldown = math.Max(0, s.tapCooldown-dtMs)
	s.factory.Tick(dtMs)

	if s.paused || s.over {
		return nil
	}

	s.energy = math.Min(s.cfg.Energy.Max, s.energy+s.cfg.Energy.Regen*dtS)
	s.spawnInterval, s.speedMult = s.difficulty.Advance(s.spawnInterval, s.speedMult, dtS)
	s.score += dtS

	s.advanceRipples(dtS)

	fieldRadius := s.FieldRadius(view)
	s.spawn(dtMs, fieldRadius)

	var signals []core.Signal
	lost := false
	for _, o := range s.obstacles {
		if s.updateObstacle(o, dtMs, view, &signals) {
			lost = true
		}
	}

	s.sweep(fieldRadius)

	if lost {
		s.lose()
		signals = append(signals, core.SignalRunLost)
	}
	return signals
}

func (s *Sim) advanceRipples(dtS float64) {
	kept := s.ripples[:0]
	for _, r := range s.ripples {
		r.Radius += s.cfg.Ripple.Speed * dtS
		if r.Radius < s.cfg.Ripple.MaxRadius {
			kept = append(kept, r)
		}
	}
	s.ripples = kept
}

func (s *Sim) spawn(dtMs, fieldRadius float64) {
	if !s.eliteSpawned && s.score >= s.cfg.Elite.ScoreThreshold {
		s.eliteSpawned = true
		s.obstacles = append(s.obstacles, s.factory.Elite(fieldRadius, s.speedMult))
		s.eliteAlive = true
		s.logger.Debug("elite spawned", "score", s.score)
	}

	s.spawnTimer += dtMs
	if s.spawnTimer < s.spawnInterval {
		return
	}
	s.spawnTimer = 0
	if s.eliteAlive {
		return
	}

	for n := s.factory.Cluster(); n > 0; n-- {
		s.obstacles = append(s.obstacles, s.factory.Regular(fieldRadius, s.speedMult))
	}
	if s.factory.OrbDue() {
		s.obstacles = append(s.obstacles, s.factory.PowerOrb(fieldRadius, s.speedMult))
	}
}

// updateObstacle moves, collides and resolves one obstacle.
// It reports whether the obstacle reached the core and ends the run.
func (s *Sim) updateObstacle(o *Obstacle, dtMs float64, view Viewport, signals *[]core.Signal) bool {
	if o.Dying() {
		o.Elite.Death = math.Max(0, o.Elite.Death-dtMs)
		return false
	}
	dtS := dtMs / 1000

	speed := o.Speed
	if o.SlowTimer > 0 {
		o.SlowTimer = math.Max(0, o.SlowTimer-dtS)
		if o.SlowTimer > 0 {
			speed *= s.cfg.Push.SlowFactor
		}
	}
	o.Radius -= speed * dtS

	if o.Elite != nil {
		s.updateElite(o, dtMs, view)
	}

	center := view.Center()
	o.Quadrant = core.ClassifyQuadrant(center, o.Position(center))

	s.collide(o, dtS, signals)

	if o.Telegraphing() {
		return false
	}
	if o.Radius > s.cfg.Field.CoreRadius+o.Size*0.5 {
		return false
	}
	if o.Kind == KindPowerOrb {
		s.energy = math.Max(0, s.energy-s.cfg.Energy.OrbDrain)
		o.HP = 0
		s.stats.OrbsDrained++
		*signals = append(*signals, core.SignalOrbDrained)
		return false
	}
	return true
}

// updateElite runs the cooldown, telegraph and teleport cycle.
func (s *Sim) updateElite(o *Obstacle, dtMs float64, view Viewport) {
	e := o.Elite
	ec := s.cfg.Elite

	e.FadeIn = math.Max(0, e.FadeIn-dtMs)
	if !e.Pending {
		e.TeleportCooldown = math.Max(0, e.TeleportCooldown-dtMs)
	} else {
		e.Telegraph = math.Max(0, e.Telegraph-dtMs)
		if e.Telegraph <= 0 {
			if PlanTeleport(o, view, ec, s.rng) {
				e.FadeIn = ec.FadeInMs
				s.stats.Teleports++
			} else {
				s.stats.TeleportsKO++
			}
			e.Pending = false
			e.TeleportCooldown = ec.TeleportCooldownMs
		}
	}
	if e.TeleportCooldown <= 0 && !e.Pending {
		e.Pending = true
		e.Telegraph = ec.TelegraphMs
	}
}

// collide applies every touching ripple to o. Push is continuous while the
// band overlaps; damage is one HP per ripple id and at most one per step.
func (s *Sim) collide(o *Obstacle, dtS float64, signals *[]core.Signal) {
	thickness := s.cfg.Ripple.Thickness
	damaged := false

	for _, r := range s.ripples {
		diff := math.Abs(o.Radius - r.Radius)
		if diff >= thickness || !r.Affects(o.Quadrant) {
			continue
		}
		strength := 1 - diff/thickness
		o.Radius += s.pushBase(r.Kind) * s.toughness(o) * strength * dtS

		if damaged || o.HP <= 0 || o.DamagedBy(r.ID) {
			continue
		}
		o.HP--
		o.markDamaged(r.ID)
		damaged = true
		o.SlowTimer = s.cfg.Push.SlowSeconds

		if o.HP <= 0 {
			s.kill(o, signals)
		}
	}
}

func (s *Sim) kill(o *Obstacle, signals *[]core.Signal) {
	o.HP = 0
	s.stats.Kills++
	switch o.Kind {
	case KindPowerOrb:
		if !o.Orb.Rewarded {
			o.Orb.Rewarded = true
			s.energy = s.cfg.Energy.Max
			s.stats.OrbsRefill++
		}
	case KindElite:
		if !o.Elite.Exploded {
			o.Elite.Exploded = true
			o.Elite.Death = s.cfg.Elite.DeathMs
			*signals = append(*signals, core.SignalObstacleExploded)
		}
	}
}

func (s *Sim) pushBase(k RippleKind) float64 {
	if k == RippleFull {
		return s.cfg.Push.Full
	}
	return s.cfg.Push.Quad
}

// toughness scales push for multi-hit obstacles; three-hit ones get the most.
func (s *Sim) toughness(o *Obstacle) float64 {
	if !o.Tough() {
		return 1
	}
	if o.MaxHP == 3 {
		return s.cfg.Push.ToughMult * s.cfg.Push.Tier3Mult
	}
	return s.cfg.Push.ToughMult
}

func (s *Sim) sweep(fieldRadius float64) {
	limit := fieldRadius + s.cfg.Field.RemovalMargin
	kept := s.obstacles[:0]
	eliteAlive := false
	for _, o := range s.obstacles {
		if o.Radius <= 0 || o.Radius >= limit {
			continue
		}
		if o.HP <= 0 && !o.Dying() {
			continue
		}
		kept = append(kept, o)
		if o.Kind == KindElite && o.HP > 0 {
			eliteAlive = true
		}
	}
	for i := len(kept); i < len(s.obstacles); i++ {
		s.obstacles[i] = nil
	}
	s.obstacles = kept
	s.eliteAlive = eliteAlive
}

func (s *Sim) lose() {
	s.over = true
	s.paused = true

	final := int(math.Floor(s.score))
	if final <= s.best {
		return
	}
	s.best = final
	if s.store == nil {
		return
	}
	if err := s.store.SetBestScore(final); err != nil {
		s.logger.Warn("could not save best score", "score", final, "error", err)
	}
}

// SetPaused pauses or resumes a running game. It has no effect after a loss.
func (s *Sim) SetPaused(paused bool) {
	if s.over {
		return
	}
	s.paused = paused
}

// TogglePause flips the pause state of a running game.
func (s *Sim) TogglePause() {
	s.SetPaused(!s.paused)
}

// Paused reports whether the simulation is frozen.
func (s *Sim) Paused() bool { return s.paused }

// Over reports whether the run has been lost.
func (s *Sim) Over() bool { return s.over }

// Energy returns the current energy.
func (s *Sim) Energy() float64 { return s.energy }

// Score returns the seconds survived.
func (s *Sim) Score() float64 { return s.score }

// Best returns the best whole-second score known to the simulation.
func (s *Sim) Best() int { return s.best }

// SpeedMultiplier returns the current obstacle speed multiplier.
func (s *Sim) SpeedMultiplier() float64 { return s.speedMult }

// SpawnInterval returns the current spawn interval in milliseconds.
func (s *Sim) SpawnInterval() float64 { return s.spawnInterval }

// Stats returns the run counters.
func (s *Sim) Stats() Stats { return s.stats }

// Ripples returns the live ripples. The slice is only valid until the next Step or Tap.
func (s *Sim) Ripples() []Ripple { return s.ripples }

// Obstacles returns the live obstacles. The slice is only valid until the next Step.
func (s *Sim) Obstacles() []*Obstacle { return s.obstacles }

// Config returns the configuration the simulation runs with.
func (s *Sim) Config() config.EchoConfig { return s.cfg }
