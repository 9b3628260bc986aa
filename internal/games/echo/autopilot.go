package echo

import (
	"github.com/vovakirdan/echo-arcade/internal/core"
)

// Autopilot is a simple scripted player used by the headless runner to
// exercise balance changes without a human at the keyboard.
type Autopilot struct {
	// ReactRadius is how close an obstacle must be before the pilot fires.
	ReactRadius float64
}

// DefaultAutopilot returns a pilot that reacts at a third of the field radius.
func DefaultAutopilot(s *Sim, view Viewport) Autopilot {
	return Autopilot{ReactRadius: s.FieldRadius(view) / 3}
}

// Decide returns where to tap this frame, if anywhere. Several threatened
// quadrants trigger a full wave when affordable; otherwise the nearest
// threat gets a quadrant wave.
func (a Autopilot) Decide(s *Sim, view Viewport) (core.Point, bool) {
	if s.paused || s.over || s.tapCooldown > 0 {
		return core.Point{}, false
	}

	var nearest *Obstacle
	var threatened [4]bool
	quads := 0
	for _, o := range s.obstacles {
		if o.HP <= 0 || o.Radius > a.ReactRadius || covered(s.ripples, o) {
			continue
		}
		if !threatened[o.Quadrant] {
			threatened[o.Quadrant] = true
			quads++
		}
		if nearest == nil || o.Radius < nearest.Radius {
			nearest = o
		}
	}
	if nearest == nil {
		return core.Point{}, false
	}

	if quads >= 2 && s.energy >= s.cfg.Energy.CostFull {
		return view.Center(), true
	}
	if s.energy >= s.cfg.Energy.CostQuad {
		return s.QuadrantTarget(view, nearest.Quadrant), true
	}
	return core.Point{}, false
}

// covered reports whether a ripple is already on its way to o and will
// still be able to damage it.
func covered(ripples []Ripple, o *Obstacle) bool {
	for _, r := range ripples {
		if r.Radius < o.Radius && r.Affects(o.Quadrant) && !o.DamagedBy(r.ID) {
			return true
		}
	}
	return false
}
