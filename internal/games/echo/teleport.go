package echo

import (
	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
)

// PlanTeleport tries to move the elite into a quadrant other than the one it
// last occupied. Candidates are drawn inside an inset of the viewport and
// must clear both the center and the player exclusion radii; the first
// acceptable one wins. The player sits on the core, so both radii are
// measured from the viewport center.
//
// On failure the obstacle is left in place and its failure count grows.
// Resetting the cooldown is the caller's job in both cases.
func PlanTeleport(o *Obstacle, view Viewport, cfg config.EchoElite, rng core.Rand) bool {
	if o.Elite == nil {
		return false
	}

	w := max(1, view.W)
	h := max(1, view.H)
	minDim := min(w, h)
	marginX := w * cfg.ScreenMarginPct
	marginY := h * cfg.ScreenMarginPct
	centerSafe := minDim * cfg.CenterSafePct
	playerSafe := minDim * cfg.PlayerSafePct

	center := core.Point{X: w / 2, Y: h / 2}
	player := center

	choices := make([]core.Quadrant, 0, len(core.Quadrants)-1)
	for _, q := range core.Quadrants {
		if q != o.Elite.LastQuadrant {
			choices = append(choices, q)
		}
	}
	target := choices[rng.Intn(len(choices))]

	for i := 0; i < cfg.TeleportAttempts; i++ {
		p := core.Point{
			X: marginX + rng.Float64()*(w-marginX*2),
			Y: marginY + rng.Float64()*(h-marginY*2),
		}
		if core.ClassifyQuadrant(center, p) != target {
			continue
		}
		if p.Dist(center) < centerSafe || p.Dist(player) < playerSafe {
			continue
		}

		o.Angle, o.Radius = core.ToPolar(center, p)
		o.Quadrant = target
		o.Elite.LastQuadrant = target
		return true
	}

	o.Elite.FailedTeleports++
	return false
}
