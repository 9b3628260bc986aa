package echo

import (
	"github.com/vovakirdan/echo-arcade/internal/core"
)

// TapResult is the outcome of a tap on the field.
type TapResult uint8

const (
	TapIgnored  TapResult = iota // Paused or lost, nothing happens
	TapFull                      // Full wave emitted
	TapQuadrant                  // Quadrant wave emitted
	TapRejected                  // Cooldown active or not enough energy
)

// Accepted reports whether a wave was emitted.
func (r TapResult) Accepted() bool {
	return r == TapFull || r == TapQuadrant
}

// Signal returns the feedback signal for the tap, if any.
func (r TapResult) Signal() core.Signal {
	switch r {
	case TapFull:
		return core.SignalWaveFull
	case TapQuadrant:
		return core.SignalWaveQuadrant
	case TapRejected:
		return core.SignalWaveRejected
	default:
		return core.SignalNone
	}
}

// Tap emits a wave for a tap at p (field pixels). Taps near the core emit a
// full wave; anywhere else emits a wave covering the tapped quadrant.
// A rejected tap leaves the simulation untouched.
func (s *Sim) Tap(p core.Point, view Viewport) TapResult {
	if s.paused || s.over {
		return TapIgnored
	}
	if s.tapCooldown > 0 {
		s.stats.Rejected++
		return TapRejected
	}

	center := view.Center()
	in := s.cfg.Input
	if p.Dist(center) <= in.CenterTapRadius {
		if !s.spend(s.cfg.Energy.CostFull) {
			return TapRejected
		}
		s.ripples = append(s.ripples, Ripple{
			ID:     s.ids.Next(),
			Radius: s.cfg.Field.CoreRadius,
			Kind:   RippleFull,
		})
		s.tapCooldown = in.CooldownFullMs
		s.stats.WavesFull++
		return TapFull
	}

	if !s.spend(s.cfg.Energy.CostQuad) {
		return TapRejected
	}
	q := core.ClassifyQuadrant(center, p)
	start, end := core.QuadrantAngles(q)
	s.ripples = append(s.ripples, Ripple{
		ID:         s.ids.Next(),
		Radius:     s.cfg.Field.CoreRadius,
		Kind:       RippleQuadrant,
		Quadrant:   q,
		StartAngle: start,
		EndAngle:   end,
	})
	s.tapCooldown = in.CooldownQuadMs
	s.stats.WavesQuad++
	return TapQuadrant
}

func (s *Sim) spend(cost float64) bool {
	if s.energy < cost {
		s.stats.Rejected++
		return false
	}
	s.energy = max(0, s.energy-cost)
	return true
}

// QuadrantTarget returns a tap position inside q, used for keyboard aiming.
// The point always lies outside the full-wave tap radius.
func (s *Sim) QuadrantTarget(view Viewport, q core.Quadrant) core.Point {
	start, end := core.QuadrantAngles(q)
	dist := max(s.cfg.Input.CenterTapRadius*2, view.MinDim()/4)
	return core.Polar(view.Center(), start+(end-start)/2, dist)
}
