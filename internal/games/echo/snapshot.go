package echo

import "github.com/vovakirdan/echo-arcade/internal/core"

// RippleView is the read-only rendering view of a ripple.
type RippleView struct {
	ID         uint64  `msgpack:"id"`
	Radius     float64 `msgpack:"r"`
	Kind       string  `msgpack:"kind"`
	Quadrant   string  `msgpack:"q,omitempty"`
	StartAngle float64 `msgpack:"a0,omitempty"`
	EndAngle   float64 `msgpack:"a1,omitempty"`
}

// ObstacleView is the read-only rendering view of an obstacle.
// X and Y are derived from the center of the viewport the snapshot was taken with.
type ObstacleView struct {
	ID           uint64  `msgpack:"id"`
	Kind         string  `msgpack:"kind"`
	Angle        float64 `msgpack:"a"`
	Radius       float64 `msgpack:"r"`
	X            float64 `msgpack:"x"`
	Y            float64 `msgpack:"y"`
	Size         float64 `msgpack:"size"`
	Square       bool    `msgpack:"sq,omitempty"`
	HP           int     `msgpack:"hp"`
	MaxHP        int     `msgpack:"max_hp"`
	Tough        bool    `msgpack:"tough,omitempty"`
	Telegraphing bool    `msgpack:"tele,omitempty"`
	FadeInMs     float64 `msgpack:"fade,omitempty"`
	DeathMs      float64 `msgpack:"death,omitempty"`
}

// Snapshot is the state a renderer or trace consumer needs for one frame.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Frame     uint64         `msgpack:"frame"`
	Width     float64        `msgpack:"w"`
	Height    float64        `msgpack:"h"`
	Score     float64        `msgpack:"score"`
	Best      int            `msgpack:"best"`
	Energy    float64        `msgpack:"energy"`
	SpeedMult float64        `msgpack:"speed"`
	Paused    bool           `msgpack:"paused"`
	GameOver  bool           `msgpack:"over"`
	Ripples   []RippleView   `msgpack:"ripples"`
	Obstacles []ObstacleView `msgpack:"obstacles"`
	Theme     [3]string      `msgpack:"theme"` // full, quadrant, core
}

// Snapshot copies the current state for view.
func (s *Sim) Snapshot(view Viewport, theme Theme) Snapshot {
	center := view.Center()
	snap := Snapshot{
		Width:     view.W,
		Height:    view.H,
		Score:     s.score,
		Best:      s.best,
		Energy:    s.energy,
		SpeedMult: s.speedMult,
		Paused:    s.paused,
		GameOver:  s.over,
		Ripples:   make([]RippleView, 0, len(s.ripples)),
		Obstacles: make([]ObstacleView, 0, len(s.obstacles)),
		Theme:     [3]string{theme.Full.String(), theme.Quad.String(), theme.Core.String()},
	}

	for _, r := range s.ripples {
		rv := RippleView{ID: r.ID, Radius: r.Radius, Kind: r.Kind.String()}
		if r.Kind == RippleQuadrant {
			rv.Quadrant = r.Quadrant.String()
			rv.StartAngle = r.StartAngle
			rv.EndAngle = r.EndAngle
		}
		snap.Ripples = append(snap.Ripples, rv)
	}

	for _, o := range s.obstacles {
		p := o.Position(center)
		ov := ObstacleView{
			ID:     o.ID,
			Kind:   o.Kind.String(),
			Angle:  o.Angle,
			Radius: o.Radius,
			X:      p.X,
			Y:      p.Y,
			Size:   o.Size,
			Square: o.Shape == ShapeSquare,
			HP:     o.HP,
			MaxHP:  o.MaxHP,
			Tough:  o.Tough(),
		}
		if o.Elite != nil {
			ov.Telegraphing = o.Telegraphing()
			ov.FadeInMs = o.Elite.FadeIn
			ov.DeathMs = o.Elite.Death
		}
		snap.Obstacles = append(snap.Obstacles, ov)
	}
	return snap
}

// Snapshot returns the current frame for the game's own viewport.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot(g.view, g.theme)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(len(snap.Ripples))
	h = h*31 + uint64(len(snap.Obstacles))
	h = h*31 + uint64(snap.Score*1000)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Energy*1000) //#nosec G115 -- hash computation
	for _, r := range snap.Ripples {
		h = h*31 + r.ID
		h = h*31 + uint64(r.Radius*1000) //#nosec G115 -- hash computation
	}
	for _, o := range snap.Obstacles {
		h = h*31 + o.ID
		h = h*31 + uint64(int64(o.Radius*1000)) //#nosec G115 -- hash computation
		h = h*31 + uint64(int64(o.Angle*1e6))   //#nosec G115 -- hash computation
		h = h*31 + uint64(o.HP)                 //#nosec G115 -- hash computation
	}
	if snap.GameOver {
		h = h*31 + 1
	}
	return h
}

// Quadrants returns how many live obstacles sit in each quadrant, indexed by core.Quadrant.
func (snap *Snapshot) Quadrants() [4]int {
	var counts [4]int
	center := core.Point{X: snap.Width / 2, Y: snap.Height / 2}
	for _, o := range snap.Obstacles {
		if o.HP > 0 {
			counts[core.ClassifyQuadrant(center, core.Point{X: o.X, Y: o.Y})]++
		}
	}
	return counts
}
