package echo

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/echo-arcade/internal/core"
)

// Visual characters for rendering
const (
	CoreChar        = '◎'
	FullRippleChar  = '•'
	QuadRippleChar  = '·'
	Tier1Char       = '●'
	Tier2Char       = '■'
	Tier3Char       = '◉'
	OrbChar         = '✦'
	EliteChar       = '◆'
	EliteWarnChar   = '◇'
	EliteFadeChar   = '◌'
	EliteDeathChar  = '✸'
	EnergyFullChar  = '█'
	EnergyEmptyChar = '░'
)

const energyBarWidth = 10

// Render draws the current game state to the screen. It only reads the game.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	center := g.view.Center()

	for _, r := range g.sim.Ripples() {
		g.drawRipple(dst, center, r)
	}

	cx, cy := g.fieldToCell(center)
	dst.SetColored(cx, cy, CoreChar, g.theme.Core)

	for _, o := range g.sim.Obstacles() {
		g.drawObstacle(dst, center, o)
	}

	g.drawHUD(dst)

	switch {
	case g.sim.Over():
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  |  Press R to restart", int(g.sim.Score()), g.sim.Best()))
	case g.sim.Paused():
		g.drawCenteredMessage(dst, "PAUSED", "P resume  |  R restart  |  Q quit")
	}
}

// drawRipple rasterizes the ripple arc into cells.
func (g *Game) drawRipple(dst *core.Screen, center core.Point, r Ripple) {
	start, end := -math.Pi, math.Pi
	ch, color := FullRippleChar, g.theme.Full
	if r.Kind == RippleQuadrant {
		start, end = r.StartAngle, r.EndAngle
		ch, color = QuadRippleChar, g.theme.Quad
	}

	arc := core.ArcPath(center, r.Radius, start, end)
	length := r.Radius * (end - start)
	steps := max(8, int(length/float64(g.cfg.Field.CellWidth)))
	for _, p := range arc.Sample(steps) {
		x, y := g.fieldToCell(p)
		if p.X < 0 || p.Y < 0 {
			continue
		}
		dst.SetColored(x, y, ch, color)
	}
}

// drawObstacle renders a single obstacle and its HP when damaged.
func (g *Game) drawObstacle(dst *core.Screen, center core.Point, o *Obstacle) {
	p := o.Position(center)
	if p.X < 0 || p.Y < 0 {
		return
	}
	x, y := g.fieldToCell(p)
	ch, color := obstacleGlyph(o)
	dst.SetColored(x, y, ch, color)

	if o.Tough() && o.HP > 0 && o.HP < o.MaxHP {
		dst.DrawTextColored(x+1, y, fmt.Sprintf("%d", o.HP), core.ColorGray)
	}
}

func obstacleGlyph(o *Obstacle) (rune, core.Color) {
	switch o.Kind {
	case KindPowerOrb:
		return OrbChar, core.ColorBrightYellow
	case KindElite:
		switch {
		case o.Dying():
			return EliteDeathChar, core.ColorBrightRed
		case o.Telegraphing():
			return EliteWarnChar, core.ColorBrightMagenta
		case o.Elite.FadeIn > 0:
			return EliteFadeChar, core.ColorPurple
		default:
			return EliteChar, core.ColorPurple
		}
	}
	switch o.MaxHP {
	case 3:
		return Tier3Char, core.ColorMagenta
	case 2:
		return Tier2Char, core.ColorOrange
	default:
		return Tier1Char, core.ColorRed
	}
}

// drawHUD renders score, best and the energy bar on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	scoreText := fmt.Sprintf(" Score: %d  Best: %d ", int(g.sim.Score()), g.sim.Best())
	dst.DrawText(1, 0, scoreText)

	energy := g.sim.Energy()
	ec := g.cfg.Energy
	filled := int(math.Round(energy / ec.Max * energyBarWidth))
	bar := strings.Repeat(string(EnergyFullChar), filled) + strings.Repeat(string(EnergyEmptyChar), energyBarWidth-filled)

	color := core.ColorGreen
	switch {
	case energy < ec.CostQuad:
		color = core.ColorRed
	case energy < ec.CostFull:
		color = core.ColorYellow
	}

	label := fmt.Sprintf(" %3d%% ", int(energy/ec.Max*100))
	x := dst.Width() - energyBarWidth - len(label) - 2
	dst.DrawTextColored(x, 0, bar, color)
	dst.DrawText(x+energyBarWidth, 0, label)

	if g.sim.Config().Difficulty.Enabled {
		spd := fmt.Sprintf(" x%.2f ", g.sim.SpeedMultiplier())
		dst.DrawTextColored(x-len(spd)-1, 0, spd, core.ColorGray)
	}

	help := "space full  1-4 quadrant  click aim  p pause"
	if len(help) < dst.Width() {
		dst.DrawTextCentered(dst.Height()-1, help, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	box := core.NewRect(0, 0, max(len(title), len(subtitle))+4, 5)
	box.X = (w - box.W) / 2
	box.Y = (h - box.H) / 2

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}
