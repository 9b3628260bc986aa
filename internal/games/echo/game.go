package echo

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/registry"
)

// Theme holds the colors the renderer uses for waves and the core.
type Theme struct {
	Full core.Color
	Quad core.Color
	Core core.Color
}

// ThemeFromConfig resolves palette names, keeping fallback for unknown ones.
func ThemeFromConfig(t config.EchoTheme) Theme {
	theme := Theme{Full: core.ColorCyan, Quad: core.ColorBrightBlue, Core: core.ColorBrightWhite}
	if c, ok := core.ParseColor(t.Full); ok {
		theme.Full = c
	}
	if c, ok := core.ParseColor(t.Quad); ok {
		theme.Quad = c
	}
	if c, ok := core.ParseColor(t.Core); ok {
		theme.Core = c
	}
	return theme
}

// Options carries the collaborators and overrides a new game is built with.
type Options struct {
	ConfigPath string
	Preset     config.DifficultyPreset
	Store      BestScoreStore
	Logger     *log.Logger
	Theme      *config.EchoTheme // Non-empty fields override the config theme
}

var (
	optsMu      sync.RWMutex
	defaultOpts Options
)

// Configure sets the options used by games created through the registry.
func Configure(opts Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	defaultOpts = opts
}

func currentOptions() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return defaultOpts
}

// Game adapts Sim to the registry.Game contract. Screen cells map to field
// pixels through the configured cell size.
type Game struct {
	opts    Options
	cfg     config.EchoConfig
	next    *config.EchoConfig // Hot-reloaded config, applied on the next Reset
	runtime core.RuntimeConfig
	sim     *Sim
	theme   Theme
	view    Viewport
	started bool
	logger  *log.Logger
}

// New creates a new Echo game instance using the registry options.
func New() *Game {
	return NewWithOptions(currentOptions())
}

// NewWithOptions creates a game with explicit options.
func NewWithOptions(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{opts: opts, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "echo"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Echo"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	switch {
	case g.next != nil:
		g.cfg = *g.next
		g.next = nil
	default:
		cfg, err := config.LoadEcho(g.opts.ConfigPath)
		if err != nil {
			g.logger.Warn("using default echo config", "error", err)
			cfg = config.DefaultEchoConfig()
		}
		g.cfg = cfg
	}
	if g.opts.Preset != "" {
		config.ApplyEchoPreset(&g.cfg, g.opts.Preset)
	}

	themeCfg := g.cfg.Theme
	if t := g.opts.Theme; t != nil {
		if t.Full != "" {
			themeCfg.Full = t.Full
		}
		if t.Quad != "" {
			themeCfg.Quad = t.Quad
		}
		if t.Core != "" {
			themeCfg.Core = t.Core
		}
	}
	g.theme = ThemeFromConfig(themeCfg)

	g.Resize(runtime.ScreenW, runtime.ScreenH)

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness

	best := 0
	if g.sim != nil {
		best = g.sim.Best()
	}
	g.sim = NewSim(g.cfg, rng, g.opts.Store, g.logger)
	if best > g.sim.best {
		g.sim.best = best
	}
	g.started = false
}

// ApplyConfig queues cfg for the next Reset. A running game keeps its tuning.
func (g *Game) ApplyConfig(cfg config.EchoConfig) {
	g.next = &cfg
}

// Resize maps a screen of w×h cells to the field viewport. Positions are
// polar around the center, so a running game keeps its layout.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.view = Viewport{
		W: float64(w * g.cfg.Field.CellWidth),
		H: float64(h * g.cfg.Field.CellHeight),
	}
}

// cellToField converts a screen cell to the field point at its center.
func (g *Game) cellToField(p core.Point) core.Point {
	cw := float64(g.cfg.Field.CellWidth)
	ch := float64(g.cfg.Field.CellHeight)
	return core.Point{X: p.X*cw + cw/2, Y: p.Y*ch + ch/2}
}

// fieldToCell converts a field point to the screen cell containing it.
func (g *Game) fieldToCell(p core.Point) (int, int) {
	return int(p.X) / g.cfg.Field.CellWidth, int(p.Y) / g.cfg.Field.CellHeight
}

// Step applies this frame's input and advances the simulation by dt.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	var signals []core.Signal
	if !g.started {
		g.started = true
		signals = append(signals, core.SignalRunStarted)
	}

	if in.Has(core.ActionPause) {
		g.sim.TogglePause()
	}

	emit := func(r TapResult) {
		if sig := r.Signal(); sig != core.SignalNone {
			signals = append(signals, sig)
		}
	}
	if in.Has(core.ActionWaveFull) {
		emit(g.sim.Tap(g.view.Center(), g.view))
	}
	for _, q := range core.Quadrants {
		if in.Has(core.WaveAction(q)) {
			emit(g.sim.Tap(g.sim.QuadrantTarget(g.view, q), g.view))
		}
	}
	for _, p := range in.Taps {
		emit(g.sim.Tap(g.cellToField(p), g.view))
	}

	signals = append(signals, g.sim.Step(dt, g.view)...)
	return core.StepResult{State: g.State(), Signals: signals}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    int(g.sim.Score()),
		Best:     g.sim.Best(),
		GameOver: g.sim.Over(),
		Paused:   g.sim.Paused(),
	}
}

// Sim exposes the underlying simulation.
func (g *Game) Sim() *Sim {
	return g.sim
}

// RunStats returns the kills and accepted waves of the current run.
func (g *Game) RunStats() (kills, waves int) {
	if g.sim == nil {
		return 0, 0
	}
	st := g.sim.Stats()
	return st.Kills, st.WavesFull + st.WavesQuad
}

// Viewport returns the field size currently in use.
func (g *Game) Viewport() Viewport {
	return g.view
}

// Register the game with the registry
func init() {
	registry.Register("echo", func() registry.Game {
		return New()
	})
}
