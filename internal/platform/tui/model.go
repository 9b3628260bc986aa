package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echo-arcade/internal/audio"
	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/loop"
	"github.com/vovakirdan/echo-arcade/internal/registry"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

// Deps holds the collaborators shared by the game screens.
// Every field is optional.
type Deps struct {
	Store         *storage.Store
	Audio         *audio.Dispatcher
	Logger        *log.Logger
	ConfigUpdates <-chan config.EchoConfig
	MaxFrame      time.Duration
	Mono          bool // Render without colors
	// NewGame builds a game for the chosen difficulty. Defaults to the registry's "echo".
	NewGame func(preset config.DifficultyPreset) (registry.Game, error)
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

func (d Deps) newGame(preset config.DifficultyPreset) (registry.Game, error) {
	if d.NewGame != nil {
		return d.NewGame(preset)
	}
	return registry.Create("echo")
}

// configurable games accept a reloaded config for their next run.
type configurable interface {
	ApplyConfig(cfg config.EchoConfig)
}

// resizable games follow the terminal size.
type resizable interface {
	Resize(w, h int)
}

// runStats reports per-run counters for the score history.
type runStats interface {
	RunStats() (kills, waves int)
}

// GameModel runs a single game with restart and back-to-menu support.
type GameModel struct {
	game       registry.Game
	deps       Deps
	difficulty config.DifficultyPreset
	screen     *core.Screen
	config     core.RuntimeConfig
	driver     *loop.Driver
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone programs exit instead of switching screens
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, deps Deps, difficulty config.DifficultyPreset, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		deps:       deps,
		difficulty: difficulty,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		driver:     loop.NewDriver(cfg.TickRate, deps.MaxFrame, deps.Logger),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tea.Batch(tickCmd(m.config.TickRate), waitForConfig(m.deps.ConfigUpdates))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if r, ok := m.game.(resizable); ok {
			r.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case ConfigMsg:
		if c, ok := m.game.(configurable); ok {
			c.ApplyConfig(config.EchoConfig(msg))
			m.deps.logger().Info("config reloaded, applies on next run")
		}
		return m, waitForConfig(m.deps.ConfigUpdates)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu is only offered from the pause and game over screens.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && (m.gameState.GameOver || m.gameState.Paused) {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.driver.Frame(now), m.inputFrame)
	m.gameState = result.State
	m.deps.Audio.Dispatch(result.Signals)

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run with a fresh seed.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.driver.Reset()
	m.scoreSaved = false
	m.inputFrame.Clear()
}

// saveScore appends the finished run to the score history.
func (m *GameModel) saveScore() {
	if m.deps.Store == nil || m.gameState.Score <= 0 {
		return
	}
	entry := storage.ScoreEntry{
		GameID:     m.game.ID(),
		Score:      m.gameState.Score,
		Difficulty: string(m.difficulty),
	}
	if rs, ok := m.game.(runStats); ok {
		entry.Kills, entry.Waves = rs.RunStats()
	}
	if _, err := m.deps.Store.SaveScore(entry); err != nil {
		m.deps.logger().Warn("could not save score", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.deps.Mono)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a local Bubble Tea program for the given game.
// Returns true when the player asked to go back to the menu.
func Run(game registry.Game, deps Deps, difficulty config.DifficultyPreset, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, deps, difficulty, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks aim quadrant waves
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.BackToMenu(), nil
	}
	return false, nil
}
