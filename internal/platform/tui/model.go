package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/registry"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

// Game is the contract between the platform and a playable game.
type Game = registry.Game

// Resizer is implemented by games that can adapt to a new screen size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	saveErr    error // last failed completion save
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick runs one game frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Solved != nil && m.store != nil {
		_, m.saveErr = m.store.SaveCompletion(storage.Completion{
			Collection: result.Solved.Collection,
			Level:      result.Solved.Level,
			Ticks:      result.Solved.Ticks,
			Board:      result.Solved.Board,
		})
	}

	if m.gameState.GameOver {
		m.backToMenu = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".cells", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the game ended and the menu should be shown.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// SaveErr returns the last error from saving a completion, if any.
func (m Model) SaveErr() error {
	return m.saveErr
}

// Run starts the Bubble Tea program for one game. It reports whether the
// user asked to quit rather than return to the menu.
func Run(game Game, store *storage.Store, cfg core.RuntimeConfig) (quit bool, err error) {
	p := tea.NewProgram(
		NewModel(game, store, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	m, ok := final.(Model)
	if !ok {
		return true, nil
	}
	if m.SaveErr() != nil {
		return m.IsQuitting(), fmt.Errorf("saving progress: %w", m.SaveErr())
	}
	return m.IsQuitting(), nil
}
