package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

// GameFactory creates the game for a menu selection.
type GameFactory func(sel MenuSelection, cfg core.RuntimeConfig) (Game, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.cells/host_key.
	HostKeyPath string

	// DBPath is the path to the progress database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of each session.
	TickRate int

	Catalog *levels.Catalog
	NewGame GameFactory
	Logger  *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.cells/cells.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server that serves the menu and game to
// every session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Catalog == nil || cfg.NewGame == nil {
		return nil, errors.New("ssh server needs a level catalog and a game factory")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "cells-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open progress database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".cells", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(s.config.Catalog, s.store, cfg, s.config.NewGame)
	model.logger = s.logger.With("user", sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a session is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenProgress
)

// SessionModel manages the full session flow: menu -> game or progress ->
// menu. It is the top-level model of an SSH session.
type SessionModel struct {
	catalog  *levels.Catalog
	store    *storage.Store
	config   core.RuntimeConfig
	newGame  GameFactory
	logger   *log.Logger
	screen   sessionScreen
	menu     MenuModel
	game     *Model
	progress *ProgressModel
	notice   string // error from the last game creation
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(catalog *levels.Catalog, store *storage.Store, cfg core.RuntimeConfig, newGame GameFactory) SessionModel {
	return SessionModel{
		catalog: catalog,
		store:   store,
		config:  cfg,
		newGame: newGame,
		logger:  log.New(os.Stderr),
		menu:    NewMenuModel(catalog, store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenProgress:
		return m.updateProgress(msg)
	}
	return m.updateMenu(msg)
}

// backToMenu shows a fresh menu, so completion marks are current.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.progress = nil
	m.menu = NewMenuModel(m.catalog, m.store, m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	sel := m.menu.Selection()
	switch sel.Kind {
	case SelectProgress:
		pm := NewProgressModel(m.catalog, m.store, m.config.ScreenW, m.config.ScreenH)
		m.progress = &pm
		m.screen = screenProgress
		return m, pm.Init()

	case SelectLevel, SelectSandbox:
		game, err := m.newGame(sel, m.config)
		if err != nil {
			m.logger.Error("cannot create game", "error", err)
			m.notice = err.Error()
			return m.backToMenu()
		}
		m.notice = ""
		m.logger.Info("game started", "game", game.ID())

		gm := NewModel(game, m.store, m.config)
		m.game = &gm
		m.screen = screenGame
		return m, gm.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gameModel, ok := next.(Model); ok {
		m.game = &gameModel
	}

	if err := m.game.SaveErr(); err != nil {
		m.logger.Warn("could not save completion", "error", err)
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.logger.Info("game ended", "game", m.game.game.ID(), "ticks", m.game.gameState.Ticks)
		return m.backToMenu()
	}

	return m, cmd
}

// updateProgress handles updates when the progress screen is shown.
func (m SessionModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.progress.Update(msg)
	if pm, ok := next.(ProgressModel); ok {
		m.progress = &pm
	}

	if m.progress.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.progress.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenProgress:
		return m.progress.View()
	}
	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(m.menu.theme.MenuItemActive.Render(m.notice), m.config.ScreenW)
	}
	return view
}
