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

	"github.com/neuroplay/arena/internal/core"
	"github.com/neuroplay/arena/internal/registry"
	"github.com/neuroplay/arena/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arena/host_key.
	HostKeyPath string

	// DBPath is the path to the sessions database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arena/sessions.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for the arena platform.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	queue  *storage.PendingQueue
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena-ssh",
	})

	// Open storage; sessions fall back to the local pending queue when
	// the database is unavailable.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		store = nil
	}

	var sink storage.Sink
	if store != nil {
		sink = store
	}
	queue := storage.NewPendingQueue(sink, pendingDir(), 0, logger)
	if store != nil {
		//nolint:errcheck // Best-effort flush of earlier failures
		queue.Flush()
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		queue:  queue,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arena", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// pendingDir is where undeliverable session summaries are cached.
func pendingDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", "pending")
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
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, s.queue, cfg)

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

// SessionModel manages the full flow for a connection: menu -> arena -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store      *storage.Store
	sink       storage.Sink
	config     core.RuntimeConfig
	menu       MenuModel
	arenaModel *ArenaModel
	inArena    bool
	inSessions bool
	sessions   *SessionBoardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, sink storage.Sink, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:  store,
		sink:   sink,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.inArena && m.arenaModel != nil:
		return m.updateArena(msg)
	case m.inSessions && m.sessions != nil:
		return m.updateSessions(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsSessions() {
		board := NewSessionBoardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.sessions = &board
		m.inSessions = true
		m.menu = NewMenuModel(m.config)
		return m, m.sessions.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered arenas
			return m, nil
		}

		m.config = m.menu.Config() // Get possibly updated config from resize

		arenaModel := NewArenaModel(game, m.sink, m.config)
		m.arenaModel = &arenaModel
		m.inArena = true

		return m, m.arenaModel.Init()
	}

	return m, cmd
}

// updateArena handles updates when an arena is running.
func (m SessionModel) updateArena(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.arenaModel.Update(msg)
	if arenaModel, ok := newModel.(ArenaModel); ok {
		m.arenaModel = &arenaModel
	}

	if m.arenaModel.BackToMenu() {
		m.inArena = false
		m.arenaModel = nil
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	if m.arenaModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateSessions handles updates when the session board is open.
func (m SessionModel) updateSessions(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.sessions.Update(msg)
	if board, ok := newModel.(SessionBoardModel); ok {
		m.sessions = &board
	}

	if m.sessions.IsGoingBack() {
		m.inSessions = false
		m.sessions = nil
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	if m.sessions.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.inArena && m.arenaModel != nil:
		return m.arenaModel.View()
	case m.inSessions && m.sessions != nil:
		return m.sessions.View()
	}

	return m.menu.View()
}

// ArenaModel wraps a running arena with back-to-menu capability.
// Unlike Model, which owns its Bubble Tea program, ArenaModel is embedded
// in the SessionModel flow.
type ArenaModel struct {
	game       registry.Game
	screen     *core.Screen
	sink       storage.Sink
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	submitted  bool
	notice     string
}

// NewArenaModel creates a new embedded arena model.
func NewArenaModel(game registry.Game, sink storage.Sink, cfg core.RuntimeConfig) ArenaModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return ArenaModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		sink:       sink,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the arena.
func (m ArenaModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m ArenaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m ArenaModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.submitSession(!m.gameState.GameOver)
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc when game over or paused goes back to the menu
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.submitSession(!m.gameState.GameOver)
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m ArenaModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.submitted = false
		m.notice = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.submitted {
		m.submitSession(false)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// submitSession folds the finished session and hands it to the sink.
func (m *ArenaModel) submitSession(partial bool) {
	if m.submitted {
		return
	}
	m.submitted = true

	reporter, ok := m.game.(registry.SessionReporter)
	if !ok || m.sink == nil {
		return
	}

	err := m.sink.Submit(reporter.Summary(partial))
	switch {
	case err == nil:
		m.notice = "session saved"
	case errors.Is(err, storage.ErrQueued):
		m.notice = "session saved locally, will sync later"
	default:
		m.notice = "session could not be saved"
	}
}

// View renders the arena.
func (m ArenaModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	out := RenderScreen(m.screen)
	if m.notice != "" {
		out += "\n" + m.notice
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m ArenaModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m ArenaModel) BackToMenu() bool {
	return m.backToMenu
}
