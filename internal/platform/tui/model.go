package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neuroplay/arena/internal/core"
	"github.com/neuroplay/arena/internal/registry"
	"github.com/neuroplay/arena/internal/storage"
)

// Model is the Bubble Tea model for running an arena session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	sink       storage.Sink
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	submitted  bool   // session summary already submitted for this game over
	notice     string // one-line status shown under the arena
}

// NewModel creates a new Bubble Tea model for the given arena.
// sink may be nil, in which case sessions are not persisted.
func NewModel(game registry.Game, sink storage.Sink, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		sink:       sink,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the session.
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
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		// Abandoning mid-play still yields a (partial) session.
		m.submitSession(!m.gameState.GameOver)
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionRestart) && !m.gameState.GameOver {
		m.inputFrame.Clear()
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The simulation world is independent of the terminal size, so a
	// resize never resets the session; the view just rescales.
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
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

	// Submit the session summary on game over (once)
	if m.gameState.GameOver && !m.submitted {
		m.submitSession(false)
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// submitSession folds the finished session and hands it to the sink.
// Delivery failures degrade to a notice instead of interrupting play.
func (m *Model) submitSession(partial bool) {
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

// View renders the current state to a string for display.
func (m Model) View() string {
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

// Run starts the Bubble Tea program for a single arena session.
func Run(game registry.Game, sink storage.Sink, cfg core.RuntimeConfig) error {
	model := NewModel(game, sink, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
