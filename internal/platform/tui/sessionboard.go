package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neuroplay/arena/internal/registry"
	"github.com/neuroplay/arena/internal/storage"
	"github.com/neuroplay/arena/internal/telemetry"
)

// Session board layout constants
const (
	minWidthForProfile = 100 // Minimum width to show the profile panel
	profileWidth       = 30  // Width of the profile panel
	maxSessions        = 50  // Max sessions to load per arena
)

// SessionBoardKeyMap defines the key bindings for the session board.
type SessionBoardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SessionBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultSessionBoardKeyMap returns default key bindings.
func DefaultSessionBoardKeyMap() SessionBoardKeyMap {
	return SessionBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next arena"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev arena"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionBoardModel is the Bubble Tea model for the session history screen.
type SessionBoardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	sessions    []telemetry.SessionSummary
	table       table.Model
	help        help.Model
	keys        SessionBoardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showProfile bool
}

// NewSessionBoardModel creates a new session board model.
func NewSessionBoardModel(store *storage.Store, width, height int) SessionBoardModel {
	keys := DefaultSessionBoardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := SessionBoardModel{
		games:       registry.List(),
		gameCursor:  0,
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showProfile: width >= minWidthForProfile,
	}

	m.table = m.createTable()

	if len(m.games) > 0 {
		m.loadSessions(m.games[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *SessionBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 7},
		{Title: "Acc", Width: 6},
		{Title: "React", Width: 7},
		{Title: "Drifts", Width: 6},
		{Title: "", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSessions loads recent sessions for the given arena.
func (m *SessionBoardModel) loadSessions(gameID string) {
	if m.store == nil {
		m.sessions = nil
		m.updateTableRows()
		return
	}

	sessions, err := m.store.RecentSummaries(gameID, maxSessions)
	if err != nil {
		m.sessions = nil
	} else {
		m.sessions = sessions
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current sessions.
func (m *SessionBoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		partial := ""
		if s.Partial {
			partial = "partial"
		}
		rows[i] = table.Row{
			s.StartedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", s.Score),
			formatDuration(s.DurationMS),
			fmt.Sprintf("%.0f%%", s.Shots.Accuracy*100),
			fmt.Sprintf("%dms", s.Reactions.MeanMS),
			fmt.Sprintf("%d", s.Drift.Count),
			partial,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders milliseconds as m:ss.
func formatDuration(ms int) string {
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Init initializes the session board model.
func (m SessionBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session board.
func (m SessionBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadSessions(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor--
				if m.gameCursor < 0 {
					m.gameCursor = len(m.games) - 1
				}
				m.loadSessions(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showProfile = m.width >= minWidthForProfile
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the session board.
func (m SessionBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "SESSIONS"
	if len(m.games) > 0 {
		title = fmt.Sprintf("SESSIONS - %s", m.games[m.gameCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showProfile {
		profileRendered := m.renderProfile()
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", profileRendered))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m SessionBoardModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay an arena to record one!")
	}

	return m.table.View()
}

// renderProfile shows the behavior profile of the highlighted session.
func (m SessionBoardModel) renderProfile() string {
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(profileWidth).
		Padding(0, 1)

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.sessions) {
		return panelStyle.Render("Profile\n\nNo session selected.")
	}

	p := m.sessions[idx].Profile

	var b strings.Builder
	b.WriteString("Profile\n")
	b.WriteString(strings.Repeat("-", profileWidth-4))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Reaction mean  %6.0f ms\n", p.ReactionMeanMS)
	fmt.Fprintf(&b, "Reaction best  %6.0f ms\n", p.ReactionBestMS)
	fmt.Fprintf(&b, "Shot accuracy  %6.1f %%\n", p.ShotAccuracy*100)
	fmt.Fprintf(&b, "Shots/min      %6.1f\n", p.ShotsPerMin)
	fmt.Fprintf(&b, "Moves/min      %6.1f\n", p.MovesPerMin)
	fmt.Fprintf(&b, "Drifts         %6.0f\n", p.DriftCount)
	fmt.Fprintf(&b, "Recovery mean  %6.0f ms\n", p.RecoveryMeanMS)
	fmt.Fprintf(&b, "Mode switches  %6.2f/m\n", p.ModeSwitchRate)

	return panelStyle.Render(b.String())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SessionBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SessionBoardModel) IsQuitting() bool {
	return m.quitting
}

// RunSessionBoard runs the session history screen.
// Returns true if user wants to go back to the menu, false if quitting.
func RunSessionBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewSessionBoardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SessionBoardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
