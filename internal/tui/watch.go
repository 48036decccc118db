// Package tui provides the terminal user interface for loom.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loomhq/loom/internal/state"
)

// SessionLister supplies the sessions shown by the watch view.
// This allows decoupling from the concrete state.DB.
type SessionLister interface {
	ListSessions(status *state.SessionStatus) ([]state.Session, error)
}

// tickMsg triggers a session refresh.
type tickMsg time.Time

// sessionsMsg carries a refreshed session list.
type sessionsMsg struct {
	sessions []state.Session
	err      error
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	beadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = map[state.SessionStatus]lipgloss.Style{
		state.SessionActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		state.SessionPaused:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		state.SessionCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		state.SessionAbandoned: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// WatchModel is the bubbletea model for `loom watch`: a live list of
// workstream sessions refreshed on a fixed interval.
type WatchModel struct {
	lister   SessionLister
	interval time.Duration

	spinner  spinner.Model
	sessions []state.Session
	err      error
	width    int
}

// NewWatchModel creates a watch model refreshing from lister every interval.
func NewWatchModel(lister SessionLister, interval time.Duration) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return WatchModel{
		lister:   lister,
		interval: interval,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh, m.tick())
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refresh
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		return m, tea.Batch(m.refresh, m.tick())
	case sessionsMsg:
		m.sessions = msg.sessions
		m.err = msg.err
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var out string
	out += headerStyle.Render("loom sessions") + " " + m.spinner.View() + "\n\n"

	if m.err != nil {
		out += fmt.Sprintf("error: %v\n", m.err)
		return out
	}
	if len(m.sessions) == 0 {
		out += dimStyle.Render("no sessions yet, run `loom start`") + "\n"
		return out
	}

	for _, s := range m.sessions {
		style, ok := statusStyle[s.Status]
		if !ok {
			style = dimStyle
		}
		out += fmt.Sprintf("%s  %-10s %s\n",
			beadStyle.Render(s.BeadID),
			style.Render(string(s.Status)),
			s.Branch)
		if s.PRURL != "" {
			out += dimStyle.Render("      "+s.PRURL+" ("+s.ReviewState+")") + "\n"
		}
	}

	out += "\n" + dimStyle.Render("q: quit  r: refresh") + "\n"
	return out
}

// refresh loads the session list.
func (m WatchModel) refresh() tea.Msg {
	sessions, err := m.lister.ListSessions(nil)
	return sessionsMsg{sessions: sessions, err: err}
}

// tick schedules the next refresh.
func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
