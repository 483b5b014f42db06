package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/braid/internal/graph"
	"github.com/tessro/braid/internal/issue"
)

// tickInterval drives the spinner animation.
const tickInterval = 100 * time.Millisecond

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.list.MoveUp()
		case key.Matches(msg, m.keys.Down):
			m.list.MoveDown()
		case key.Matches(msg, m.keys.Top):
			m.list.MoveTop()
		case key.Matches(msg, m.keys.Bottom):
			m.list.MoveBottom()
		case key.Matches(msg, m.keys.ViewAll):
			m.view = viewAll
			m.refresh()
		case key.Matches(msg, m.keys.ViewReady):
			m.view = viewReady
			m.refresh()
		case key.Matches(msg, m.keys.ViewBlocked):
			m.view = viewBlocked
			m.refresh()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		// Header and help bar each take one line.
		m.list.SetSize(msg.Width, msg.Height-2)
		if !m.ready {
			m.ready = true
			m.refresh()
		}
		return m, nil

	case StoreChangedMsg:
		m.refresh()
		return m, nil

	case tickMsg:
		m.spinnerFrame++
		m.list.SetSpinnerFrame(m.spinnerFrame)
		return m, m.tickCmd()
	}

	return m, nil
}

// refresh recomputes the visible issue slice from the store.
func (m *Model) refresh() {
	all := m.store.List()

	var visible []issue.Issue
	switch m.view {
	case viewReady:
		visible = graph.Ready(all)
	case viewBlocked:
		visible = graph.Blocked(all)
	default:
		visible = all
	}
	m.list.SetIssues(visible)

	open := 0
	for _, iss := range all {
		if iss.Status != issue.StatusClosed {
			open++
		}
	}
	m.header.SetView(m.view.String())
	m.header.SetCounts(len(all), open, len(graph.Blocked(all)))
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
