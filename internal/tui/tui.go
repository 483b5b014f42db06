// Package tui provides the Bubbletea-based live issue view for braid.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/braid/internal/store"
)

// viewMode selects which slice of the collection is displayed.
type viewMode int

const (
	viewAll viewMode = iota
	viewReady
	viewBlocked
)

func (v viewMode) String() string {
	switch v {
	case viewReady:
		return "ready"
	case viewBlocked:
		return "blocked"
	default:
		return "all"
	}
}

// Model is the main Bubbletea model for braid watch.
type Model struct {
	// Window dimensions
	width  int
	height int

	// UI state
	ready bool
	view  viewMode

	// Components
	header Header
	list   IssueList

	// Store is shared with the reconciler goroutine; reads go through
	// its snapshot methods, never cached slices.
	store *store.Store

	// Spinner animation frame counter
	spinnerFrame int

	keys KeyBindings
}

// New creates a new watch model over the shared store.
func New(s *store.Store) Model {
	return Model{
		header: NewHeader(),
		list:   NewIssueList(),
		store:  s,
		keys:   DefaultKeyBindings(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.header.View(), m.list.View(), m.helpView())
}

func (m Model) helpView() string {
	return statusStyle.Render("j/k move · a all · r ready · b blocked · q quit")
}

// NewProgram wraps the model in a Bubbletea program. The caller wires
// store change notifications to Send and then calls Run.
func NewProgram(s *store.Store) *tea.Program {
	return tea.NewProgram(New(s), tea.WithAltScreen())
}
