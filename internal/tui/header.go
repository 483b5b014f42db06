package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the top bar: brand, view name, and collection counts.
type Header struct {
	width   int
	view    string
	total   int
	open    int
	blocked int
}

// NewHeader creates a new header component.
func NewHeader() Header {
	return Header{view: "all"}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetView updates the displayed view name.
func (h *Header) SetView(view string) {
	h.view = view
}

// SetCounts updates the collection counters.
func (h *Header) SetCounts(total, open, blocked int) {
	h.total = total
	h.open = open
	h.blocked = blocked
}

// View renders the header.
func (h Header) View() string {
	brand := headerBrandStyle.Render("braid")
	view := headerViewStyle.Render(h.view)
	stats := headerStatsStyle.Render(fmt.Sprintf("%d issues · %d open · %d blocked", h.total, h.open, h.blocked))

	line := lipgloss.JoinHorizontal(lipgloss.Top, brand, view, stats)
	if pad := h.width - lipgloss.Width(line); pad > 0 {
		line += headerStatsStyle.Render(strings.Repeat(" ", pad))
	}
	return line
}
