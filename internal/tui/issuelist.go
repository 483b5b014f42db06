package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/tessro/braid/internal/issue"
)

// Spinner frames for the in-progress indicator
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// IssueList displays a navigable list of issues.
type IssueList struct {
	width        int
	height       int
	issues       []issue.Issue
	selected     int
	spinnerFrame int
}

// NewIssueList creates a new issue list component.
func NewIssueList() IssueList {
	return IssueList{}
}

// SetSize updates the component dimensions.
func (l *IssueList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetIssues replaces the displayed issues, clamping the selection if
// the list shrank.
func (l *IssueList) SetIssues(issues []issue.Issue) {
	l.issues = issues
	if l.selected >= len(issues) {
		l.selected = len(issues) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// SetSpinnerFrame updates the current spinner animation frame.
func (l *IssueList) SetSpinnerFrame(frame int) {
	l.spinnerFrame = frame
}

// Selected returns the currently selected issue, or nil if the list is
// empty.
func (l *IssueList) Selected() *issue.Issue {
	if len(l.issues) == 0 || l.selected >= len(l.issues) {
		return nil
	}
	return &l.issues[l.selected]
}

// MoveUp moves the selection up one row.
func (l *IssueList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down one row.
func (l *IssueList) MoveDown() {
	if l.selected < len(l.issues)-1 {
		l.selected++
	}
}

// MoveTop moves the selection to the first row.
func (l *IssueList) MoveTop() {
	l.selected = 0
}

// MoveBottom moves the selection to the last row.
func (l *IssueList) MoveBottom() {
	if len(l.issues) > 0 {
		l.selected = len(l.issues) - 1
	}
}

// View renders the issue list.
func (l IssueList) View() string {
	if len(l.issues) == 0 {
		return issueListEmptyStyle.Render("No issues")
	}

	// Keep the selection visible inside the scroll window.
	rows := l.height
	if rows < 1 {
		rows = len(l.issues)
	}
	start := 0
	if l.selected >= rows {
		start = l.selected - rows + 1
	}
	end := start + rows
	if end > len(l.issues) {
		end = len(l.issues)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		iss := l.issues[i]
		row := fmt.Sprintf("%s %s P%d %s %s",
			l.statusIndicator(iss.Status),
			issueIDStyle.Render(iss.ID),
			iss.Priority,
			statusStyleFor(iss.Status).Render(string(iss.Status)),
			issueTitleStyle.Render(iss.Title),
		)
		if l.width > 0 {
			row = truncate.StringWithTail(row, uint(l.width), "…")
		}
		if i == l.selected {
			row = issueRowSelectedStyle.Render(row)
		} else {
			row = issueRowStyle.Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (l IssueList) statusIndicator(s issue.Status) string {
	switch s {
	case issue.StatusInProgress:
		return spinnerFrames[l.spinnerFrame%len(spinnerFrames)]
	case issue.StatusClosed:
		return "✓"
	case issue.StatusBlocked:
		return "✗"
	default:
		return "·"
	}
}

func statusStyleFor(s issue.Status) lipgloss.Style {
	switch s {
	case issue.StatusOpen:
		return statusOpenStyle
	case issue.StatusInProgress:
		return statusInProgressStyle
	case issue.StatusBlocked:
		return statusBlockedStyle
	default:
		return statusClosedStyle
	}
}
