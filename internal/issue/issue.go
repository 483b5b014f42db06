// Package issue defines the issue and dependency data model shared by
// the store, the dependency resolver, and the backend wire format.
package issue

import (
	"fmt"
	"time"
)

// Status represents the workflow state of an issue.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusClosed:
		return true
	}
	return false
}

// Type categorizes the kind of work an issue represents.
type Type string

const (
	TypeBug     Type = "bug"
	TypeFeature Type = "feature"
	TypeTask    Type = "task"
	TypeEpic    Type = "epic"
	TypeChore   Type = "chore"
)

// Valid reports whether t is a known issue type.
func (t Type) Valid() bool {
	switch t {
	case TypeBug, TypeFeature, TypeTask, TypeEpic, TypeChore:
		return true
	}
	return false
}

// DependencyType categorizes the relationship between two issues.
// Only DepBlocks participates in readiness and blocked computation;
// the other types are informational.
type DependencyType string

const (
	DepBlocks         DependencyType = "blocks"
	DepRelated        DependencyType = "related"
	DepParentChild    DependencyType = "parent-child"
	DepDiscoveredFrom DependencyType = "discovered-from"
)

// Valid reports whether d is a known dependency type.
func (d DependencyType) Valid() bool {
	switch d {
	case DepBlocks, DepRelated, DepParentChild, DepDiscoveredFrom:
		return true
	}
	return false
}

// MinPriority and MaxPriority bound the priority scale. 0 is most urgent.
const (
	MinPriority = 0
	MaxPriority = 4
)

// Dependency is a directed edge owned by its source issue: IssueID
// depends on DependsOnID.
type Dependency struct {
	IssueID     string         `json:"issue_id"`
	DependsOnID string         `json:"depends_on_id"`
	Type        DependencyType `json:"type"`
	CreatedAt   time.Time      `json:"created_at,omitempty"`
	CreatedBy   string         `json:"created_by,omitempty"`
}

// Issue is the unit of work tracked by the backend.
//
// Dependents are deliberately absent: they are a derived view computed
// by scanning all issues for edges targeting this one (see the graph
// package), never stored.
type Issue struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description,omitempty"`
	Design             string       `json:"design,omitempty"`
	AcceptanceCriteria string       `json:"acceptance_criteria,omitempty"`
	Notes              string       `json:"notes,omitempty"`
	Status             Status       `json:"status"`
	Priority           int          `json:"priority"` // no omitempty: 0 is valid (most urgent)
	IssueType          Type         `json:"issue_type"`
	Assignee           string       `json:"assignee,omitempty"`
	EstimatedMinutes   *int         `json:"estimated_minutes,omitempty"`
	Labels             []string     `json:"labels,omitempty"`
	ExternalRef        string       `json:"external_ref,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
	ClosedAt           *time.Time   `json:"closed_at,omitempty"`
	Dependencies       []Dependency `json:"dependencies,omitempty"`
}

// Clone returns a deep copy of the issue. Slice and pointer fields are
// copied so mutations on the clone never alias the original — snapshot
// and rollback in the mutator depend on this.
func (i Issue) Clone() Issue {
	out := i
	if i.EstimatedMinutes != nil {
		v := *i.EstimatedMinutes
		out.EstimatedMinutes = &v
	}
	if i.ClosedAt != nil {
		t := *i.ClosedAt
		out.ClosedAt = &t
	}
	if i.Labels != nil {
		out.Labels = append([]string(nil), i.Labels...)
	}
	if i.Dependencies != nil {
		out.Dependencies = append([]Dependency(nil), i.Dependencies...)
	}
	return out
}

// DependsOn reports whether the issue already carries an edge to
// dependsOnID, regardless of edge type.
func (i Issue) DependsOn(dependsOnID string) bool {
	for _, d := range i.Dependencies {
		if d.DependsOnID == dependsOnID {
			return true
		}
	}
	return false
}

// AsCreateParams projects the issue's caller-supplied fields, for
// re-creating the record on another backend.
func (i Issue) AsCreateParams() CreateParams {
	return CreateParams{
		Title:              i.Title,
		Description:        i.Description,
		Design:             i.Design,
		AcceptanceCriteria: i.AcceptanceCriteria,
		Notes:              i.Notes,
		IssueType:          i.IssueType,
		Priority:           i.Priority,
		Assignee:           i.Assignee,
		EstimatedMinutes:   i.EstimatedMinutes,
		Labels:             append([]string(nil), i.Labels...),
		ExternalRef:        i.ExternalRef,
	}
}

// SetStatus transitions the issue to a new status and maintains the
// ClosedAt invariant: set exactly when entering closed, cleared when
// leaving it.
func (i *Issue) SetStatus(s Status, now time.Time) {
	if s == StatusClosed && i.Status != StatusClosed {
		t := now
		i.ClosedAt = &t
	}
	if s != StatusClosed {
		i.ClosedAt = nil
	}
	i.Status = s
}

// CreateParams are the caller-supplied fields for a new issue.
type CreateParams struct {
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Design             string   `json:"design,omitempty"`
	AcceptanceCriteria string   `json:"acceptance_criteria,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	IssueType          Type     `json:"issue_type,omitempty"`
	Priority           int      `json:"priority"`
	Assignee           string   `json:"assignee,omitempty"`
	EstimatedMinutes   *int     `json:"estimated_minutes,omitempty"`
	Labels             []string `json:"labels,omitempty"`
	ExternalRef        string   `json:"external_ref,omitempty"`
}

// Validate checks the params before any store mutation or request.
func (p CreateParams) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Priority < MinPriority || p.Priority > MaxPriority {
		return fmt.Errorf("priority %d out of range [%d,%d]", p.Priority, MinPriority, MaxPriority)
	}
	if p.IssueType != "" && !p.IssueType.Valid() {
		return fmt.Errorf("unknown issue type %q", p.IssueType)
	}
	if p.EstimatedMinutes != nil && *p.EstimatedMinutes < 0 {
		return fmt.Errorf("estimated_minutes must be non-negative")
	}
	return nil
}

// New builds a tentative issue from create params. The caller supplies
// the id (see the ident package) and the creation timestamp.
func New(id string, p CreateParams, now time.Time) Issue {
	issueType := p.IssueType
	if issueType == "" {
		issueType = TypeTask
	}
	return Issue{
		ID:                 id,
		Title:              p.Title,
		Description:        p.Description,
		Design:             p.Design,
		AcceptanceCriteria: p.AcceptanceCriteria,
		Notes:              p.Notes,
		Status:             StatusOpen,
		Priority:           p.Priority,
		IssueType:          issueType,
		Assignee:           p.Assignee,
		EstimatedMinutes:   p.EstimatedMinutes,
		Labels:             append([]string(nil), p.Labels...),
		ExternalRef:        p.ExternalRef,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
