package issue

import (
	"fmt"
	"time"
)

// Patch is an explicit partial update. Nil fields mean "no change".
// The set of legal fields is fixed by the struct — there is no way to
// smuggle an unknown field through it.
type Patch struct {
	Title              *string      `json:"title,omitempty"`
	Description        *string      `json:"description,omitempty"`
	Design             *string      `json:"design,omitempty"`
	AcceptanceCriteria *string      `json:"acceptance_criteria,omitempty"`
	Notes              *string      `json:"notes,omitempty"`
	Status             *Status      `json:"status,omitempty"`
	Priority           *int         `json:"priority,omitempty"`
	IssueType          *Type        `json:"issue_type,omitempty"`
	Assignee           *string      `json:"assignee,omitempty"`
	EstimatedMinutes   *int         `json:"estimated_minutes,omitempty"`
	Labels             []string     `json:"labels,omitempty"`       // nil = no change
	ExternalRef        *string      `json:"external_ref,omitempty"`
	Dependencies       []Dependency `json:"dependencies,omitempty"` // nil = no change
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Design == nil &&
		p.AcceptanceCriteria == nil && p.Notes == nil && p.Status == nil &&
		p.Priority == nil && p.IssueType == nil && p.Assignee == nil &&
		p.EstimatedMinutes == nil && p.Labels == nil && p.ExternalRef == nil &&
		p.Dependencies == nil
}

// Validate checks every set field against the same rules as creation.
func (p Patch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("unknown status %q", *p.Status)
	}
	if p.Priority != nil && (*p.Priority < MinPriority || *p.Priority > MaxPriority) {
		return fmt.Errorf("priority %d out of range [%d,%d]", *p.Priority, MinPriority, MaxPriority)
	}
	if p.IssueType != nil && !p.IssueType.Valid() {
		return fmt.Errorf("unknown issue type %q", *p.IssueType)
	}
	if p.EstimatedMinutes != nil && *p.EstimatedMinutes < 0 {
		return fmt.Errorf("estimated_minutes must be non-negative")
	}
	for _, d := range p.Dependencies {
		if !d.Type.Valid() {
			return fmt.Errorf("unknown dependency type %q", d.Type)
		}
	}
	return nil
}

// Apply mutates target with every set field and advances UpdatedAt to
// now. A status change through the patch maintains the ClosedAt
// invariant via SetStatus.
func (p Patch) Apply(target *Issue, now time.Time) {
	if p.Title != nil {
		target.Title = *p.Title
	}
	if p.Description != nil {
		target.Description = *p.Description
	}
	if p.Design != nil {
		target.Design = *p.Design
	}
	if p.AcceptanceCriteria != nil {
		target.AcceptanceCriteria = *p.AcceptanceCriteria
	}
	if p.Notes != nil {
		target.Notes = *p.Notes
	}
	if p.Status != nil {
		target.SetStatus(*p.Status, now)
	}
	if p.Priority != nil {
		target.Priority = *p.Priority
	}
	if p.IssueType != nil {
		target.IssueType = *p.IssueType
	}
	if p.Assignee != nil {
		target.Assignee = *p.Assignee
	}
	if p.EstimatedMinutes != nil {
		v := *p.EstimatedMinutes
		target.EstimatedMinutes = &v
	}
	if p.Labels != nil {
		target.Labels = append([]string(nil), p.Labels...)
	}
	if p.ExternalRef != nil {
		target.ExternalRef = *p.ExternalRef
	}
	if p.Dependencies != nil {
		target.Dependencies = append([]Dependency(nil), p.Dependencies...)
	}
	target.UpdatedAt = now
}
