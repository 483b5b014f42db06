// Package store owns the in-process issue collection and the active
// filter state. It is the only component that mutates issue records;
// the optimistic mutator and the push reconciler both go through it.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/tessro/braid/internal/event"
	"github.com/tessro/braid/internal/issue"
)

// ChangeKind identifies what a store notification describes.
type ChangeKind string

const (
	ChangeUpsert  ChangeKind = "upsert"
	ChangeRemove  ChangeKind = "remove"
	ChangeReplace ChangeKind = "replace"
	ChangeFilters ChangeKind = "filters"
)

// Change is emitted after every committed store mutation. ID is empty
// for collection-wide changes (replace, filters).
type Change struct {
	Kind ChangeKind
	ID   string
}

// Filters is the active filter predicate set. Zero-value fields mean
// "no filter"; all set fields must match (AND semantics). Priority is
// a pointer to distinguish "no filter" from "priority 0".
type Filters struct {
	Status   issue.Status
	Type     issue.Type
	Priority *int
	Assignee string
	Label    string
	Query    string
}

// FilterPatch is a partial filter update. Nil fields leave the current
// value untouched.
type FilterPatch struct {
	Status   *issue.Status
	Type     *issue.Type
	Priority **int
	Assignee *string
	Label    *string
	Query    *string
}

// Store holds the issue collection, keyed by id with insertion order
// preserved for display. Guarded by a mutex: the CLI's request path
// and the reconciler goroutine interleave on it.
type Store struct {
	mu sync.RWMutex
	// +checklocks:mu
	issues []issue.Issue
	// +checklocks:mu
	index map[string]int
	// +checklocks:mu
	filters Filters

	changes event.Emitter[Change]
}

// New returns an empty store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// OnChange registers a handler for store change notifications and
// returns a cancel function. Handlers run synchronously after the
// mutation commits, outside the store lock.
func (s *Store) OnChange(handler func(Change)) (cancel func()) {
	return s.changes.Subscribe(handler)
}

// Len returns the number of issues.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issues)
}

// List returns a deep-copied snapshot of the collection in insertion
// order. Callers may mutate the result freely.
func (s *Store) List() []issue.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneAll()
}

// Snapshot is List under a name that states its purpose: the mutator
// captures one before every tentative change so rollback can restore
// the exact pre-mutation collection.
func (s *Store) Snapshot() []issue.Issue {
	return s.List()
}

// Get returns a deep copy of a single issue.
func (s *Store) Get(id string) (issue.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return issue.Issue{}, false
	}
	return s.issues[i].Clone(), true
}

// ReplaceAll swaps the full collection, used after a fresh load from
// the backend or a snapshot file.
func (s *Store) ReplaceAll(issues []issue.Issue) {
	s.mu.Lock()
	s.issues = make([]issue.Issue, 0, len(issues))
	s.index = make(map[string]int, len(issues))
	for _, iss := range issues {
		if _, dup := s.index[iss.ID]; dup {
			continue // first occurrence wins; ids are unique by invariant
		}
		s.index[iss.ID] = len(s.issues)
		s.issues = append(s.issues, iss.Clone())
	}
	s.mu.Unlock()

	s.changes.Emit(Change{Kind: ChangeReplace})
}

// Upsert inserts the issue if its id is unknown, else overwrites the
// existing record in place. Used by both the reconciliation path and
// the optimistic confirm path; overwriting rather than merging is what
// makes the later-applied authoritative record win.
func (s *Store) Upsert(iss issue.Issue) {
	s.mu.Lock()
	if i, ok := s.index[iss.ID]; ok {
		s.issues[i] = iss.Clone()
	} else {
		s.index[iss.ID] = len(s.issues)
		s.issues = append(s.issues, iss.Clone())
	}
	s.mu.Unlock()

	s.changes.Emit(Change{Kind: ChangeUpsert, ID: iss.ID})
}

// Patch applies a partial update if the id exists. An unknown id is a
// no-op, not an error: a patch may race a close or removal that
// happened elsewhere. Returns whether anything was applied.
func (s *Store) Patch(id string, p issue.Patch, now time.Time) bool {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	target := s.issues[i].Clone()
	p.Apply(&target, now)
	s.issues[i] = target
	s.mu.Unlock()

	s.changes.Emit(Change{Kind: ChangeUpsert, ID: id})
	return true
}

// Remove deletes an issue by id. Used by the optimistic-create
// rollback path (undoing a tentative insert) and by legacy deleted
// push events. No-op if the id is unknown.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.issues = append(s.issues[:i], s.issues[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.issues); j++ {
		s.index[s.issues[j].ID] = j
	}
	s.mu.Unlock()

	s.changes.Emit(Change{Kind: ChangeRemove, ID: id})
}

// SetFilters applies a partial filter update. Pure state change, no
// side effects beyond the change notification.
func (s *Store) SetFilters(p FilterPatch) {
	s.mu.Lock()
	if p.Status != nil {
		s.filters.Status = *p.Status
	}
	if p.Type != nil {
		s.filters.Type = *p.Type
	}
	if p.Priority != nil {
		s.filters.Priority = *p.Priority
	}
	if p.Assignee != nil {
		s.filters.Assignee = *p.Assignee
	}
	if p.Label != nil {
		s.filters.Label = *p.Label
	}
	if p.Query != nil {
		s.filters.Query = *p.Query
	}
	s.mu.Unlock()

	s.changes.Emit(Change{Kind: ChangeFilters})
}

// ClearFilters resets the filter set to match everything.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.filters = Filters{}
	s.mu.Unlock()

	s.changes.Emit(Change{Kind: ChangeFilters})
}

// Filters returns the active filter set.
func (s *Store) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.filters
	if f.Priority != nil {
		v := *f.Priority
		f.Priority = &v
	}
	return f
}

// Filtered returns the issues matching the active filter set, in
// insertion order.
func (s *Store) Filtered() []issue.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []issue.Issue
	for _, iss := range s.issues {
		if matches(iss, s.filters) {
			result = append(result, iss.Clone())
		}
	}
	return result
}

func matches(iss issue.Issue, f Filters) bool {
	if f.Status != "" && iss.Status != f.Status {
		return false
	}
	if f.Type != "" && iss.IssueType != f.Type {
		return false
	}
	if f.Priority != nil && iss.Priority != *f.Priority {
		return false
	}
	if f.Assignee != "" && iss.Assignee != f.Assignee {
		return false
	}
	if f.Label != "" && !containsLabel(iss.Labels, f.Label) {
		return false
	}
	if f.Query != "" && !matchesQuery(iss, f.Query) {
		return false
	}
	return true
}

// matchesQuery does a case-insensitive substring match against the
// issue's title and description.
func matchesQuery(iss issue.Issue, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(iss.Title), q) ||
		strings.Contains(strings.ToLower(iss.Description), q)
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// +checklocks:s.mu
func (s *Store) cloneAll() []issue.Issue {
	out := make([]issue.Issue, len(s.issues))
	for i, iss := range s.issues {
		out[i] = iss.Clone()
	}
	return out
}
