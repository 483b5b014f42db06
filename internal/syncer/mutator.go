// Package syncer keeps the local store consistent with the backend:
// the Mutator applies optimistic local changes and reconciles them
// with the backend's responses, and the Reconciler merges pushed
// events from other clients.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tessro/braid/internal/backend"
	"github.com/tessro/braid/internal/graph"
	"github.com/tessro/braid/internal/ident"
	"github.com/tessro/braid/internal/issue"
	"github.com/tessro/braid/internal/store"
)

// ErrNotFound is returned when a mutation targets an id the local
// collection does not contain.
var ErrNotFound = errors.New("issue not found")

// Mutator applies every mutating intent optimistically: the store is
// updated first so observers see the change with zero latency, then
// the backend is asked to confirm. A rejection restores the exact
// pre-mutation state. Mutations are never retried automatically.
type Mutator struct {
	store   *store.Store
	backend backend.Backend
	prefix  string

	// now is replaceable for tests.
	now func() time.Time

	mu sync.Mutex
	// +checklocks:mu
	lastErr error
}

// NewMutator creates a mutator. prefix is used to allocate tentative
// ids when the backend has not assigned one yet (empty means
// ident.DefaultPrefix).
func NewMutator(s *store.Store, b backend.Backend, prefix string) *Mutator {
	if prefix == "" {
		prefix = ident.DefaultPrefix
	}
	return &Mutator{store: s, backend: b, prefix: prefix, now: time.Now}
}

// LastError returns the most recent mutation failure. It is retained
// until the next successful operation clears it; there is no error
// history.
func (m *Mutator) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// ClearError drops the retained error.
func (m *Mutator) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = nil
}

func (m *Mutator) fail(err error) error {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
	return err
}

func (m *Mutator) succeed() {
	m.mu.Lock()
	m.lastErr = nil
	m.mu.Unlock()
}

// Create inserts a tentative issue with a locally-allocated id, then
// asks the backend to persist it. On confirm the authoritative record
// replaces the tentative one — including under a different id when the
// backend assigns its own. On rejection only the tentative record is
// removed; the rest of the collection is untouched.
func (m *Mutator) Create(ctx context.Context, params issue.CreateParams) (issue.Issue, error) {
	if err := params.Validate(); err != nil {
		// Local validation failures never mutate the store.
		return issue.Issue{}, m.fail(err)
	}

	existing := m.store.List()
	tentativeID := ident.Next(m.prefix, collectIDs(existing))
	tentative := issue.New(tentativeID, params, m.now())
	m.store.Upsert(tentative)

	confirmed, err := m.backend.Create(ctx, params)
	if err != nil {
		m.store.Remove(tentativeID)
		return issue.Issue{}, m.fail(err)
	}

	// The backend may have re-keyed the record. Drop the tentative id
	// first so exactly one record remains; Upsert merges rather than
	// duplicates if the push channel already delivered the creation.
	if confirmed.ID != tentativeID {
		m.store.Remove(tentativeID)
	}
	m.store.Upsert(confirmed)
	m.succeed()
	return confirmed, nil
}

// Update applies a partial update optimistically and confirms it with
// the backend. The backend's response is authoritative and overwrites
// the locally-patched record.
func (m *Mutator) Update(ctx context.Context, id string, patch issue.Patch) (issue.Issue, error) {
	if err := patch.Validate(); err != nil {
		return issue.Issue{}, m.fail(err)
	}

	before, ok := m.store.Get(id)
	if !ok {
		return issue.Issue{}, m.fail(fmt.Errorf("%w: %s", ErrNotFound, id))
	}

	m.store.Patch(id, patch, m.now())

	confirmed, err := m.backend.Update(ctx, id, patch)
	if err != nil {
		m.store.Upsert(before)
		return issue.Issue{}, m.fail(err)
	}

	m.store.Upsert(confirmed)
	m.succeed()
	return confirmed, nil
}

// Close transitions an issue to closed. Distinct from a generic
// update: the backend call is advisory (the record is kept, only
// status and closed_at move) and carries no body.
func (m *Mutator) Close(ctx context.Context, id string) (issue.Issue, error) {
	before, ok := m.store.Get(id)
	if !ok {
		return issue.Issue{}, m.fail(fmt.Errorf("%w: %s", ErrNotFound, id))
	}

	status := issue.StatusClosed
	m.store.Patch(id, issue.Patch{Status: &status}, m.now())

	confirmed, err := m.backend.Close(ctx, id)
	if err != nil {
		m.store.Upsert(before)
		return issue.Issue{}, m.fail(err)
	}

	m.store.Upsert(confirmed)
	m.succeed()
	return confirmed, nil
}

// AddDependency validates a new edge from -> to against the full local
// graph, then commits it as a dependency-list patch. Constraint
// violations are rejected before any request is sent and never touch
// the store.
func (m *Mutator) AddDependency(ctx context.Context, from, to string, depType issue.DependencyType, createdBy string) (issue.Issue, error) {
	if !depType.Valid() {
		return issue.Issue{}, m.fail(fmt.Errorf("unknown dependency type %q", depType))
	}
	if err := graph.CheckEdge(m.store.List(), from, to, depType); err != nil {
		return issue.Issue{}, m.fail(err)
	}

	source, _ := m.store.Get(from)
	deps := append(append([]issue.Dependency(nil), source.Dependencies...), issue.Dependency{
		IssueID:     from,
		DependsOnID: to,
		Type:        depType,
		CreatedAt:   m.now(),
		CreatedBy:   createdBy,
	})
	return m.Update(ctx, from, issue.Patch{Dependencies: deps})
}

func collectIDs(issues []issue.Issue) []string {
	ids := make([]string, len(issues))
	for i, iss := range issues {
		ids[i] = iss.ID
	}
	return ids
}
