package cli

import (
	"context"
	"fmt"

	"github.com/tessro/braid/internal/backend"
	"github.com/tessro/braid/internal/issue"
	"github.com/tessro/braid/internal/store"
	"github.com/tessro/braid/internal/syncer"
)

// newClient constructs the HTTP backend client from the effective
// config.
func newClient() *backend.Client {
	return backend.NewClient(cfg.GetBackendURL())
}

// loadStore fetches the full collection into a fresh store. Commands
// that mutate or resolve dependencies locally start here.
func loadStore(ctx context.Context, c *backend.Client) (*store.Store, error) {
	issues, err := c.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}
	s := store.New()
	s.ReplaceAll(issues)
	return s, nil
}

// loadSnapshotStore reads the collection from the local NDJSON
// snapshot instead of the backend.
func loadSnapshotStore() (*store.Store, error) {
	path, err := cfg.GetSnapshotPath()
	if err != nil {
		return nil, err
	}
	issues, err := backend.ReadSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	s := store.New()
	s.ReplaceAll(issues)
	return s, nil
}

// newMutator wires a mutator over a freshly loaded store. Returns the
// store too so callers can inspect the post-mutation collection.
func newMutator(ctx context.Context) (*syncer.Mutator, *store.Store, error) {
	c := newClient()
	s, err := loadStore(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return syncer.NewMutator(s, c, cfg.GetIDPrefix()), s, nil
}

// parseStatus validates a status flag value.
func parseStatus(v string) (issue.Status, error) {
	s := issue.Status(v)
	switch s {
	case issue.StatusOpen, issue.StatusInProgress, issue.StatusBlocked, issue.StatusClosed:
		return s, nil
	}
	return "", fmt.Errorf("invalid status %q (open, in_progress, blocked, closed)", v)
}

// parseType validates a type flag value.
func parseType(v string) (issue.Type, error) {
	t := issue.Type(v)
	switch t {
	case issue.TypeBug, issue.TypeFeature, issue.TypeTask, issue.TypeEpic, issue.TypeChore:
		return t, nil
	}
	return "", fmt.Errorf("invalid type %q (bug, feature, task, epic, chore)", v)
}
