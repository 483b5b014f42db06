// Package backend defines the boundary to the authoritative issue
// service: a request/response HTTP surface, a streamed push channel,
// and a newline-delimited JSON snapshot fallback.
package backend

import (
	"context"

	"github.com/tessro/braid/internal/issue"
)

// EventType identifies a push channel message.
type EventType string

const (
	EventCreated EventType = "issue:created"
	EventUpdated EventType = "issue:updated"
	// EventDeleted is legacy: normal close flow never deletes, but the
	// message kind is kept for backward compatibility.
	EventDeleted EventType = "issue:deleted"
	// EventRefresh carries no payload and signals an out-of-band
	// external change; subscribers must reload the full collection.
	EventRefresh EventType = "issues:refresh"
)

// Event is the push channel envelope. Data is nil for refresh events.
type Event struct {
	Type EventType    `json:"type"`
	Data *issue.Issue `json:"data,omitempty"`
}

// Backend is the interface to the authoritative issue service. All
// blocking operations take a context.
type Backend interface {
	// List returns the full collection. When includeDeps is set the
	// server also populates derived dependent edges where it supports
	// them; the client-side resolver never relies on that.
	List(ctx context.Context, includeDeps bool) ([]issue.Issue, error)

	// Get returns a single record.
	Get(ctx context.Context, id string) (issue.Issue, error)

	// Create persists a new issue and returns the authoritative
	// record: the server may normalize fields or assign a final id.
	Create(ctx context.Context, params issue.CreateParams) (issue.Issue, error)

	// Update applies a partial update and returns the updated record.
	Update(ctx context.Context, id string, patch issue.Patch) (issue.Issue, error)

	// Close transitions the record to closed and returns it. Advisory,
	// not destructive: the server keeps the record.
	Close(ctx context.Context, id string) (issue.Issue, error)

	// Ready and Blocked are the server-computed equivalents of the
	// graph package's predicates.
	Ready(ctx context.Context) ([]issue.Issue, error)
	Blocked(ctx context.Context) ([]issue.Issue, error)

	// Subscribe opens the push channel. The returned channel closes
	// when the connection drops or ctx is canceled; the caller owns
	// reconnection.
	Subscribe(ctx context.Context) (<-chan Event, error)
}
