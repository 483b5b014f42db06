package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/tessro/braid/internal/backend"
	"github.com/tessro/braid/internal/logging"
	"github.com/tessro/braid/internal/store"
)

// ReconnectDelay is the fixed pause between subscription attempts
// after the push channel drops.
const ReconnectDelay = 5 * time.Second

// Reconciler consumes the backend's push channel and merges events
// into the store. Optimistic duplicates are suppressed naturally:
// created and updated events carry the full authoritative record and
// Upsert overwrites in place, so applying the same event twice — or
// applying it after the mutator's confirm — converges to one record.
type Reconciler struct {
	store   *store.Store
	backend backend.Backend
	delay   time.Duration
}

// NewReconciler creates a reconciler with the default reconnect delay.
func NewReconciler(s *store.Store, b backend.Backend) *Reconciler {
	return &Reconciler{store: s, backend: b, delay: ReconnectDelay}
}

// Run subscribes to the push channel and applies events until ctx is
// canceled. On channel loss it waits the fixed delay and resubscribes,
// indefinitely: an unreachable backend degrades to "no live sync" but
// never breaks the store or the request/response mutation path. At
// most one subscription is live at a time — the previous stream's
// channel must close before a new dial is attempted.
func (r *Reconciler) Run(ctx context.Context) {
	defer logging.LogPanic("reconciler", nil)

	for {
		events, err := r.backend.Subscribe(ctx)
		if err != nil {
			slog.Debug("push subscribe failed", "error", err)
			if !r.sleep(ctx) {
				return
			}
			continue
		}

		slog.Info("push channel connected")
		for ev := range events {
			r.apply(ctx, ev)
		}
		// Channel closed: connection lost or ctx canceled.
		if ctx.Err() != nil {
			return
		}
		slog.Info("push channel lost, reconnecting", "delay", r.delay)
		if !r.sleep(ctx) {
			return
		}
	}
}

// Apply merges a single push event into the store. Exported so tests
// and one-shot callers can drive reconciliation without a live
// subscription.
func (r *Reconciler) Apply(ctx context.Context, ev backend.Event) {
	r.apply(ctx, ev)
}

func (r *Reconciler) apply(ctx context.Context, ev backend.Event) {
	switch ev.Type {
	case backend.EventCreated, backend.EventUpdated:
		if ev.Data == nil || ev.Data.ID == "" {
			slog.Warn("push event missing payload", "type", ev.Type)
			return
		}
		// Full-record replacement: the pushed record is authoritative,
		// field-level merging would resurrect stale local state.
		r.store.Upsert(*ev.Data)

	case backend.EventDeleted:
		// Legacy: normal close flow is a status transition, but old
		// producers may still emit true deletions.
		if ev.Data == nil || ev.Data.ID == "" {
			slog.Warn("push event missing payload", "type", ev.Type)
			return
		}
		r.store.Remove(ev.Data.ID)

	case backend.EventRefresh:
		// An external process changed the source of truth in an
		// unknown way; incremental reconciliation cannot be trusted.
		issues, err := r.backend.List(ctx, true)
		if err != nil {
			slog.Warn("refresh reload failed", "error", err)
			return
		}
		r.store.ReplaceAll(issues)

	default:
		slog.Warn("unknown push event", "type", ev.Type)
	}
}

// sleep waits the reconnect delay. Returns false if ctx was canceled
// first — cancellation supersedes the pending reconnect.
func (r *Reconciler) sleep(ctx context.Context) bool {
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
