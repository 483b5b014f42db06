package syncer

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tessro/braid/internal/backend"
	"github.com/tessro/braid/internal/issue"
	"github.com/tessro/braid/internal/store"
)

func newTestReconciler(t *testing.T, fb *fakeBackend) (*Reconciler, *store.Store) {
	s := store.New()
	r := NewReconciler(s, fb)
	r.delay = time.Millisecond
	return r, s
}

func TestApplyCreatedAndUpdated(t *testing.T) {
	fb := &fakeBackend{t: t}
	r, s := newTestReconciler(t, fb)
	ctx := context.Background()

	iss := seeded("BD-1")
	r.Apply(ctx, backend.Event{Type: backend.EventCreated, Data: &iss})
	if got, ok := s.Get("BD-1"); !ok || got.Title != iss.Title {
		t.Fatalf("created event not applied: %+v", got)
	}

	updated := iss
	updated.Title = "renamed"
	updated.Status = issue.StatusInProgress
	r.Apply(ctx, backend.Event{Type: backend.EventUpdated, Data: &updated})

	got, _ := s.Get("BD-1")
	if got.Title != "renamed" || got.Status != issue.StatusInProgress {
		t.Errorf("updated event not applied: %+v", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestApplyUpdatedIsFullReplacement(t *testing.T) {
	fb := &fakeBackend{t: t}
	r, s := newTestReconciler(t, fb)

	local := seeded("BD-1")
	local.Labels = []string{"local-only"}
	s.Upsert(local)

	pushed := seeded("BD-1")
	pushed.Title = "authoritative"
	r.Apply(context.Background(), backend.Event{Type: backend.EventUpdated, Data: &pushed})

	got, _ := s.Get("BD-1")
	if len(got.Labels) != 0 {
		t.Errorf("field-level merge leaked local labels: %+v", got.Labels)
	}
	if got.Title != "authoritative" {
		t.Errorf("Title = %s", got.Title)
	}
}

func TestApplyIdempotent(t *testing.T) {
	fb := &fakeBackend{t: t}
	r, s := newTestReconciler(t, fb)
	ctx := context.Background()

	iss := seeded("BD-1")
	iss.Status = issue.StatusInProgress
	ev := backend.Event{Type: backend.EventUpdated, Data: &iss}

	r.Apply(ctx, ev)
	once := s.List()
	r.Apply(ctx, ev)
	twice := s.List()

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("double apply diverged:\nonce  %+v\ntwice %+v", once, twice)
	}
}

func TestApplyDeleted(t *testing.T) {
	fb := &fakeBackend{t: t}
	r, s := newTestReconciler(t, fb)

	s.Upsert(seeded("BD-1"))
	s.Upsert(seeded("BD-2"))

	gone := issue.Issue{ID: "BD-1"}
	r.Apply(context.Background(), backend.Event{Type: backend.EventDeleted, Data: &gone})

	if _, ok := s.Get("BD-1"); ok {
		t.Error("deleted record survived")
	}
	if _, ok := s.Get("BD-2"); !ok {
		t.Error("unrelated record removed")
	}
}

func TestApplyRefreshReloads(t *testing.T) {
	fb := &fakeBackend{t: t}
	fresh := []issue.Issue{seeded("BD-10"), seeded("BD-11")}
	fb.listFn = func() ([]issue.Issue, error) { return fresh, nil }
	r, s := newTestReconciler(t, fb)

	s.Upsert(seeded("BD-1"))
	r.Apply(context.Background(), backend.Event{Type: backend.EventRefresh})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if _, ok := s.Get("BD-1"); ok {
		t.Error("stale record survived refresh")
	}
}

func TestApplyRefreshFailureKeepsStore(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.listFn = func() ([]issue.Issue, error) { return nil, backend.ErrUnreachable }
	r, s := newTestReconciler(t, fb)

	s.Upsert(seeded("BD-1"))
	before := s.List()
	r.Apply(context.Background(), backend.Event{Type: backend.EventRefresh})

	if !reflect.DeepEqual(before, s.List()) {
		t.Error("failed refresh mutated the store")
	}
}

func TestApplyMalformedEventIgnored(t *testing.T) {
	fb := &fakeBackend{t: t}
	r, s := newTestReconciler(t, fb)

	s.Upsert(seeded("BD-1"))
	before := s.List()

	r.Apply(context.Background(), backend.Event{Type: backend.EventUpdated, Data: nil})
	r.Apply(context.Background(), backend.Event{Type: "issue:exploded", Data: nil})

	if !reflect.DeepEqual(before, s.List()) {
		t.Error("malformed events mutated the store")
	}
}

func TestRunReconnectsAfterChannelLoss(t *testing.T) {
	fb := &fakeBackend{t: t}
	var subs atomic.Int32
	second := make(chan struct{})
	fb.subscribeFn = func(ctx context.Context) (<-chan backend.Event, error) {
		n := subs.Add(1)
		ch := make(chan backend.Event)
		if n == 1 {
			iss := seeded("BD-1")
			go func() {
				ch <- backend.Event{Type: backend.EventCreated, Data: &iss}
				close(ch) // simulate connection loss
			}()
		} else {
			if n == 2 {
				close(second)
			}
			close(ch)
		}
		return ch, nil
	}
	r, s := newTestReconciler(t, fb)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-second:
	case <-time.After(5 * time.Second):
		t.Fatal("no resubscribe after channel loss")
	}
	if _, ok := s.Get("BD-1"); !ok {
		t.Error("event from first subscription not applied")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunRetriesFailedSubscribe(t *testing.T) {
	fb := &fakeBackend{t: t}
	var subs atomic.Int32
	connected := make(chan struct{})
	fb.subscribeFn = func(ctx context.Context) (<-chan backend.Event, error) {
		n := subs.Add(1)
		if n < 3 {
			return nil, backend.ErrUnreachable
		}
		if n == 3 {
			close(connected)
		}
		ch := make(chan backend.Event)
		go func() {
			<-ctx.Done()
			close(ch)
		}()
		return ch, nil
	}
	r, _ := newTestReconciler(t, fb)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-connected:
	case <-time.After(5 * time.Second):
		t.Fatal("subscribe never retried to success")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
