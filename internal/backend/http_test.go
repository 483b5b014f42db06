package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tessro/braid/internal/issue"
)

func testIssue(id string) issue.Issue {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return issue.Issue{
		ID:        id,
		Title:     "issue " + id,
		Status:    issue.StatusOpen,
		IssueType: issue.TypeTask,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/issues" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("includeDeps") != "true" {
			t.Error("expected includeDeps=true")
		}
		_ = json.NewEncoder(w).Encode([]issue.Issue{testIssue("BD-1"), testIssue("BD-2")})
	}))
	defer srv.Close()

	issues, err := NewClient(srv.URL).List(context.Background(), true)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(issues) != 2 || issues[0].ID != "BD-1" {
		t.Errorf("List() = %v", issues)
	}
}

func TestClientCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/issues" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var params issue.CreateParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		created := testIssue("BD-9")
		created.Title = params.Title
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}))
	defer srv.Close()

	iss, err := NewClient(srv.URL).Create(context.Background(), issue.CreateParams{Title: "new work"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if iss.ID != "BD-9" || iss.Title != "new work" {
		t.Errorf("Create() = %+v", iss)
	}
}

func TestClientUpdatePatchBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/issues/BD-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["title"]; !ok {
			t.Error("patch body missing title")
		}
		if _, ok := body["status"]; ok {
			t.Error("unset patch field serialized")
		}
		_ = json.NewEncoder(w).Encode(testIssue("BD-1"))
	}))
	defer srv.Close()

	title := "renamed"
	_, err := NewClient(srv.URL).Update(context.Background(), "BD-1", issue.Patch{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
}

func TestClientCloseReturnsClosedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/issues/BD-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		closed := testIssue("BD-1")
		now := time.Now().UTC()
		closed.SetStatus(issue.StatusClosed, now)
		_ = json.NewEncoder(w).Encode(closed)
	}))
	defer srv.Close()

	iss, err := NewClient(srv.URL).Close(context.Background(), "BD-1")
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if iss.Status != issue.StatusClosed || iss.ClosedAt == nil {
		t.Errorf("Close() = %+v, want closed record", iss)
	}
}

func TestClientValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "title is required"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Create(context.Background(), issue.CreateParams{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if ve.Message != "title is required" || ve.StatusCode != http.StatusBadRequest {
		t.Errorf("ValidationError = %+v", ve)
	}
	if errors.Is(err, ErrUnreachable) {
		t.Error("validation failure must not look like unreachable")
	}
}

func TestClientServerErrorIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).List(context.Background(), false)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("error = %v, want ErrUnreachable", err)
	}
}

func TestClientTransportErrorIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewClient(srv.URL).List(context.Background(), false)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("error = %v, want ErrUnreachable", err)
	}
}

func TestClientMalformedResponseRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 12`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Get(context.Background(), "BD-1")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError for malformed payload", err)
	}
}

func TestClientSubscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		flusher := w.(http.Flusher)
		encoder := json.NewEncoder(w)

		created := testIssue("BD-1")
		_ = encoder.Encode(Event{Type: EventCreated, Data: &created})
		flusher.Flush()
		_ = encoder.Encode(Event{Type: EventRefresh})
		flusher.Flush()
		// Handler returns: connection closes, channel must close.
	}))
	defer srv.Close()

	events, err := NewClient(srv.URL).Subscribe(context.Background())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	ev1, ok := recvEvent(t, events)
	if !ok || ev1.Type != EventCreated || ev1.Data == nil || ev1.Data.ID != "BD-1" {
		t.Fatalf("first event = %+v", ev1)
	}
	ev2, ok := recvEvent(t, events)
	if !ok || ev2.Type != EventRefresh || ev2.Data != nil {
		t.Fatalf("second event = %+v", ev2)
	}

	if _, ok := recvEvent(t, events); ok {
		t.Error("channel should close after server disconnect")
	}
}

func TestClientSubscribeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).Subscribe(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("Subscribe() error = %v, want ErrUnreachable", err)
	}
}

func recvEvent(t *testing.T, events <-chan Event) (Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-events:
		return ev, ok
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}, false
	}
}
