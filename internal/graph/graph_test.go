package graph

import (
	"errors"
	"testing"
	"time"

	"github.com/tessro/braid/internal/issue"
)

func mk(id string, status issue.Status, priority int, created time.Time, deps ...issue.Dependency) issue.Issue {
	return issue.Issue{
		ID:           id,
		Title:        id,
		Status:       status,
		Priority:     priority,
		IssueType:    issue.TypeTask,
		CreatedAt:    created,
		UpdatedAt:    created,
		Dependencies: deps,
	}
}

func blocks(from, to string) issue.Dependency {
	return issue.Dependency{IssueID: from, DependsOnID: to, Type: issue.DepBlocks}
}

func related(from, to string) issue.Dependency {
	return issue.Dependency{IssueID: from, DependsOnID: to, Type: issue.DepRelated}
}

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestReadyNoDependencies(t *testing.T) {
	issues := []issue.Issue{
		mk("BD-1", issue.StatusOpen, 2, t0),
		mk("BD-2", issue.StatusInProgress, 1, t0),
		mk("BD-3", issue.StatusClosed, 0, t0),
	}
	ready := Ready(issues)
	if len(ready) != 1 || ready[0].ID != "BD-1" {
		t.Fatalf("Ready() = %v, want [BD-1]", ids(ready))
	}
}

func TestReadyBlockerTransition(t *testing.T) {
	a := mk("A", issue.StatusOpen, 2, t0, blocks("A", "B"))
	b := mk("B", issue.StatusOpen, 2, t0)

	ready := Ready([]issue.Issue{a, b})
	if got := ids(ready); len(got) != 1 || got[0] != "B" {
		t.Fatalf("Ready() = %v, want [B]", got)
	}

	b.SetStatus(issue.StatusClosed, t0.Add(time.Hour))
	ready = Ready([]issue.Issue{a, b})
	if got := ids(ready); len(got) != 1 || got[0] != "A" {
		t.Fatalf("Ready() after close = %v, want [A]", got)
	}
}

func TestReadyIgnoresNonBlockingEdges(t *testing.T) {
	a := mk("A", issue.StatusOpen, 2, t0, related("A", "B"))
	b := mk("B", issue.StatusOpen, 2, t0)
	ready := Ready([]issue.Issue{a, b})
	if len(ready) != 2 {
		t.Fatalf("Ready() = %v, want both issues", ids(ready))
	}
}

func TestReadyMissingBlockerStaysUnready(t *testing.T) {
	a := mk("A", issue.StatusOpen, 2, t0, blocks("A", "gone"))
	if got := Ready([]issue.Issue{a}); len(got) != 0 {
		t.Fatalf("Ready() = %v, want empty", ids(got))
	}
}

func TestReadyOrdering(t *testing.T) {
	issues := []issue.Issue{
		mk("old-p1", issue.StatusOpen, 1, t0),
		mk("new-p1", issue.StatusOpen, 1, t0.Add(time.Hour)),
		mk("p0", issue.StatusOpen, 0, t0),
	}
	got := ids(Ready(issues))
	want := []string{"p0", "new-p1", "old-p1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ready() order = %v, want %v", got, want)
		}
	}
}

func TestBlocked(t *testing.T) {
	a := mk("A", issue.StatusOpen, 2, t0, blocks("A", "B"))
	b := mk("B", issue.StatusInProgress, 2, t0)
	c := mk("C", issue.StatusClosed, 2, t0, blocks("C", "B"))

	got := ids(Blocked([]issue.Issue{a, b, c}))
	if len(got) != 1 || got[0] != "A" {
		t.Fatalf("Blocked() = %v, want [A]", got)
	}
}

func TestBlockedIndependentOfOwnStatus(t *testing.T) {
	// An issue whose stored status is "open" still satisfies the
	// blocked predicate while a blocker remains open. The ready and
	// blocked computations are separate, not complementary.
	a := mk("A", issue.StatusOpen, 2, t0, blocks("A", "B"))
	b := mk("B", issue.StatusOpen, 2, t0)
	byID := map[string]issue.Issue{"A": a, "B": b}

	if IsReady(a, byID) {
		t.Error("A should not be ready")
	}
	if !IsBlocked(a, byID) {
		t.Error("A should be blocked")
	}
}

func TestBlockedFlipsWhenEdgesRemoved(t *testing.T) {
	a := mk("A", issue.StatusOpen, 2, t0, blocks("A", "B"))
	b := mk("B", issue.StatusOpen, 2, t0)
	byID := map[string]issue.Issue{"A": a, "B": b}

	if !IsBlocked(a, byID) {
		t.Fatal("A should be blocked with an open blocker")
	}
	a.Dependencies = nil
	if IsBlocked(a, byID) {
		t.Error("A should not be blocked with no blocks edges")
	}
}

func TestDependents(t *testing.T) {
	a := mk("A", issue.StatusOpen, 2, t0, blocks("A", "C"))
	b := mk("B", issue.StatusOpen, 2, t0, related("B", "C"))
	c := mk("C", issue.StatusOpen, 2, t0)

	deps := Dependents([]issue.Issue{a, b, c}, "C")
	if len(deps) != 2 {
		t.Fatalf("Dependents() = %d edges, want 2", len(deps))
	}
}

func TestCheckEdge(t *testing.T) {
	a := mk("A", issue.StatusOpen, 2, t0, blocks("A", "B"))
	b := mk("B", issue.StatusOpen, 2, t0)
	c := mk("C", issue.StatusOpen, 2, t0, blocks("C", "A"))
	issues := []issue.Issue{a, b, c}

	tests := []struct {
		name     string
		from, to string
		depType  issue.DependencyType
		wantKind ConstraintKind
	}{
		{"self loop", "A", "A", issue.DepBlocks, KindSelfLoop},
		{"duplicate regardless of type", "A", "B", issue.DepRelated, KindDuplicate},
		{"unknown source", "Z", "B", issue.DepBlocks, KindUnknownSource},
		{"unknown target", "A", "Z", issue.DepBlocks, KindUnknownTarget},
		{"direct cycle", "B", "A", issue.DepBlocks, KindCycle},
		{"transitive cycle", "B", "C", issue.DepBlocks, KindCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEdge(issues, tt.from, tt.to, tt.depType)
			var ce *ConstraintError
			if !errors.As(err, &ce) {
				t.Fatalf("CheckEdge() = %v, want ConstraintError", err)
			}
			if ce.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", ce.Kind, tt.wantKind)
			}
		})
	}
}

func TestCheckEdgeCycleOnlyForBlocks(t *testing.T) {
	a := mk("A", issue.StatusOpen, 2, t0, blocks("A", "B"))
	b := mk("B", issue.StatusOpen, 2, t0)
	issues := []issue.Issue{a, b}

	if err := CheckEdge(issues, "B", "A", issue.DepBlocks); err == nil {
		t.Error("blocks back-edge should be rejected")
	}
	if err := CheckEdge(issues, "B", "A", issue.DepRelated); err != nil {
		t.Errorf("related back-edge should be accepted, got %v", err)
	}
}

func ids(issues []issue.Issue) []string {
	out := make([]string, len(issues))
	for i, iss := range issues {
		out[i] = iss.ID
	}
	return out
}
