// Package graph provides pure dependency-graph computations over an
// issue snapshot: ready-work detection, blocked detection, dependent
// lookup, and edge validation including cycle prevention.
//
// Only edges of type "blocks" participate in readiness and blocked
// computation; other edge types are informational.
package graph

import (
	"slices"
	"strings"

	"github.com/tessro/braid/internal/issue"
)

// Ready returns the issues that are actionable now: status "open" and
// every blocks-typed dependency resolved to a closed issue. An issue
// with no blocks dependencies is trivially ready. Results are sorted
// by priority ascending (0 first), then by creation time descending
// (newest first on ties).
func Ready(issues []issue.Issue) []issue.Issue {
	byID := indexByID(issues)
	var result []issue.Issue
	for _, iss := range issues {
		if IsReady(iss, byID) {
			result = append(result, iss)
		}
	}
	sortIssues(result)
	return result
}

// Blocked returns the issues that are stuck: status not "closed" and at
// least one blocks-typed dependency whose target is not yet closed.
// This predicate is evaluated independently of the issue's own stored
// status — an issue can carry status "open" and still be blocked. The
// two predicates are not complements and must not be derived from one
// another. Results are sorted like Ready.
func Blocked(issues []issue.Issue) []issue.Issue {
	byID := indexByID(issues)
	var result []issue.Issue
	for _, iss := range issues {
		if IsBlocked(iss, byID) {
			result = append(result, iss)
		}
	}
	sortIssues(result)
	return result
}

// IsReady reports whether a single issue is actionable given a lookup
// of the full collection. A blocks edge whose target is missing from
// the collection counts as unresolved.
func IsReady(iss issue.Issue, byID map[string]issue.Issue) bool {
	if iss.Status != issue.StatusOpen {
		return false
	}
	for _, dep := range iss.Dependencies {
		if dep.Type != issue.DepBlocks {
			continue
		}
		target, ok := byID[dep.DependsOnID]
		if !ok || target.Status != issue.StatusClosed {
			return false
		}
	}
	return true
}

// IsBlocked reports whether a single issue has at least one unresolved
// blocks-typed prerequisite. Closed issues are never blocked.
func IsBlocked(iss issue.Issue, byID map[string]issue.Issue) bool {
	if iss.Status == issue.StatusClosed {
		return false
	}
	for _, dep := range iss.Dependencies {
		if dep.Type != issue.DepBlocks {
			continue
		}
		target, ok := byID[dep.DependsOnID]
		if !ok {
			continue
		}
		switch target.Status {
		case issue.StatusOpen, issue.StatusInProgress, issue.StatusBlocked:
			return true
		}
	}
	return false
}

// Dependents computes the derived reverse view for an issue: every
// edge in the collection whose target is id. The result is recomputed
// from current data on each call, never cached.
func Dependents(issues []issue.Issue, id string) []issue.Dependency {
	var result []issue.Dependency
	for _, iss := range issues {
		for _, dep := range iss.Dependencies {
			if dep.DependsOnID == id {
				result = append(result, dep)
			}
		}
	}
	return result
}

// CheckEdge validates a proposed edge from -> to of type depType
// against the full collection. It returns a *ConstraintError if the
// edge is a self-loop, duplicates an existing (from, to) pair on the
// source issue, targets an unknown issue, or — for blocks edges only —
// would close a cycle.
func CheckEdge(issues []issue.Issue, from, to string, depType issue.DependencyType) error {
	if from == to {
		return &ConstraintError{Kind: KindSelfLoop, From: from, To: to}
	}

	byID := indexByID(issues)
	source, ok := byID[from]
	if !ok {
		return &ConstraintError{Kind: KindUnknownSource, From: from, To: to}
	}
	if _, ok := byID[to]; !ok {
		return &ConstraintError{Kind: KindUnknownTarget, From: from, To: to}
	}

	// Only one edge per ordered pair, regardless of type.
	if source.DependsOn(to) {
		return &ConstraintError{Kind: KindDuplicate, From: from, To: to}
	}

	// Cycle prevention applies to blocks edges only: if from is
	// reachable from to over existing blocks edges, the new edge
	// would close a cycle.
	if depType == issue.DepBlocks && canReach(byID, to, from) {
		return &ConstraintError{Kind: KindCycle, From: from, To: to}
	}
	return nil
}

// canReach reports whether target is reachable from start by following
// existing blocks edges through the full graph.
func canReach(byID map[string]issue.Issue, start, target string) bool {
	visited := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		iss, ok := byID[current]
		if !ok {
			continue
		}
		for _, dep := range iss.Dependencies {
			if dep.Type != issue.DepBlocks {
				continue
			}
			if dep.DependsOnID == target {
				return true
			}
			if _, seen := visited[dep.DependsOnID]; !seen {
				visited[dep.DependsOnID] = struct{}{}
				queue = append(queue, dep.DependsOnID)
			}
		}
	}
	return false
}

func indexByID(issues []issue.Issue) map[string]issue.Issue {
	byID := make(map[string]issue.Issue, len(issues))
	for _, iss := range issues {
		byID[iss.ID] = iss
	}
	return byID
}

// sortIssues orders by priority ascending, then creation time
// descending (newest first), then id for stability.
func sortIssues(issues []issue.Issue) {
	slices.SortFunc(issues, func(a, b issue.Issue) int {
		if a.Priority != b.Priority {
			return a.Priority - b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if a.CreatedAt.After(b.CreatedAt) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}
