package graph

import "fmt"

// ConstraintKind identifies which graph invariant an edge violates.
type ConstraintKind string

const (
	KindSelfLoop      ConstraintKind = "self-loop"
	KindDuplicate     ConstraintKind = "duplicate-edge"
	KindUnknownSource ConstraintKind = "unknown-source"
	KindUnknownTarget ConstraintKind = "unknown-target"
	KindCycle         ConstraintKind = "cycle"
)

// ConstraintError reports a rejected dependency edge. These are raised
// locally, before any backend request is issued, and never mutate the
// store.
type ConstraintError struct {
	Kind ConstraintKind
	From string
	To   string
}

func (e *ConstraintError) Error() string {
	switch e.Kind {
	case KindSelfLoop:
		return fmt.Sprintf("issue %s cannot depend on itself", e.From)
	case KindDuplicate:
		return fmt.Sprintf("dependency %s -> %s already exists", e.From, e.To)
	case KindUnknownSource:
		return fmt.Sprintf("unknown issue %s", e.From)
	case KindUnknownTarget:
		return fmt.Sprintf("unknown dependency target %s", e.To)
	case KindCycle:
		return fmt.Sprintf("dependency %s -> %s would create a cycle", e.From, e.To)
	}
	return fmt.Sprintf("invalid dependency %s -> %s", e.From, e.To)
}
