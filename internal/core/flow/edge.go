// Package flow provides edge definitions
package flow

// Reserved condition keys that mark a compound predicate tree rather than a
// flat equality map.
const (
	ConditionKeyAll = "all"
	ConditionKeyAny = "any"
)

// Edge represents a conditional transition between two nodes. Conditions is
// either empty (unconditional), a flat field → expected-value conjunction, or
// a compound predicate tree under the reserved "all"/"any" keys.
type Edge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Conditions map[string]any `json:"conditions,omitempty"`
}

// Validate ensures edge integrity. Endpoint existence is not checked:
// dangling edges are permitted and simply fail to resolve a target at
// traversal time.
func (e *Edge) Validate() error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if e.Source == "" {
		return ErrInvalidSource
	}
	if e.Target == "" {
		return ErrInvalidTarget
	}
	return nil
}

// IsCompound reports whether the edge's conditions form a predicate tree
// under one of the reserved keys.
func (e *Edge) IsCompound() bool {
	if _, ok := e.Conditions[ConditionKeyAll]; ok {
		return true
	}
	_, ok := e.Conditions[ConditionKeyAny]
	return ok
}
