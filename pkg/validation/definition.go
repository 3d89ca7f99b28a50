// Package validation provides field and structural validation for flow
// definitions before they are loaded into a machine.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/flow"
)

var validate = validator.New()

// ValidateDefinition runs field validation over a flow definition: required
// ids, types, and edge endpoints, via struct tags.
func ValidateDefinition(d *flow.Definition) error {
	if d == nil {
		return fmt.Errorf("definition is nil")
	}
	if err := validate.Struct(d); err != nil {
		if ferrs, ok := err.(validator.ValidationErrors); ok {
			return fmt.Errorf("invalid flow definition: %w", ferrs)
		}
		return err
	}
	return nil
}

// Report describes structural findings in a definition. The engine tolerates
// all of these at load time: duplicate ids overwrite and dangling edges fail
// to resolve during traversal, so the report is advisory, not an error.
type Report struct {
	DuplicateNodeIDs []string
	DuplicateEdgeIDs []string
	DanglingEdgeIDs  []string
	StartNodeCount   int
}

// OK reports whether the definition is structurally unremarkable: exactly
// one start node, no duplicates, no dangling edges.
func (r *Report) OK() bool {
	return r.StartNodeCount == 1 &&
		len(r.DuplicateNodeIDs) == 0 &&
		len(r.DuplicateEdgeIDs) == 0 &&
		len(r.DanglingEdgeIDs) == 0
}

// Inspect builds a structural report for a definition.
func Inspect(d *flow.Definition) *Report {
	report := &Report{}

	nodeIDs := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if nodeIDs[n.ID] {
			report.DuplicateNodeIDs = append(report.DuplicateNodeIDs, n.ID)
		}
		nodeIDs[n.ID] = true
		if n.Type == flow.NodeTypeStart {
			report.StartNodeCount++
		}
	}

	edgeIDs := make(map[string]bool, len(d.Edges))
	for _, e := range d.Edges {
		if edgeIDs[e.ID] {
			report.DuplicateEdgeIDs = append(report.DuplicateEdgeIDs, e.ID)
		}
		edgeIDs[e.ID] = true
		if !nodeIDs[e.Source] || !nodeIDs[e.Target] {
			report.DanglingEdgeIDs = append(report.DanglingEdgeIDs, e.ID)
		}
	}

	return report
}
