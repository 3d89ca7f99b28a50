// Package flow provides the core flow domain entities
// following Clean Architecture principles with zero external dependencies.
package flow

// Reserved node types with built-in engine behavior. Any other type tag is
// dispatched to a registered handler.
const (
	// NodeTypeStart marks the traversal entry node; no handler is invoked.
	NodeTypeStart = "start"
	// NodeTypeEnd marks a result node; inputs are promoted to outputs.
	NodeTypeEnd = "end"
)

// Node represents a unit of work in a flow. Inputs and Outputs hold the
// node's declared initial values from the flow definition; per-run working
// state lives in the engine's state store, never on the Node itself.
type Node struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Inputs  map[string]any `json:"inputs,omitempty"`
	Outputs map[string]any `json:"outputs,omitempty"`
}

// Validate ensures node integrity.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if n.Type == "" {
		return ErrInvalidNodeType
	}
	return nil
}

// IsStart reports whether the node carries the start type tag.
func (n *Node) IsStart() bool {
	return n.Type == NodeTypeStart
}

// IsEnd reports whether the node carries the end type tag.
func (n *Node) IsEnd() bool {
	return n.Type == NodeTypeEnd
}
