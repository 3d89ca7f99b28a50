package usecases

import (
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/flow"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/trace"
)

// NodeState is one node's mutable working state for a single run.
type NodeState struct {
	Inputs  map[string]any
	Outputs map[string]any
}

// RunState holds the per-run working state, keyed by node id. The loaded
// flow stays an immutable definition; every Run allocates its own RunState,
// so repeated runs of the same flow are independent of each other.
type RunState struct {
	nodes map[string]*NodeState
}

// NewRunState creates an empty state store.
func NewRunState() *RunState {
	return &RunState{nodes: make(map[string]*NodeState)}
}

// Node returns the working state for n, seeding it from the node's declared
// initial inputs and outputs on first touch.
func (s *RunState) Node(n *flow.Node) *NodeState {
	if st, ok := s.nodes[n.ID]; ok {
		return st
	}
	st := &NodeState{
		Inputs:  seed(n.Inputs),
		Outputs: seed(n.Outputs),
	}
	s.nodes[n.ID] = st
	return st
}

// Inputs returns the current input mapping for n without seeding: the
// working state if the node was touched during the run, otherwise the
// node's declared initial inputs.
func (s *RunState) Inputs(n *flow.Node) map[string]any {
	if st, ok := s.nodes[n.ID]; ok {
		return st.Inputs
	}
	return n.Inputs
}

// Outputs returns the current output mapping for n without seeding.
func (s *RunState) Outputs(n *flow.Node) map[string]any {
	if st, ok := s.nodes[n.ID]; ok {
		return st.Outputs
	}
	return n.Outputs
}

func seed(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	return trace.Snapshot(m)
}
