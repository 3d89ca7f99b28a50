// Package flow provides the core flow domain entities
// following Clean Architecture principles with zero external dependencies.
package flow

// Flow is the loaded graph: nodes and edges keyed by id, with insertion
// order preserved. Iteration order is semantically significant — start-node
// discovery and outgoing-edge tie-breaking both follow it. Once loaded a
// Flow is treated as an immutable shared definition; all per-run data lives
// in the engine's state store.
type Flow struct {
	nodes     map[string]*Node
	edges     map[string]*Edge
	nodeOrder []string
	edgeOrder []string
}

// New creates an empty flow.
func New() *Flow {
	return &Flow{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
	}
}

// AddNode stores a node keyed by id. A colliding id overwrites the previous
// node but keeps its original position in insertion order.
func (f *Flow) AddNode(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if err := n.Validate(); err != nil {
		return err
	}
	if _, exists := f.nodes[n.ID]; !exists {
		f.nodeOrder = append(f.nodeOrder, n.ID)
	}
	f.nodes[n.ID] = n
	return nil
}

// AddEdge stores an edge keyed by id, overwriting on collision.
func (f *Flow) AddEdge(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if _, exists := f.edges[e.ID]; !exists {
		f.edgeOrder = append(f.edgeOrder, e.ID)
	}
	f.edges[e.ID] = e
	return nil
}

// Node returns the node with the given id, or nil if absent.
func (f *Flow) Node(id string) *Node {
	return f.nodes[id]
}

// Edge returns the edge with the given id, or nil if absent.
func (f *Flow) Edge(id string) *Edge {
	return f.edges[id]
}

// StartNode returns the first node, in insertion order, whose type is
// "start", or nil if none exists. Multiple start nodes are not rejected; the
// first one wins.
func (f *Flow) StartNode() *Node {
	for _, id := range f.nodeOrder {
		if n := f.nodes[id]; n.IsStart() {
			return n
		}
	}
	return nil
}

// OutgoingEdges returns all edges, in insertion order, whose source is the
// given node id.
func (f *Flow) OutgoingEdges(nodeID string) []*Edge {
	var out []*Edge
	for _, id := range f.edgeOrder {
		if e := f.edges[id]; e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// EdgeTarget resolves the target node for an edge id. It returns nil when
// the edge is absent or its target references no known node (dangling edge).
func (f *Flow) EdgeTarget(edgeID string) *Node {
	e := f.edges[edgeID]
	if e == nil {
		return nil
	}
	return f.nodes[e.Target]
}

// Nodes returns the flow's nodes in insertion order.
func (f *Flow) Nodes() []*Node {
	out := make([]*Node, 0, len(f.nodeOrder))
	for _, id := range f.nodeOrder {
		out = append(out, f.nodes[id])
	}
	return out
}

// Edges returns the flow's edges in insertion order.
func (f *Flow) Edges() []*Edge {
	out := make([]*Edge, 0, len(f.edgeOrder))
	for _, id := range f.edgeOrder {
		out = append(out, f.edges[id])
	}
	return out
}
