// Package flow provides the external flow-definition load format
package flow

// NodeDefinition is a node record in the external load format.
type NodeDefinition struct {
	ID      string         `json:"id" yaml:"id" validate:"required"`
	Type    string         `json:"type" yaml:"type" validate:"required"`
	Inputs  map[string]any `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs map[string]any `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// EdgeDefinition is an edge record in the external load format.
type EdgeDefinition struct {
	ID         string         `json:"id" yaml:"id" validate:"required"`
	Source     string         `json:"source" yaml:"source" validate:"required"`
	Target     string         `json:"target" yaml:"target" validate:"required"`
	Conditions map[string]any `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Definition is the caller-supplied description of a workflow: an ordered
// sequence of nodes and an ordered sequence of edges. Record order carries
// meaning and is preserved through Build.
type Definition struct {
	ID    string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string           `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes []NodeDefinition `json:"nodes" yaml:"nodes" validate:"required,min=1,dive"`
	Edges []EdgeDefinition `json:"edges" yaml:"edges" validate:"dive"`
}

// Build constructs a Flow from the definition. Duplicate ids overwrite
// earlier records, matching the store's add semantics. Referential integrity
// is not checked.
func (d *Definition) Build() (*Flow, error) {
	f := New()
	for i := range d.Nodes {
		nd := &d.Nodes[i]
		n := &Node{
			ID:      nd.ID,
			Type:    nd.Type,
			Inputs:  copyMap(nd.Inputs),
			Outputs: copyMap(nd.Outputs),
		}
		if err := f.AddNode(n); err != nil {
			return nil, err
		}
	}
	for i := range d.Edges {
		ed := &d.Edges[i]
		e := &Edge{
			ID:         ed.ID,
			Source:     ed.Source,
			Target:     ed.Target,
			Conditions: copyMap(ed.Conditions),
		}
		if err := f.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// copyMap returns an independent top-level copy of m. Values are shared;
// condition matching only ever compares scalars.
func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
