// Package flowengine is the public façade of the flow engine: a Machine
// holds one loaded flow definition and a handler registry, walks the graph
// from its start node to a terminal node on Run, and exposes the resulting
// execution trace, per-node results, and derived metrics.
//
// A minimal flow:
//
//	m := flowengine.New()
//	m.RegisterHandler("task", func(ctx context.Context, input map[string]any) (map[string]any, error) {
//		return map[string]any{"greeting": "hello"}, nil
//	})
//	_ = m.LoadFlow(&flowengine.Definition{
//		Nodes: []flowengine.NodeDefinition{
//			{ID: "a", Type: "start"},
//			{ID: "b", Type: "task"},
//			{ID: "c", Type: "end"},
//		},
//		Edges: []flowengine.EdgeDefinition{
//			{ID: "e1", Source: "a", Target: "b"},
//			{ID: "e2", Source: "b", Target: "c"},
//		},
//	})
//	if _, err := m.Run(context.Background()); err != nil {
//		// the trace recorded before the failure stays inspectable
//	}
//	result := m.Result()
package flowengine
