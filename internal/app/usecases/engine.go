package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/condition"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/flow"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/trace"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/infrastructure/metrics"
)

// DefaultMaxSteps caps the traversal loop when no explicit limit is set.
const DefaultMaxSteps = 1000

// EngineConfig holds engine settings. Zero values get defaults filled in.
type EngineConfig struct {
	// MaxSteps is the maximum number of node executions in one run.
	// Exceeding it fails the run with ErrStepLimitExceeded.
	MaxSteps int
	// Logger receives traversal diagnostics; condition-evaluation failures
	// are logged here rather than surfaced.
	Logger *slog.Logger
}

// Engine walks a flow from its start node to a terminal node: it executes
// each node through the handler registry (or built-in rules for start/end
// types), evaluates outgoing-edge conditions against that node's outputs,
// follows the first satisfied edge, merges data forward, and advances.
// Traversal is strictly sequential along one active path.
type Engine struct {
	registry *HandlerRegistry
	maxSteps int
	logger   *slog.Logger
}

// NewEngine creates an engine dispatching through the given registry.
func NewEngine(registry *HandlerRegistry, config EngineConfig) *Engine {
	if config.MaxSteps <= 0 {
		config.MaxSteps = DefaultMaxSteps
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Engine{
		registry: registry,
		maxSteps: config.MaxSteps,
		logger:   config.Logger,
	}
}

// Run executes the flow. It always returns the execution context — settled
// as completed or failed — together with the run's state store; on failure
// the error is also returned so callers can observe it directly.
//
// Failure semantics: a missing start node, an unregistered handler type, a
// failing handler, and an exceeded step limit all abort the run and settle
// the context as failed. Condition-evaluation failures never abort; they
// only force the affected edge to be treated as unsatisfied.
func (e *Engine) Run(ctx context.Context, f *flow.Flow) (*trace.ExecutionContext, *RunState, error) {
	ec := trace.New(uuid.NewString())
	state := NewRunState()
	metrics.IncRunsStarted()

	if err := e.checkHandlers(f); err != nil {
		ec.Fail(err)
		metrics.IncRunsFailed()
		return ec, state, err
	}

	start := f.StartNode()
	if start == nil {
		err := flow.ErrMissingStartNode
		ec.Fail(err)
		metrics.IncRunsFailed()
		return ec, state, err
	}

	if err := e.traverse(ctx, f, start, state, ec); err != nil {
		ec.Fail(err)
		metrics.IncRunsFailed()
		return ec, state, err
	}

	ec.Complete()
	metrics.IncRunsCompleted()
	return ec, state, nil
}

// checkHandlers verifies, before any node executes, that every non-start,
// non-end node type present in the flow has a registered handler.
func (e *Engine) checkHandlers(f *flow.Flow) error {
	for _, n := range f.Nodes() {
		if n.IsStart() || n.IsEnd() {
			continue
		}
		if !e.registry.Has(n.Type) {
			return fmt.Errorf("%w: %q", ErrUnregisteredHandler, n.Type)
		}
	}
	return nil
}

// traverse advances a single current-node cursor until no followable edge
// remains or the step limit is hit.
func (e *Engine) traverse(ctx context.Context, f *flow.Flow, start *flow.Node, state *RunState, ec *trace.ExecutionContext) error {
	cur := start
	for steps := 0; cur != nil; steps++ {
		if steps >= e.maxSteps {
			return fmt.Errorf("%w: %d node executions", ErrStepLimitExceeded, steps)
		}

		st := state.Node(cur)
		captured := time.Now()

		switch {
		case cur.IsStart():
			// Existing outputs are used as-is; no handler runs.
		case cur.IsEnd():
			// Promote whatever arrived from upstream to the visible result.
			for k, v := range st.Inputs {
				st.Outputs[k] = v
			}
		default:
			output, err := e.registry.Execute(ctx, cur.Type, st.Inputs)
			if err != nil {
				outputs := trace.Snapshot(st.Outputs)
				outputs["error"] = err.Error()
				ec.NodeExecutions = append(ec.NodeExecutions, trace.NodeExecution{
					NodeID:    cur.ID,
					NodeType:  cur.Type,
					Inputs:    trace.Snapshot(st.Inputs),
					Outputs:   outputs,
					Timestamp: captured,
				})
				metrics.IncNodeExecutions()
				return err
			}
			for k, v := range output {
				st.Outputs[k] = v
			}
		}

		ec.RecordNode(cur.ID, cur.Type, st.Inputs, st.Outputs, captured)
		metrics.IncNodeExecutions()

		// Reaching an end node marks it as final but does not halt: a
		// satisfied outgoing edge is still followed, and a later end node
		// may overwrite the final id. Only the absence of a followable
		// edge stops the walk.
		if cur.IsEnd() {
			ec.FinalNodeID = cur.ID
		}

		edges := f.OutgoingEdges(cur.ID)
		if len(edges) == 0 {
			if ec.FinalNodeID == "" {
				ec.FinalNodeID = cur.ID
			}
			return nil
		}

		taken := e.selectEdge(edges, st.Outputs)
		if taken == nil {
			return nil
		}

		target := f.EdgeTarget(taken.ID)
		if target == nil {
			e.logger.Warn("edge target does not resolve, stopping traversal",
				"edge", taken.ID, "target", taken.Target)
			return nil
		}

		ec.RecordEdge(taken.ID, taken.Source, taken.Target)
		metrics.IncEdgeTraversals()

		tgt := state.Node(target)
		for k, v := range st.Outputs {
			tgt.Inputs[k] = v
		}
		cur = target
	}
	return nil
}

// selectEdge returns the first edge, in insertion order, whose condition is
// satisfied against the outputs, or nil if none is. Later candidates are
// never evaluated once one matches.
func (e *Engine) selectEdge(edges []*flow.Edge, outputs map[string]any) *flow.Edge {
	for _, edge := range edges {
		if e.satisfied(edge, outputs) {
			return edge
		}
	}
	return nil
}

// satisfied evaluates an edge condition against the source node's outputs.
// An empty condition is always satisfied. A compound condition under the
// reserved "all"/"any" keys is evaluated as a predicate tree over the
// outputs as facts; if that evaluation itself fails, the failure is logged
// and the condition treated as not satisfied. Any other condition is a flat
// conjunction of strict equality checks.
func (e *Engine) satisfied(edge *flow.Edge, outputs map[string]any) bool {
	if len(edge.Conditions) == 0 {
		return true
	}
	if edge.IsCompound() {
		pred, err := condition.Parse(edge.Conditions)
		if err != nil {
			e.logger.Warn("condition parse failed", "edge", edge.ID, "error", err)
			return false
		}
		ok, err := pred.Evaluate(outputs)
		if err != nil {
			e.logger.Warn("condition evaluation failed", "edge", edge.ID, "error", err)
			return false
		}
		return ok
	}
	for key, expected := range edge.Conditions {
		actual, exists := outputs[key]
		if !exists || !condition.Equal(actual, expected) {
			return false
		}
	}
	return true
}
