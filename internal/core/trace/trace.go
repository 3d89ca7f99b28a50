// Package trace provides the execution context: the append-only record of a
// single run — every node execution and edge traversal, overall status,
// timing, and final-result bookkeeping.
package trace

import (
	"time"
)

// Status represents the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// NodeExecution records one node execution with independent snapshots of the
// node's inputs and outputs taken at execution time.
type NodeExecution struct {
	NodeID    string         `json:"node_id" msgpack:"node_id"`
	NodeType  string         `json:"node_type" msgpack:"node_type"`
	Inputs    map[string]any `json:"inputs" msgpack:"inputs"`
	Outputs   map[string]any `json:"outputs" msgpack:"outputs"`
	Timestamp time.Time      `json:"timestamp" msgpack:"timestamp"`
}

// EdgeTraversal records one taken edge.
type EdgeTraversal struct {
	EdgeID    string    `json:"edge_id" msgpack:"edge_id"`
	Source    string    `json:"source" msgpack:"source"`
	Target    string    `json:"target" msgpack:"target"`
	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
}

// ExecutionContext is the full trace of one run. It is created at run entry,
// mutated only by the engine during that run, and frozen once the run
// settles; afterwards it stays readable indefinitely.
type ExecutionContext struct {
	ExecutionID    string          `json:"execution_id" msgpack:"execution_id"`
	NodeExecutions []NodeExecution `json:"node_executions" msgpack:"node_executions"`
	EdgeTraversals []EdgeTraversal `json:"edge_traversals" msgpack:"edge_traversals"`
	FinalNodeID    string          `json:"final_node_id,omitempty" msgpack:"final_node_id"`
	Status         Status          `json:"status" msgpack:"status"`
	Error          string          `json:"error,omitempty" msgpack:"error"`
	StartTime      time.Time       `json:"start_time" msgpack:"start_time"`
	EndTime        time.Time       `json:"end_time,omitempty" msgpack:"end_time"`
}

// New creates a fresh context in running state.
func New(executionID string) *ExecutionContext {
	return &ExecutionContext{
		ExecutionID:    executionID,
		NodeExecutions: make([]NodeExecution, 0),
		EdgeTraversals: make([]EdgeTraversal, 0),
		Status:         StatusRunning,
		StartTime:      time.Now(),
	}
}

// RecordNode appends a node-execution record with snapshots of the given
// input and output maps.
func (ec *ExecutionContext) RecordNode(nodeID, nodeType string, inputs, outputs map[string]any, at time.Time) {
	ec.NodeExecutions = append(ec.NodeExecutions, NodeExecution{
		NodeID:    nodeID,
		NodeType:  nodeType,
		Inputs:    Snapshot(inputs),
		Outputs:   Snapshot(outputs),
		Timestamp: at,
	})
}

// RecordEdge appends an edge-traversal record.
func (ec *ExecutionContext) RecordEdge(edgeID, source, target string) {
	ec.EdgeTraversals = append(ec.EdgeTraversals, EdgeTraversal{
		EdgeID:    edgeID,
		Source:    source,
		Target:    target,
		Timestamp: time.Now(),
	})
}

// Complete freezes the context in completed state.
func (ec *ExecutionContext) Complete() {
	ec.Status = StatusCompleted
	ec.EndTime = time.Now()
}

// Fail freezes the context in failed state, recording the error.
func (ec *ExecutionContext) Fail(err error) {
	ec.Status = StatusFailed
	if err != nil {
		ec.Error = err.Error()
	}
	ec.EndTime = time.Now()
}

// Copy returns a shallow copy of the context. The record slices are shared
// with the original; callers must treat their contents as read-only.
func (ec *ExecutionContext) Copy() *ExecutionContext {
	cp := *ec
	return &cp
}

// Metrics holds per-run measurements derived from the trace.
type Metrics struct {
	NodeCount       int    `json:"node_count"`
	EdgeCount       int    `json:"edge_count"`
	ExecutionTimeMs int64  `json:"execution_time_ms"`
	Status          Status `json:"status"`
}

// Metrics derives node/edge counts, elapsed milliseconds, and status from
// the context. ExecutionTimeMs is -1 while the run is still in flight.
func (ec *ExecutionContext) Metrics() Metrics {
	m := Metrics{
		NodeCount:       len(ec.NodeExecutions),
		EdgeCount:       len(ec.EdgeTraversals),
		ExecutionTimeMs: -1,
		Status:          ec.Status,
	}
	if !ec.EndTime.IsZero() {
		m.ExecutionTimeMs = ec.EndTime.Sub(ec.StartTime).Milliseconds()
	}
	return m
}

// Snapshot returns an independent top-level copy of m. Nested values are
// shared; trace consumers must not mutate them.
func Snapshot(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
