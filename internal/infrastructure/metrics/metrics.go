package metrics

import (
	"expvar"
)

// Engine metrics. Per-run measurements are derived from the execution
// context; these expvar counters aggregate across all runs in the process.
var (
	runsStarted    = new(expvar.Int)
	runsCompleted  = new(expvar.Int)
	runsFailed     = new(expvar.Int)
	nodeExecutions = new(expvar.Int)
	edgeTraversals = new(expvar.Int)
)

func init() {
	expvar.Publish("flowengine_runs_started_total", runsStarted)
	expvar.Publish("flowengine_runs_completed_total", runsCompleted)
	expvar.Publish("flowengine_runs_failed_total", runsFailed)
	expvar.Publish("flowengine_node_executions_total", nodeExecutions)
	expvar.Publish("flowengine_edge_traversals_total", edgeTraversals)
}

func IncRunsStarted()    { runsStarted.Add(1) }
func IncRunsCompleted()  { runsCompleted.Add(1) }
func IncRunsFailed()     { runsFailed.Add(1) }
func IncNodeExecutions() { nodeExecutions.Add(1) }
func IncEdgeTraversals() { edgeTraversals.Add(1) }
