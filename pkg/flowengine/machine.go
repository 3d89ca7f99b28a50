package flowengine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/app/services"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/app/usecases"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/archive"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/flow"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/trace"
	"github.com/AndreasCaldewei/simple-flow-engine/pkg/serialization"
	"github.com/AndreasCaldewei/simple-flow-engine/pkg/validation"
)

// Re-export core types so callers never import internal packages.
type (
	Definition       = flow.Definition
	NodeDefinition   = flow.NodeDefinition
	EdgeDefinition   = flow.EdgeDefinition
	Handler          = usecases.Handler
	ExecutionContext = trace.ExecutionContext
	NodeExecution    = trace.NodeExecution
	EdgeTraversal    = trace.EdgeTraversal
	Metrics          = trace.Metrics
	Status           = trace.Status
	ArchiveStore     = archive.Store
	ArchiveRecord    = archive.Record
	ArchiveFilter    = archive.Filter
)

// Status values of an execution context.
const (
	StatusRunning   = trace.StatusRunning
	StatusCompleted = trace.StatusCompleted
	StatusFailed    = trace.StatusFailed
)

// Re-exported sentinel errors callers are expected to test against.
var (
	ErrMissingStartNode    = flow.ErrMissingStartNode
	ErrUnregisteredHandler = usecases.ErrUnregisteredHandler
	ErrStepLimitExceeded   = usecases.ErrStepLimitExceeded
)

// Option configures a Machine.
type Option func(*Machine)

// WithMaxSteps caps the number of node executions in one run.
func WithMaxSteps(n int) Option {
	return func(m *Machine) { m.engineConfig.MaxSteps = n }
}

// WithLogger sets the logger used for traversal diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.engineConfig.Logger = l }
}

// WithArchive records every settled run into the given store.
func WithArchive(store ArchiveStore) Option {
	return func(m *Machine) {
		m.archiver = services.NewArchiveService(store, serialization.Default())
	}
}

// Machine owns one loaded flow, a handler registry, and the bookkeeping of
// the most recent run. Each Run allocates fresh per-run state, so repeated
// runs of the same loaded flow are independent. A Machine is safe for
// concurrent use; runs on the same instance are serialized by the caller's
// choice of ordering, and accessors always observe a settled run.
type Machine struct {
	mu           sync.RWMutex
	registry     *usecases.HandlerRegistry
	engineConfig usecases.EngineConfig
	engine       *usecases.Engine
	archiver     *services.ArchiveService

	flow   *flow.Flow
	flowID string

	lastContext *trace.ExecutionContext
	lastState   *usecases.RunState
}

// New creates a machine with no flow loaded.
func New(opts ...Option) *Machine {
	m := &Machine{
		registry: usecases.NewHandlerRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.engineConfig.Logger == nil {
		m.engineConfig.Logger = slog.Default()
	}
	m.engine = usecases.NewEngine(m.registry, m.engineConfig)
	return m
}

// RegisterHandler binds a handler to a node type tag. Re-registering a tag
// replaces the previous handler.
func (m *Machine) RegisterHandler(nodeType string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry.Register(nodeType, h)
}

// LoadFlow discards any previously loaded flow and installs the new one.
// Field validation runs over the definition; referential integrity is not
// enforced (dangling edges fail to resolve at traversal time instead).
// Bookkeeping of earlier runs is cleared.
func (m *Machine) LoadFlow(def *Definition) error {
	if err := validation.ValidateDefinition(def); err != nil {
		return err
	}
	f, err := def.Build()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.flow = f
	m.flowID = def.ID
	m.lastContext = nil
	m.lastState = nil
	return nil
}

// Run walks the loaded flow from its start node. On success it returns the
// settled execution context; on failure it returns the triggering error, and
// the context — including every record written before the failure — remains
// inspectable via ExecutionTrace.
func (m *Machine) Run(ctx context.Context) (*ExecutionContext, error) {
	m.mu.Lock()
	f := m.flow
	flowID := m.flowID
	m.mu.Unlock()

	if f == nil {
		return nil, ErrNoFlowLoaded
	}

	ec, state, err := m.engine.Run(ctx, f)

	m.mu.Lock()
	m.lastContext = ec
	m.lastState = state
	m.mu.Unlock()

	if m.archiver != nil {
		if _, aerr := m.archiver.ArchiveRun(ctx, flowID, ec); aerr != nil {
			m.engineConfig.Logger.Warn("failed to archive run", "error", aerr)
		}
	}

	if err != nil {
		return ec, err
	}
	return ec, nil
}

// Result returns the final node's result from the most recent run: for an
// end-typed final node the union of its inputs and outputs (outputs win on
// key collision), otherwise a copy of its outputs. It returns nil when no
// final node was recorded or the node is absent.
func (m *Machine) Result() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastContext == nil || m.lastContext.FinalNodeID == "" || m.flow == nil {
		return nil
	}
	n := m.flow.Node(m.lastContext.FinalNodeID)
	if n == nil {
		return nil
	}
	outputs := m.lastState.Outputs(n)
	if !n.IsEnd() {
		return trace.Snapshot(outputs)
	}
	result := trace.Snapshot(m.lastState.Inputs(n))
	for k, v := range outputs {
		result[k] = v
	}
	return result
}

// NodeResult returns a copy of the node's outputs as of the most recent run,
// or nil if the node is absent.
func (m *Machine) NodeResult(id string) map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.flow == nil || m.lastState == nil {
		return nil
	}
	n := m.flow.Node(id)
	if n == nil {
		return nil
	}
	return trace.Snapshot(m.lastState.Outputs(n))
}

// ExecutionTrace returns a shallow copy of the most recent run's context.
// The record slices are shared with the original and must be treated as
// read-only.
func (m *Machine) ExecutionTrace() *ExecutionContext {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastContext == nil {
		return nil
	}
	return m.lastContext.Copy()
}

// ExecutionMetrics derives node/edge counts, elapsed milliseconds, and
// status from the most recent run's context.
func (m *Machine) ExecutionMetrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastContext == nil {
		return Metrics{ExecutionTimeMs: -1}
	}
	return m.lastContext.Metrics()
}
