package usecases

import (
	"context"
	"fmt"
)

// Handler is the capability contract for node work: given the node's input
// mapping, produce an output mapping or fail with any error. Handlers may
// perform arbitrary I/O; the engine treats their failures opaquely.
type Handler func(ctx context.Context, input map[string]any) (map[string]any, error)

// HandlerRegistry maps a node's declared type tag to its handler and
// dispatches by type at execution time.
type HandlerRegistry struct {
	handlers map[string]Handler
}

// NewHandlerRegistry creates an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to a type tag. Re-registering a tag replaces the
// previous handler — last write wins.
func (r *HandlerRegistry) Register(nodeType string, h Handler) {
	r.handlers[nodeType] = h
}

// Has reports whether a handler is bound to the type tag.
func (r *HandlerRegistry) Has(nodeType string) bool {
	_, ok := r.handlers[nodeType]
	return ok
}

// Execute dispatches to the handler bound to nodeType, passing the input
// mapping directly (not a copy) and returning its output mapping.
func (r *HandlerRegistry) Execute(ctx context.Context, nodeType string, input map[string]any) (map[string]any, error) {
	h, ok := r.handlers[nodeType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredHandler, nodeType)
	}
	return h(ctx, input)
}
