// Package flowrepo provides storage for named flow definitions.
package flowrepo

import (
	"context"
	"sync"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/flow"
)

// InMemoryRepository is a thread-safe, map-based store for flow definitions,
// keyed by definition id. It backs multi-flow callers such as the CLI; a
// Machine itself holds exactly one loaded flow.
type InMemoryRepository struct {
	mu          sync.RWMutex
	definitions map[string]*flow.Definition
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		definitions: make(map[string]*flow.Definition),
	}
}

// Save stores a definition, overwriting any previous one with the same id.
func (r *InMemoryRepository) Save(_ context.Context, d *flow.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[d.ID] = d
	return nil
}

// Get retrieves a definition by id.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*flow.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.definitions[id]
	if !ok {
		return nil, flow.ErrFlowNotFound
	}
	return d, nil
}

// List returns all stored definitions.
func (r *InMemoryRepository) List(_ context.Context) ([]*flow.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*flow.Definition, 0, len(r.definitions))
	for _, d := range r.definitions {
		out = append(out, d)
	}
	return out, nil
}
