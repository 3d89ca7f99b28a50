// Package archive provides archive persistence interfaces
package archive

import (
	"context"
)

// Store persists settled-run records. The core domain depends on this
// interface; concrete stores live in the adapters layer.
type Store interface {
	// Save persists a record.
	Save(ctx context.Context, rec *Record) error

	// Load retrieves a record by ID.
	Load(ctx context.Context, id string) (*Record, error)

	// List returns records matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]*Record, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error
}
