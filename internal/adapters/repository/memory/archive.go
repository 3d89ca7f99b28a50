// Package memory provides an in-memory archive store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/archive"
)

// ArchiveStore implements archive.Store with thread-safe in-memory storage.
// Suitable for tests and short-lived processes; records vanish with the
// process, which is fine for an audit log that was never a recovery source.
type ArchiveStore struct {
	mu      sync.RWMutex
	records map[string]*archive.Record
}

// NewArchiveStore creates an empty store.
func NewArchiveStore() *ArchiveStore {
	return &ArchiveStore{
		records: make(map[string]*archive.Record),
	}
}

// Save stores a record keyed by id.
func (s *ArchiveStore) Save(_ context.Context, rec *archive.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Load retrieves a record by id.
func (s *ArchiveStore) Load(_ context.Context, id string) (*archive.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, archive.ErrRecordNotFound
	}
	return rec, nil
}

// List returns records matching the filter, newest first.
func (s *ArchiveStore) List(_ context.Context, filter archive.Filter) ([]*archive.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*archive.Record
	for _, rec := range s.records {
		if filter.FlowID != "" && rec.FlowID != filter.FlowID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Since != nil && rec.ArchivedAt.Before(*filter.Since) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ArchivedAt.After(out[j].ArchivedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Delete removes a record by id.
func (s *ArchiveStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return archive.ErrRecordNotFound
	}
	delete(s.records, id)
	return nil
}
