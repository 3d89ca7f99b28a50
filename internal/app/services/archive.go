package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/archive"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/trace"
	"github.com/AndreasCaldewei/simple-flow-engine/pkg/serialization"
)

// ArchiveService records settled execution contexts into an archive store.
// It depends on the archive.Store abstraction; records are write-once audit
// data, never a source to resume a run from.
type ArchiveService struct {
	store      archive.Store
	serializer *serialization.Serializer
}

// NewArchiveService creates an archive service. A nil serializer uses the
// default msgpack+zstd pipeline.
func NewArchiveService(store archive.Store, serializer *serialization.Serializer) *ArchiveService {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &ArchiveService{
		store:      store,
		serializer: serializer,
	}
}

// ArchiveRun persists a settled execution context and returns the new
// record's id. Contexts still in running state are rejected.
func (s *ArchiveService) ArchiveRun(ctx context.Context, flowID string, ec *trace.ExecutionContext) (string, error) {
	if ec == nil {
		return "", archive.ErrEmptyTrace
	}
	if ec.Status == trace.StatusRunning {
		return "", fmt.Errorf("cannot archive a running execution %s", ec.ExecutionID)
	}

	blob, err := s.serializer.Serialize(ec)
	if err != nil {
		return "", fmt.Errorf("failed to serialize trace: %w", err)
	}

	rec := &archive.Record{
		ID:          uuid.NewString(),
		FlowID:      flowID,
		ExecutionID: ec.ExecutionID,
		Status:      string(ec.Status),
		Trace:       blob,
		ArchivedAt:  time.Now(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to save archive record: %w", err)
	}
	return rec.ID, nil
}

// LoadTrace retrieves an archived execution context by record id.
func (s *ArchiveService) LoadTrace(ctx context.Context, recordID string) (*trace.ExecutionContext, error) {
	rec, err := s.store.Load(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive record: %w", err)
	}
	var ec trace.ExecutionContext
	if err := s.serializer.Deserialize(rec.Trace, &ec); err != nil {
		return nil, fmt.Errorf("failed to decode archived trace: %w", err)
	}
	return &ec, nil
}

// List returns archive records matching the filter, newest first.
func (s *ArchiveService) List(ctx context.Context, filter archive.Filter) ([]*archive.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.store.List(ctx, filter)
}
