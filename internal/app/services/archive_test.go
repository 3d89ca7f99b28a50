package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/adapters/repository/memory"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/archive"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/trace"
)

func settledContext(status trace.Status) *trace.ExecutionContext {
	ec := trace.New("exec-1")
	ec.RecordNode("a", "start", nil, map[string]any{"x": int8(1)}, time.Now())
	ec.RecordEdge("e1", "a", "b")
	ec.FinalNodeID = "b"
	if status == trace.StatusFailed {
		ec.Fail(errors.New("boom"))
	} else {
		ec.Complete()
	}
	return ec
}

func TestArchiveService_ArchiveRun(t *testing.T) {
	store := memory.NewArchiveStore()
	svc := NewArchiveService(store, nil)
	ctx := context.Background()

	t.Run("round-trips a settled trace", func(t *testing.T) {
		ec := settledContext(trace.StatusCompleted)
		id, err := svc.ArchiveRun(ctx, "demo-flow", ec)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := svc.LoadTrace(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, ec.ExecutionID, got.ExecutionID)
		assert.Equal(t, trace.StatusCompleted, got.Status)
		assert.Equal(t, "b", got.FinalNodeID)
		require.Len(t, got.NodeExecutions, 1)
		assert.Equal(t, "a", got.NodeExecutions[0].NodeID)
	})

	t.Run("archives failed runs too", func(t *testing.T) {
		id, err := svc.ArchiveRun(ctx, "demo-flow", settledContext(trace.StatusFailed))
		require.NoError(t, err)

		got, err := svc.LoadTrace(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, trace.StatusFailed, got.Status)
		assert.Equal(t, "boom", got.Error)
	})

	t.Run("rejects running contexts", func(t *testing.T) {
		ec := trace.New("exec-2")
		_, err := svc.ArchiveRun(ctx, "demo-flow", ec)
		assert.Error(t, err)
	})

	t.Run("rejects nil contexts", func(t *testing.T) {
		_, err := svc.ArchiveRun(ctx, "demo-flow", nil)
		assert.ErrorIs(t, err, archive.ErrEmptyTrace)
	})
}

func TestArchiveService_List(t *testing.T) {
	store := memory.NewArchiveStore()
	svc := NewArchiveService(store, nil)
	ctx := context.Background()

	_, err := svc.ArchiveRun(ctx, "flow-a", settledContext(trace.StatusCompleted))
	require.NoError(t, err)
	_, err = svc.ArchiveRun(ctx, "flow-b", settledContext(trace.StatusFailed))
	require.NoError(t, err)

	recs, err := svc.List(ctx, archive.Filter{FlowID: "flow-a"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "flow-a", recs[0].FlowID)

	_, err = svc.List(ctx, archive.Filter{Limit: -1})
	assert.ErrorIs(t, err, archive.ErrInvalidLimit)
}
