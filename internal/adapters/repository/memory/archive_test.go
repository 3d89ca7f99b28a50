package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/archive"
)

func record(id, flowID, status string, archivedAt time.Time) *archive.Record {
	return &archive.Record{
		ID:          id,
		FlowID:      flowID,
		ExecutionID: "exec-" + id,
		Status:      status,
		Trace:       []byte("blob-" + id),
		ArchivedAt:  archivedAt,
	}
}

func TestArchiveStore_SaveLoad(t *testing.T) {
	store := NewArchiveStore()
	ctx := context.Background()

	rec := record("r1", "flow-a", "completed", time.Now())
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, archive.ErrRecordNotFound)
}

func TestArchiveStore_SaveRejectsInvalid(t *testing.T) {
	store := NewArchiveStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, &archive.Record{ExecutionID: "x", Trace: []byte("b")}), archive.ErrInvalidRecordID)
	assert.ErrorIs(t, store.Save(ctx, &archive.Record{ID: "r", Trace: []byte("b")}), archive.ErrInvalidExecutionID)
	assert.ErrorIs(t, store.Save(ctx, &archive.Record{ID: "r", ExecutionID: "x"}), archive.ErrEmptyTrace)
}

func TestArchiveStore_List(t *testing.T) {
	store := NewArchiveStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, record("r1", "flow-a", "completed", now.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, record("r2", "flow-a", "failed", now.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, record("r3", "flow-b", "completed", now)))

	t.Run("newest first", func(t *testing.T) {
		recs, err := store.List(ctx, archive.Filter{})
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "r3", recs[0].ID)
		assert.Equal(t, "r1", recs[2].ID)
	})

	t.Run("filter by flow and status", func(t *testing.T) {
		recs, err := store.List(ctx, archive.Filter{FlowID: "flow-a", Status: "failed"})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "r2", recs[0].ID)
	})

	t.Run("filter by time and limit", func(t *testing.T) {
		since := now.Add(-90 * time.Minute)
		recs, err := store.List(ctx, archive.Filter{Since: &since, Limit: 1})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "r3", recs[0].ID)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		_, err := store.List(ctx, archive.Filter{Limit: -1})
		assert.ErrorIs(t, err, archive.ErrInvalidLimit)
	})
}

func TestArchiveStore_Delete(t *testing.T) {
	store := NewArchiveStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, record("r1", "flow-a", "completed", time.Now())))
	require.NoError(t, store.Delete(ctx, "r1"))

	_, err := store.Load(ctx, "r1")
	assert.ErrorIs(t, err, archive.ErrRecordNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "r1"), archive.ErrRecordNotFound)
}
