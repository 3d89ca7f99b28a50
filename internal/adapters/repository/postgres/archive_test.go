package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/archive"
)

// openTestStore connects to the database named by TEST_POSTGRES_DSN and skips
// the test when the variable is unset.
func openTestStore(t *testing.T) *ArchiveStore {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := NewArchiveStore(pool)
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() {
		pool.Exec(ctx, "DELETE FROM "+store.tableName)
	})
	return store
}

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
	store := openTestStore(t)
	ctx := context.Background()

	rec := record("r1", "flow-a", "completed", time.Now().UTC())
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Trace, got.Trace)
	assert.WithinDuration(t, rec.ArchivedAt, got.ArchivedAt, time.Second)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, archive.ErrRecordNotFound)
}

func TestArchiveStore_SaveUpsertsOnConflict(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, record("r1", "flow-a", "running", time.Now().UTC())))
	require.NoError(t, store.Save(ctx, record("r1", "flow-a", "completed", time.Now().UTC())))

	got, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
}

func TestArchiveStore_ListAndDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, record("r1", "flow-a", "completed", now.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, record("r2", "flow-b", "failed", now)))

	recs, err := store.List(ctx, archive.Filter{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "r2", recs[0].ID)

	recs, err = store.List(ctx, archive.Filter{Status: "failed"})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	require.NoError(t, store.Delete(ctx, "r1"))
	assert.ErrorIs(t, store.Delete(ctx, "r1"), archive.ErrRecordNotFound)
}
