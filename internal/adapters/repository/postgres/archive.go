// Package postgres provides a PostgreSQL-backed archive store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/archive"
)

// ArchiveStore implements archive.Store on a PostgreSQL connection pool.
type ArchiveStore struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewArchiveStore creates a store on the given pool.
func NewArchiveStore(pool *pgxpool.Pool) *ArchiveStore {
	return &ArchiveStore{
		pool:      pool,
		tableName: "run_archive",
	}
}

// Init creates the archive table if it does not exist.
func (s *ArchiveStore) Init(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			flow_id TEXT NOT NULL,
			execution_id TEXT NOT NULL,
			status TEXT NOT NULL,
			trace BYTEA NOT NULL,
			archived_at TIMESTAMPTZ NOT NULL
		)`, s.tableName)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	return nil
}

// Save stores a record, replacing any previous record with the same id.
func (s *ArchiveStore) Save(ctx context.Context, rec *archive.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, flow_id, execution_id, status, trace, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			trace = EXCLUDED.trace,
			archived_at = EXCLUDED.archived_at`, s.tableName)
	_, err := s.pool.Exec(ctx, query,
		rec.ID, rec.FlowID, rec.ExecutionID, rec.Status, rec.Trace, rec.ArchivedAt)
	if err != nil {
		return fmt.Errorf("failed to save archive record: %w", err)
	}
	return nil
}

// Load retrieves a record by id.
func (s *ArchiveStore) Load(ctx context.Context, id string) (*archive.Record, error) {
	if id == "" {
		return nil, archive.ErrInvalidRecordID
	}
	query := fmt.Sprintf(`
		SELECT id, flow_id, execution_id, status, trace, archived_at
		FROM %s WHERE id = $1`, s.tableName)

	rec := &archive.Record{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.FlowID, &rec.ExecutionID, &rec.Status, &rec.Trace, &rec.ArchivedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, archive.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load archive record: %w", err)
	}
	return rec, nil
}

// List returns records matching the filter, newest first.
func (s *ArchiveStore) List(ctx context.Context, filter archive.Filter) ([]*archive.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.FlowID != "" {
		conds = append(conds, "flow_id = "+arg(filter.FlowID))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.Since != nil {
		conds = append(conds, "archived_at >= "+arg(*filter.Since))
	}

	query := fmt.Sprintf("SELECT id, flow_id, execution_id, status, trace, archived_at FROM %s", s.tableName)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY archived_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive records: %w", err)
	}
	defer rows.Close()

	var out []*archive.Record
	for rows.Next() {
		rec := &archive.Record{}
		if err := rows.Scan(&rec.ID, &rec.FlowID, &rec.ExecutionID, &rec.Status, &rec.Trace, &rec.ArchivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archive record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a record by id.
func (s *ArchiveStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete archive record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return archive.ErrRecordNotFound
	}
	return nil
}
