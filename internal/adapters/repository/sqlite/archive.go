// Package sqlite provides a SQLite-backed archive store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/archive"
)

// ArchiveStore implements archive.Store on a SQLite database.
type ArchiveStore struct {
	db        *sql.DB
	tableName string
}

// NewArchiveStore creates a store on the given database handle.
func NewArchiveStore(db *sql.DB) *ArchiveStore {
	return &ArchiveStore{
		db:        db,
		tableName: "run_archive",
	}
}

// Open opens (or creates) a SQLite database at path and initializes the
// archive schema.
func Open(ctx context.Context, path string) (*ArchiveStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	store := NewArchiveStore(db)
	if err := store.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Init creates the archive table if it does not exist.
func (s *ArchiveStore) Init(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			flow_id TEXT NOT NULL,
			execution_id TEXT NOT NULL,
			status TEXT NOT NULL,
			trace BLOB NOT NULL,
			archived_at TIMESTAMP NOT NULL
		)`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *ArchiveStore) Close() error {
	return s.db.Close()
}

// Save stores a record, replacing any previous record with the same id.
func (s *ArchiveStore) Save(ctx context.Context, rec *archive.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (id, flow_id, execution_id, status, trace, archived_at)
		VALUES (?, ?, ?, ?, ?, ?)`, s.tableName)
	_, err := s.db.ExecContext(ctx, query,
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
		FROM %s WHERE id = ?`, s.tableName)

	rec := &archive.Record{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.FlowID, &rec.ExecutionID, &rec.Status, &rec.Trace, &rec.ArchivedAt)
	if errors.Is(err, sql.ErrNoRows) {
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
	if filter.FlowID != "" {
		conds = append(conds, "flow_id = ?")
		args = append(args, filter.FlowID)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Since != nil {
		conds = append(conds, "archived_at >= ?")
		args = append(args, *filter.Since)
	}

	query := fmt.Sprintf("SELECT id, flow_id, execution_id, status, trace, archived_at FROM %s", s.tableName)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY archived_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete archive record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return archive.ErrRecordNotFound
	}
	return nil
}
