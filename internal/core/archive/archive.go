// Package archive provides the core run-archive entities and interfaces
// following Clean Architecture principles with zero external dependencies.
//
// The archive is an append-only audit log of settled runs. Nothing is ever
// resumed from it — a record captures how a run went, not state to restart
// from.
package archive

import (
	"time"
)

// Record represents one settled run retained for later inspection.
type Record struct {
	ID          string    `json:"id" msgpack:"id"`
	FlowID      string    `json:"flow_id" msgpack:"flow_id"`
	ExecutionID string    `json:"execution_id" msgpack:"execution_id"`
	Status      string    `json:"status" msgpack:"status"`
	Trace       []byte    `json:"trace" msgpack:"trace"`
	ArchivedAt  time.Time `json:"archived_at" msgpack:"archived_at"`
}

// Validate ensures record integrity.
func (r *Record) Validate() error {
	if r.ID == "" {
		return ErrInvalidRecordID
	}
	if r.ExecutionID == "" {
		return ErrInvalidExecutionID
	}
	if len(r.Trace) == 0 {
		return ErrEmptyTrace
	}
	return nil
}

// Filter narrows archive queries.
type Filter struct {
	FlowID string     `json:"flow_id,omitempty"`
	Status string     `json:"status,omitempty"`
	Limit  int        `json:"limit,omitempty"`
	Since  *time.Time `json:"since,omitempty"`
}

// Validate ensures filter parameters are valid.
func (f *Filter) Validate() error {
	if f.Limit < 0 {
		return ErrInvalidLimit
	}
	return nil
}
