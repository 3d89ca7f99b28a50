// Package archive defines domain-specific errors
package archive

import "errors"

var (
	ErrInvalidRecordID    = errors.New("invalid record ID")
	ErrInvalidExecutionID = errors.New("invalid execution ID")
	ErrEmptyTrace         = errors.New("record trace cannot be empty")
	ErrRecordNotFound     = errors.New("record not found")
	ErrInvalidLimit       = errors.New("limit cannot be negative")
)
