// Package condition defines domain-specific errors
package condition

import "errors"

var (
	ErrEmptyCondition     = errors.New("condition is empty")
	ErrMalformedCondition = errors.New("malformed condition")
	ErrUnknownOperator    = errors.New("unknown operator")
	ErrNotComparable      = errors.New("values are not comparable")
)
