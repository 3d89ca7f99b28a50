package usecases

import "errors"

var (
	// ErrUnregisteredHandler indicates a node's type tag has no handler
	// bound; the offending type is attached where the error is raised.
	ErrUnregisteredHandler = errors.New("no handler registered for node type")

	// ErrStepLimitExceeded indicates the traversal loop hit its configured
	// step cap, usually a sign of a cyclic edge topology.
	ErrStepLimitExceeded = errors.New("step limit exceeded")
)
