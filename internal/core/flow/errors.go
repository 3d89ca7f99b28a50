// Package flow defines domain-specific errors
package flow

import "errors"

var (
	// Node errors
	ErrNilNode         = errors.New("node cannot be nil")
	ErrInvalidNodeID   = errors.New("invalid node ID")
	ErrInvalidNodeType = errors.New("invalid node type")

	// Edge errors
	ErrNilEdge       = errors.New("edge cannot be nil")
	ErrInvalidEdgeID = errors.New("invalid edge ID")
	ErrInvalidSource = errors.New("invalid source node")
	ErrInvalidTarget = errors.New("invalid target node")

	// Flow errors
	ErrMissingStartNode = errors.New("no start node found")
	ErrFlowNotFound     = errors.New("flow not found")
)
