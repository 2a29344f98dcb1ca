package client

import "errors"

// Client-related errors
var (
	// Validation errors
	ErrInvalidID       = errors.New("invalid client ID")
	ErrInvalidStatus   = errors.New("invalid status: must be backlog, in-progress, or complete")
	ErrInvalidPriority = errors.New("invalid priority: must be an integer")

	// Business logic errors
	ErrClientNotFound = errors.New("client not found")
)
