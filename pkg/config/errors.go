package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrInvalidMaxNodes = errors.New("invalid max nodes: must be non-negative")
	ErrInvalidMaxEdges = errors.New("invalid max edges: must be non-negative")
)
