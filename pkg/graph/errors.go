package graph

import "errors"

// ErrEmptyGraph is returned by callers that require at least one node; the
// Graph type itself tolerates an empty node set and returns an empty
// schedule.
var ErrEmptyGraph = errors.New("graph is empty")
