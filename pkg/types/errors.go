package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed taxonomy of compile failures (spec §7). Every
// rejected input maps to exactly one of these.
type ErrorKind string

const (
	ErrKindMalformed               ErrorKind = "malformed"
	ErrKindUnknownKind             ErrorKind = "unknown_kind"
	ErrKindDuplicateID             ErrorKind = "duplicate_id"
	ErrKindSanitizedIDCollision    ErrorKind = "sanitized_id_collision"
	ErrKindMissingOutput           ErrorKind = "missing_output"
	ErrKindMultipleOutputs         ErrorKind = "multiple_outputs"
	ErrKindDanglingEdge            ErrorKind = "dangling_edge"
	ErrKindTooLarge                ErrorKind = "too_large"
	ErrKindCycleDetected           ErrorKind = "cycle_detected"
	ErrKindTypeMismatch            ErrorKind = "type_mismatch"
)

// Sentinel errors, one per kind, so callers can use errors.Is against a
// stable value instead of comparing strings.
var (
	errMalformed            = errors.New("malformed graph document")
	errUnknownKind          = errors.New("unknown node kind")
	errDuplicateID          = errors.New("duplicate node id")
	errSanitizedIDCollision = errors.New("sanitized identifiers collide")
	errMissingOutput        = errors.New("no fragment_output node present")
	errMultipleOutputs      = errors.New("more than one fragment_output node present")
	errDanglingEdge         = errors.New("edge refers to an unknown node")
	errTooLarge             = errors.New("graph exceeds configured size limits")
	errCycleDetected        = errors.New("cycle detected in node graph")
	errTypeMismatch         = errors.New("polymorphic operator's inputs disagree on type")
)

var sentinelByKind = map[ErrorKind]error{
	ErrKindMalformed:            errMalformed,
	ErrKindUnknownKind:          errUnknownKind,
	ErrKindDuplicateID:          errDuplicateID,
	ErrKindSanitizedIDCollision: errSanitizedIDCollision,
	ErrKindMissingOutput:        errMissingOutput,
	ErrKindMultipleOutputs:      errMultipleOutputs,
	ErrKindDanglingEdge:         errDanglingEdge,
	ErrKindTooLarge:             errTooLarge,
	ErrKindCycleDetected:        errCycleDetected,
	ErrKindTypeMismatch:         errTypeMismatch,
}

// CompileError is the single failure type the compiler returns. It carries
// the closed error kind plus whatever node/edge identifiers are relevant to
// the diagnosis (e.g. the node set left with positive in-degree on a cycle).
type CompileError struct {
	Kind    ErrorKind
	Message string
	NodeIDs []string
}

func (e *CompileError) Error() string {
	if len(e.NodeIDs) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (nodes: %s)", e.Message, strings.Join(e.NodeIDs, ", "))
}

// Unwrap exposes the kind's sentinel so callers can use errors.Is(err,
// types.ErrCycleDetected) etc. without depending on this struct directly.
func (e *CompileError) Unwrap() error {
	return sentinelByKind[e.Kind]
}

// NewCompileError builds a CompileError for the given kind and message.
func NewCompileError(kind ErrorKind, message string, nodeIDs ...string) *CompileError {
	return &CompileError{Kind: kind, Message: message, NodeIDs: nodeIDs}
}

// Exported sentinels for errors.Is comparisons against the kind taxonomy.
var (
	ErrMalformed            = errMalformed
	ErrUnknownKind          = errUnknownKind
	ErrDuplicateID          = errDuplicateID
	ErrSanitizedIDCollision = errSanitizedIDCollision
	ErrMissingOutput        = errMissingOutput
	ErrMultipleOutputs      = errMultipleOutputs
	ErrDanglingEdge         = errDanglingEdge
	ErrTooLarge             = errTooLarge
	ErrCycleDetected        = errCycleDetected
	ErrTypeMismatch         = errTypeMismatch
)
