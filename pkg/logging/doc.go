// Package logging provides structured logging for the shader compiler's
// service layer.
//
// # Overview
//
// The logging package wraps log/slog with chainable contextual fields
// (request_id, node_id, node_kind) so a single compile call's log lines can
// be correlated without threading a context value through every function.
//
// # Basic usage
//
//	logger := logging.New(logging.DefaultConfig())
//	logger.WithRequestID(reqID).Info("compile request accepted")
//
// # Output formats
//
// JSON (default, production) or Pretty (text, development); both honor
// Level and IncludeCaller.
//
// # Thread safety
//
// Logger values are safe for concurrent use; With* methods return a new
// Logger rather than mutating the receiver.
package logging
