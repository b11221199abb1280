// Package compileservice is the orchestration seam around the pure
// compiler package: it assigns each call a request ID, logs one structured
// line per call, records a pkg/telemetry measurement, and notifies any
// registered pkg/observer.Observers at the compile- and stage-level
// boundaries. It adapts the teacher's Engine orchestration role, minus node
// execution — there is no execution step here, only compilation.
//
// This is the seam the (out-of-scope) HTTP transport and the
// pkg/graphimport LLM-assisted generator both call through: both produce a
// raw graph document or a types.Graph and hand it to Service.Compile /
// Service.CompileJSON exactly like any other caller.
package compileservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	compiler "github.com/shaderforge/compiler"
	"github.com/shaderforge/compiler/pkg/config"
	"github.com/shaderforge/compiler/pkg/intake"
	"github.com/shaderforge/compiler/pkg/logging"
	"github.com/shaderforge/compiler/pkg/observer"
	"github.com/shaderforge/compiler/pkg/telemetry"
	"github.com/shaderforge/compiler/pkg/types"
)

// Service wraps compiler.Compile with logging, telemetry, and observer
// notification. The zero value is not usable; construct with New.
type Service struct {
	cfg       *config.Config
	logger    *logging.Logger
	telemetry *telemetry.Provider
	observers *observer.Manager
}

// Option configures a Service at construction time.
type Option func(*Service)

// WithConfig sets the compiler configuration profile. Defaults to
// config.Default() when not supplied.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithLogger sets the structured logger. Defaults to
// logging.New(logging.DefaultConfig()) when not supplied.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTelemetry attaches a telemetry provider. Telemetry is skipped entirely
// when not supplied.
func WithTelemetry(provider *telemetry.Provider) Option {
	return func(s *Service) { s.telemetry = provider }
}

// New constructs a Service. Call RegisterObserver afterward to attach
// pkg/observer.Observers (including telemetry.NewCompileObserver, if a
// telemetry provider was supplied via WithTelemetry).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:       config.Default(),
		logger:    logging.New(logging.DefaultConfig()),
		observers: observer.NewManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterObserver attaches an observer that will be notified of every
// subsequent Compile/CompileJSON call's events.
func (s *Service) RegisterObserver(o observer.Observer) {
	s.observers.Register(o)
}

// Response pairs a compile result with the request ID assigned to it, so
// callers can correlate it with logs, telemetry, and observer events.
type Response struct {
	RequestID string
	*compiler.Result
}

// CompileJSON validates and decodes a raw `{nodes, edges}` document via
// pkg/intake, then compiles it. A schema or decode failure is reported as
// part of the same Response shape a structural/type error would be,
// carrying the intake stage's malformed error.
func (s *Service) CompileJSON(ctx context.Context, raw []byte) *Response {
	requestID := uuid.New().String()
	logger := s.logger.WithRequestID(requestID)
	start := time.Now()

	s.notify(ctx, observer.Event{
		Type:      observer.EventCompileStart,
		Status:    observer.StatusStarted,
		Timestamp: start,
		RequestID: requestID,
	})

	g, err := s.intake(ctx, requestID, raw)
	if err != nil {
		s.finish(ctx, logger, requestID, start, 0, err)
		return &Response{RequestID: requestID, Result: failResultFor(err)}
	}

	return s.compile(ctx, requestID, logger, start, g)
}

// intake runs the JSON-Schema decode stage and reports it as a stage event,
// matching the reporting compiler.CompileWithHooks does for its own five
// internal stages.
func (s *Service) intake(ctx context.Context, requestID string, raw []byte) (types.Graph, error) {
	s.notify(ctx, observer.Event{
		Type:      observer.EventStageStart,
		Status:    observer.StatusStarted,
		Timestamp: time.Now(),
		RequestID: requestID,
		StageName: observer.StageIntake,
	})

	g, err := intake.Decode(raw)

	evtType := observer.EventStageSuccess
	status := observer.StatusSuccess
	if err != nil {
		evtType = observer.EventStageFailure
		status = observer.StatusFailure
	}
	s.notify(ctx, observer.Event{
		Type:      evtType,
		Status:    status,
		Timestamp: time.Now(),
		RequestID: requestID,
		StageName: observer.StageIntake,
		Error:     err,
	})

	return g, err
}

// Compile compiles an already-decoded graph IR. Use this when the caller
// (e.g. pkg/graphimport's eventual consumer) already has a types.Graph and
// does not need the JSON intake stage.
func (s *Service) Compile(ctx context.Context, g types.Graph) *Response {
	requestID := uuid.New().String()
	logger := s.logger.WithRequestID(requestID)
	start := time.Now()

	s.notify(ctx, observer.Event{
		Type:      observer.EventCompileStart,
		Status:    observer.StatusStarted,
		Timestamp: start,
		RequestID: requestID,
	})

	return s.compile(ctx, requestID, logger, start, g)
}

func (s *Service) compile(ctx context.Context, requestID string, logger *logging.Logger, start time.Time, g types.Graph) *Response {
	hooks := compiler.StageHooks{
		OnStageStart: func(stage string) {
			s.notify(ctx, observer.Event{
				Type:      observer.EventStageStart,
				Status:    observer.StatusStarted,
				Timestamp: time.Now(),
				RequestID: requestID,
				StageName: stage,
			})
		},
		OnStageComplete: func(stage string, err error) {
			evtType := observer.EventStageSuccess
			status := observer.StatusSuccess
			if err != nil {
				evtType = observer.EventStageFailure
				status = observer.StatusFailure
			}
			s.notify(ctx, observer.Event{
				Type:      evtType,
				Status:    status,
				Timestamp: time.Now(),
				RequestID: requestID,
				StageName: stage,
				Error:     err,
			})
		},
	}

	result := compiler.CompileWithHooks(g, s.cfg, hooks)
	s.finish(ctx, logger, requestID, start, len(g.Nodes), result.Err())

	return &Response{RequestID: requestID, Result: result}
}

func (s *Service) finish(ctx context.Context, logger *logging.Logger, requestID string, start time.Time, nodeCount int, err error) {
	duration := time.Since(start)
	success := err == nil

	if success {
		logger.WithField("duration_ms", duration.Milliseconds()).Info("compile succeeded")
	} else {
		logger.WithError(err).WithField("duration_ms", duration.Milliseconds()).Warn("compile rejected")
	}

	errorKind := ""
	if ce, ok := err.(*types.CompileError); ok {
		errorKind = string(ce.Kind)
	}
	if s.telemetry != nil {
		s.telemetry.RecordCompile(ctx, duration, success, nodeCount, errorKind)
	}

	status := observer.StatusSuccess
	if !success {
		status = observer.StatusFailure
	}
	s.notify(ctx, observer.Event{
		Type:        observer.EventCompileEnd,
		Status:      status,
		Timestamp:   time.Now(),
		RequestID:   requestID,
		NodeCount:   nodeCount,
		ElapsedTime: duration,
		Error:       err,
	})
}

func (s *Service) notify(ctx context.Context, event observer.Event) {
	if s.observers != nil && s.observers.HasObservers() {
		s.observers.Notify(ctx, event)
	}
}

func failResultFor(err error) *compiler.Result {
	return compiler.FailureResult(err)
}
