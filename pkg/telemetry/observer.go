package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shaderforge/compiler/pkg/observer"
	"github.com/shaderforge/compiler/pkg/types"
)

// CompileObserver implements observer.Observer and records telemetry data
// for a compile call's pipeline events.
type CompileObserver struct {
	provider *Provider

	mu sync.Mutex

	compileSpan  trace.Span
	stageSpans   map[string]trace.Span
	compileStart time.Time
	stageStarts  map[string]time.Time
}

// NewCompileObserver creates a new telemetry observer backed by provider.
func NewCompileObserver(provider *Provider) *CompileObserver {
	return &CompileObserver{
		provider:    provider,
		stageSpans:  make(map[string]trace.Span),
		stageStarts: make(map[string]time.Time),
	}
}

// OnEvent handles pipeline events and records telemetry data
func (o *CompileObserver) OnEvent(ctx context.Context, event observer.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.Type {
	case observer.EventCompileStart:
		o.handleCompileStart(ctx, event)
	case observer.EventCompileEnd:
		o.handleCompileEnd(ctx, event)
	case observer.EventStageStart:
		o.handleStageStart(ctx, event)
	case observer.EventStageSuccess:
		o.handleStageEnd(ctx, event, true)
	case observer.EventStageFailure:
		o.handleStageEnd(ctx, event, false)
	}
}

func (o *CompileObserver) handleCompileStart(ctx context.Context, event observer.Event) {
	_, span := o.provider.Tracer().Start(ctx, "compiler.compile",
		trace.WithAttributes(
			attribute.String("request.id", event.RequestID),
		),
	)

	o.compileSpan = span
	o.compileStart = event.Timestamp
}

func (o *CompileObserver) handleCompileEnd(ctx context.Context, event observer.Event) {
	duration := time.Since(o.compileStart)
	success := event.Status == observer.StatusSuccess

	errorKind := ""
	var ce *types.CompileError
	if errors.As(event.Error, &ce) {
		errorKind = string(ce.Kind)
	}
	o.provider.RecordCompile(ctx, duration, success, event.NodeCount, errorKind)

	if o.compileSpan != nil {
		if event.Error != nil {
			o.compileSpan.RecordError(event.Error)
			o.compileSpan.SetStatus(codes.Error, event.Error.Error())
		} else {
			o.compileSpan.SetStatus(codes.Ok, "compile succeeded")
		}
		o.compileSpan.End()
	}
}

func (o *CompileObserver) handleStageStart(ctx context.Context, event observer.Event) {
	var spanCtx context.Context
	if o.compileSpan != nil {
		spanCtx = trace.ContextWithSpan(ctx, o.compileSpan)
	} else {
		spanCtx = ctx
	}

	_, span := o.provider.Tracer().Start(spanCtx, "compiler.stage."+event.StageName,
		trace.WithAttributes(
			attribute.String("request.id", event.RequestID),
			attribute.String("stage.name", event.StageName),
		),
	)

	o.stageSpans[event.StageName] = span
	o.stageStarts[event.StageName] = event.Timestamp
}

func (o *CompileObserver) handleStageEnd(ctx context.Context, event observer.Event, success bool) {
	if _, ok := o.stageStarts[event.StageName]; ok {
		delete(o.stageStarts, event.StageName)
	}

	if span, ok := o.stageSpans[event.StageName]; ok {
		if event.Error != nil {
			span.RecordError(event.Error)
			span.SetStatus(codes.Error, event.Error.Error())
		} else {
			span.SetStatus(codes.Ok, "stage completed successfully")
		}
		span.End()
		delete(o.stageSpans, event.StageName)
	}
}
