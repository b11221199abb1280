// Package telemetry wires the shader compiler's service layer into
// OpenTelemetry metrics (exported via Prometheus) and tracing, the same
// stack the source repository used for its workflow engine. The compiler
// core itself records nothing — telemetry is a pkg/compileservice concern.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "shaderforge-compiler"

	metricCompileRequests = "compile.requests.total"
	metricCompileDuration = "compile.duration"
	metricCompileSuccess  = "compile.success.total"
	metricCompileFailure  = "compile.failure.total"
	metricCompileNodes    = "compile.graph.nodes"
)

// Provider manages OpenTelemetry setup and provides access to tracers and
// meters for the compile service.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	compileRequests metric.Int64Counter
	compileDuration metric.Float64Histogram
	compileSuccess  metric.Int64Counter
	compileFailure  metric.Int64Counter
	compileNodes    metric.Int64Histogram

	mu sync.RWMutex
}

// Config holds telemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	EnableMetrics  bool
}

// DefaultConfig returns default telemetry configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a new telemetry provider with a Prometheus metrics
// exporter, initializing OpenTelemetry with the given configuration.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

func (p *Provider) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(p.meterProvider)
	p.meter = p.meterProvider.Meter(serviceName)

	return p.createMetricInstruments()
}

func (p *Provider) initTracing() {
	// In production this would be configured with an OTLP/Jaeger exporter;
	// the global provider is sufficient for the compile service's
	// per-request span and its per-stage child spans.
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

func (p *Provider) createMetricInstruments() error {
	var err error

	p.compileRequests, err = p.meter.Int64Counter(
		metricCompileRequests,
		metric.WithDescription("Total number of compile calls"),
	)
	if err != nil {
		return err
	}

	p.compileDuration, err = p.meter.Float64Histogram(
		metricCompileDuration,
		metric.WithDescription("Compile call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.compileSuccess, err = p.meter.Int64Counter(
		metricCompileSuccess,
		metric.WithDescription("Total number of successful compile calls"),
	)
	if err != nil {
		return err
	}

	p.compileFailure, err = p.meter.Int64Counter(
		metricCompileFailure,
		metric.WithDescription("Total number of failed compile calls"),
	)
	if err != nil {
		return err
	}

	p.compileNodes, err = p.meter.Int64Histogram(
		metricCompileNodes,
		metric.WithDescription("Number of nodes in the compiled graph"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer for creating spans.
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics.
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordCompile records one compile call's outcome: request count, the
// success/failure split, wall-clock duration, and graph size. errorKind is
// the empty string on success, or the compiler's error kind on failure.
func (p *Provider) RecordCompile(ctx context.Context, duration time.Duration, success bool, nodeCount int, errorKind string) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	if errorKind != "" {
		attrs = append(attrs, attribute.String("error_kind", errorKind))
	}

	p.compileRequests.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.compileDuration.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
	p.compileNodes.Record(ctx, int64(nodeCount))

	if success {
		p.compileSuccess.Add(ctx, 1)
	} else {
		p.compileFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// Shutdown gracefully shuts down the telemetry provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}

	return nil
}
