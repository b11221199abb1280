// Package telemetry provides OpenTelemetry integration for the compile
// service's distributed tracing and metrics. It exposes:
//   - Prometheus-exported counters and a duration histogram per compile call
//   - A tracing span per compile call with a child span per pipeline stage
//   - A CompileObserver that bridges pkg/observer events into both
package telemetry
