// Package telemetry groups the observability packages of Urban Vision.
//
//   - logging: slog setup with request ID propagation and credential redaction
//   - metrics: Prometheus collector and the /metrics handler
//   - tracing: OpenTelemetry tracer with OTLP gRPC export
//   - health: readiness checks and build information
package telemetry
