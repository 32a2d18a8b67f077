// Package tracing provides OpenTelemetry distributed tracing for Urban Vision.
//
// When tracing is enabled, spans are exported over OTLP gRPC to the configured
// collector and W3C Trace Context headers are honoured on inbound requests.
// When disabled, New returns a tracer whose spans are noops.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "gateway.chat")
//	defer span.End()
package tracing
