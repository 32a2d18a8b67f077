package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for gateway spans. Custom keys use the "urbanvision.*"
// namespace.
const (
	AttrOperation        = "urbanvision.operation"
	AttrOutcome          = "urbanvision.outcome"
	AttrProvider         = "urbanvision.provider"
	AttrModel            = "urbanvision.model"
	AttrPromptTokens     = "urbanvision.tokens.prompt"
	AttrCompletionTokens = "urbanvision.tokens.completion"
	AttrErrorType        = "urbanvision.error.type"
)

// SetOperationAttributes sets the operation and backend attributes on a span.
func SetOperationAttributes(span trace.Span, operation, provider, model string) {
	span.SetAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrProvider, provider),
		attribute.String(AttrModel, model),
	)
}

// SetTokenAttributes sets token usage attributes on a span.
func SetTokenAttributes(span trace.Span, promptTokens, completionTokens int) {
	span.SetAttributes(
		attribute.Int(AttrPromptTokens, promptTokens),
		attribute.Int(AttrCompletionTokens, completionTokens),
	)
}

// SetOutcome records the final outcome of an operation.
func SetOutcome(span trace.Span, outcome, errorType string) {
	attrs := []attribute.KeyValue{attribute.String(AttrOutcome, outcome)}
	if errorType != "" {
		attrs = append(attrs, attribute.String(AttrErrorType, errorType))
	}
	span.SetAttributes(attrs...)
}

func serverSpan(r *http.Request) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("http.target", r.URL.Path),
	)
}
