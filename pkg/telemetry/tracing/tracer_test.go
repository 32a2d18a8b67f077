package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"urbanvision-ao/urbanvision/pkg/config"
)

func newTestTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tracer, err := newWithExporter(&config.TracingConfig{
		Enabled:     true,
		ServiceName: "urbanvision-test",
		SampleRatio: 1,
	}, exporter)
	if err != nil {
		t.Fatalf("newWithExporter() failed: %v", err)
	}
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, exporter
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{
			name:    "nil config",
			wantErr: true,
		},
		{
			name:   "disabled tracing",
			config: &config.TracingConfig{Enabled: false},
		},
		{
			name: "enabled otlp",
			config: &config.TracingConfig{
				Enabled:     true,
				Endpoint:    "localhost:4317",
				ServiceName: "urbanvision",
				SampleRatio: 0.5,
				Insecure:    true,
			},
			wantEnabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer tracer.Shutdown(context.Background())

			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func TestTracer_Disabled(t *testing.T) {
	tracer, err := New(&config.TracingConfig{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, span := tracer.Start(context.Background(), "chat")
	defer span.End()

	if span.IsRecording() {
		t.Error("disabled tracer produced a recording span")
	}
	if TraceID(ctx) != "" {
		t.Error("disabled tracer produced a trace ID")
	}
}

func TestTracer_Nil(t *testing.T) {
	var tracer *Tracer

	_, span := tracer.Start(context.Background(), "chat")
	span.End()

	if tracer.Enabled() {
		t.Error("nil tracer reports enabled")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() on nil tracer: %v", err)
	}
}

func TestTracer_SpanAttributes(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.Start(context.Background(), "gateway.analyze")
	SetOperationAttributes(span, "analyze", "groq", "llama-3.3-70b-versatile")
	SetTokenAttributes(span, 100, 20)
	SetOutcome(span, "upstream", "rate_limit")
	SetStatus(span, errors.New("rate limited"))
	span.End()

	if err := tracer.provider.ForceFlush(context.Background()); err != nil {
		t.Fatalf("ForceFlush() failed: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	got := spans[0]
	if got.Name != "gateway.analyze" {
		t.Errorf("unexpected span name %q", got.Name)
	}
	if got.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", got.Status.Code)
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got.Attributes {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrOperation].AsString() != "analyze" {
		t.Errorf("missing operation attribute: %v", attrs)
	}
	if attrs[AttrPromptTokens].AsInt64() != 100 {
		t.Errorf("missing prompt tokens attribute: %v", attrs)
	}
	if attrs[AttrErrorType].AsString() != "rate_limit" {
		t.Errorf("missing error type attribute: %v", attrs)
	}
}

func TestHTTPMiddleware(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	var traceID string
	handler := HTTPMiddleware(tracer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if traceID != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("expected inbound trace to continue, got %q", traceID)
	}
	if rec.Header().Get("X-Trace-ID") != traceID {
		t.Errorf("X-Trace-ID = %q, want %q", rec.Header().Get("X-Trace-ID"), traceID)
	}

	_ = tracer.provider.ForceFlush(context.Background())
	if len(exporter.GetSpans()) != 1 {
		t.Errorf("expected 1 server span, got %d", len(exporter.GetSpans()))
	}
}

func TestHTTPMiddleware_Disabled(t *testing.T) {
	tracer, _ := New(&config.TracingConfig{})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	rec := httptest.NewRecorder()
	HTTPMiddleware(tracer)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Fatal("next handler not called")
	}
	if rec.Header().Get("X-Trace-ID") != "" {
		t.Error("disabled middleware set X-Trace-ID")
	}
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		desc := createSampler(tt.ratio).Description()
		if !strings.HasPrefix(desc, "ParentBased{root:"+tt.want+",") {
			t.Errorf("createSampler(%v) = %s", tt.ratio, desc)
		}
	}
}
