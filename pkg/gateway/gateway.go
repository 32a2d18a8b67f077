package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"urbanvision-ao/urbanvision/pkg/config"
	"urbanvision-ao/urbanvision/pkg/journal"
	"urbanvision-ao/urbanvision/pkg/prompts"
	"urbanvision-ao/urbanvision/pkg/providers"
	"urbanvision-ao/urbanvision/pkg/telemetry/logging"
	"urbanvision-ao/urbanvision/pkg/telemetry/metrics"
	"urbanvision-ao/urbanvision/pkg/telemetry/tracing"
)

// Gateway performs completions for the generation endpoints.
type Gateway struct {
	provider    providers.Provider
	backend     string
	model       string
	temperature float64
	configured  bool

	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	recorder *journal.Recorder
	logger   *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithMetrics attaches a metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(g *Gateway) { g.metrics = c }
}

// WithTracer attaches a tracer.
func WithTracer(t *tracing.Tracer) Option {
	return func(g *Gateway) { g.tracer = t }
}

// WithRecorder attaches a journal recorder.
func WithRecorder(r *journal.Recorder) Option {
	return func(g *Gateway) { g.recorder = r }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// New builds a gateway. It is unconfigured when the configuration carries no
// credential or provider is nil.
func New(cfg config.ProviderConfig, provider providers.Provider, opts ...Option) *Gateway {
	g := &Gateway{
		provider:    provider,
		backend:     cfg.Backend,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		configured:  cfg.Configured() && provider != nil,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "gateway")
	return g
}

// Configured reports whether a credential is present.
func (g *Gateway) Configured() bool {
	return g.configured
}

// Provider returns the backend, nil when unconfigured.
func (g *Gateway) Provider() providers.Provider {
	return g.provider
}

// CallOption annotates a single call.
type CallOption func(*call)

type call struct {
	area string
}

// WithArea records the area a call is about.
func WithArea(area string) CallOption {
	return func(c *call) { c.area = area }
}

// Complete sends messages to the backend once and returns the generated text.
func (g *Gateway) Complete(ctx context.Context, op Operation, messages []prompts.Message, opts ...CallOption) Result {
	var c call
	for _, opt := range opts {
		opt(&c)
	}

	start := time.Now()
	ctx, span := g.tracer.Start(ctx, "gateway."+op.String())
	defer span.End()
	tracing.SetOperationAttributes(span, op.String(), g.backend, g.model)

	if !g.configured {
		res := Err(KindUnconfigured, nil)
		g.finish(ctx, op, c, res, nil, time.Since(start))
		tracing.SetOutcome(span, res.Kind().String(), "")
		return res
	}

	req := &providers.CompletionRequest{
		Model:       g.model,
		Messages:    toProviderMessages(messages),
		Temperature: g.temperature,
		MaxTokens:   op.MaxTokens(),
	}

	resp, err := g.provider.SendCompletion(ctx, req)
	latency := time.Since(start)
	if err == nil && strings.TrimSpace(resp.Content) == "" {
		err = &providers.EmptyResponseError{Provider: g.provider.GetName(), Model: g.model}
	}

	var errType string
	if err != nil {
		errType = providers.ErrorType(err)
	}
	g.metrics.RecordBackendCall(g.provider.GetName(), g.model, errType, latency)
	g.metrics.UpdateBackendHealth(g.provider.GetName(), g.provider.IsHealthy())

	if err != nil {
		g.logger.ErrorContext(ctx, "completion failed",
			"operation", op.String(),
			"provider", g.provider.GetName(),
			"error_type", errType,
			"error", err,
		)
		tracing.SetOutcome(span, KindUpstream.String(), errType)
		tracing.SetStatus(span, err)

		res := Err(KindUpstream, err)
		g.finish(ctx, op, c, res, nil, latency)
		return res
	}

	tracing.SetTokenAttributes(span, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	tracing.SetOutcome(span, "ok", "")
	tracing.SetStatus(span, nil)

	res := Ok(resp.Content)
	g.finish(ctx, op, c, res, resp, latency)
	return res
}

// Reject records a request refused before reaching the backend and returns
// the matching validation result.
func (g *Gateway) Reject(ctx context.Context, op Operation, cause error, opts ...CallOption) Result {
	var c call
	for _, opt := range opts {
		opt(&c)
	}

	g.logger.InfoContext(ctx, "request rejected",
		"operation", op.String(),
		"reason", errorString(cause),
	)

	res := Err(KindValidation, cause)
	g.finish(ctx, op, c, res, nil, 0)
	return res
}

// finish records metrics and the journal entry of a call.
func (g *Gateway) finish(ctx context.Context, op Operation, c call, res Result, resp *providers.CompletionResponse, latency time.Duration) {
	outcome := res.Kind().String()
	g.metrics.RecordOperation(op.String(), outcome, latency)

	rec := &journal.Record{
		RequestID: logging.GetRequestID(ctx),
		Operation: op.String(),
		Area:      c.area,
		Model:     g.model,
		Status:    outcome,
		LatencyMS: latency.Milliseconds(),
	}
	if resp != nil {
		g.metrics.RecordTokens(op.String(), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		rec.PromptTokens = resp.Usage.PromptTokens
		rec.CompletionTokens = resp.Usage.CompletionTokens
		if resp.Model != "" {
			rec.Model = resp.Model
		}
	}

	if g.recorder != nil {
		g.recorder.Record(ctx, rec)
	}
}

// Close releases the backend.
func (g *Gateway) Close() error {
	if g.provider == nil {
		return nil
	}
	return g.provider.Close()
}

// ErrProviderUnhealthy is reported by HealthCheck while the backend is marked
// unhealthy.
var ErrProviderUnhealthy = errors.New("completion backend unhealthy")

// HealthCheck reports the backend's health without calling it. An
// unconfigured gateway is healthy.
func (g *Gateway) HealthCheck(ctx context.Context) error {
	if !g.configured || g.provider.IsHealthy() {
		return nil
	}
	if last := g.provider.GetHealth().LastError; last != nil {
		return fmt.Errorf("%w: last error %s", ErrProviderUnhealthy, providers.ErrorType(last))
	}
	return ErrProviderUnhealthy
}

func toProviderMessages(in []prompts.Message) []providers.Message {
	out := make([]providers.Message, len(in))
	for i, m := range in {
		out[i] = providers.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
