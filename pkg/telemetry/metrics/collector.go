package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"urbanvision-ao/urbanvision/pkg/config"
)

// Collector is the main orchestrator for all Prometheus metrics in Urban Vision.
// It manages metric registration and provides a unified interface for
// recording metrics across all components.
//
// A nil *Collector is valid and records nothing, so components can take an
// optional collector without guarding every call.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Gateway operation metrics
	operationMetrics *OperationMetrics

	// Provider metrics
	backendMetrics *BackendMetrics

	// HTTP server metrics
	httpMetrics *HTTPMetrics

	// Journal metrics
	journalMetrics *JournalMetrics

	// Cardinality tracking for HTTP paths
	cardinalityLimiter *CardinalityLimiter
}

// maxPathCardinality bounds distinct HTTP path labels. Static asset paths
// beyond it are reported as "other".
const maxPathCardinality = 200

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "urbanvision",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Work on a copy; the configuration snapshot is shared.
	c := *cfg
	if c.Namespace == "" {
		c.Namespace = config.DefaultMetricsNamespace
	}
	if len(c.RequestDurationBuckets) == 0 {
		c.RequestDurationBuckets = config.DefaultDurationBuckets
	}

	collector := &Collector{
		config:             &c,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(maxPathCardinality),
	}

	collector.operationMetrics = NewOperationMetrics(&c, registry)
	collector.backendMetrics = NewBackendMetrics(&c, registry)
	collector.httpMetrics = NewHTTPMetrics(&c, registry)
	collector.journalMetrics = NewJournalMetrics(&c, registry)

	return collector
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordOperation records a completed gateway operation.
//
// Parameters:
//   - operation: "chat", "analyze", "predict" or "recommend"
//   - outcome: "ok", "unconfigured", "validation" or "upstream"
//   - duration: Total time spent in the gateway
func (c *Collector) RecordOperation(operation, outcome string, duration time.Duration) {
	if !c.enabled() {
		return
	}

	c.operationMetrics.RecordOperation(operation, outcome, duration)
}

// RecordTokens records prompt and completion token counts for an operation.
func (c *Collector) RecordTokens(operation string, promptTokens, completionTokens int) {
	if !c.enabled() {
		return
	}

	c.operationMetrics.RecordTokens(operation, promptTokens, completionTokens)
}

// RecordBackendCall records one completion backend call. errorType is
// empty on success, otherwise a providers.ErrorType label such as
// "rate_limit" or "timeout".
func (c *Collector) RecordBackendCall(backend, model, errorType string, latency time.Duration) {
	if !c.enabled() {
		return
	}

	c.backendMetrics.ObserveCall(backend, model, errorType, latency.Seconds())
}

// UpdateBackendHealth sets the backend health gauge.
func (c *Collector) UpdateBackendHealth(backend string, healthy bool) {
	if !c.enabled() {
		return
	}

	c.backendMetrics.SetHealthy(backend, healthy)
}

// RecordHTTPRequest records a served HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if !c.enabled() {
		return
	}

	if !c.cardinalityLimiter.Allow(path) {
		path = "other"
	}

	c.httpMetrics.RecordRequest(method, path, strconv.Itoa(status), duration)
}

// RecordJournalWrite records the outcome of a journal write ("ok", "error" or "dropped").
func (c *Collector) RecordJournalWrite(result string) {
	if !c.enabled() {
		return
	}

	c.journalMetrics.RecordWrite(result)
}

// RecordJournalPruned records records deleted by a retention run.
func (c *Collector) RecordJournalPruned(count int64) {
	if !c.enabled() {
		return
	}

	c.journalMetrics.RecordPruned(count)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
