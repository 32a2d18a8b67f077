package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"urbanvision-ao/urbanvision/pkg/config"
)

// OperationMetrics tracks gateway operations.
//
// Metrics:
//   - urbanvision_operations_total: Operation count by operation and outcome
//   - urbanvision_operation_duration_seconds: Operation duration histogram
//   - urbanvision_tokens_total: Tokens consumed by operation and type
type OperationMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	tokensTotal       *prometheus.CounterVec
}

// NewOperationMetrics creates and registers operation metrics with the provided registry.
func NewOperationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *OperationMetrics {
	om := &OperationMetrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operations_total",
				Help:      "Total number of gateway operations",
			},
			[]string{"operation", "outcome"},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operation_duration_seconds",
				Help:      "Duration of gateway operations in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"operation"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_total",
				Help:      "Total number of tokens consumed",
			},
			[]string{"operation", "type"},
		),
	}

	registry.MustRegister(
		om.operationsTotal,
		om.operationDuration,
		om.tokensTotal,
	)

	return om
}

// RecordOperation increments the operation counter and observes its duration.
func (om *OperationMetrics) RecordOperation(operation, outcome string, duration time.Duration) {
	om.operationsTotal.WithLabelValues(operation, outcome).Inc()
	om.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordTokens records token counts separately for prompt and completion.
func (om *OperationMetrics) RecordTokens(operation string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		om.tokensTotal.WithLabelValues(operation, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		om.tokensTotal.WithLabelValues(operation, "completion").Add(float64(completionTokens))
	}
}
