package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"urbanvision-ao/urbanvision/pkg/config"
)

// resultOK labels a backend call that produced text.
const resultOK = "ok"

// BackendMetrics covers calls to the completion backend.
//
// Metrics:
//   - urbanvision_backend_call_duration_seconds{backend,model,result}: one
//     observation per call; result is "ok" or a providers.ErrorType label
//   - urbanvision_backend_healthy{backend}: 1 while the backend is healthy
type BackendMetrics struct {
	calls   *prometheus.HistogramVec
	healthy *prometheus.GaugeVec
}

// NewBackendMetrics creates and registers backend metrics.
func NewBackendMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BackendMetrics {
	bm := &BackendMetrics{
		calls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "backend_call_duration_seconds",
			Help:      "Completion backend call duration in seconds by result",
			Buckets:   cfg.RequestDurationBuckets,
		}, []string{"backend", "model", "result"}),
		healthy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "backend_healthy",
			Help:      "Whether the completion backend is healthy (1) or not (0)",
		}, []string{"backend"}),
	}

	registry.MustRegister(bm.calls, bm.healthy)
	return bm
}

// ObserveCall records one backend call. An empty result means success.
func (bm *BackendMetrics) ObserveCall(backend, model, result string, seconds float64) {
	if result == "" {
		result = resultOK
	}
	bm.calls.WithLabelValues(backend, model, result).Observe(seconds)
}

// SetHealthy sets the health gauge of backend.
func (bm *BackendMetrics) SetHealthy(backend string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	bm.healthy.WithLabelValues(backend).Set(v)
}
