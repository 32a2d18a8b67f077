package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"urbanvision-ao/urbanvision/pkg/config"
)

// HTTPMetrics tracks requests served by the HTTP server.
//
// Metrics:
//   - urbanvision_http_requests_total: Request count by method, path and status
//   - urbanvision_http_request_duration_seconds: Request duration histogram
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers HTTP metrics with the provided registry.
func NewHTTPMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HTTPMetrics {
	hm := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method", "path"},
		),
	}

	registry.MustRegister(hm.requestsTotal, hm.requestDuration)

	return hm
}

// RecordRequest records a served request.
func (hm *HTTPMetrics) RecordRequest(method, path, status string, duration time.Duration) {
	hm.requestsTotal.WithLabelValues(method, path, status).Inc()
	hm.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
