package middleware

import (
	"net/http"
	"time"

	"urbanvision-ao/urbanvision/pkg/telemetry/metrics"
)

// MetricsMiddleware records the request count and duration of every request
// by method, path and status. A nil collector disables it.
func MetricsMiddleware(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			collector.RecordHTTPRequest(r.Method, r.URL.Path, rw.statusCode, time.Since(start))
		})
	}
}
