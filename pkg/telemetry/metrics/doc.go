// Package metrics provides Prometheus metrics collection for Urban Vision.
//
// # Metrics Categories
//
//   - Operation Metrics: gateway operation count, duration and tokens
//   - Backend Metrics: completion backend call duration by result, health
//   - HTTP Metrics: served request count and duration
//   - Journal Metrics: journal writes and retention deletions
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordOperation("analyze", "ok", time.Second)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// HTTP path labels pass through a CardinalityLimiter; paths beyond the
// limit are recorded as "other".
package metrics
