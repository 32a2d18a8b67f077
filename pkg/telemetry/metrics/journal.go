package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"urbanvision-ao/urbanvision/pkg/config"
)

// JournalMetrics tracks the request journal.
//
// Metrics:
//   - urbanvision_journal_writes_total: Journal writes by result (ok, error, dropped)
//   - urbanvision_journal_pruned_total: Records deleted by retention
type JournalMetrics struct {
	writesTotal *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewJournalMetrics creates and registers journal metrics with the provided registry.
func NewJournalMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *JournalMetrics {
	jm := &JournalMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "journal_writes_total",
				Help:      "Total number of journal writes by result",
			},
			[]string{"result"},
		),
		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "journal_pruned_total",
				Help:      "Total number of journal records deleted by retention",
			},
		),
	}

	registry.MustRegister(jm.writesTotal, jm.prunedTotal)

	return jm
}

// RecordWrite counts a journal write.
func (jm *JournalMetrics) RecordWrite(result string) {
	jm.writesTotal.WithLabelValues(result).Inc()
}

// RecordPruned adds to the pruned record count.
func (jm *JournalMetrics) RecordPruned(count int64) {
	if count > 0 {
		jm.prunedTotal.Add(float64(count))
	}
}
