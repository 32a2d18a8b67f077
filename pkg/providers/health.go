package providers

import (
	"log/slog"
	"sync"
	"time"
)

// HealthTracker keeps a provider's health record. It is safe for concurrent
// use and is embedded by backends to satisfy the health half of Provider.
type HealthTracker struct {
	name   string
	health ProviderHealth
	mu     sync.RWMutex
}

// NewHealthTracker returns a tracker that starts out healthy.
func NewHealthTracker(name string) *HealthTracker {
	now := time.Now()
	return &HealthTracker{
		name: name,
		health: ProviderHealth{
			IsHealthy:             true, // Start optimistic
			LastCheck:             now,
			LastSuccessfulRequest: now,
		},
	}
}

// IsHealthy returns the current health status.
func (h *HealthTracker) IsHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.health.IsHealthy
}

// GetHealth returns detailed health information.
func (h *HealthTracker) GetHealth() ProviderHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.health
}

// RecordOutcome updates request counters and health after a request. A nil
// err is a success.
func (h *HealthTracker) RecordOutcome(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	h.health.LastCheck = now
	h.health.TotalRequests++

	if err == nil {
		if !h.health.IsHealthy {
			slog.Info("provider recovered", "provider", h.name)
		}
		h.health.IsHealthy = true
		h.health.ConsecutiveFailures = 0
		h.health.LastError = nil
		h.health.LastSuccessfulRequest = now
		return
	}

	h.health.FailedRequests++
	h.health.ConsecutiveFailures++
	h.health.LastError = err

	if h.health.ConsecutiveFailures >= unhealthyThreshold && h.health.IsHealthy {
		h.health.IsHealthy = false
		slog.Warn("provider marked unhealthy",
			"provider", h.name,
			"consecutive_failures", h.health.ConsecutiveFailures,
			"error", err,
		)
	}
}
