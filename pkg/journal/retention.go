package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"urbanvision-ao/urbanvision/pkg/telemetry/metrics"
)

// Pruner enforces retention on a Store.
type Pruner struct {
	store         Store
	retentionDays int
	maxRecords    int64
	metrics       *metrics.Collector
	logger        *slog.Logger
	now           func() time.Time
}

// NewPruner creates a pruner. A retentionDays or maxRecords of 0 disables
// that phase. collector may be nil.
func NewPruner(store Store, retentionDays int, maxRecords int64, collector *metrics.Collector) *Pruner {
	return &Pruner{
		store:         store,
		retentionDays: retentionDays,
		maxRecords:    maxRecords,
		metrics:       collector,
		logger:        slog.Default().With("component", "journal.retention"),
		now:           time.Now,
	}
}

// Prune deletes records older than the retention period, then trims the
// oldest records down to the maximum count. It returns the total deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.retentionDays > 0 {
		cutoff := p.now().AddDate(0, 0, -p.retentionDays)
		deleted, err := p.store.DeleteBefore(ctx, cutoff)
		if err != nil {
			return total, fmt.Errorf("prune by age failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned records by age",
			"deleted_count", deleted,
			"retention_days", p.retentionDays,
		)
	}

	if p.maxRecords > 0 {
		deleted, err := p.store.DeleteOldest(ctx, p.maxRecords)
		if err != nil {
			return total, fmt.Errorf("prune by count failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned records by count",
			"deleted_count", deleted,
			"max_records", p.maxRecords,
		)
	}

	p.metrics.RecordJournalPruned(total)
	if total > 0 {
		p.logger.Info("journal pruning completed",
			"total_deleted", total,
			"retention_days", p.retentionDays,
			"max_records", p.maxRecords,
		)
	}
	return total, nil
}

// Scheduler runs a Pruner on a cron schedule.
type Scheduler struct {
	pruner   *Pruner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler validates the standard five-field cron expression and
// registers the pruning job.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
func NewScheduler(pruner *Pruner, schedule string) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	s := &Scheduler{
		pruner:   pruner,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "journal.scheduler"),
	}
	return s, nil
}

// Run starts the schedule and blocks until ctx is cancelled, then waits for
// a running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.runPruning(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	s.mu.Lock()
	s.cron.Start()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("retention scheduler started",
		"schedule", s.schedule,
		"retention_days", s.pruner.retentionDays,
		"max_records", s.pruner.maxRecords,
	)

	<-ctx.Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("retention scheduler stopped")
	return nil
}

// IsRunning returns true while Run is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled pruning time, or the zero time when
// the scheduler is not running.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) runPruning(ctx context.Context) {
	s.logger.Info("starting scheduled journal pruning")

	if _, err := s.pruner.Prune(ctx); err != nil {
		s.logger.Error("scheduled pruning failed", "error", err)
	}
}
