package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"urbanvision-ao/urbanvision/pkg/telemetry/metrics"
)

// writeTimeout bounds a single background write.
const writeTimeout = 5 * time.Second

// Recorder writes records to a Store asynchronously. Record never blocks:
// when the buffer is full the record is dropped and a warning is logged.
type Recorder struct {
	store   Store
	metrics *metrics.Collector
	logger  *slog.Logger

	records chan *Record
	wg      sync.WaitGroup

	// mu guards closed against concurrent sends on records.
	mu     sync.RWMutex
	closed bool
}

// NewRecorder starts a recorder with the given buffer size. collector may be nil.
func NewRecorder(store Store, bufferSize int, collector *metrics.Collector) *Recorder {
	if bufferSize < 1 {
		bufferSize = 1
	}

	r := &Recorder{
		store:   store,
		metrics: collector,
		logger:  slog.Default().With("component", "journal.recorder"),
		records: make(chan *Record, bufferSize),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// Record enqueues rec for writing and reports whether it was accepted.
// The recorder takes ownership of rec.
func (r *Recorder) Record(ctx context.Context, rec *Record) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.logger.WarnContext(ctx, "journal record after close dropped", "operation", rec.Operation)
		r.metrics.RecordJournalWrite("dropped")
		return false
	}

	select {
	case r.records <- rec:
		return true
	default:
		r.logger.WarnContext(ctx, "journal buffer full, record dropped",
			"operation", rec.Operation,
			"buffer_size", cap(r.records),
		)
		r.metrics.RecordJournalWrite("dropped")
		return false
	}
}

// Close stops accepting records and waits until the buffer is drained.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.records)
	r.mu.Unlock()

	r.wg.Wait()
	return nil
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	for rec := range r.records {
		r.write(rec)
	}
}

func (r *Recorder) write(rec *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := r.store.Save(ctx, rec); err != nil {
		r.logger.Error("failed to write journal record",
			"record_id", rec.ID,
			"request_id", rec.RequestID,
			"error", err,
		)
		r.metrics.RecordJournalWrite("error")
		return
	}
	r.metrics.RecordJournalWrite("ok")
}
