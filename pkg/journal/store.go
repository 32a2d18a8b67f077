package journal

import (
	"context"
	"fmt"
	"time"

	"urbanvision-ao/urbanvision/pkg/config"
)

// Store persists journal records.
type Store interface {
	// Save persists a record. Missing IDs and timestamps are filled in.
	Save(ctx context.Context, rec *Record) error

	// List returns matching records, newest first.
	List(ctx context.Context, filter Filter) ([]*Record, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes records created before t and returns how many.
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)

	// DeleteOldest removes all but the newest keep records.
	DeleteOldest(ctx context.Context, keep int64) (int64, error)

	// Ping checks that the store is usable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// StorageError represents an error from the storage backend.
type StorageError struct {
	Backend   string // "sqlite" or "memory"
	Operation string // Operation that failed ("save", "list", "delete", etc.)
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("journal storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Open creates the store selected by the configuration.
func Open(cfg *config.JournalConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "":
		return NewSQLiteStore(SQLiteConfig{
			Path:        cfg.Path,
			Driver:      cfg.Driver,
			WALMode:     cfg.WALMode,
			BusyTimeout: cfg.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported journal backend %q", cfg.Backend)
	}
}
