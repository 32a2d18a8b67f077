package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	_ "modernc.org/sqlite"          // registers "sqlite"

	"urbanvision-ao/urbanvision/pkg/journal/migrations"
)

// SQLiteConfig contains configuration for the SQLite journal.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is "sqlite" (modernc, pure Go) or "sqlite3" (mattn, cgo).
	Driver string

	// WALMode enables Write-Ahead Logging.
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	BusyTimeout time.Duration
}

// SQLiteStore implements Store on SQLite through sqlx.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database, applies pragmas and migrations.
// The parent directory of Path is created when missing.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite"
	}
	if driver != "sqlite" && driver != "sqlite3" {
		return nil, &StorageError{Backend: "sqlite", Operation: "open", Cause: fmt.Errorf("unsupported driver %q", driver)}
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &StorageError{Backend: "sqlite", Operation: "mkdir", Cause: err}
		}
	}

	db, err := sqlx.Connect(driver, cfg.Path)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Operation: "open", Cause: err}
	}

	// SQLite serializes writers; one connection keeps pragmas consistent.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{
		db:     db,
		logger: slog.Default().With("component", "journal.sqlite"),
	}

	if err := s.initialize(cfg); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.logger.Info("journal opened",
		"path", cfg.Path,
		"driver", driver,
		"wal_mode", cfg.WALMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize(cfg SQLiteConfig) error {
	if cfg.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return &StorageError{Backend: "sqlite", Operation: "enable_wal", Cause: err}
		}
	}

	if cfg.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeout.Milliseconds())
		if _, err := s.db.Exec(pragma); err != nil {
			return &StorageError{Backend: "sqlite", Operation: "set_busy_timeout", Cause: err}
		}
	}

	if err := applyMigrations(s.db); err != nil {
		return &StorageError{Backend: "sqlite", Operation: "migrate", Cause: err}
	}
	return nil
}

// applyMigrations runs the embedded migrations up to the latest version.
func applyMigrations(db *sqlx.DB) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create embed source driver: %w", err)
	}

	target, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite3 migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "sqlite3", target)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Save inserts a record.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	rec.fill()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO journal (
			id, request_id, operation, area, model, status,
			latency_ms, prompt_tokens, completion_tokens, created_at
		) VALUES (
			:id, :request_id, :operation, :area, :model, :status,
			:latency_ms, :prompt_tokens, :completion_tokens, :created_at
		)`, toRow(rec))
	if err != nil {
		return &StorageError{Backend: "sqlite", Operation: "save", Cause: err}
	}
	return nil
}

// List returns matching records, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Record, error) {
	query := `SELECT id, request_id, operation, area, model, status,
		latency_ms, prompt_tokens, completion_tokens, created_at
		FROM journal WHERE 1=1`
	var args []any

	if filter.Operation != "" {
		query += " AND operation = ?"
		args = append(args, filter.Operation)
	}
	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since.UnixMicro())
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var rows []row
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, &StorageError{Backend: "sqlite", Operation: "list", Cause: err}
	}

	out := make([]*Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

// Count returns the number of records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM journal"); err != nil {
		return 0, &StorageError{Backend: "sqlite", Operation: "count", Cause: err}
	}
	return n, nil
}

// DeleteBefore removes records created before t.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM journal WHERE created_at < ?", t.UnixMicro())
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Operation: "delete_before", Cause: err}
	}
	return res.RowsAffected()
}

// DeleteOldest removes all but the newest keep records.
func (s *SQLiteStore) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM journal WHERE id NOT IN (
			SELECT id FROM journal ORDER BY created_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Operation: "delete_oldest", Cause: err}
	}
	return res.RowsAffected()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
