package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval is the quiet period before a changed file is reloaded.
const DefaultDebounceInterval = 200 * time.Millisecond

// ReloadFunc receives a freshly loaded and validated configuration.
type ReloadFunc func(cfg *Config)

// Watcher reloads the configuration file when it changes. The previous
// Config is never modified; each reload produces a new value.
type Watcher struct {
	path     string
	onReload ReloadFunc
	logger   *slog.Logger
	debounce *Debouncer

	mu      sync.Mutex
	current *Config
}

// NewWatcher creates a watcher for path. current is the configuration the
// process started with and is used to report fields that need a restart.
func NewWatcher(path string, current *Config, onReload ReloadFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     path,
		onReload: onReload,
		logger:   logger.With("component", "config_watcher"),
		debounce: NewDebouncer(DefaultDebounceInterval),
		current:  current,
	}
}

// Run watches the file until ctx is cancelled. The parent directory is
// watched so that editors that replace the file atomically are handled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()
	defer w.debounce.Stop()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.path, err)
	}

	w.logger.Info("config watcher started", "path", w.path)

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.logger.Debug("config file event", "op", event.Op.String())
			w.debounce.Trigger(w.reload)

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

// reload loads the file and hands the result to onReload. Invalid files are
// logged and ignored; the running configuration stays in effect.
func (w *Watcher) reload() {
	next, err := Load(w.path)
	if err != nil {
		w.logger.Error("config reload failed", "path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	prev := w.current
	w.current = next
	w.mu.Unlock()

	if changed := RestartRequired(prev, next); len(changed) > 0 {
		w.logger.Warn("config changes require a restart to take effect", "sections", changed)
	}

	w.logger.Info("config reloaded", "path", w.path, "log_level", next.Telemetry.Logging.Level)
	if w.onReload != nil {
		w.onReload(next)
	}
}

// RestartRequired lists the configuration sections that differ between
// prev and next and cannot be applied to a running process. Only the log
// level is applied live.
func RestartRequired(prev, next *Config) []string {
	if prev == nil || next == nil {
		return nil
	}

	var changed []string
	sections := []struct {
		name       string
		prev, next interface{}
	}{
		{"server", prev.Server, next.Server},
		{"provider", prev.Provider, next.Provider},
		{"input", prev.Input, next.Input},
		{"journal", prev.Journal, next.Journal},
		{"telemetry.logging.format", prev.Telemetry.Logging.Format, next.Telemetry.Logging.Format},
		{"telemetry.logging.add_source", prev.Telemetry.Logging.AddSource, next.Telemetry.Logging.AddSource},
		{"telemetry.metrics", prev.Telemetry.Metrics, next.Telemetry.Metrics},
		{"telemetry.tracing", prev.Telemetry.Tracing, next.Telemetry.Tracing},
	}
	for _, s := range sections {
		if !reflect.DeepEqual(s.prev, s.next) {
			changed = append(changed, s.name)
		}
	}
	return changed
}

// Debouncer implements event debouncing to prevent reload storms.
// It collects rapid events and triggers the callback only after a quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	stopped  bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback after the debounce interval, replacing any
// callback that is still pending.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, callback)
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
