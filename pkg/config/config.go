package config

import "time"

// Config is the root configuration structure for Urban Vision.
// It contains all configuration sections for the HTTP server, the completion
// provider, input validation, the request journal and telemetry.
//
// A Config is built once at startup and treated as immutable afterwards.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, static files and CORS.
	Server ServerConfig `yaml:"server"`

	// Provider contains the completion backend configuration.
	Provider ProviderConfig `yaml:"provider"`

	// Input contains request validation settings.
	Input InputConfig `yaml:"input"`

	// Journal contains configuration for the request journal including
	// storage backend and retention.
	Journal JournalConfig `yaml:"journal"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:5000", "0.0.0.0:5000").
	// Default: "0.0.0.0:5000"
	ListenAddress string `yaml:"listen_address" validate:"required,hostname_port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"gte=0"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must exceed RequestTimeout so that slow completions can
	// still be written.
	// Default: 90s
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout" validate:"gte=0"`

	// ShutdownTimeout is the maximum duration to wait for active connections
	// to finish during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes" validate:"gte=0,lte=10485760"`

	// RequestTimeout bounds the handling of a single API request, upstream
	// call included. Requests exceeding it receive 504.
	// Default: 60s
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gte=0"`

	// StaticDir is the directory served for non-API paths.
	// Default: "."
	StaticDir string `yaml:"static_dir"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains Cross-Origin Resource Sharing configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are sent.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is the list of origins allowed to make requests.
	// Use "*" to allow all origins.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is the list of HTTP methods allowed for CORS requests.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of headers allowed in CORS requests.
	// Default: ["Content-Type", "Authorization", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is how long (in seconds) preflight results can be cached.
	// Default: 3600
	MaxAge int `yaml:"max_age" validate:"gte=0"`
}

// ProviderConfig contains configuration for the completion backend.
type ProviderConfig struct {
	// Backend selects the provider implementation.
	// Options: "groq", "gemini"
	// Default: "groq"
	Backend string `yaml:"backend" validate:"oneof=groq gemini"`

	// BaseURL overrides the backend's API base URL.
	// Default: the backend's public endpoint
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// APIKey is the backend credential. It is normally supplied through
	// GROQ_API_KEY or GEMINI_API_KEY. An empty key leaves the service
	// running but unconfigured.
	APIKey string `yaml:"api_key"`

	// Model is the model identifier sent with every request.
	// Default: "llama-3.3-70b-versatile"
	Model string `yaml:"model" validate:"required"`

	// Temperature is the sampling temperature sent with every request.
	// Default: 0.7
	Temperature float64 `yaml:"temperature" validate:"gte=0,lte=2"`

	// Timeout is the per-request timeout for upstream calls.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	// MaxIdleConns is the maximum number of idle upstream connections.
	// Default: 10
	MaxIdleConns int `yaml:"max_idle_conns" validate:"gte=0"`

	// MaxIdleConnsPerHost is the maximum idle connections per upstream host.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" validate:"gte=0"`

	// IdleConnTimeout is how long an idle upstream connection is kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout" validate:"gte=0"`
}

// Configured reports whether a credential is present.
func (p ProviderConfig) Configured() bool {
	return p.APIKey != ""
}

// InputConfig contains request validation settings.
type InputConfig struct {
	// StrictAreas rejects area names that are not in the catalog with HTTP
	// 400. When false, unknown names are passed through verbatim.
	// Default: false
	StrictAreas bool `yaml:"strict_areas"`
}

// JournalConfig contains configuration for the request journal.
type JournalConfig struct {
	// Enabled controls whether generation calls are journaled.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend" validate:"oneof=sqlite memory"`

	// Driver selects the database/sql driver for the sqlite backend.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver" validate:"oneof=sqlite sqlite3"`

	// Path is the SQLite database file.
	// Default: "data/journal.db"
	Path string `yaml:"path"`

	// WALMode enables SQLite write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout" validate:"gte=0"`

	// BufferSize is the capacity of the asynchronous recorder queue.
	// Records are dropped when the queue is full.
	// Default: 1000
	BufferSize int `yaml:"buffer_size" validate:"gte=1"`

	// RetentionDays deletes records older than this many days.
	// 0 disables age-based pruning.
	// Default: 30
	RetentionDays int `yaml:"retention_days" validate:"gte=0"`

	// MaxRecords keeps at most this many records. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records" validate:"gte=0"`

	// PruneSchedule is the cron expression for retention runs.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit. It is the only setting that
	// is applied on configuration reload.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format" validate:"oneof=json text"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path" validate:"startswith=/"`

	// Namespace is the metric name prefix.
	// Default: "urbanvision"
	Namespace string `yaml:"namespace" validate:"required"`

	// Subsystem is the metric subsystem name.
	// Default: ""
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for durations (seconds).
	// Default: [0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint" validate:"required_if=Enabled true"`

	// ServiceName is the service name in traces.
	// Default: "urbanvision"
	ServiceName string `yaml:"service_name"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`

	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`
}
