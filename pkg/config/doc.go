// Package config provides configuration management for Urban Vision.
//
// This package handles loading and validating configuration from YAML files
// with environment variable overrides. The resulting *Config is built once
// at startup and passed explicitly to the components that need it; there is
// no global instance.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.Load("config.yaml")
//
// Load tolerates a missing config.yaml at the default path, in which case
// only defaults and environment variables apply.
//
// # Environment Variable Overrides
//
//   - GROQ_API_KEY sets provider.api_key for the groq backend
//   - GEMINI_API_KEY sets provider.api_key for the gemini backend
//   - PORT replaces the port of server.listen_address
//   - URBANVISION_LISTEN_ADDRESS, URBANVISION_STATIC_DIR
//   - URBANVISION_PROVIDER_BACKEND, URBANVISION_PROVIDER_MODEL, URBANVISION_PROVIDER_BASE_URL
//   - URBANVISION_JOURNAL_ENABLED, URBANVISION_JOURNAL_PATH
//   - URBANVISION_LOG_LEVEL, URBANVISION_LOG_FORMAT
//   - URBANVISION_METRICS_ENABLED, URBANVISION_TRACING_ENABLED
//
// Environment variables always take precedence over file-based configuration.
//
// # Validation
//
// Struct tags are checked with go-playground/validator; rules spanning
// several fields (cron syntax, timeouts) are checked by hand. Every problem
// is collected into a ValidationError:
//
//	configuration validation failed with 2 errors:
//	  - provider.backend: must be one of: groq, gemini
//	  - journal.prune_schedule: invalid cron expression: ...
//
// # Example Configuration
//
//	server:
//	  listen_address: "0.0.0.0:5000"
//	  static_dir: "static"
//
//	provider:
//	  backend: "groq"
//	  model: "llama-3.3-70b-versatile"
//
//	journal:
//	  enabled: true
//	  path: "data/journal.db"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//
// # Reloading
//
// Watcher reloads the file on change. Only the log level is applied to the
// running process; other differences are logged as requiring a restart.
package config
