package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file used when none is given. Unlike an
// explicitly named file, it may be absent.
const DefaultPath = "config.yaml"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use Load for
// that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load loads configuration from a YAML file and applies environment
// variable overrides. Environment variables always take precedence over
// file-based configuration.
//
// The loading sequence is:
//  1. Start from default values
//  2. Decode the YAML file on top (a missing DefaultPath is skipped)
//  3. Apply environment variable overrides
//  4. Fill backend-dependent defaults such as the model
//  5. Validate final configuration
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := unresolved()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// parse decodes YAML on top of the defaults.
func parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// decode decodes YAML on top of unresolved defaults. Fields whose default
// depends on other fields stay empty until ApplyDefaults.
func decode(data []byte) (*Config, error) {
	cfg := unresolved()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// unresolved returns the defaults without the model, which follows the
// backend that the file or the environment selects.
func unresolved() *Config {
	cfg := Defaults()
	cfg.Provider.Model = ""
	return cfg
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format URBANVISION_SECTION_FIELD; provider
// credentials use the conventional GROQ_API_KEY and GEMINI_API_KEY names.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("URBANVISION_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("PORT"); val != "" {
		host, _, err := net.SplitHostPort(cfg.Server.ListenAddress)
		if err != nil {
			host = ""
		}
		cfg.Server.ListenAddress = net.JoinHostPort(host, val)
	}
	if val := os.Getenv("URBANVISION_STATIC_DIR"); val != "" {
		cfg.Server.StaticDir = val
	}
	if val := os.Getenv("URBANVISION_REQUEST_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.RequestTimeout = d
		}
	}

	// Provider overrides; the backend decides which credential applies.
	if val := os.Getenv("URBANVISION_PROVIDER_BACKEND"); val != "" {
		cfg.Provider.Backend = val
	}
	if val := os.Getenv("URBANVISION_PROVIDER_MODEL"); val != "" {
		cfg.Provider.Model = val
	}
	if val := os.Getenv("URBANVISION_PROVIDER_BASE_URL"); val != "" {
		cfg.Provider.BaseURL = val
	}
	switch cfg.Provider.Backend {
	case "gemini":
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.Provider.APIKey = val
		}
	default:
		if val := os.Getenv("GROQ_API_KEY"); val != "" {
			cfg.Provider.APIKey = val
		}
	}

	// Input overrides
	if val := os.Getenv("URBANVISION_STRICT_AREAS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Input.StrictAreas = b
		}
	}

	// Journal overrides
	if val := os.Getenv("URBANVISION_JOURNAL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Journal.Enabled = b
		}
	}
	if val := os.Getenv("URBANVISION_JOURNAL_PATH"); val != "" {
		cfg.Journal.Path = val
	}

	// Telemetry overrides
	if val := os.Getenv("URBANVISION_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("URBANVISION_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("URBANVISION_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("URBANVISION_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("URBANVISION_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
}
