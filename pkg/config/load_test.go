package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "127.0.0.1:8000"
  request_timeout: "45s"
  static_dir: "static"

provider:
  backend: "groq"
  model: "llama-3.1-8b-instant"

journal:
  enabled: true
  path: "./journal.db"
  retention_days: 7

telemetry:
  logging:
    level: "debug"
    format: "text"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:8000" {
		t.Errorf("unexpected listen address %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.RequestTimeout != 45*time.Second {
		t.Errorf("unexpected request timeout %v", cfg.Server.RequestTimeout)
	}
	if cfg.Provider.Model != "llama-3.1-8b-instant" {
		t.Errorf("unexpected model %q", cfg.Provider.Model)
	}
	if !cfg.Journal.Enabled || cfg.Journal.RetentionDays != 7 {
		t.Errorf("unexpected journal config %+v", cfg.Journal)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("unexpected log level %q", cfg.Telemetry.Logging.Level)
	}

	// Defaults fill what the file leaves out.
	if cfg.Provider.Temperature != DefaultProviderTemperature {
		t.Errorf("expected default temperature, got %v", cfg.Provider.Temperature)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should stay enabled when the key is absent")
	}
	if !cfg.Journal.WALMode {
		t.Error("wal_mode should default to true")
	}
}

func TestLoadConfig_ExplicitFalse(t *testing.T) {
	path := writeConfig(t, `
server:
  cors:
    enabled: false
telemetry:
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.CORS.Enabled {
		t.Error("expected CORS disabled")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled")
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
provider:
  backend: "openai"
`)

	_, err := LoadConfig(path)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Errors[0].Field != "provider.backend" {
		t.Errorf("unexpected field %q", verr.Errors[0].Field)
	}
}

func TestLoad_MissingDefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default config should not be an error: %v", err)
	}
	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("expected defaults, got %q", cfg.Server.ListenAddress)
	}
	if cfg.Provider.Configured() {
		t.Error("expected unconfigured provider without credential")
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "custom.yaml")); err == nil {
		t.Fatal("expected error for missing explicit path")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "0.0.0.0:5000"
provider:
  api_key: "from-file"
`)

	t.Setenv("GROQ_API_KEY", "gsk_from_env")
	t.Setenv("PORT", "8080")
	t.Setenv("URBANVISION_STATIC_DIR", "/srv/www")
	t.Setenv("URBANVISION_LOG_LEVEL", "warn")
	t.Setenv("URBANVISION_LOG_FORMAT", "text")
	t.Setenv("URBANVISION_PROVIDER_MODEL", "llama-3.1-8b-instant")
	t.Setenv("URBANVISION_JOURNAL_ENABLED", "true")
	t.Setenv("URBANVISION_JOURNAL_PATH", "/var/lib/uv/journal.db")
	t.Setenv("URBANVISION_METRICS_ENABLED", "false")
	t.Setenv("URBANVISION_TRACING_ENABLED", "not-a-bool")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Provider.APIKey != "gsk_from_env" {
		t.Errorf("expected env credential, got %q", cfg.Provider.APIKey)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:8080" {
		t.Errorf("PORT not applied: %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.StaticDir != "/srv/www" {
		t.Errorf("unexpected static dir %q", cfg.Server.StaticDir)
	}
	if cfg.Telemetry.Logging.Level != "warn" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("logging overrides not applied: %+v", cfg.Telemetry.Logging)
	}
	if cfg.Provider.Model != "llama-3.1-8b-instant" {
		t.Errorf("unexpected model %q", cfg.Provider.Model)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Path != "/var/lib/uv/journal.db" {
		t.Errorf("journal overrides not applied: %+v", cfg.Journal)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled by env")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("unparseable bool should be ignored")
	}
}

func TestLoad_GeminiCredential(t *testing.T) {
	path := writeConfig(t, `
provider:
  backend: "gemini"
  model: "gemini-2.0-flash"
`)

	t.Setenv("GROQ_API_KEY", "gsk_ignored")
	t.Setenv("GEMINI_API_KEY", "AIza-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Provider.APIKey != "AIza-test" {
		t.Errorf("expected gemini credential, got %q", cfg.Provider.APIKey)
	}
}

func TestLoad_InvalidOverride(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("URBANVISION_LOG_LEVEL", "verbose")

	_, err := Load(path)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLoad_ModelFollowsBackend(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		envBackend string
		want       string
	}{
		{"default backend", "", "", DefaultProviderModel},
		{"gemini from file", "provider:\n  backend: gemini\n", "", DefaultGeminiModel},
		{"gemini from env", "", "gemini", DefaultGeminiModel},
		{"env back to groq", "provider:\n  backend: gemini\n", "groq", DefaultProviderModel},
		{"explicit model kept", "provider:\n  backend: gemini\n  model: gemini-1.5-pro\n", "", "gemini-1.5-pro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			t.Setenv("URBANVISION_PROVIDER_BACKEND", tt.envBackend)
			t.Setenv("URBANVISION_PROVIDER_MODEL", "")
			t.Setenv("GROQ_API_KEY", "")
			t.Setenv("GEMINI_API_KEY", "AIza-test")

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if cfg.Provider.Model != tt.want {
				t.Errorf("backend %q got model %q, want %q", cfg.Provider.Backend, cfg.Provider.Model, tt.want)
			}
		})
	}
}

func TestLoadConfig_GeminiDefaultModel(t *testing.T) {
	path := writeConfig(t, "provider:\n  backend: gemini\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Provider.Model != DefaultGeminiModel {
		t.Errorf("expected %q, got %q", DefaultGeminiModel, cfg.Provider.Model)
	}
}
