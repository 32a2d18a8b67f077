package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fieldsOf(err error) []string {
	var verr ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:      "bad listen address",
			mutate:    func(c *Config) { c.Server.ListenAddress = "localhost" },
			wantField: "server.listen_address",
		},
		{
			name:      "negative read timeout",
			mutate:    func(c *Config) { c.Server.ReadTimeout = -time.Second },
			wantField: "server.read_timeout",
		},
		{
			name:      "excessive header bytes",
			mutate:    func(c *Config) { c.Server.MaxHeaderBytes = 11 * 1024 * 1024 },
			wantField: "server.max_header_bytes",
		},
		{
			name: "request timeout above write timeout",
			mutate: func(c *Config) {
				c.Server.RequestTimeout = 2 * time.Minute
				c.Server.WriteTimeout = time.Minute
			},
			wantField: "server.request_timeout",
		},
		{
			name:      "unknown backend",
			mutate:    func(c *Config) { c.Provider.Backend = "anthropic" },
			wantField: "provider.backend",
		},
		{
			name:      "bad base url",
			mutate:    func(c *Config) { c.Provider.BaseURL = "not a url" },
			wantField: "provider.base_url",
		},
		{
			name:      "temperature too high",
			mutate:    func(c *Config) { c.Provider.Temperature = 3 },
			wantField: "provider.temperature",
		},
		{
			name:      "empty model",
			mutate:    func(c *Config) { c.Provider.Model = "" },
			wantField: "provider.model",
		},
		{
			name:      "unknown journal driver",
			mutate:    func(c *Config) { c.Journal.Driver = "postgres" },
			wantField: "journal.driver",
		},
		{
			name: "invalid prune schedule",
			mutate: func(c *Config) {
				c.Journal.Enabled = true
				c.Journal.PruneSchedule = "every day"
			},
			wantField: "journal.prune_schedule",
		},
		{
			name: "invalid prune schedule ignored when disabled",
			mutate: func(c *Config) {
				c.Journal.Enabled = false
				c.Journal.PruneSchedule = "every day"
			},
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Journal.Enabled = true
				c.Journal.Path = ""
			},
			wantField: "journal.path",
		},
		{
			name:      "unknown log level",
			mutate:    func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "metrics path without slash",
			mutate:    func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			wantField: "telemetry.metrics.path",
		},
		{
			name:      "sample ratio out of range",
			mutate:    func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}

			fields := fieldsOf(err)
			found := false
			for _, f := range fields {
				if f == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %q, got %v (%v)", tt.wantField, fields, err)
			}
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Server.ListenAddress = ""
	cfg.Provider.Backend = "x"
	cfg.Telemetry.Logging.Format = "xml"

	err := Validate(cfg)
	if len(fieldsOf(err)) < 3 {
		t.Fatalf("expected at least 3 errors, got %v", err)
	}
	if !strings.Contains(err.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if single.Error() != "configuration validation failed: a: bad" {
		t.Errorf("unexpected message %q", single.Error())
	}
	if (ValidationError{}).Error() != "configuration validation failed" {
		t.Error("unexpected empty message")
	}
}
