package main

import (
	"encoding/json"
	"strings"
	"testing"

	"urbanvision-ao/urbanvision/pkg/cli"
)

func TestValidate_Text(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	path := writeConfig(t, `
server:
  listen_address: "127.0.0.1:9090"
input:
  strict_areas: true
`)

	out, err := execute(t, "validate", "--config", path, "--format", "text")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{"SETTING", "127.0.0.1:9090", "input.strict_areas"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidate_JSON(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test_key_value")
	path := writeConfig(t, `
journal:
  enabled: true
  backend: memory
`)

	out, err := execute(t, "validate", "--config", path, "--format", "json")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	var summary configSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !summary.Configured {
		t.Error("expected provider to be configured from the environment")
	}
	if !summary.JournalEnabled || summary.JournalBackend != "memory" {
		t.Errorf("unexpected journal settings %+v", summary)
	}
	if strings.Contains(out, "gsk_test_key_value") {
		t.Error("credential printed by validate")
	}
}

func TestValidate_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
journal:
  backend: postgres
`)

	_, err := execute(t, "validate", "--config", path, "--format", "text")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("expected config exit code, got %d (%v)", cli.ExitCode(err), err)
	}
}

func TestValidate_MissingExplicitFile(t *testing.T) {
	_, err := execute(t, "validate", "--config", "/nonexistent/urbanvision.yaml", "--format", "text")
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("expected config error for a missing file, got %v", err)
	}
}
