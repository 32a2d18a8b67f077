package config

import "testing"

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()

	if err := Validate(cfg); err != nil {
		t.Errorf("default config should be valid, got error: %v", err)
	}
}

func TestProviderConfig_Configured(t *testing.T) {
	cfg := Defaults()
	if cfg.Provider.Configured() {
		t.Error("defaults must not carry a credential")
	}

	cfg.Provider.APIKey = "gsk_test"
	if !cfg.Provider.Configured() {
		t.Error("expected configured provider with API key")
	}
}
