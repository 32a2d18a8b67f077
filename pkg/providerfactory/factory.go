// Package providerfactory builds the configured completion backend.
package providerfactory

import (
	"context"
	"fmt"
	"log/slog"

	"urbanvision-ao/urbanvision/pkg/config"
	"urbanvision-ao/urbanvision/pkg/providers"
	"urbanvision-ao/urbanvision/pkg/providers/gemini"
	"urbanvision-ao/urbanvision/pkg/providers/groq"
)

// Supported backend types.
const (
	TypeGroq   = "groq"
	TypeGemini = "gemini"
)

// NewProvider creates a provider instance based on the configuration.
//
// Supported provider types:
//   - "groq": OpenAI-compatible chat completions (Groq by default)
//   - "gemini": Google Gemini through the genai SDK
//
// The provider type is determined from the config.Type field. If not specified,
// it is inferred from the provider name, defaulting to groq.
//
// Example:
//
//	provider, err := NewProvider(ctx, providers.ProviderConfig{
//	    Name:   "groq",
//	    Type:   "groq",
//	    APIKey: os.Getenv("GROQ_API_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
func NewProvider(ctx context.Context, config providers.ProviderConfig) (providers.Provider, error) {
	providerType := config.Type
	if providerType == "" {
		providerType = inferProviderType(config.Name)
		config.Type = providerType
	}
	if config.Name == "" {
		config.Name = providerType
	}

	slog.Debug("creating provider",
		"name", config.Name,
		"type", providerType,
		"base_url", config.BaseURL,
	)

	var provider providers.Provider
	var err error

	switch providerType {
	case TypeGroq:
		provider, err = groq.NewProvider(config)

	case TypeGemini:
		provider, err = gemini.NewProvider(ctx, config)

	default:
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "type",
			Message:  fmt.Sprintf("unsupported provider type: %q (supported: groq, gemini)", providerType),
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", config.Name, err)
	}

	slog.Info("provider created successfully",
		"name", config.Name,
		"type", providerType,
	)

	return provider, nil
}

// inferProviderType infers the provider type from the provider name.
func inferProviderType(name string) string {
	switch name {
	case "gemini", "google":
		return TypeGemini
	default:
		return TypeGroq
	}
}

// FromConfig builds the backend described by the provider section.
// It returns nil and no error when no credential is configured; the gateway
// then reports itself unconfigured.
func FromConfig(ctx context.Context, cfg config.ProviderConfig) (providers.Provider, error) {
	if !cfg.Configured() {
		slog.Warn("no provider credential configured, generation endpoints are disabled",
			"backend", cfg.Backend,
		)
		return nil, nil
	}

	return NewProvider(ctx, providers.ProviderConfig{
		Name:                cfg.Backend,
		Type:                cfg.Backend,
		BaseURL:             cfg.BaseURL,
		APIKey:              cfg.APIKey,
		Timeout:             cfg.Timeout,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	})
}
