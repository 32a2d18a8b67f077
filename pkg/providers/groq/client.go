// Package groq implements the chat-completion backend for Groq's
// OpenAI-compatible API. Any host speaking the same /chat/completions
// protocol can be targeted by overriding the base URL.
package groq

import (
	"context"
	"net/http"
	"strings"

	"urbanvision-ao/urbanvision/pkg/providers"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Provider is the Groq backend.
type Provider struct {
	*providers.HTTPProvider
	endpoint string
	apiKey   string
}

// NewProvider creates a Groq provider. An API key is required.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required",
		}
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Type == "" {
		config.Type = "groq"
	}

	return &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
		endpoint:     strings.TrimRight(config.BaseURL, "/") + "/chat/completions",
		apiKey:       config.APIKey,
	}, nil
}

// SendCompletion sends one chat completion request.
func (p *Provider) SendCompletion(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + p.apiKey,
		"Accept":        "application/json",
	}

	var wire ChatResponse
	if err := p.DoJSONRequest(ctx, http.MethodPost, p.endpoint, transformRequest(req), &wire, headers); err != nil {
		return nil, err
	}

	resp, err := transformResponse(p.GetName(), &wire)
	p.RecordOutcome(err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
