// Package gemini implements providers.Provider on top of the Google genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"urbanvision-ao/urbanvision/pkg/providers"
)

// DefaultModel is used when the configuration leaves the model empty.
const DefaultModel = "gemini-2.0-flash"

// generator is the slice of the genai client used by the provider.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider sends completions to the Gemini API.
type Provider struct {
	*providers.HealthTracker

	config providers.ProviderConfig
	models generator
}

// NewProvider creates a Gemini provider. The API key is required.
func NewProvider(ctx context.Context, config providers.ProviderConfig) (*Provider, error) {
	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required",
		}
	}
	if config.Type == "" {
		config.Type = "gemini"
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return newProvider(config, client.Models), nil
}

func newProvider(config providers.ProviderConfig, models generator) *Provider {
	return &Provider{
		HealthTracker: providers.NewHealthTracker(config.Name),
		config:        config,
		models:        models,
	}
}

// GetName returns the provider's configured name.
func (p *Provider) GetName() string {
	return p.config.Name
}

// GetType returns "gemini".
func (p *Provider) GetType() string {
	return p.config.Type
}

// SendCompletion performs a single GenerateContent call.
func (p *Provider) SendCompletion(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	contents, cfg := transformRequest(req)

	slog.Debug("sending request to provider",
		"provider", p.config.Name,
		"model", model,
		"contents", len(contents),
	)

	resp, err := p.models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		err = p.classify(ctx, err)
		p.RecordOutcome(err)
		return nil, err
	}

	out, err := transformResponse(p.config.Name, model, resp)
	p.RecordOutcome(err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close is a no-op; the genai client holds no resources that need releasing.
func (p *Provider) Close() error {
	return nil
}

func (p *Provider) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return &providers.TimeoutError{
			Provider: p.config.Name,
			Timeout:  p.config.Timeout,
			Cause:    ctx.Err(),
		}
	}

	code, message, ok := apiErrorCode(err)
	if !ok {
		return &providers.ProviderError{
			Provider: p.config.Name,
			Message:  "request failed",
			Cause:    err,
		}
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &providers.AuthError{Provider: p.config.Name, Message: message}
	case http.StatusTooManyRequests:
		return &providers.RateLimitError{Provider: p.config.Name, Message: message}
	default:
		return &providers.ProviderError{
			Provider:   p.config.Name,
			StatusCode: code,
			Message:    message,
			Cause:      err,
		}
	}
}

func apiErrorCode(err error) (int, string, bool) {
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.Message, true
	}
	var val genai.APIError
	if errors.As(err, &val) {
		return val.Code, val.Message, true
	}
	return 0, "", false
}

// transformRequest splits the system message into the system instruction and
// maps the remaining turns onto genai contents.
func transformRequest(req *providers.CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case providers.RoleSystem:
			system = append(system, msg.Content)
		case providers.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	if len(system) > 0 {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}
	return contents, cfg
}

func transformResponse(name, model string, resp *genai.GenerateContentResponse) (*providers.CompletionResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, &providers.EmptyResponseError{Provider: name, Model: model}
	}

	candidate := resp.Candidates[0]
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return nil, &providers.EmptyResponseError{Provider: name, Model: model}
	}

	out := &providers.CompletionResponse{
		ID:           resp.ResponseID,
		Model:        model,
		Content:      text,
		FinishReason: finishReason(candidate.FinishReason),
		Created:      time.Now().Unix(),
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = providers.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

func finishReason(r genai.FinishReason) string {
	switch r {
	case genai.FinishReasonStop, "":
		return providers.FinishReasonStop
	case genai.FinishReasonMaxTokens:
		return providers.FinishReasonLength
	default:
		return strings.ToLower(string(r))
	}
}
