package providers

import (
	"context"
	"sync"
	"time"

	"urbanvision-ao/urbanvision/pkg/providers"
)

// TestConfig returns a test provider configuration.
func TestConfig(name, providerType string) providers.ProviderConfig {
	return providers.ProviderConfig{
		Name:                name,
		Type:                providerType,
		BaseURL:             "http://localhost:8080",
		APIKey:              "test-key",
		Timeout:             5 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
	}
}

// TestConfigWithURL returns a test config with a specific base URL.
func TestConfigWithURL(name, providerType, baseURL string) providers.ProviderConfig {
	config := TestConfig(name, providerType)
	config.BaseURL = baseURL
	return config
}

// TestCompletionRequest creates a test completion request.
func TestCompletionRequest(model string, messages ...providers.Message) *providers.CompletionRequest {
	return &providers.CompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   100,
	}
}

// MockProvider is an in-memory providers.Provider. It returns Response (or
// Err) and records every request it receives.
type MockProvider struct {
	Name     string
	Response *providers.CompletionResponse
	Err      error

	mu       sync.Mutex
	requests []*providers.CompletionRequest
	closed   bool
}

// NewMockProvider returns a MockProvider answering with content.
func NewMockProvider(content string) *MockProvider {
	return &MockProvider{
		Name: "mock",
		Response: &providers.CompletionResponse{
			ID:           "mock-1",
			Model:        "mock-model",
			Content:      content,
			FinishReason: providers.FinishReasonStop,
			Usage:        providers.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		},
	}
}

// SendCompletion implements providers.Provider.
func (m *MockProvider) SendCompletion(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	resp := *m.Response
	return &resp, nil
}

// Requests returns the requests received so far.
func (m *MockProvider) Requests() []*providers.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*providers.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of SendCompletion calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// GetName implements providers.Provider.
func (m *MockProvider) GetName() string { return m.Name }

// GetType implements providers.Provider.
func (m *MockProvider) GetType() string { return "mock" }

// IsHealthy implements providers.Provider.
func (m *MockProvider) IsHealthy() bool { return m.Err == nil }

// GetHealth implements providers.Provider.
func (m *MockProvider) GetHealth() providers.ProviderHealth {
	return providers.ProviderHealth{IsHealthy: m.Err == nil, LastCheck: time.Now()}
}

// Close implements providers.Provider.
func (m *MockProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockProvider) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
