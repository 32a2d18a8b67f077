package providers

import "time"

// Roles of a chat message. The system message, when present, comes first.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Finish reasons normalized across backends.
const (
	FinishReasonStop   = "stop"
	FinishReasonLength = "length"
)

// unhealthyThreshold is the number of consecutive failures after which a
// backend is reported unhealthy.
const unhealthyThreshold = 3

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TokenUsage is the token accounting reported by the backend.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionRequest is a backend-independent chat completion request.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`

	// MaxTokens caps the completion; 0 leaves the backend default.
	MaxTokens int `json:"max_tokens,omitempty"`

	// User is forwarded to backends that accept an end-user identifier.
	User string `json:"user,omitempty"`
}

// CompletionResponse is the generated text plus what the backend reported
// about it.
type CompletionResponse struct {
	ID           string     `json:"id"`
	Model        string     `json:"model"`
	Content      string     `json:"content"`
	FinishReason string     `json:"finish_reason"`
	Usage        TokenUsage `json:"usage"`

	// Created is a Unix timestamp.
	Created int64 `json:"created"`
}

// ProviderHealth is the health record kept by HealthTracker.
type ProviderHealth struct {
	IsHealthy             bool
	LastCheck             time.Time
	LastSuccessfulRequest time.Time

	// LastError is nil after a success.
	LastError           error
	ConsecutiveFailures int

	TotalRequests  int64
	FailedRequests int64
}

// ProviderConfig configures one backend instance. It is derived from the
// provider section of the service configuration.
type ProviderConfig struct {
	// Name labels logs and metrics; Type selects the implementation
	// ("groq" or "gemini").
	Name string
	Type string

	BaseURL string
	APIKey  string

	// Timeout bounds one upstream call.
	Timeout time.Duration

	// Connection pool of HTTP-based backends.
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}
