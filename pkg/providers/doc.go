// Package providers is the abstraction over chat-completion backends.
//
// # Overview
//
// A Provider accepts a provider-agnostic CompletionRequest and returns a
// normalized CompletionResponse. Concrete backends live in sub-packages:
//
//   - groq: OpenAI-compatible chat completions (Groq and compatible hosts)
//   - gemini: Google Gemini through google.golang.org/genai
//
// The providerfactory package builds the configured backend.
//
// # HTTP base
//
// HTTPProvider implements the plumbing shared by HTTP backends: connection
// pooling, request timeouts, error classification and health bookkeeping.
// It sends exactly one attempt per request. Failures are classified into
// typed errors (AuthError, RateLimitError, TimeoutError, ParseError,
// ProviderError) and returned to the caller without retrying.
//
// # Basic Usage
//
//	p, err := groq.NewProvider(providers.ProviderConfig{
//	    Name:    "groq",
//	    Type:    "groq",
//	    BaseURL: "https://api.groq.com/openai/v1",
//	    APIKey:  os.Getenv("GROQ_API_KEY"),
//	    Timeout: 60 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	resp, err := p.SendCompletion(ctx, &providers.CompletionRequest{
//	    Model:       "llama-3.3-70b-versatile",
//	    Messages:    []providers.Message{{Role: "user", Content: "Olá"}},
//	    Temperature: 0.7,
//	    MaxTokens:   1024,
//	})
//
// # Health
//
// Every request updates the provider's health record. Three consecutive
// failures mark the provider unhealthy; the next success marks it healthy
// again. Health is informational only and never blocks a request.
package providers
