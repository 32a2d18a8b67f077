package providers

import "context"

// Provider is the interface every completion backend implements.
//
// All methods that perform I/O accept a context.Context and must return
// promptly when it is cancelled.
//
// Example usage:
//
//	resp, err := provider.SendCompletion(ctx, &CompletionRequest{
//	    Model: "llama-3.3-70b-versatile",
//	    Messages: []Message{
//	        {Role: "user", Content: "Olá!"},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Content)
type Provider interface {
	// SendCompletion sends a completion request and returns the normalized
	// response. A response without any generated text is reported as an
	// *EmptyResponseError. No retries are attempted.
	SendCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// GetName returns the provider's configured name.
	GetName() string

	// GetType returns the provider's type ("groq", "gemini").
	GetType() string

	// IsHealthy returns the current health status of the provider.
	IsHealthy() bool

	// GetHealth returns detailed health information.
	GetHealth() ProviderHealth

	// Close releases any resources held by the provider.
	Close() error
}
