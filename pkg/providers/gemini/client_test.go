package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	testproviders "urbanvision-ao/urbanvision/internal/providers"
	"urbanvision-ao/urbanvision/pkg/providers"
)

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		ResponseID: "resp-1",
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     100,
			CandidatesTokenCount: 20,
			TotalTokenCount:      120,
		},
	}
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	cfg := testproviders.TestConfig("gemini", "gemini")
	cfg.APIKey = ""

	_, err := NewProvider(context.Background(), cfg)
	var cfgErr *providers.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestSendCompletion_Success(t *testing.T) {
	fake := &fakeModels{resp: textResponse("Previsão: melhoria gradual.")}
	p := newProvider(testproviders.TestConfig("gemini", "gemini"), fake)

	req := testproviders.TestCompletionRequest("gemini-2.0-flash",
		providers.Message{Role: providers.RoleSystem, Content: "sistema"},
		providers.Message{Role: providers.RoleUser, Content: "pergunta"},
		providers.Message{Role: providers.RoleAssistant, Content: "resposta"},
		providers.Message{Role: providers.RoleUser, Content: "seguinte"},
	)
	req.MaxTokens = 1200

	resp, err := p.SendCompletion(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Previsão: melhoria gradual." {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 120 || resp.Usage.PromptTokens != 100 {
		t.Errorf("unexpected usage %+v", resp.Usage)
	}
	if resp.FinishReason != providers.FinishReasonStop {
		t.Errorf("unexpected finish reason %q", resp.FinishReason)
	}

	if fake.model != "gemini-2.0-flash" {
		t.Errorf("unexpected model %q", fake.model)
	}
	if len(fake.contents) != 3 {
		t.Fatalf("expected 3 contents without the system turn, got %d", len(fake.contents))
	}
	if fake.contents[1].Role != genai.RoleModel {
		t.Errorf("expected assistant turn mapped to model role, got %q", fake.contents[1].Role)
	}
	if fake.config.SystemInstruction == nil || fake.config.SystemInstruction.Parts[0].Text != "sistema" {
		t.Errorf("system instruction not set: %+v", fake.config.SystemInstruction)
	}
	if fake.config.MaxOutputTokens != 1200 {
		t.Errorf("expected 1200 max output tokens, got %d", fake.config.MaxOutputTokens)
	}
	if fake.config.Temperature == nil || *fake.config.Temperature != float32(0.7) {
		t.Errorf("unexpected temperature %v", fake.config.Temperature)
	}
}

func TestSendCompletion_DefaultModel(t *testing.T) {
	fake := &fakeModels{resp: textResponse("ok")}
	p := newProvider(testproviders.TestConfig("gemini", "gemini"), fake)

	req := testproviders.TestCompletionRequest("", providers.Message{Role: "user", Content: "x"})
	if _, err := p.SendCompletion(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.model != DefaultModel {
		t.Errorf("expected default model, got %q", fake.model)
	}
}

func TestSendCompletion_Errors(t *testing.T) {
	tests := []struct {
		name     string
		fake     *fakeModels
		wantType string
	}{
		{
			name:     "permission denied",
			fake:     &fakeModels{err: genai.APIError{Code: 403, Message: "API key not valid"}},
			wantType: "auth",
		},
		{
			name:     "quota",
			fake:     &fakeModels{err: &genai.APIError{Code: 429, Message: "quota exceeded"}},
			wantType: "rate_limit",
		},
		{
			name:     "unavailable",
			fake:     &fakeModels{err: genai.APIError{Code: 503, Message: "overloaded"}},
			wantType: "server_error",
		},
		{
			name:     "transport",
			fake:     &fakeModels{err: errors.New("connection reset")},
			wantType: "network",
		},
		{
			name:     "no candidates",
			fake:     &fakeModels{resp: &genai.GenerateContentResponse{}},
			wantType: "empty_response",
		},
		{
			name:     "blank text",
			fake:     &fakeModels{resp: textResponse("  \n")},
			wantType: "empty_response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProvider(testproviders.TestConfig("gemini", "gemini"), tt.fake)

			_, err := p.SendCompletion(context.Background(),
				testproviders.TestCompletionRequest("m", providers.Message{Role: "user", Content: "olá"}))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := providers.ErrorType(err); got != tt.wantType {
				t.Errorf("expected error type %q, got %q (%v)", tt.wantType, got, err)
			}
			if tt.fake.calls != 1 {
				t.Errorf("expected exactly one attempt, got %d", tt.fake.calls)
			}
		})
	}
}

func TestSendCompletion_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newProvider(testproviders.TestConfig("gemini", "gemini"), &fakeModels{err: context.Canceled})
	_, err := p.SendCompletion(ctx, testproviders.TestCompletionRequest("m",
		providers.Message{Role: "user", Content: "olá"}))

	var timeoutErr *providers.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
}

func TestSendCompletion_HealthTracking(t *testing.T) {
	fake := &fakeModels{err: genai.APIError{Code: 500}}
	p := newProvider(testproviders.TestConfig("gemini", "gemini"), fake)

	for i := 0; i < 3; i++ {
		_, _ = p.SendCompletion(context.Background(), testproviders.TestCompletionRequest("m",
			providers.Message{Role: "user", Content: "olá"}))
	}
	if p.IsHealthy() {
		t.Fatal("expected unhealthy after three failures")
	}

	fake.err = nil
	fake.resp = textResponse("ok")
	if _, err := p.SendCompletion(context.Background(), testproviders.TestCompletionRequest("m",
		providers.Message{Role: "user", Content: "olá"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsHealthy() {
		t.Error("expected recovery after a success")
	}
}
