package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	testproviders "urbanvision-ao/urbanvision/internal/providers"
	"urbanvision-ao/urbanvision/pkg/config"
	"urbanvision-ao/urbanvision/pkg/gateway"
	"urbanvision-ao/urbanvision/pkg/providers"
	"urbanvision-ao/urbanvision/pkg/proxy/types"
)

func configuredGateway(mock *testproviders.MockProvider) *gateway.Gateway {
	return gateway.New(config.ProviderConfig{
		Backend:     "groq",
		APIKey:      "gsk_test",
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.7,
	}, mock)
}

func unconfiguredGateway() *gateway.Gateway {
	return gateway.New(config.ProviderConfig{Backend: "groq", Model: "llama-3.3-70b-versatile"}, nil)
}

func serve(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v (%s)", err, w.Body.String())
		}
	}
	return w, decoded
}

func TestChatHandler(t *testing.T) {
	tests := []struct {
		name       string
		gateway    func(*testproviders.MockProvider) *gateway.Gateway
		body       string
		wantStatus int
		wantKey    string
		wantValue  string
		wantCalls  int
	}{
		{
			name:       "success",
			gateway:    configuredGateway,
			body:       `{"message":"Como está o ar em Viana?"}`,
			wantStatus: http.StatusOK,
			wantKey:    "response",
			wantValue:  "O ar em Viana está moderado.",
			wantCalls:  1,
		},
		{
			name:       "empty message",
			gateway:    configuredGateway,
			body:       `{"message":"   "}`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Mensagem não pode estar vazia.",
		},
		{
			name:       "missing body",
			gateway:    configuredGateway,
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Mensagem não pode estar vazia.",
		},
		{
			name:       "unconfigured wins over empty message",
			gateway:    func(*testproviders.MockProvider) *gateway.Gateway { return unconfiguredGateway() },
			body:       `{}`,
			wantStatus: http.StatusInternalServerError,
			wantKey:    "error",
			wantValue:  "API do Groq não configurada. Adicione a variável GROQ_API_KEY.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testproviders.NewMockProvider("O ar em Viana está moderado.")
			h := NewChatHandler(tt.gateway(mock), types.Decoder{})

			w, body := serve(t, h, http.MethodPost, "/api/chat", tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if len(body) != 1 || body[tt.wantKey] != tt.wantValue {
				t.Errorf("unexpected body %v", body)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("expected %d upstream calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestChatHandler_ForwardsHistory(t *testing.T) {
	mock := testproviders.NewMockProvider("ok")
	h := NewChatHandler(configuredGateway(mock), types.Decoder{})

	serve(t, h, http.MethodPost, "/api/chat", `{
		"message": "E no Lobito?",
		"history": [
			{"role":"user","content":"Qual a qualidade do ar em Benguela?"},
			{"role":"assistant","content":"Boa."}
		]
	}`)

	reqs := mock.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(reqs))
	}
	msgs := reqs[0].Messages
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[0].Role != providers.RoleSystem || msgs[3].Content != "E no Lobito?" {
		t.Errorf("unexpected messages %+v", msgs)
	}
	if reqs[0].MaxTokens != 1024 {
		t.Errorf("expected 1024 max tokens, got %d", reqs[0].MaxTokens)
	}
}

func TestChatHandler_UpstreamError(t *testing.T) {
	mock := testproviders.NewMockProvider("")
	mock.Err = &providers.AuthError{Provider: "groq", Message: "invalid api key gsk_leaked"}
	h := NewChatHandler(configuredGateway(mock), types.Decoder{})

	w, body := serve(t, h, http.MethodPost, "/api/chat", `{"message":"Olá"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if body["error"] != "Erro ao processar sua solicitação. Tente novamente." {
		t.Errorf("unexpected error %v", body["error"])
	}
	if strings.Contains(w.Body.String(), "gsk_") {
		t.Error("upstream detail leaked to client")
	}
}

func TestAreaHandlers(t *testing.T) {
	tests := []struct {
		name      string
		handler   func(Generator, types.Decoder) *AreaHandler
		target    string
		body      string
		wantKey   string
		wantMax   int
		wantInMsg string
	}{
		{
			name:      "analyze",
			handler:   NewAnalyzeHandler,
			target:    "/api/analyze",
			body:      `{"area":"viana","pm25":85,"so2":12,"vegetation":15}`,
			wantKey:   "analysis",
			wantMax:   1500,
			wantInMsg: "Viana",
		},
		{
			name:      "predict defaults area",
			handler:   NewPredictHandler,
			target:    "/api/predict",
			body:      `{"years":20}`,
			wantKey:   "prediction",
			wantMax:   1200,
			wantInMsg: "Luanda",
		},
		{
			name:      "recommend",
			handler:   NewRecommendHandler,
			target:    "/api/recommend",
			body:      `{"area":"Huambo","area_size":5000,"target":70}`,
			wantKey:   "recommendation",
			wantMax:   1500,
			wantInMsg: "Huambo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testproviders.NewMockProvider("Resultado gerado.")
			h := tt.handler(configuredGateway(mock), types.Decoder{})

			w, body := serve(t, h, http.MethodPost, tt.target, tt.body)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
			}
			if body[tt.wantKey] != "Resultado gerado." {
				t.Errorf("unexpected body %v", body)
			}

			reqs := mock.Requests()
			if len(reqs) != 1 {
				t.Fatalf("expected one upstream call, got %d", len(reqs))
			}
			if reqs[0].MaxTokens != tt.wantMax {
				t.Errorf("expected max tokens %d, got %d", tt.wantMax, reqs[0].MaxTokens)
			}
			last := reqs[0].Messages[len(reqs[0].Messages)-1]
			if !strings.Contains(last.Content, tt.wantInMsg) {
				t.Errorf("prompt does not mention %q: %s", tt.wantInMsg, last.Content)
			}
		})
	}
}

func TestAreaHandler_Unconfigured(t *testing.T) {
	for _, newHandler := range []func(Generator, types.Decoder) *AreaHandler{NewAnalyzeHandler, NewPredictHandler, NewRecommendHandler} {
		h := newHandler(unconfiguredGateway(), types.Decoder{StrictAreas: true})

		w, body := serve(t, h, http.MethodPost, "/api/x", `{"area":"Nenhures"}`)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", h.Operation, w.Code)
		}
		if body["error"] != "API do Groq não configurada." {
			t.Errorf("%s: unexpected error %v", h.Operation, body["error"])
		}
	}
}

func TestAreaHandler_StrictUnknownArea(t *testing.T) {
	mock := testproviders.NewMockProvider("não deve ser chamado")
	h := NewAnalyzeHandler(configuredGateway(mock), types.Decoder{StrictAreas: true})

	w, body := serve(t, h, http.MethodPost, "/api/analyze", `{"area":"Nenhures"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if body["error"] != "Área desconhecida." {
		t.Errorf("unexpected error %v", body["error"])
	}
	if mock.CallCount() != 0 {
		t.Errorf("backend should not be called, got %d calls", mock.CallCount())
	}
}

func TestAreaHandler_UpstreamError(t *testing.T) {
	mock := testproviders.NewMockProvider("")
	mock.Err = &providers.RateLimitError{Provider: "groq", Message: "slow down"}
	h := NewRecommendHandler(configuredGateway(mock), types.Decoder{})

	w, body := serve(t, h, http.MethodPost, "/api/recommend", `{}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if body["error"] != "Erro ao gerar recomendações. Tente novamente." {
		t.Errorf("unexpected error %v", body["error"])
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly one attempt, got %d", mock.CallCount())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	gw := configuredGateway(testproviders.NewMockProvider("x"))

	tests := []struct {
		name    string
		handler http.Handler
		method  string
	}{
		{"chat GET", NewChatHandler(gw, types.Decoder{}), http.MethodGet},
		{"analyze PUT", NewAnalyzeHandler(gw, types.Decoder{}), http.MethodPut},
		{"health POST", NewHealthHandler(gw), http.MethodPost},
		{"static DELETE", NewStaticHandler(t.TempDir()), http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(t, tt.handler, tt.method, "/", "")
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected 405, got %d", w.Code)
			}
			if _, ok := body["error"]; !ok {
				t.Errorf("expected JSON error body, got %v", body)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name string
		gw   *gateway.Gateway
		want bool
	}{
		{"configured", configuredGateway(testproviders.NewMockProvider("x")), true},
		{"unconfigured", unconfiguredGateway(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(t, NewHealthHandler(tt.gw), http.MethodGet, "/api/health", "")
			if w.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", w.Code)
			}
			if body["status"] != "ok" || body["groq_configured"] != tt.want {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}
