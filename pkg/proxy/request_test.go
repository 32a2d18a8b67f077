package proxy

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReadBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKeys int
	}{
		{name: "object", body: `{"message":"Olá","history":[]}`, wantKeys: 2},
		{name: "empty body", body: "", wantKeys: 0},
		{name: "invalid JSON", body: `{"message":`, wantKeys: 0},
		{name: "non-object JSON", body: `["a"]`, wantKeys: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))

			body, err := ReadBody(req)
			if err != nil {
				t.Fatalf("ReadBody() error = %v", err)
			}
			if len(body) != tt.wantKeys {
				t.Errorf("expected %d keys, got %d", tt.wantKeys, len(body))
			}
		})
	}
}

func TestReadBody_TooLarge(t *testing.T) {
	payload := `{"message":"` + strings.Repeat("a", MaxRequestBodySize) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload))

	_, err := ReadBody(req)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", reqErr.Status)
	}
}

func TestExtractRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ExtractRequestID(req); got != "" {
		t.Errorf("expected empty ID, got %q", got)
	}

	req.Header.Set(RequestIDHeader, "abc-123")
	if got := ExtractRequestID(req); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}
}

func TestAllowMethods(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)

	if AllowMethods(rec, req, http.MethodPost) {
		t.Fatal("GET should not be allowed")
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Errorf("unexpected Allow header %q", rec.Header().Get("Allow"))
	}
	if !strings.Contains(rec.Body.String(), MethodNotAllowedMessage) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	if !AllowMethods(rec, httptest.NewRequest(http.MethodPost, "/api/chat", nil), http.MethodPost) {
		t.Error("POST should be allowed")
	}
}
