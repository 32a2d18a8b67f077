package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig(url string) ProviderConfig {
	return ProviderConfig{
		Name:    "test-provider",
		Type:    "groq",
		BaseURL: url,
		Timeout: 5 * time.Second,
	}
}

func TestHTTPProvider_NoRetryOn5xx(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "internal server error"}`))
	}))
	defer server.Close()

	provider := NewHTTPProvider(testConfig(server.URL))

	_, err := provider.DoRequest(context.Background(), http.MethodPost, server.URL+"/test", []byte(`{}`), nil)

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if provErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", provErr.StatusCode)
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", n)
	}
}

func TestHTTPProvider_StatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header map[string]string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var target *AuthError
				if !errors.As(err, &target) {
					t.Errorf("expected AuthError, got %T", err)
				}
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var target *AuthError
				if !errors.As(err, &target) {
					t.Errorf("expected AuthError, got %T", err)
				}
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			header: map[string]string{"Retry-After": "7"},
			check: func(t *testing.T, err error) {
				var target *RateLimitError
				if !errors.As(err, &target) {
					t.Fatalf("expected RateLimitError, got %T", err)
				}
				if target.RetryAfter != 7*time.Second {
					t.Errorf("expected retry after 7s, got %s", target.RetryAfter)
				}
			},
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var target *ProviderError
				if !errors.As(err, &target) || target.StatusCode != http.StatusBadRequest {
					t.Errorf("expected ProviderError with 400, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			}))
			defer server.Close()

			provider := NewHTTPProvider(testConfig(server.URL))
			_, err := provider.DoRequest(context.Background(), http.MethodPost, server.URL, []byte(`{}`), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestHTTPProvider_DoJSONRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("Authorization") != "Bearer k" {
			t.Errorf("expected auth header, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	provider := NewHTTPProvider(testConfig(server.URL))

	var out struct {
		Message string `json:"message"`
	}
	err := provider.DoJSONRequest(context.Background(), http.MethodPost, server.URL,
		map[string]string{"q": "x"}, &out, map[string]string{"Authorization": "Bearer k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Message != "ok" {
		t.Errorf("expected decoded message 'ok', got %q", out.Message)
	}
}

func TestHTTPProvider_DoJSONRequest_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider := NewHTTPProvider(testConfig(server.URL))

	var out map[string]any
	err := provider.DoJSONRequest(context.Background(), http.MethodPost, server.URL, nil, &out, nil)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if parseErr.RawResponse != "not json" {
		t.Errorf("expected raw response to be kept, got %q", parseErr.RawResponse)
	}
}

func TestHTTPProvider_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	provider := NewHTTPProvider(testConfig(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := provider.DoRequest(ctx, http.MethodGet, server.URL, nil, nil)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected TimeoutError, got %T: %v", err, err)
	}
}

func TestHTTPProvider_HealthTracking(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	provider := NewHTTPProvider(testConfig(server.URL))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_ = provider.DoJSONRequest(ctx, http.MethodPost, server.URL, nil, &map[string]any{}, nil)
	}
	if !provider.IsHealthy() {
		t.Error("provider should stay healthy below the failure threshold")
	}

	_ = provider.DoJSONRequest(ctx, http.MethodPost, server.URL, nil, &map[string]any{}, nil)
	if provider.IsHealthy() {
		t.Error("provider should be unhealthy after 3 consecutive failures")
	}

	health := provider.GetHealth()
	if health.ConsecutiveFailures != 3 || health.FailedRequests != 3 {
		t.Errorf("unexpected health counters: %+v", health)
	}

	fail.Store(false)
	if err := provider.DoJSONRequest(ctx, http.MethodPost, server.URL, nil, &map[string]any{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.RecordOutcome(nil)
	if !provider.IsHealthy() {
		t.Error("provider should recover after a success")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 0 {
		t.Errorf("expected 0, got %s", got)
	}
	if got := parseRetryAfter("30"); got != 30*time.Second {
		t.Errorf("expected 30s, got %s", got)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 0 || got > time.Minute {
		t.Errorf("expected a duration within a minute, got %s", got)
	}
	if got := parseRetryAfter("garbage"); got != 0 {
		t.Errorf("expected 0 for garbage, got %s", got)
	}
}
