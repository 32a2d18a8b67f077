package handlers

import (
	"net/http"

	"urbanvision-ao/urbanvision/pkg/proxy"
	"urbanvision-ao/urbanvision/pkg/proxy/types"
)

// HealthHandler serves GET /api/health. It never calls the backend.
type HealthHandler struct {
	Gateway interface{ Configured() bool }
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(gen Generator) *HealthHandler {
	return &HealthHandler{Gateway: gen}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !proxy.AllowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	_ = proxy.WriteJSONResponse(w, http.StatusOK, types.HealthResponse{
		Status:         "ok",
		GroqConfigured: h.Gateway.Configured(),
	})
}
