package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"urbanvision-ao/urbanvision/pkg/proxy"
	"urbanvision-ao/urbanvision/pkg/telemetry/logging"
)

// maxRequestIDLength bounds client supplied IDs before they reach logs.
const maxRequestIDLength = 128

// RequestIDMiddleware attaches a request ID to the context and the
// X-Request-ID response header. A client supplied ID is reused; otherwise a
// random UUID is generated.
//
// Example usage:
//
//	handler = RequestIDMiddleware(handler)
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := proxy.ExtractRequestID(r)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(proxy.RequestIDHeader, requestID)

		ctx := logging.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
