package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"urbanvision-ao/urbanvision/pkg/proxy"
)

// internalErrorMessage is returned to clients when a handler panics.
const internalErrorMessage = "Erro interno do servidor."

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a 500
// JSON error. The panic and stack trace are logged; nothing about them is
// sent to the client. http.ErrAbortHandler is re-raised so the server can
// abort the connection.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			slog.ErrorContext(r.Context(), "panic in handler",
				"error", err,
				"request_id", w.Header().Get(proxy.RequestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)

			_ = proxy.WriteErrorResponse(w, http.StatusInternalServerError, internalErrorMessage)
		}()

		next.ServeHTTP(w, r)
	})
}
