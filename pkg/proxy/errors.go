package proxy

import (
	"net/http"
	"strings"
)

// MethodNotAllowedMessage is the body text of 405 responses.
const MethodNotAllowedMessage = "Método não permitido."

// RequestError is a request that could not be read. Message is safe to show
// to clients; Cause is for logs.
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// AllowMethods rejects requests whose method is not in methods with a 405
// JSON error and reports whether the request may proceed.
func AllowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	_ = WriteErrorResponse(w, http.StatusMethodNotAllowed, MethodNotAllowedMessage)
	return false
}
