package proxy

import (
	"fmt"
	"io"
	"net/http"

	"urbanvision-ao/urbanvision/pkg/proxy/types"
)

const (
	// MaxRequestBodySize is the maximum accepted request body size (1MB).
	MaxRequestBodySize = 1 << 20

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"
)

// ReadBody reads and decodes the request body. Missing or malformed JSON is
// not an error and yields an empty Body. Bodies larger than
// MaxRequestBodySize produce a *RequestError.
func ReadBody(r *http.Request) (types.Body, error) {
	if r.Body == nil {
		return types.Body{}, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		return nil, &RequestError{
			Status:  http.StatusBadRequest,
			Message: "Não foi possível ler o pedido.",
			Cause:   fmt.Errorf("failed to read request body: %w", err),
		}
	}
	if len(data) > MaxRequestBodySize {
		return nil, &RequestError{
			Status:  http.StatusRequestEntityTooLarge,
			Message: "Pedido demasiado grande.",
			Cause:   fmt.Errorf("request body exceeds %d bytes", MaxRequestBodySize),
		}
	}

	return types.ParseBody(data), nil
}

// ExtractRequestID returns the client supplied X-Request-ID, or "".
func ExtractRequestID(r *http.Request) string {
	return r.Header.Get(RequestIDHeader)
}
