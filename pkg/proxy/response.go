package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"urbanvision-ao/urbanvision/pkg/gateway"
	"urbanvision-ao/urbanvision/pkg/proxy/types"
)

// WriteJSONResponse writes data as JSON with the given status. HTML
// characters and non-ASCII text are written as-is.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return nil
}

// WriteErrorResponse writes {"error": message} with the given status.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSONResponse(w, statusCode, types.NewErrorResponse(message))
}

// WriteResult writes a gateway result for op. Successes go under the
// operation's field name; failures use the kind's status and message.
func WriteResult(w http.ResponseWriter, op gateway.Operation, res gateway.Result) error {
	if !res.IsOK() {
		return WriteErrorResponse(w, res.Status(), res.Message(op))
	}
	return WriteJSONResponse(w, http.StatusOK, map[string]string{op.Field(): res.Text()})
}
