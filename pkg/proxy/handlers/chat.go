package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"urbanvision-ao/urbanvision/pkg/gateway"
	"urbanvision-ao/urbanvision/pkg/proxy"
	"urbanvision-ao/urbanvision/pkg/proxy/types"
)

// ErrEmptyMessage is the cause recorded for chat requests without text.
var ErrEmptyMessage = errors.New("empty message")

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	Gateway Generator
	Decoder types.Decoder
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(gen Generator, dec types.Decoder) *ChatHandler {
	return &ChatHandler{Gateway: gen, Decoder: dec}
}

// ServeHTTP implements http.Handler. An unconfigured backend is reported
// before the message is looked at.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !proxy.AllowMethods(w, r, http.MethodPost) {
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	req := h.Decoder.Chat(body)

	var res gateway.Result
	switch {
	case !h.Gateway.Configured():
		res = h.Gateway.Complete(ctx, gateway.Chat, nil)
	case req.Message == "":
		res = h.Gateway.Reject(ctx, gateway.Chat, ErrEmptyMessage)
	default:
		res = h.Gateway.Complete(ctx, gateway.Chat, req.Messages())
	}

	writeResult(w, r, gateway.Chat, res)
}

// readBody reads the request body, answering the client itself when the
// body cannot be read.
func readBody(w http.ResponseWriter, r *http.Request) (types.Body, bool) {
	body, err := proxy.ReadBody(r)
	if err == nil {
		return body, true
	}

	var reqErr *proxy.RequestError
	if !errors.As(err, &reqErr) {
		reqErr = &proxy.RequestError{Status: http.StatusBadRequest, Message: "Pedido inválido.", Cause: err}
	}
	slog.WarnContext(r.Context(), "failed to read request body",
		"path", r.URL.Path,
		"error", err,
	)
	_ = proxy.WriteErrorResponse(w, reqErr.Status, reqErr.Message)
	return nil, false
}

func writeResult(w http.ResponseWriter, r *http.Request, op gateway.Operation, res gateway.Result) {
	if err := proxy.WriteResult(w, op, res); err != nil {
		slog.ErrorContext(r.Context(), "failed to write response",
			"operation", op.String(),
			"error", err,
		)
	}
}
