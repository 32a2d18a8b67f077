package handlers

import (
	"errors"
	"net/http"

	"urbanvision-ao/urbanvision/pkg/gateway"
	"urbanvision-ao/urbanvision/pkg/input"
	"urbanvision-ao/urbanvision/pkg/prompts"
	"urbanvision-ao/urbanvision/pkg/proxy"
	"urbanvision-ao/urbanvision/pkg/proxy/types"
)

// AreaHandler serves the area based generation endpoints: /api/analyze,
// /api/predict and /api/recommend.
type AreaHandler struct {
	Gateway   Generator
	Decoder   types.Decoder
	Operation gateway.Operation
}

// NewAnalyzeHandler creates the POST /api/analyze handler.
func NewAnalyzeHandler(gen Generator, dec types.Decoder) *AreaHandler {
	return &AreaHandler{Gateway: gen, Decoder: dec, Operation: gateway.Analyze}
}

// NewPredictHandler creates the POST /api/predict handler.
func NewPredictHandler(gen Generator, dec types.Decoder) *AreaHandler {
	return &AreaHandler{Gateway: gen, Decoder: dec, Operation: gateway.Predict}
}

// NewRecommendHandler creates the POST /api/recommend handler.
func NewRecommendHandler(gen Generator, dec types.Decoder) *AreaHandler {
	return &AreaHandler{Gateway: gen, Decoder: dec, Operation: gateway.Recommend}
}

// ServeHTTP implements http.Handler.
func (h *AreaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !proxy.AllowMethods(w, r, http.MethodPost) {
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if !h.Gateway.Configured() {
		writeResult(w, r, h.Operation, h.Gateway.Complete(ctx, h.Operation, nil))
		return
	}

	area, messages, err := h.decode(body)
	if err != nil {
		var unknown *input.UnknownAreaError
		if errors.As(err, &unknown) {
			area = unknown.Name
		}
		writeResult(w, r, h.Operation, h.Gateway.Reject(ctx, h.Operation, err, gateway.WithArea(area)))
		return
	}

	writeResult(w, r, h.Operation, h.Gateway.Complete(ctx, h.Operation, messages, gateway.WithArea(area)))
}

func (h *AreaHandler) decode(body types.Body) (string, []prompts.Message, error) {
	switch h.Operation {
	case gateway.Analyze:
		req, err := h.Decoder.Analyze(body)
		if err != nil {
			return "", nil, err
		}
		return req.Area, req.Messages(), nil
	case gateway.Predict:
		req, err := h.Decoder.Predict(body)
		if err != nil {
			return "", nil, err
		}
		return req.Area, req.Messages(), nil
	case gateway.Recommend:
		req, err := h.Decoder.Recommend(body)
		if err != nil {
			return "", nil, err
		}
		return req.Area, req.Messages(), nil
	default:
		panic("handlers: AreaHandler used for " + h.Operation.String())
	}
}
