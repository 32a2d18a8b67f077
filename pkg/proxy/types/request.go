package types

import (
	"bytes"
	"encoding/json"

	"urbanvision-ao/urbanvision/pkg/input"
	"urbanvision-ao/urbanvision/pkg/prompts"
)

// DefaultArea is used when a request omits the area key entirely.
const DefaultArea = "Luanda"

// Body is a decoded JSON request object.
type Body map[string]any

// ParseBody decodes data into a Body. Empty, malformed and non-object input
// all yield an empty Body. Numbers are kept as json.Number.
func ParseBody(data []byte) Body {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Body{}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return Body{}
	}
	return Body(obj)
}

// ChatRequest is a validated POST /api/chat body.
type ChatRequest struct {
	Message string
	History []input.Turn
}

// Messages composes the prompt sequence for the request.
func (r ChatRequest) Messages() []prompts.Message {
	return prompts.Chat(r.History, r.Message)
}

// AnalyzeRequest is a validated POST /api/analyze body.
type AnalyzeRequest struct {
	Area       string
	PM25       float64
	SO2        float64
	Vegetation float64
}

// Messages composes the prompt sequence for the request.
func (r AnalyzeRequest) Messages() []prompts.Message {
	return prompts.Analyze(prompts.AnalyzeParams{
		Area:       r.Area,
		PM25:       r.PM25,
		SO2:        r.SO2,
		Vegetation: r.Vegetation,
	})
}

// PredictRequest is a validated POST /api/predict body.
type PredictRequest struct {
	Area        string
	Years       int
	CurrentTemp float64
	Vegetation  float64
}

// Messages composes the prompt sequence for the request.
func (r PredictRequest) Messages() []prompts.Message {
	return prompts.Predict(prompts.PredictParams{
		Area:        r.Area,
		Years:       r.Years,
		CurrentTemp: r.CurrentTemp,
		Vegetation:  r.Vegetation,
	})
}

// RecommendRequest is a validated POST /api/recommend body.
type RecommendRequest struct {
	Area       string
	AreaSize   float64
	Vegetation float64
	Target     float64
}

// Messages composes the prompt sequence for the request.
func (r RecommendRequest) Messages() []prompts.Message {
	return prompts.Recommend(prompts.RecommendParams{
		Area:       r.Area,
		AreaSize:   r.AreaSize,
		Vegetation: r.Vegetation,
		Target:     r.Target,
	})
}

// Decoder turns request bodies into validated requests.
type Decoder struct {
	// StrictAreas rejects area names outside the catalog instead of passing
	// them through.
	StrictAreas bool
}

// Chat decodes a chat body. An empty Message is left for the caller to
// reject, since the unconfigured check takes precedence.
func (d Decoder) Chat(b Body) ChatRequest {
	return ChatRequest{
		Message: input.Text(b["message"]),
		History: input.History(b["history"]),
	}
}

// Analyze decodes an analysis body.
func (d Decoder) Analyze(b Body) (AnalyzeRequest, error) {
	area, err := d.area(b)
	if err != nil {
		return AnalyzeRequest{}, err
	}
	return AnalyzeRequest{
		Area:       area,
		PM25:       input.Number(b["pm25"], 0, 500, 20),
		SO2:        input.Number(b["so2"], 0, 100, 5),
		Vegetation: input.Number(b["vegetation"], 0, 100, 30),
	}, nil
}

// Predict decodes a prediction body.
func (d Decoder) Predict(b Body) (PredictRequest, error) {
	area, err := d.area(b)
	if err != nil {
		return PredictRequest{}, err
	}
	return PredictRequest{
		Area:        area,
		Years:       input.Int(b["years"], 1, input.MaxYears, 10),
		CurrentTemp: input.Number(b["current_temp"], -20, 60, 28),
		Vegetation:  input.Number(b["vegetation"], 0, 100, 30),
	}, nil
}

// Recommend decodes a recommendation body.
func (d Decoder) Recommend(b Body) (RecommendRequest, error) {
	area, err := d.area(b)
	if err != nil {
		return RecommendRequest{}, err
	}
	return RecommendRequest{
		Area:       area,
		AreaSize:   input.Number(b["area_size"], 1, 1_000_000, 1000),
		Vegetation: input.Number(b["vegetation"], 0, 100, 30),
		Target:     input.Number(b["target"], 0, 100, 60),
	}, nil
}

// area applies the "Luanda" default only when the key is missing. A present
// but null or blank value goes through the area validator and becomes the
// national fallback.
func (d Decoder) area(b Body) (string, error) {
	v, ok := b["area"]
	if !ok {
		return DefaultArea, nil
	}
	if d.StrictAreas {
		return input.StrictArea(v)
	}
	return input.Area(v), nil
}
