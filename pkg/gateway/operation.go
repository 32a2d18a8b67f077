package gateway

import "fmt"

// Operation identifies one of the generation endpoints.
type Operation int

// Generation operations.
const (
	Chat Operation = iota
	Analyze
	Predict
	Recommend
)

// Operations lists every operation.
func Operations() []Operation {
	return []Operation{Chat, Analyze, Predict, Recommend}
}

// String returns the lower-case operation name used in logs and metrics.
func (o Operation) String() string {
	switch o {
	case Chat:
		return "chat"
	case Analyze:
		return "analyze"
	case Predict:
		return "predict"
	case Recommend:
		return "recommend"
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// MaxTokens is the completion token cap of the operation.
func (o Operation) MaxTokens() int {
	switch o {
	case Chat:
		return 1024
	case Analyze:
		return 1500
	case Predict:
		return 1200
	case Recommend:
		return 1500
	}
	return 0
}

// Field is the JSON field that carries the generated text.
func (o Operation) Field() string {
	switch o {
	case Chat:
		return "response"
	case Analyze:
		return "analysis"
	case Predict:
		return "prediction"
	case Recommend:
		return "recommendation"
	}
	return ""
}
