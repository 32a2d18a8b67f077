package gateway

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed Result.
type ErrorKind int

// Error kinds. The zero value means success.
const (
	KindUnconfigured ErrorKind = iota + 1
	KindValidation
	KindUpstream
)

// String returns the label used in metrics and the journal.
func (k ErrorKind) String() string {
	switch k {
	case KindUnconfigured:
		return "unconfigured"
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	}
	return "ok"
}

// Result is either generated text or an error kind.
type Result struct {
	text  string
	kind  ErrorKind
	cause error
}

// Ok returns a successful Result.
func Ok(text string) Result {
	return Result{text: text}
}

// Err returns a failed Result. cause is kept for logging and is never
// serialized.
func Err(kind ErrorKind, cause error) Result {
	return Result{kind: kind, cause: cause}
}

// IsOK reports whether the call produced text.
func (r Result) IsOK() bool {
	return r.kind == 0
}

// Text returns the generated text, empty on failure.
func (r Result) Text() string {
	return r.text
}

// Kind returns the error kind, zero on success.
func (r Result) Kind() ErrorKind {
	return r.kind
}

// Cause returns the underlying error, if any.
func (r Result) Cause() error {
	return r.cause
}

// Status returns the HTTP status code for the result.
func (r Result) Status() int {
	switch r.kind {
	case 0:
		return http.StatusOK
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for a failed result of op.
// A successful result has no message.
func (r Result) Message(op Operation) string {
	if r.IsOK() {
		return ""
	}
	return message(r.kind, op)
}

func message(kind ErrorKind, op Operation) string {
	switch kind {
	case KindUnconfigured:
		switch op {
		case Chat:
			return "API do Groq não configurada. Adicione a variável GROQ_API_KEY."
		case Analyze, Predict, Recommend:
			return "API do Groq não configurada."
		}
	case KindValidation:
		switch op {
		case Chat:
			return "Mensagem não pode estar vazia."
		case Analyze, Predict, Recommend:
			return "Área desconhecida."
		}
	case KindUpstream:
		switch op {
		case Chat:
			return "Erro ao processar sua solicitação. Tente novamente."
		case Analyze:
			return "Erro ao analisar a área. Tente novamente."
		case Predict:
			return "Erro ao gerar previsão. Tente novamente."
		case Recommend:
			return "Erro ao gerar recomendações. Tente novamente."
		}
	}
	panic(fmt.Sprintf("gateway: no message for %s/%s", kind, op))
}
