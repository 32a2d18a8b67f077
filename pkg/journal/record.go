package journal

import (
	"time"

	"github.com/google/uuid"
)

// Record describes one generation call.
type Record struct {
	ID               string    `json:"id"`
	RequestID        string    `json:"request_id,omitempty"`
	Operation        string    `json:"operation"`
	Area             string    `json:"area,omitempty"`
	Model            string    `json:"model"`
	Status           string    `json:"status"`
	LatencyMS        int64     `json:"latency_ms"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	CreatedAt        time.Time `json:"created_at"`
}

// Filter narrows List results. Zero fields do not filter.
type Filter struct {
	// Operation matches records of one operation.
	Operation string

	// Since excludes records created before this time.
	Since time.Time

	// Limit caps the number of records returned.
	Limit int
}

// fill assigns an ID and creation time when missing.
func (r *Record) fill() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}

// row is the SQL representation of a Record. Times are stored as Unix
// microseconds so ordering and comparisons do not depend on the driver's
// time encoding.
type row struct {
	ID               string `db:"id"`
	RequestID        string `db:"request_id"`
	Operation        string `db:"operation"`
	Area             string `db:"area"`
	Model            string `db:"model"`
	Status           string `db:"status"`
	LatencyMS        int64  `db:"latency_ms"`
	PromptTokens     int    `db:"prompt_tokens"`
	CompletionTokens int    `db:"completion_tokens"`
	CreatedAt        int64  `db:"created_at"`
}

func toRow(r *Record) row {
	return row{
		ID:               r.ID,
		RequestID:        r.RequestID,
		Operation:        r.Operation,
		Area:             r.Area,
		Model:            r.Model,
		Status:           r.Status,
		LatencyMS:        r.LatencyMS,
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
		CreatedAt:        r.CreatedAt.UnixMicro(),
	}
}

func (w row) record() *Record {
	return &Record{
		ID:               w.ID,
		RequestID:        w.RequestID,
		Operation:        w.Operation,
		Area:             w.Area,
		Model:            w.Model,
		Status:           w.Status,
		LatencyMS:        w.LatencyMS,
		PromptTokens:     w.PromptTokens,
		CompletionTokens: w.CompletionTokens,
		CreatedAt:        time.UnixMicro(w.CreatedAt).UTC(),
	}
}
