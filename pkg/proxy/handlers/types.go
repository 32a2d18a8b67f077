package handlers

import (
	"context"

	"urbanvision-ao/urbanvision/pkg/gateway"
	"urbanvision-ao/urbanvision/pkg/prompts"
)

// Generator is the slice of *gateway.Gateway used by the handlers.
type Generator interface {
	// Configured reports whether a completion backend is available.
	Configured() bool

	// Complete runs one generation call for op.
	Complete(ctx context.Context, op gateway.Operation, messages []prompts.Message, opts ...gateway.CallOption) gateway.Result

	// Reject records a request refused before any upstream call.
	Reject(ctx context.Context, op gateway.Operation, cause error, opts ...gateway.CallOption) gateway.Result
}
