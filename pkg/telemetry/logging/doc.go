// Package logging configures the process-wide structured logger.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON or text output selected by configuration
//   - A runtime-adjustable level backed by slog.LevelVar
//   - Automatic request_id attribution from the request context
//   - Redaction of provider credentials that leak into log values
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Logger)
//
//	// Later, on config reload:
//	_ = logger.SetLevel("debug")
//
// # Context
//
// Records logged with a context that carries a request ID (see
// WithRequestID) get a request_id attribute, so handlers and the gateway
// can call slog.InfoContext without passing the ID around.
//
// # Redaction
//
// Groq keys (gsk_...), Google API keys (AIza...) and bearer tokens are
// replaced in every string attribute before it is written.
package logging
