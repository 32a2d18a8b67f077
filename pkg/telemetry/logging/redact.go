package logging

import (
	"log/slog"
	"regexp"
)

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	regex       *regexp.Regexp
	replacement string
}

var credentialPatterns = []redactPattern{
	// Groq API keys
	{regexp.MustCompile(`gsk_[A-Za-z0-9]{8,}`), "gsk_***"},
	// Google API keys
	{regexp.MustCompile(`AIza[0-9A-Za-z\-_]{20,}`), "AIza***"},
	// Bearer tokens
	{regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-._~+/]+=*`), "Bearer ***"},
}

// Redact replaces credentials found in s.
func Redact(s string) string {
	for _, p := range credentialPatterns {
		s = p.regex.ReplaceAllString(s, p.replacement)
	}
	return s
}

// redactAttr is a slog ReplaceAttr hook. Error values are rendered to
// strings so that credentials echoed in upstream error bodies are caught.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(Redact(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && err != nil {
			a.Value = slog.StringValue(Redact(err.Error()))
		}
	}
	return a
}
