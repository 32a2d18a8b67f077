// Package input turns untrusted request values into bounded, well-typed
// values. Nothing in this package rejects malformed input except the strict
// area check: text is cleaned, numbers fall back to defaults and history is
// filtered.
package input

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxMessageLength caps free text such as chat messages and history turns.
	MaxMessageLength = 2000

	// MaxAreaLength caps area names.
	MaxAreaLength = 50
)

var stripper = strings.NewReplacer("<", "", ">", "", "{", "", "}", "")

// Sanitize returns v as a trimmed string of at most max characters with the
// characters < > { } removed. Values that are not strings yield "".
func Sanitize(v any, max int) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = truncate(strings.TrimSpace(s), max)
	return stripper.Replace(s)
}

// Text sanitizes v with the message length cap.
func Text(v any) string {
	return Sanitize(v, MaxMessageLength)
}

// truncate cuts s to at most max runes.
func truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
