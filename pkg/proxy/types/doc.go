// Package types defines the request and response bodies of the HTTP API.
//
// Request bodies are decoded leniently: a missing, malformed or non-object
// body behaves like an empty object, and every field falls back to its
// default or is clamped into range. The Decode functions are the only place
// raw client values are interpreted, so handlers and the gateway only ever
// see validated values.
//
//	body := types.ParseBody(data)
//	req, err := types.Decoder{}.Analyze(body)
//
// Response bodies carry a single field. Successful generations use the
// operation's field name ("response", "analysis", "prediction",
// "recommendation") and failures use ErrorResponse.
package types
