// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// # Middleware Chain
//
// The server applies the middleware in this order, outermost first:
//
//	handler = Recovery(Logging(Metrics(RequestID(CORS(Timeout(mux))))))
//
//  1. Recovery: turn handler panics into a 500 JSON error
//  2. Logging: one structured log line per request
//  3. Metrics: HTTP request counter and duration histogram
//  4. RequestID: reuse or generate X-Request-ID and put it in the context
//  5. CORS: cross-origin headers and 204 preflight answers
//  6. Timeout: per-request deadline with a 504 JSON error
//
// Logging and Metrics sit outside RequestID so they also observe requests
// rejected by the inner layers; the request ID is read back from the
// response header.
//
// Every middleware has the func(http.Handler) http.Handler shape (or is one)
// so the chain composes without adapters.
package middleware
