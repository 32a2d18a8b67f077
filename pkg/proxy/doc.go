// Package proxy holds the HTTP plumbing shared by the API handlers.
//
// The subpackages split the HTTP surface the usual way:
//
//   - types: request decoding with defaults and clamping, response bodies
//   - handlers: the /api endpoints and the static file server
//   - middleware: recovery, logging, metrics, request IDs, CORS, timeouts
//
// This package itself only reads request bodies and writes JSON responses,
// so every endpoint encodes its output the same way: UTF-8 JSON with
// non-ASCII text left unescaped.
package proxy
