// Package handlers implements the HTTP endpoints.
//
// Generation endpoints (all POST, JSON in and out):
//   - ChatHandler: /api/chat, free conversation with optional history
//   - AreaHandler: /api/analyze, /api/predict and /api/recommend
//
// Each handler reads the body leniently, decodes it with types.Decoder and
// hands the composed prompt to the gateway. The gateway's Result decides the
// status code and the single-field response body.
//
// Other endpoints:
//   - HealthHandler: GET /api/health, static status and whether a backend
//     credential is configured
//   - StaticHandler: GET / and any other path, files from the static dir
//
// Readiness and version endpoints come from pkg/telemetry/health.
package handlers
