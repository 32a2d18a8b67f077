// Package health provides the readiness and version endpoints.
//
// Liveness is served by the proxy handlers at /api/health and never touches
// a dependency. Readiness runs the registered component checks concurrently,
// each bounded by a timeout, and answers 503 when any of them fails:
//
//	checker := health.New(2 * time.Second)
//	checker.Register("journal", store.Ping)
//	mux.Handle("/api/ready", checker.ReadinessHandler())
package health
