// Package server wires the handlers, middleware and telemetry endpoints into
// one http.Server and manages its lifecycle.
//
// # Routes
//
//	POST /api/chat        handlers.ChatHandler
//	POST /api/analyze     handlers.AreaHandler
//	POST /api/predict     handlers.AreaHandler
//	POST /api/recommend   handlers.AreaHandler
//	GET  /api/health      handlers.HealthHandler
//	GET  /api/ready       health.Checker (with WithHealthChecker)
//	GET  /api/version     build information
//	GET  /metrics         Prometheus exposition (with WithMetrics, path configurable)
//	GET  /                static files
//
// # Basic Usage
//
//	gw := gateway.New(cfg.Provider, provider, gateway.WithMetrics(collector))
//	srv := server.NewServer(cfg, gw, server.WithMetrics(collector))
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Start blocks until ctx is cancelled and then drains in-flight requests for
// up to server.shutdown_timeout. Signal handling is left to the caller.
package server
