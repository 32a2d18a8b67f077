package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"urbanvision-ao/urbanvision/pkg/cli"
	"urbanvision-ao/urbanvision/pkg/config"
	"urbanvision-ao/urbanvision/pkg/gateway"
	"urbanvision-ao/urbanvision/pkg/journal"
	"urbanvision-ao/urbanvision/pkg/providerfactory"
	"urbanvision-ao/urbanvision/pkg/server"
	"urbanvision-ao/urbanvision/pkg/telemetry/health"
	"urbanvision-ao/urbanvision/pkg/telemetry/logging"
	"urbanvision-ao/urbanvision/pkg/telemetry/metrics"
	"urbanvision-ao/urbanvision/pkg/telemetry/tracing"
)

// readinessTimeout bounds each readiness check.
const readinessTimeout = 2 * time.Second

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	noWatch       bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Urban Vision API server",
	Long: `Start the Urban Vision API server with the specified configuration.

The server answers the /api endpoints, serves the static frontend and, when
enabled, journals every generation call and exposes Prometheus metrics.
Changes to the log level in the config file are applied without a restart.

Examples:
  # Start with default config (config.yaml, or defaults if absent)
  urbanvision run

  # Start with custom config
  urbanvision run --config /etc/urbanvision/config.yaml

  # Override listen address
  urbanvision run --listen 0.0.0.0:8080

  # Validate config without starting server
  urbanvision run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
	runCmd.Flags().BoolVar(&runFlags.noWatch, "no-watch", false, "do not reload the config file on change")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	ctx, stop := cli.NotifyContext(cmd.Context())
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.Logger)
	return logger, nil
}

// serve wires the components described by cfg and blocks until ctx is
// cancelled or one of them fails.
func serve(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	slog.Info("starting Urban Vision",
		"version", Version,
		"commit", GitCommit,
		"config", configPath(),
	)

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	provider, err := providerfactory.FromConfig(ctx, cfg.Provider)
	if err != nil {
		return fmt.Errorf("failed to initialize provider: %w", err)
	}

	checker := health.New(readinessTimeout)
	gatewayOpts := []gateway.Option{
		gateway.WithMetrics(collector),
		gateway.WithTracer(tracer),
		gateway.WithLogger(logger.Logger),
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Journal.Enabled {
		store, err := journal.Open(&cfg.Journal)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer store.Close()

		recorder := journal.NewRecorder(store, cfg.Journal.BufferSize, collector)
		// Closed before the store; deferred calls run in reverse order.
		defer recorder.Close()
		gatewayOpts = append(gatewayOpts, gateway.WithRecorder(recorder))
		checker.Register("journal", store.Ping)

		if cfg.Journal.PruneSchedule != "" {
			pruner := journal.NewPruner(store, cfg.Journal.RetentionDays, cfg.Journal.MaxRecords, collector)
			scheduler, err := journal.NewScheduler(pruner, cfg.Journal.PruneSchedule)
			if err != nil {
				return err
			}
			g.Go(func() error { return scheduler.Run(gctx) })
		}

		slog.Info("journal enabled",
			"backend", cfg.Journal.Backend,
			"path", cfg.Journal.Path,
			"prune_schedule", cfg.Journal.PruneSchedule,
		)
	}

	gw := gateway.New(cfg.Provider, provider, gatewayOpts...)
	defer gw.Close()
	checker.Register("provider", gw.HealthCheck)

	srv := server.NewServer(cfg, gw,
		server.WithMetrics(collector),
		server.WithTracer(tracer),
		server.WithHealthChecker(checker),
		server.WithVersion(Version, GitCommit, BuildDate),
	)
	g.Go(func() error { return srv.Start(gctx) })

	if !runFlags.noWatch {
		watcher := config.NewWatcher(configPath(), cfg, func(next *config.Config) {
			level := next.Telemetry.Logging.Level
			if verbose {
				level = "debug"
			}
			if err := logger.SetLevel(level); err != nil {
				slog.Warn("ignoring log level from reloaded config", "level", level, "error", err)
			}
		}, logger.Logger)
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil {
				// The server keeps running without live reload.
				slog.Warn("config watcher unavailable", "error", err)
			}
			return nil
		})
	}

	err = g.Wait()
	slog.Info("Urban Vision stopped")
	return err
}
