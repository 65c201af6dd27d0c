package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/telecom-billing/internal/config"
	"github.com/phrazzld/telecom-billing/internal/console"
	"github.com/phrazzld/telecom-billing/internal/platform/metrics"
	"github.com/phrazzld/telecom-billing/internal/platform/postgres"
	"github.com/phrazzld/telecom-billing/internal/seed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// shutdownTimeout bounds the graceful stop of the metrics server.
const shutdownTimeout = 5 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	registry      *prometheus.Registry
	metricsServer *metrics.Server

	stores  console.Stores
	console *console.Console
}

// newApplication creates the stores, wraps them with metrics and builds the
// console on top. The database must already be connected and migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, in io.Reader, out io.Writer) *application {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "telecom"),
	)
	m := metrics.New(app.registry)

	app.stores = console.Stores{
		Subscribers: metrics.NewSubscriberStore(postgres.NewPostgresSubscriberStore(db, logger), m),
		Services:    metrics.NewServiceStore(postgres.NewPostgresServiceStore(db, logger), m),
		Invoices:    metrics.NewInvoiceStore(postgres.NewPostgresInvoiceStore(db, logger), m),
	}

	seeder := seed.New(app.stores.Subscribers, app.stores.Services, app.stores.Invoices, logger)
	app.console = console.New(app.stores, seeder, in, out, logger)

	if cfg.Metrics.Enabled {
		app.metricsServer = metrics.NewServer(cfg.Metrics.Addr, app.registry, db.PingContext, logger)
	}

	logger.Info("application initialized successfully")
	return app
}

// Run starts the optional metrics server and runs the console until it exits
// or ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if app.metricsServer != nil {
		go func() {
			if err := app.metricsServer.Start(); err != nil {
				app.logger.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
	}

	done := make(chan error, 1)
	go func() {
		done <- app.console.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// The console may be blocked reading input; it is abandoned here.
		app.logger.Info("shutdown signal received")
		return nil
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.metricsServer.Shutdown(ctx); err != nil {
			app.logger.Error("error stopping metrics server", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
