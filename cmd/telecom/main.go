// Package main implements the entry point of the telecom billing console:
// it loads configuration, connects to PostgreSQL, applies the schema
// migrations and runs the interactive menu on stdin/stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/telecom-billing/internal/config"
	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/phrazzld/telecom-billing/internal/platform/postgres"
	"github.com/phrazzld/telecom-billing/internal/redact"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, os.Stdin, os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "КРИТИЧЕСКАЯ ОШИБКА ЗАПУСКА: %s\n", redact.Error(err))
		stop()
		os.Exit(1)
	}
}

// run wires the application and blocks until the console exits.
// Logs go to logOut so they do not interleave with the menu on out.
func run(ctx context.Context, configPath string, in io.Reader, out, logOut io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: cfg.Log.Level, Output: logOut})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("application starting",
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("metrics_enabled", cfg.Metrics.Enabled))

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if err := postgres.Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return err
	}

	app := newApplication(cfg, log, db, in, out)
	defer app.cleanup()

	return app.Run(ctx)
}
