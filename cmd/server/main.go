// Package main implements the entry point for the LingoFlow API server,
// which manages users' vocabulary learning with spaced repetition reviews
// and LLM-assisted example sentences.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/lingoflow/lingoflow-api/internal/config"
	"github.com/lingoflow/lingoflow-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run database migrations (up|down|status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	ctx := context.Background()

	if *migrateCmd != "" {
		if err := runMigrationCommand(ctx, cfg, appLogger, *migrateCmd); err != nil {
			appLogger.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run initializes the application, applies pending migrations, and serves
// until shutdown.
func run(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) error {
	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrateUp(ctx, db, appLogger); err != nil {
		closeQuietly(db, appLogger)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		closeQuietly(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
