package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/lingoflow/lingoflow-api/internal/config"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// setupGoose points goose at the embedded migration files.
func setupGoose() error {
	goose.SetBaseFS(embeddedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return nil
}

// migrateUp applies all pending migrations. Called on every server start so
// a deploy never runs against an outdated schema.
func migrateUp(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := setupGoose(); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("database migrations applied", "version", version)
	return nil
}

// runMigrationCommand executes an explicit migration command from the
// -migrate flag and exits without starting the server.
func runMigrationCommand(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	command string,
) error {
	db, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeQuietly(db, logger)

	if err := setupGoose(); err != nil {
		return err
	}

	switch command {
	case "up":
		return migrateUp(ctx, db, logger)
	case "down":
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		logger.Info("rolled back one migration")
		return nil
	case "status":
		if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to report migration status: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}
}
