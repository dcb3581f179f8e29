package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/coopmed/coopmed/internal/database"
	"github.com/coopmed/coopmed/internal/database/migrations"
	"github.com/coopmed/coopmed/internal/setup/config"
	"github.com/coopmed/coopmed/internal/setup/logging"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	db, migrator, logger, err := setupMigrator()
	if err != nil {
		return fmt.Errorf("failed to setup migrator: %w", err)
	}
	defer db.Close()

	// locked wraps a migration action with the migrator's advisory lock so
	// concurrent invocations cannot interleave.
	locked := func(action func(context.Context) (*migrate.MigrationGroup, error), noop string) cli.ActionFunc {
		return func(ctx context.Context, _ *cli.Command) error {
			if err := migrator.Lock(ctx); err != nil {
				return err
			}
			defer migrator.Unlock(ctx) //nolint:errcheck

			group, err := action(ctx)
			if err != nil {
				return err
			}

			if group.IsZero() {
				logger.Info(noop)
				return nil
			}

			logger.Info("Migration group applied", zap.String("group", group.String()))

			return nil
		}
	}

	app := &cli.Command{
		Name:  "db",
		Usage: "Database management tool",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize migration tables",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return migrator.Init(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run pending migrations",
				Action: locked(func(ctx context.Context) (*migrate.MigrationGroup, error) {
					return migrator.Migrate(ctx)
				}, "No new migrations to run (database is up to date)"),
			},
			{
				Name:  "rollback",
				Usage: "Rollback the last migration group",
				Action: locked(func(ctx context.Context) (*migrate.MigrationGroup, error) {
					return migrator.Rollback(ctx)
				}, "No groups to roll back"),
			},
			{
				Name:  "status",
				Usage: "Show migration status",
				Action: func(ctx context.Context, _ *cli.Command) error {
					ms, err := migrator.MigrationsWithStatus(ctx)
					if err != nil {
						return err
					}

					logger.Info("Migration status",
						zap.String("migrations", ms.String()),
						zap.String("unapplied", ms.Unapplied().String()),
						zap.String("last_group", ms.LastGroup().String()),
					)
					return nil
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// setupMigrator initializes the database connection and migrator.
func setupMigrator() (database.Client, *migrate.Migrator, *zap.Logger, error) {
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, dbLogger, err := logging.NewLoggers(&cfg.Debug)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create loggers: %w", err)
	}

	db, err := database.NewConnection(context.Background(), &cfg.PostgreSQL, dbLogger, false)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrate.NewMigrator(db.DB(), migrations.Migrations)

	return db, migrator, logger, nil
}
