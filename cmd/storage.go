package cmd

import (
	"context"
	"fmt"

	"gacha/config"
	"gacha/database"
	"gacha/events"
	"gacha/repository"
	"gacha/repository/sqlite"
	"gacha/service"

	log "github.com/sirupsen/logrus"
)

// openStorage migrates and connects the configured backend. The returned
// close function releases the connection pool.
func openStorage(ctx context.Context, cfg *config.Config, eventBus *events.Bus) (service.UnitOfWorkFactory, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		databaseURL := database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName)

		log.Info("Running PostgreSQL migrations...")
		if err := database.RunMigrationsWithURL(databaseURL); err != nil {
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		db, err := database.NewConnection(ctx, databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("PostgreSQL connection established")
		return repository.NewUnitOfWorkFactory(db, eventBus), db.Close, nil

	case config.DriverSQLite:
		log.WithField("path", cfg.SQLitePath).Info("Running SQLite migrations...")
		if err := database.RunSQLiteMigrations(cfg.SQLitePath); err != nil {
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		log.Info("SQLite database opened")
		return sqlite.NewUnitOfWorkFactory(db, eventBus), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// migrationTarget describes the configured backend for the migrate subcommands
func migrationTarget(cfg *config.Config) database.MigrationTarget {
	return database.MigrationTarget{
		Driver:      cfg.StorageDriver,
		DatabaseURL: database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName),
		SQLitePath:  cfg.SQLitePath,
	}
}
