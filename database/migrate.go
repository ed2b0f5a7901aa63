package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Storage driver names understood by the migration helpers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MigrationTarget selects the database the migration commands operate on
type MigrationTarget struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
}

// MigrateUp runs all pending migrations
func MigrateUp(target MigrationTarget) error {
	m, err := target.open()
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No new migrations to apply")
	} else {
		version, _, _ := m.Version()
		log.WithField("version", version).Info("Successfully migrated")
	}

	return nil
}

// MigrateDown rolls back the specified number of migrations
func MigrateDown(target MigrationTarget, stepsStr string) error {
	steps, err := strconv.Atoi(stepsStr)
	if err != nil {
		return fmt.Errorf("invalid steps value: %w", err)
	}
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, err := target.open()
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Steps(-steps)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No migrations to rollback")
	} else {
		version, _, _ := m.Version()
		log.WithField("version", version).Info("Successfully rolled back")
	}

	return nil
}

// MigrateStatus logs the current migration version
func MigrateStatus(target MigrationTarget) error {
	m, err := target.open()
	if err != nil {
		return err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("No migrations have been applied yet")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	status := "clean"
	if dirty {
		status = "dirty"
	}

	log.WithFields(log.Fields{
		"driver":  target.Driver,
		"version": version,
		"status":  status,
	}).Info("Current migration version")
	return nil
}

// RunMigrationsWithURL applies all pending Postgres migrations.
// Used at startup and by tests whose URL is generated at runtime.
func RunMigrationsWithURL(databaseURL string) error {
	return MigrateUp(MigrationTarget{Driver: DriverPostgres, DatabaseURL: databaseURL})
}

// RunSQLiteMigrations applies all pending SQLite migrations to the file at path
func RunSQLiteMigrations(path string) error {
	return MigrateUp(MigrationTarget{Driver: DriverSQLite, SQLitePath: path})
}

func (t MigrationTarget) open() (*migrate.Migrate, error) {
	var (
		m   *migrate.Migrate
		err error
	)
	switch t.Driver {
	case DriverPostgres, "":
		m, err = newPostgresMigrate(t.DatabaseURL)
	case DriverSQLite:
		m, err = newSQLiteMigrate(t.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", t.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func newPostgresMigrate(databaseURL string) (*migrate.Migrate, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Closed by m.Close through the driver
	db := stdlib.OpenDB(*config.ConnConfig)

	driver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	return newMigrate(DriverPostgres, driver, "migrations/postgres")
}

func newSQLiteMigrate(path string) (*migrate.Migrate, error) {
	// The migrate driver owns and closes this handle, so it is never the
	// one the application queries through.
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	return newMigrate(DriverSQLite, driver, "migrations/sqlite")
}

func newMigrate(driverName string, driver migratedb.Driver, dir string) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, dir)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, driverName, driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}
