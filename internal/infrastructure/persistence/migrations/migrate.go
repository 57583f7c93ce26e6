// Package migrations embeds the SQL schema migrations and applies them
// with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrator applies embedded schema migrations to a PostgreSQL database
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// NewMigrator builds a migrator bound to the given connection
func NewMigrator(db *sql.DB, databaseName string, logger *zap.Logger) (*Migrator, error) {
	source, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		DatabaseName: databaseName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{migrate: m, logger: logger.Named("migrations")}, nil
}

// Up applies all pending migrations
func (m *Migrator) Up() error {
	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Schema is up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := m.migrate.Version()
	if err != nil {
		return nil
	}
	m.logger.Info("Migrations applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back a single migration
func (m *Migrator) Down() error {
	if err := m.migrate.Steps(-1); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// Version returns the current schema version
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
