package sqlconfig

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationResult reports the schema version before and after a run.
type MigrationResult struct {
	PreMigrationVersion  uint
	PostMigrationVersion uint
}

// RunMigrations applies every pending migration embedded in the binary.
func RunMigrations(db *sql.DB) (*MigrationResult, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres.WithInstance: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithInstance: %w", err)
	}

	result := &MigrationResult{}
	result.PreMigrationVersion, _, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("m.Version.preMigrationVersion: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("m.Up: %w", err)
	}

	result.PostMigrationVersion, _, err = m.Version()
	if err != nil {
		return nil, fmt.Errorf("m.Version.postMigrationVersion: %w", err)
	}
	return result, nil
}
