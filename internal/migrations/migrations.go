package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var MigrationFiles embed.FS

// State is the ledger schema version recorded in the database.
type State struct {
	Version uint
	Dirty   bool
	Applied bool // false when no migration has run yet
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func readState(m *migrate.Migrate) (State, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to get current migration version: %w", err)
	}
	return State{Version: version, Dirty: dirty, Applied: true}, nil
}

// CurrentState reports the schema version without changing anything.
func CurrentState(db *sql.DB) (State, error) {
	m, err := newMigrator(db)
	if err != nil {
		return State{}, err
	}
	return readState(m)
}

// RunMigrations brings the ledger schema up to date. A dirty version left by
// an interrupted run is forced clean first. With autoMigrate false it only
// reports the current version.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	state, err := readState(m)
	if err != nil {
		return err
	}

	if state.Dirty {
		slog.Warn("Ledger schema is dirty - a migration was interrupted",
			"version", state.Version,
			"action", "forcing recorded version",
		)
		// Single baseline migration: forcing the recorded version is safe.
		if err := m.Force(int(state.Version)); err != nil {
			return fmt.Errorf("failed to recover dirty migration state at version %d: %w", state.Version, err)
		}
	}

	if !autoMigrate {
		slog.Info("Auto-migration disabled, skipping migrations",
			"current_version", state.Version,
			"applied", state.Applied,
		)
		return nil
	}

	slog.Info("Running ledger migrations", "current_version", state.Version)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("Ledger schema is up to date", "version", state.Version)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	next, err := readState(m)
	if err != nil {
		return err
	}

	slog.Info("Ledger migrations completed",
		"from_version", state.Version,
		"to_version", next.Version,
	)
	return nil
}
