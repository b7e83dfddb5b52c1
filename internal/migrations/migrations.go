package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// MigrationFiles holds the referral, player metric and commission config schema.
//
//go:embed *.sql
var MigrationFiles embed.FS

// migrator is the part of *migrate.Migrate that apply drives.
type migrator interface {
	Version() (uint, bool, error)
	Force(version int) error
	Up() error
}

// RunMigrations brings the tierline schema up to date. A dirty version left by an
// interrupted run is reset first. With autoMigrate off the schema state is only logged.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	return apply(m, autoMigrate)
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	files, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("init postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", files, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}

func apply(m migrator, autoMigrate bool) error {
	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}

	if dirty {
		if err := resetDirty(m, current); err != nil {
			return err
		}
	}

	if !autoMigrate {
		slog.Info("[Migrations] auto_migrate is off, schema left as is",
			"version", current,
			"was_dirty", dirty)
		return nil
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("[Migrations] Schema already current", "version", current)
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	applied, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version after upgrade: %w", err)
	}
	slog.Info("[Migrations] Schema upgraded", "from", current, "to", applied)
	return nil
}

// resetDirty marks the version before the interrupted one as applied, so the next Up
// re-runs it. Every statement in the schema files is IF [NOT] EXISTS.
func resetDirty(m migrator, dirtyVersion uint) error {
	target := int(dirtyVersion) - 1
	if target < 1 {
		target = database.NilVersion
	}
	if err := m.Force(target); err != nil {
		return fmt.Errorf("reset dirty schema version %d: %w", dirtyVersion, err)
	}
	slog.Warn("[Migrations] Reset dirty schema version",
		"dirty_version", dirtyVersion,
		"forced_version", target)
	return nil
}
