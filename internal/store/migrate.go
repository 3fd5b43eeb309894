package store

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/matheus3301/chatlens/internal/store/migrations"
)

// SchemaVersion is the version of the last embedded migration.
const SchemaVersion uint = 2

// MigrateResult describes what happened during migration.
type MigrateResult struct {
	Version uint
	Changed bool
}

// Migrate brings the index schema to SchemaVersion. A database left dirty
// by an interrupted migration, or one newer than this binary knows, is an
// error; the index is rebuilt from the export rather than repaired.
//
// The migrate instance is deliberately not closed: closing it closes db.
func (db *DB) Migrate() (*MigrateResult, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("migration instance: %w", err)
	}

	changed := true
	if err := m.Up(); errors.Is(err, migrate.ErrNoChange) {
		changed = false
	} else if err != nil {
		return nil, fmt.Errorf("migration up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return nil, fmt.Errorf("migration version: %w", err)
	}
	if dirty {
		return nil, fmt.Errorf("index schema dirty at version %d", version)
	}
	if version != SchemaVersion {
		return nil, fmt.Errorf("index schema at version %d, want %d", version, SchemaVersion)
	}
	return &MigrateResult{Version: version, Changed: changed}, nil
}
