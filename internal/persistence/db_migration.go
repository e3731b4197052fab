package persistence

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"math"
	"strings"

	goose "github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Directory inside 'embedMigrations'.
const migrationsDir = "migrations"

// Migrate the database, returning true if anything happened, false otherwise.
func (db *DB) migrate(ctx context.Context) (bool, error) {
	// Set up Goose.
	gooseLogger := GooseLogger{}
	goose.SetLogger(&gooseLogger)
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return false, fmt.Errorf("telling Goose to use sqlite3: %w", err)
	}

	// See if migration is necessary to begin with. If not, we can skip on the
	// disabling & re-enabling of the foreign key constraints, keeping the DB safe.
	currentVersion, err := goose.EnsureDBVersionContext(ctx, db.sqlDB)
	if err != nil {
		return false, fmt.Errorf("setting up database for migrations: %w", err)
	}
	_, err = goose.CollectMigrations(migrationsDir, currentVersion, math.MaxInt64)
	switch {
	case errors.Is(err, goose.ErrNoMigrationFiles):
		log.Debug().Int64("version", currentVersion).Msg("database: at latest version, no migration necessary")
		return false, nil
	case err != nil:
		return false, fmt.Errorf("collecting database migrations: %w", err)
	}

	// Disable foreign key constraints during the migrations. SQLite needs this
	// for column renames and drops, as those recreate the table, and that
	// shouldn't trigger 'ON DELETE' actions.
	if err := db.pragmaForeignKeys(ctx, false); err != nil {
		return false, fmt.Errorf("disabling foreign key constraints before migrating the database: %w", err)
	}

	log.Debug().Int64("fromVersion", currentVersion).Msg("migrating database with Goose")
	migrateErr := goose.UpContext(ctx, db.sqlDB, migrationsDir)

	// Re-enable foreign key checks, also when the migration failed.
	if err := db.pragmaForeignKeys(ctx, true); err != nil {
		return false, fmt.Errorf("re-enabling foreign key constraints after migrating the database: %w", err)
	}
	if migrateErr != nil {
		return false, fmt.Errorf("migrating database to the latest version: %w", migrateErr)
	}

	log.Info().Msg("database: migrated to the latest version")
	return true, nil
}

// GooseLogger sends the log output of Goose to zerolog.
type GooseLogger struct{}

func (gl *GooseLogger) Fatalf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.Fatal().Msg(strings.TrimSpace(msg))
}

func (gl *GooseLogger) Printf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.Debug().Msg(strings.TrimSpace(msg))
}
