// Package persistence stores the console command history in SQLite.
package persistence

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/vboxhost/server-manager/internal/persistence/sqlc"
)

const (
	driverName  = "sqlite"
	busyTimeout = 5 * time.Second
)

// DB provides the database interface.
type DB struct {
	sqlDB *sql.DB

	// nowFunc returns the current time, for the `created_at` columns.
	nowFunc func() time.Time
}

// OpenDB opens the SQLite database, and migrates it to the latest schema.
func OpenDB(ctx context.Context, dsn string) (*DB, error) {
	log.Info().Str("dsn", dsn).Msg("opening database")

	db, err := openDB(ctx, dsn)
	if err != nil {
		return nil, err
	}

	// Close the database connection if there was some error. This prevents
	// leaking database connections & should remove any write-ahead-log files.
	closeConnOnReturn := true
	defer func() {
		if !closeConnOnReturn {
			return
		}
		if err := db.Close(); err != nil {
			log.Debug().AnErr("cause", err).Msg("cannot close database connection")
		}
	}()

	// Perfom some maintenance at startup, before trying to migrate the database.
	if !db.performIntegrityCheck(ctx) {
		return nil, ErrIntegrity
	}
	db.vacuum(ctx)

	if _, err := db.migrate(ctx); err != nil {
		return nil, err
	}

	closeConnOnReturn = false
	return db, nil
}

func openDB(ctx context.Context, dsn string) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dsn, err)
	}

	// Only allow a single database connection, to avoid SQLITE_BUSY errors.
	// This also keeps in-memory databases alive, as those only exist for as
	// long as their connection does.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	db := DB{
		sqlDB:   sqlDB,
		nowFunc: nowFunc,
	}

	closeConnOnReturn := true
	defer func() {
		if closeConnOnReturn {
			_ = sqlDB.Close()
		}
	}()

	if err := db.setBusyTimeout(ctx, busyTimeout); err != nil {
		return nil, err
	}

	queries := db.queries()

	// Always enable foreign key checks, to make SQLite behave like a real database.
	if err := db.pragmaForeignKeys(ctx, true); err != nil {
		return nil, err
	}

	// Write-ahead-log journal may improve writing speed.
	log.Trace().Msg("enabling SQLite write-ahead-log journal mode")
	if err := queries.PragmaJournalModeWAL(ctx); err != nil {
		return nil, fmt.Errorf("enabling SQLite write-ahead-log journal mode: %w", err)
	}
	// Switching from 'full' (default) to 'normal' sync may improve writing speed.
	log.Trace().Msg("enabling SQLite 'normal' synchronisation")
	if err := queries.PragmaSynchronousNormal(ctx); err != nil {
		return nil, fmt.Errorf("enabling SQLite 'normal' sync mode: %w", err)
	}

	closeConnOnReturn = false
	return &db, nil
}

// nowFunc returns 'now' in UTC, so that all timestamps are stored in UTC.
func nowFunc() time.Time {
	return time.Now().UTC()
}

// vacuum executes the SQL "VACUUM" command, and logs any errors.
func (db *DB) vacuum(ctx context.Context) {
	if err := db.queries().Vacuum(ctx); err != nil {
		log.Error().Err(err).Msg("error vacuuming database")
	}
}

// Close closes the connection to the database.
func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// queries returns the SQLC Queries struct, connected to this database.
func (db *DB) queries() *sqlc.Queries {
	loggingWrapper := LoggingDBConn{db.sqlDB}
	return sqlc.New(&loggingWrapper)
}

func (db *DB) pragmaForeignKeys(ctx context.Context, enabled bool) error {
	noun := "disabl"
	if enabled {
		noun = "enabl"
	}
	log.Trace().Msgf("%sing SQLite foreign key checks", noun)

	if err := db.queries().PragmaForeignKeysSet(ctx, enabled); err != nil {
		return fmt.Errorf("%sing foreign keys: %w", noun, err)
	}
	fkEnabled, err := db.areForeignKeysEnabled(ctx)
	if err != nil {
		return err
	}
	if fkEnabled != enabled {
		return fmt.Errorf("SQLite database does not want to %se foreign keys, this may cause data loss", noun)
	}

	return nil
}

func (db *DB) areForeignKeysEnabled(ctx context.Context) (bool, error) {
	log.Trace().Msg("checking whether SQLite foreign key checks are enabled")

	fkEnabled, err := db.queries().PragmaForeignKeysGet(ctx)
	if err != nil {
		return false, fmt.Errorf("checking whether the database has foreign key checks are enabled: %w", err)
	}
	return fkEnabled, nil
}
