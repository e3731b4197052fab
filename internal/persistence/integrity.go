package persistence

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	integrityCheckTimeout = 10 * time.Second

	// How often the database write-ahead log is checkpointed.
	walCheckpointPeriod = 15 * time.Minute
)

// performIntegrityCheck uses a few 'pragma' SQL statements to do some integrity checking.
// Returns true on OK, false if there was an issue. Issues are always logged.
func (db *DB) performIntegrityCheck(ctx context.Context) (ok bool) {
	checkCtx, cancel := context.WithTimeout(ctx, integrityCheckTimeout)
	defer cancel()

	log.Debug().Msg("database: performing integrity check")

	issues, err := db.queries().PragmaIntegrityCheck(checkCtx)
	if err != nil {
		log.Error().Err(err).Msg("database: error checking integrity")
		return false
	}

	switch len(issues) {
	case 0:
		log.Warn().Msg("database: integrity check returned nothing, expected explicit 'ok'; treating as an implicit 'ok'")
		return true
	case 1:
		if issues[0].Description == "ok" {
			log.Debug().Msg("database: integrity check ok")
			return true
		}
	}

	log.Error().Int("num_issues", len(issues)).Msg("database: integrity check failed")
	for _, issue := range issues {
		log.Error().
			Str("description", issue.Description).
			Msg("database: integrity check failure")
	}

	return false
}

// PeriodicWALCheckpoint moves the write-ahead log into the database file,
// at startup and then every 15 minutes, until the context is done.
func (db *DB) PeriodicWALCheckpoint(ctx context.Context) {
	if err := db.walCheckpoint(ctx); err != nil {
		log.Error().AnErr("cause", err).Msg("database: could not checkpoint the write-ahead log at startup")
		// Still keep going, to enable the periodic checkpointing.
	}

	log.Debug().
		Stringer("period", walCheckpointPeriod).
		Msg("database: will perform periodic checkpoint")
	defer log.Debug().Msg("database: stopped periodic checkpoint")

	ticker := time.NewTicker(walCheckpointPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			err := db.walCheckpoint(ctx)

			switch {
			case err == nil:
			case errors.Is(err, context.Canceled) && ctx.Err() != nil:
				// Shutting down during a checkpoint is fine; the next loop
				// iteration handles the closed context.
				log.Debug().Msg("database: application is shutting down during a checkpoint operation")
			default:
				log.Error().AnErr("cause", err).Msg("database: could not checkpoint the write-ahead log")
			}
		}
	}
}

// walCheckpoint performs a checkpoint of the write-ahead log (WAL).
// See https://sqlite.org/wal.html and https://sqlite.org/pragma.html#pragma_wal_checkpoint
func (db *DB) walCheckpoint(ctx context.Context) error {
	result, err := db.queries().WALCheckpointTruncate(ctx)
	if err != nil {
		return fmt.Errorf("checkpointing write-ahead log: %w", err)
	}

	// The log level is determined by what happened.
	var logLevel zerolog.Level
	switch {
	case result.Busy > 0:
		logLevel = zerolog.WarnLevel
	default:
		logLevel = zerolog.DebugLevel
	}

	log.WithLevel(logLevel).
		Bool("busy", result.Busy > 0).
		Int64("pagesInWAL", result.Log).
		Int64("checkpointedPages", result.Checkpointed).
		Msg("database: checkpoint complete")

	return nil
}
