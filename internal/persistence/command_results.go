package persistence

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vboxhost/server-manager/internal/persistence/sqlc"
)

// CommandResult is a command that was run on the host console.
type CommandResult struct {
	ID   int64
	UUID string

	Command string
	// ReturnCode is nil when the command did not finish, for example because
	// it timed out.
	ReturnCode *int
	Stdout     string
	Stderr     string
	TimedOut   bool

	StartedAt time.Time
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveCommandResult stores the result. Its ID and CreatedAt fields are updated.
func (db *DB) SaveCommandResult(ctx context.Context, result *CommandResult) error {
	params := sqlc.InsertCommandResultParams{
		UUID:       result.UUID,
		Command:    result.Command,
		ReturnCode: nullInt64FromPtr(result.ReturnCode),
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		TimedOut:   result.TimedOut,
		StartedAt:  result.StartedAt.UTC(),
		DurationMs: result.Duration.Milliseconds(),
		CreatedAt:  db.nowFunc(),
	}

	id, err := db.queries().InsertCommandResult(ctx, params)
	if err != nil {
		return commandResultError(err, "storing command result %s", result.UUID)
	}

	result.ID = id
	result.CreatedAt = params.CreatedAt
	return nil
}

// FetchCommandResult returns the result with the given UUID.
func (db *DB) FetchCommandResult(ctx context.Context, uuid string) (*CommandResult, error) {
	row, err := db.queries().FetchCommandResult(ctx, uuid)
	if err != nil {
		return nil, commandResultError(err, "fetching command result %s", uuid)
	}
	result := convertCommandResult(row)
	return &result, nil
}

// FetchCommandResults returns at most `limit` results, newest first. A
// non-positive limit returns all results.
func (db *DB) FetchCommandResults(ctx context.Context, limit int) ([]CommandResult, error) {
	// SQLite treats a negative LIMIT as "no limit".
	sqlLimit := int64(limit)
	if limit <= 0 {
		sqlLimit = -1
	}

	rows, err := db.queries().FetchCommandResults(ctx, sqlLimit)
	if err != nil {
		return nil, commandResultError(err, "fetching command results")
	}

	results := make([]CommandResult, len(rows))
	for i, row := range rows {
		results[i] = convertCommandResult(row)
	}
	return results, nil
}

// CountCommandResults returns the number of stored results.
func (db *DB) CountCommandResults(ctx context.Context) (int, error) {
	count, err := db.queries().CountCommandResults(ctx)
	if err != nil {
		return 0, commandResultError(err, "counting command results")
	}
	return int(count), nil
}

// ClearCommandResults deletes all stored results.
func (db *DB) ClearCommandResults(ctx context.Context) error {
	numDeleted, err := db.queries().DeleteAllCommandResults(ctx)
	if err != nil {
		return commandResultError(err, "deleting command results")
	}
	log.Info().Int64("deleted", numDeleted).Msg("database: cleared console history")
	return nil
}
