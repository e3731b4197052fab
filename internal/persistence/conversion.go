package persistence

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"database/sql"
	"time"

	"github.com/vboxhost/server-manager/internal/persistence/sqlc"
)

func ptr[T any](value T) *T {
	return &value
}

func nullInt64FromPtr(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func ptrFromNullInt64(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	return ptr(int(value.Int64))
}

func convertCommandResult(row sqlc.CommandResult) CommandResult {
	return CommandResult{
		ID:         row.ID,
		UUID:       row.UUID,
		Command:    row.Command,
		ReturnCode: ptrFromNullInt64(row.ReturnCode),
		Stdout:     row.Stdout,
		Stderr:     row.Stderr,
		TimedOut:   row.TimedOut,
		StartedAt:  row.StartedAt.UTC(),
		Duration:   time.Duration(row.DurationMs) * time.Millisecond,
		CreatedAt:  row.CreatedAt.UTC(),
	}
}
