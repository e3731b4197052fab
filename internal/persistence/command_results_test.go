package persistence

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 1 * time.Second

func testResult(uuid, command string, returnCode *int) CommandResult {
	return CommandResult{
		UUID:       uuid,
		Command:    command,
		ReturnCode: returnCode,
		Stdout:     "stdout of " + command,
		Stderr:     "stderr of " + command,
		StartedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:   1500 * time.Millisecond,
	}
}

func TestSaveAndFetchCommandResult(t *testing.T) {
	ctx, cancel, db := persistenceTestFixtures(testTimeout)
	defer cancel()

	result := testResult("3f3b5a0e-6f2c-4b0b-8f5e-7a4b6d2e9c11", "uptime", ptr(0))
	require.NoError(t, db.SaveCommandResult(ctx, &result))
	assert.NotZero(t, result.ID)
	assert.False(t, result.CreatedAt.IsZero())

	fetched, err := db.FetchCommandResult(ctx, result.UUID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, fetched.ID)
	assert.Equal(t, "uptime", fetched.Command)
	require.NotNil(t, fetched.ReturnCode)
	assert.Equal(t, 0, *fetched.ReturnCode)
	assert.Equal(t, "stdout of uptime", fetched.Stdout)
	assert.Equal(t, "stderr of uptime", fetched.Stderr)
	assert.False(t, fetched.TimedOut)
	assert.WithinDuration(t, result.StartedAt, fetched.StartedAt, time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, fetched.Duration)
}

func TestSaveTimedOutCommandResult(t *testing.T) {
	ctx, cancel, db := persistenceTestFixtures(testTimeout)
	defer cancel()

	result := testResult("8c7a4f7e-2f0d-4c52-9d8e-2f1b0b7a6c33", "sleep 7200", nil)
	result.TimedOut = true
	require.NoError(t, db.SaveCommandResult(ctx, &result))

	fetched, err := db.FetchCommandResult(ctx, result.UUID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ReturnCode)
	assert.True(t, fetched.TimedOut)
}

func TestFetchCommandResultNotFound(t *testing.T) {
	ctx, cancel, db := persistenceTestFixtures(testTimeout)
	defer cancel()

	_, err := db.FetchCommandResult(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrCommandResultNotFound)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSaveDuplicateUUID(t *testing.T) {
	ctx, cancel, db := persistenceTestFixtures(testTimeout)
	defer cancel()

	result := testResult("3f3b5a0e-6f2c-4b0b-8f5e-7a4b6d2e9c11", "uptime", ptr(0))
	require.NoError(t, db.SaveCommandResult(ctx, &result))

	duplicate := result
	assert.Error(t, db.SaveCommandResult(ctx, &duplicate))
}

func TestFetchCommandResultsNewestFirst(t *testing.T) {
	ctx, cancel, db := persistenceTestFixtures(testTimeout)
	defer cancel()

	for i := range 5 {
		result := testResult(fmt.Sprintf("uuid-%d", i), fmt.Sprintf("echo %d", i), ptr(i))
		require.NoError(t, db.SaveCommandResult(ctx, &result))
	}

	all, err := db.FetchCommandResults(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, result := range all {
		assert.Equal(t, fmt.Sprintf("echo %d", 4-i), result.Command)
	}

	limited, err := db.FetchCommandResults(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "echo 4", limited[0].Command)
	assert.Equal(t, "echo 3", limited[1].Command)

	count, err := db.CountCommandResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestClearCommandResults(t *testing.T) {
	ctx, cancel, db := persistenceTestFixtures(testTimeout)
	defer cancel()

	result := testResult("3f3b5a0e-6f2c-4b0b-8f5e-7a4b6d2e9c11", "uptime", ptr(0))
	require.NoError(t, db.SaveCommandResult(ctx, &result))

	require.NoError(t, db.ClearCommandResults(ctx))

	count, err := db.CountCommandResults(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	all, err := db.FetchCommandResults(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Clearing an empty history is fine.
	require.NoError(t, db.ClearCommandResults(ctx))
}
