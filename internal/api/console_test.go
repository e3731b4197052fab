package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/vboxhost/server-manager/internal/console"
)

var testStartedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](value T) *T {
	return &value
}

func TestRunCommand(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	result := console.CommandResult{
		ID:         "c1d2e3f4-0000-4000-8000-000000000001",
		Command:    "uptime",
		ReturnCode: ptr(0),
		Stdout:     " 12:00:00 up 3 days\n",
		StartedAt:  testStartedAt,
		Duration:   1500 * time.Millisecond,
	}
	ms.console.EXPECT().Execute(gomock.Any(), "uptime", 5*time.Second).Return(result, nil)

	echoCtx := ms.prepareMockedJSONRequest(RunCommandRequest{
		Command:        "uptime",
		TimeoutSeconds: ptr(5.0),
	})
	require.NoError(t, ms.server.RunCommand(echoCtx))
	assertResponseJSON(t, echoCtx, http.StatusOK, CommandResult{
		ID:              result.ID,
		Command:         "uptime",
		ReturnCode:      ptr(0),
		Stdout:          " 12:00:00 up 3 days\n",
		StartedAt:       testStartedAt,
		DurationSeconds: 1.5,
	})
}

func TestRunCommandDefaultTimeout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	result := console.CommandResult{ID: "id", Command: "sleep 7200", TimedOut: true, StartedAt: testStartedAt}
	ms.console.EXPECT().Execute(gomock.Any(), "sleep 7200", testDefaultTimeout).Return(result, nil)

	echoCtx := ms.prepareMockedJSONRequest(RunCommandRequest{Command: "sleep 7200"})
	require.NoError(t, ms.server.RunCommand(echoCtx))
	assertResponseJSON(t, echoCtx, http.StatusOK, CommandResult{
		ID:        "id",
		Command:   "sleep 7200",
		TimedOut:  true,
		StartedAt: testStartedAt,
	})
}

func TestRunCommandNoTimeout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	ms.console.EXPECT().Execute(gomock.Any(), "make", time.Duration(0)).
		Return(console.CommandResult{ID: "id", Command: "make", ReturnCode: ptr(2)}, nil)

	echoCtx := ms.prepareMockedJSONRequest(RunCommandRequest{Command: "make", TimeoutSeconds: ptr(0.0)})
	require.NoError(t, ms.server.RunCommand(echoCtx))
	assertResponseJSON(t, echoCtx, http.StatusOK, CommandResult{ID: "id", Command: "make", ReturnCode: ptr(2)})
}

func TestRunCommandInvalid(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	{ // Negative timeout.
		echoCtx := ms.prepareMockedJSONRequest(RunCommandRequest{Command: "ls", TimeoutSeconds: ptr(-1.0)})
		require.NoError(t, ms.server.RunCommand(echoCtx))
		assertResponseAPIError(t, echoCtx, http.StatusBadRequest, "timeout_seconds must be a non-negative number")
	}

	{ // Empty command, rejected by the console.
		ms.console.EXPECT().Execute(gomock.Any(), "", testDefaultTimeout).
			Return(console.CommandResult{}, console.ErrEmptyCommand)
		echoCtx := ms.prepareMockedJSONRequest(RunCommandRequest{})
		require.NoError(t, ms.server.RunCommand(echoCtx))
		assertResponseAPIError(t, echoCtx, http.StatusBadRequest, "command is empty")
	}

	{ // Not JSON at all.
		echoCtx := ms.prepareMockedJSONRequest("just a string")
		require.NoError(t, ms.server.RunCommand(echoCtx))
		assertResponseAPIError(t, echoCtx, http.StatusBadRequest, "invalid format")
	}
}

func TestRunCommandStartFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	ms.console.EXPECT().Execute(gomock.Any(), "ls", testDefaultTimeout).
		Return(console.CommandResult{}, errors.New("starting /bin/sh: no such file or directory"))

	echoCtx := ms.prepareMockedJSONRequest(RunCommandRequest{Command: "ls"})
	require.NoError(t, ms.server.RunCommand(echoCtx))
	assertResponseAPIError(t, echoCtx, http.StatusInternalServerError,
		"error running command: starting /bin/sh: no such file or directory")
}

func TestFetchCommandHistory(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	results := []console.CommandResult{
		{ID: "id-2", Command: "df -h", ReturnCode: ptr(0), StartedAt: testStartedAt.Add(time.Minute)},
		{ID: "id-1", Command: "false", ReturnCode: ptr(1), StartedAt: testStartedAt},
	}

	{ // Default limit.
		ms.console.EXPECT().History(gomock.Any(), testHistoryLimit).Return(results, nil)
		echoCtx := ms.prepareMockedRequest(nil)
		require.NoError(t, ms.server.FetchCommandHistory(echoCtx))
		assertResponseJSON(t, echoCtx, http.StatusOK, CommandHistory{Commands: []CommandResult{
			{ID: "id-2", Command: "df -h", ReturnCode: ptr(0), StartedAt: testStartedAt.Add(time.Minute)},
			{ID: "id-1", Command: "false", ReturnCode: ptr(1), StartedAt: testStartedAt},
		}})
	}

	{ // Explicit limit.
		ms.console.EXPECT().History(gomock.Any(), 1).Return(results[:1], nil)
		echoCtx := ms.prepareMockedRequest(nil)
		echoCtx.QueryParams().Set("limit", "1")
		require.NoError(t, ms.server.FetchCommandHistory(echoCtx))
		assertResponseJSON(t, echoCtx, http.StatusOK, CommandHistory{Commands: []CommandResult{
			{ID: "id-2", Command: "df -h", ReturnCode: ptr(0), StartedAt: testStartedAt.Add(time.Minute)},
		}})
	}

	{ // Zero means the default limit.
		ms.console.EXPECT().History(gomock.Any(), testHistoryLimit).Return(results, nil)
		echoCtx := ms.prepareMockedRequest(nil)
		echoCtx.QueryParams().Set("limit", "0")
		require.NoError(t, ms.server.FetchCommandHistory(echoCtx))
		assertResponseJSON(t, echoCtx, http.StatusOK, CommandHistory{Commands: []CommandResult{
			{ID: "id-2", Command: "df -h", ReturnCode: ptr(0), StartedAt: testStartedAt.Add(time.Minute)},
			{ID: "id-1", Command: "false", ReturnCode: ptr(1), StartedAt: testStartedAt},
		}})
	}

	{ // Empty history.
		ms.console.EXPECT().History(gomock.Any(), testHistoryLimit).Return(nil, nil)
		echoCtx := ms.prepareMockedRequest(nil)
		require.NoError(t, ms.server.FetchCommandHistory(echoCtx))
		assertResponseJSON(t, echoCtx, http.StatusOK, CommandHistory{Commands: []CommandResult{}})
	}
}

func TestFetchCommandHistoryErrors(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	{ // Bad limit.
		echoCtx := ms.prepareMockedRequest(nil)
		echoCtx.QueryParams().Set("limit", "many")
		require.NoError(t, ms.server.FetchCommandHistory(echoCtx))
		assertResponseAPIError(t, echoCtx, http.StatusBadRequest, "limit must be a non-negative integer")
	}

	{ // Database error.
		ms.console.EXPECT().History(gomock.Any(), testHistoryLimit).Return(nil, errors.New("database is locked"))
		echoCtx := ms.prepareMockedRequest(nil)
		require.NoError(t, ms.server.FetchCommandHistory(echoCtx))
		assertResponseAPIError(t, echoCtx, http.StatusInternalServerError,
			"error fetching command history: database is locked")
	}
}

func TestClearCommandHistory(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	ms.console.EXPECT().Clear(gomock.Any())
	echoCtx := ms.prepareMockedRequest(nil)
	require.NoError(t, ms.server.ClearCommandHistory(echoCtx))
	assertResponseNoContent(t, echoCtx)

	ms.console.EXPECT().Clear(gomock.Any()).Return(errors.New("database is locked"))
	echoCtx = ms.prepareMockedRequest(nil)
	require.NoError(t, ms.server.ClearCommandHistory(echoCtx))
	assertResponseAPIError(t, echoCtx, http.StatusInternalServerError,
		"error clearing command history: database is locked")
}

func TestCommandHistoryDatabaseBusy(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")
	busyErr := errors.New("fetching console history: database is locked (5) (SQLITE_BUSY)")

	ms.console.EXPECT().History(gomock.Any(), testHistoryLimit).Return(nil, busyErr)
	echoCtx := ms.prepareMockedRequest(nil)
	require.NoError(t, ms.server.FetchCommandHistory(echoCtx))
	assertResponseAPIError(t, echoCtx, http.StatusServiceUnavailable, "database is busy, try again later")
	require.Equal(t, "5", getRecordedResponseRecorder(echoCtx).Header().Get("Retry-After"))

	ms.console.EXPECT().Clear(gomock.Any()).Return(busyErr)
	echoCtx = ms.prepareMockedRequest(nil)
	require.NoError(t, ms.server.ClearCommandHistory(echoCtx))
	assertResponseAPIError(t, echoCtx, http.StatusServiceUnavailable, "database is busy, try again later")
}

func TestFetchCommandResult(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	{ // Known result.
		ms.console.EXPECT().Result(gomock.Any(), "id-1").
			Return(console.CommandResult{ID: "id-1", Command: "false", ReturnCode: ptr(1), StartedAt: testStartedAt}, nil)
		echoCtx := ms.prepareMockedRequest(nil)
		echoCtx.SetParamNames("id")
		echoCtx.SetParamValues("id-1")
		require.NoError(t, ms.server.FetchCommandResult(echoCtx))
		assertResponseJSON(t, echoCtx, http.StatusOK,
			CommandResult{ID: "id-1", Command: "false", ReturnCode: ptr(1), StartedAt: testStartedAt})
	}

	{ // Unknown result.
		ms.console.EXPECT().Result(gomock.Any(), "nope").
			Return(console.CommandResult{}, fmt.Errorf("%w: nope", console.ErrResultNotFound))
		echoCtx := ms.prepareMockedRequest(nil)
		echoCtx.SetParamNames("id")
		echoCtx.SetParamValues("nope")
		require.NoError(t, ms.server.FetchCommandResult(echoCtx))
		assertResponseAPIError(t, echoCtx, http.StatusNotFound, "no such command result")
	}

	{ // Database error.
		ms.console.EXPECT().Result(gomock.Any(), "id-1").
			Return(console.CommandResult{}, errors.New("disk I/O error"))
		echoCtx := ms.prepareMockedRequest(nil)
		echoCtx.SetParamNames("id")
		echoCtx.SetParamValues("id-1")
		require.NoError(t, ms.server.FetchCommandResult(echoCtx))
		assertResponseAPIError(t, echoCtx, http.StatusInternalServerError,
			"error fetching command result: disk I/O error")
	}
}
