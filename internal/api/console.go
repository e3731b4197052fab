package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vboxhost/server-manager/internal/console"
	"github.com/vboxhost/server-manager/internal/persistence"
)

func (s *ServerManager) RunCommand(e echo.Context) error {
	logger := requestLogger(e)

	var request RunCommandRequest
	if err := e.Bind(&request); err != nil {
		logger.Warn().Err(err).Msg("api: bad request received")
		return sendAPIError(e, http.StatusBadRequest, "invalid format")
	}

	timeout := s.defaultTimeout
	if request.TimeoutSeconds != nil {
		seconds := *request.TimeoutSeconds
		if seconds < 0 || math.IsNaN(seconds) || seconds > math.MaxInt64/float64(time.Second) {
			return sendAPIError(e, http.StatusBadRequest, "timeout_seconds must be a non-negative number")
		}
		timeout = time.Duration(seconds * float64(time.Second))
	}

	result, err := s.console.Execute(e.Request().Context(), request.Command, timeout)
	switch {
	case errors.Is(err, console.ErrEmptyCommand), errors.Is(err, console.ErrInvalidTimeout):
		return sendAPIError(e, http.StatusBadRequest, "%v", err)
	case err != nil:
		logger.Warn().Err(err).Msg("api: error running command")
		return sendAPIError(e, http.StatusInternalServerError, "error running command: %v", err)
	}

	return e.JSON(http.StatusOK, commandResultToAPI(result))
}

func (s *ServerManager) FetchCommandHistory(e echo.Context) error {
	logger := requestLogger(e)

	limit := s.historyLimit
	if limitParam := e.QueryParam("limit"); limitParam != "" {
		var err error
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			return sendAPIError(e, http.StatusBadRequest, "limit must be a non-negative integer")
		}
		if limit == 0 {
			limit = s.historyLimit
		}
	}

	results, err := s.console.History(e.Request().Context(), limit)
	switch {
	case persistence.ErrIsDBBusy(err):
		logger.Warn().Err(err).Msg("api: database busy while fetching command history")
		return sendAPIErrorDBBusy(e, "database is busy, try again later")
	case err != nil:
		logger.Warn().Err(err).Msg("api: error fetching command history")
		return sendAPIError(e, http.StatusInternalServerError, "error fetching command history: %v", err)
	}

	history := CommandHistory{Commands: make([]CommandResult, len(results))}
	for i, result := range results {
		history.Commands[i] = commandResultToAPI(result)
	}
	return e.JSON(http.StatusOK, history)
}

func (s *ServerManager) FetchCommandResult(e echo.Context) error {
	resultID := e.Param("id")
	logger := requestLogger(e).With().Str("result", resultID).Logger()

	result, err := s.console.Result(e.Request().Context(), resultID)
	switch {
	case errors.Is(err, console.ErrResultNotFound):
		return sendAPIError(e, http.StatusNotFound, "no such command result")
	case persistence.ErrIsDBBusy(err):
		logger.Warn().Err(err).Msg("api: database busy while fetching command result")
		return sendAPIErrorDBBusy(e, "database is busy, try again later")
	case err != nil:
		logger.Warn().Err(err).Msg("api: error fetching command result")
		return sendAPIError(e, http.StatusInternalServerError, "error fetching command result: %v", err)
	}

	return e.JSON(http.StatusOK, commandResultToAPI(result))
}

func (s *ServerManager) ClearCommandHistory(e echo.Context) error {
	logger := requestLogger(e)

	err := s.console.Clear(e.Request().Context())
	switch {
	case persistence.ErrIsDBBusy(err):
		logger.Warn().Err(err).Msg("api: database busy while clearing command history")
		return sendAPIErrorDBBusy(e, "database is busy, try again later")
	case err != nil:
		logger.Warn().Err(err).Msg("api: error clearing command history")
		return sendAPIError(e, http.StatusInternalServerError, "error clearing command history: %v", err)
	}
	logger.Info().Msg("api: command history cleared")
	return e.NoContent(http.StatusNoContent)
}
