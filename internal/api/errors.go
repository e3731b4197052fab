package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// sendAPIError wraps sending of an error in the Error format, and
// handling the failure to marshal that.
func sendAPIError(e echo.Context, code int, message string, args ...interface{}) error {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	apiErr := Error{
		Code:    code,
		Message: message,
	}
	return e.JSON(code, apiErr)
}

// sendAPIErrorDBBusy sends a HTTP 503 Service Unavailable, with a hint to
// retry after a few seconds.
func sendAPIErrorDBBusy(e echo.Context, message string, args ...interface{}) error {
	const retryAfter = 5 * time.Second
	seconds := int(retryAfter.Seconds())
	e.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
	return sendAPIError(e, http.StatusServiceUnavailable, message, args...)
}

// requestLogger returns a logger with the remote address of the request.
func requestLogger(e echo.Context) zerolog.Logger {
	return log.With().
		Str("remoteAddr", e.RealIP()).
		Str("path", e.Request().URL.Path).
		Logger()
}
