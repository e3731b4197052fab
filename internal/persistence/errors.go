package persistence

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrCommandResultNotFound = PersistenceError{Message: "command result not found", Err: sql.ErrNoRows}

	ErrIntegrity = errors.New("database integrity check failed")

	// errDatabaseBusy is returned by this package when the operation could not be
	// performed due to SQLite being busy.
	errDatabaseBusy = errors.New("database busy")
)

type PersistenceError struct {
	Message string // The error message.
	Err     error  // Any wrapped error.
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e PersistenceError) Is(err error) bool {
	return err == e.Err
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

func commandResultError(errorToWrap error, message string, msgArgs ...interface{}) error {
	return wrapError(translateCommandResultError(errorToWrap), message, msgArgs...)
}

func wrapError(errorToWrap error, message string, format ...interface{}) error {
	// Only format if there are arguments for formatting.
	var formattedMsg string
	if len(format) > 0 {
		formattedMsg = fmt.Sprintf(message, format...)
	} else {
		formattedMsg = message
	}

	return PersistenceError{
		Message: formattedMsg,
		Err:     errorToWrap,
	}
}

// translateCommandResultError translates a database/sql error to a
// persistence layer error.
func translateCommandResultError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrCommandResultNotFound
	case isDatabaseBusyError(err):
		return fmt.Errorf("%w: %v", errDatabaseBusy, err)
	}
	return err
}
