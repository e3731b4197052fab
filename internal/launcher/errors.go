package launcher

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// Exit codes for failures that happen before the child process could report
// its own exit code. They follow the conventions of POSIX shells.
const (
	ExitCodeConfigError    = 2
	ExitCodeCannotExecute  = 126
	ExitCodeNotFound       = 127
	exitCodeSignalBase     = 128
	exitCodeUnknownFailure = 1
)

// ConfigError indicates that the launch configuration is incomplete or invalid.
// It is always returned before any process is started.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func configError(field string, value any, reason string, args ...any) *ConfigError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid launch configuration: %s=%q %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

// LaunchError indicates that the child process could not be created.
type LaunchError struct {
	Executable string
	Err        error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %s: %v", e.Executable, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code a shell would use for this error.
func (e *LaunchError) ExitCode() int {
	switch {
	case errors.Is(e.Err, exec.ErrNotFound), errors.Is(e.Err, fs.ErrNotExist):
		return ExitCodeNotFound
	default:
		return ExitCodeCannotExecute
	}
}

// ExitCodeForError returns the exit code the launcher should use when Run()
// returned this error.
func ExitCodeForError(err error) int {
	var (
		configErr *ConfigError
		launchErr *LaunchError
	)
	switch {
	case err == nil:
		return 0
	case errors.As(err, &configErr):
		return ExitCodeConfigError
	case errors.As(err, &launchErr):
		return launchErr.ExitCode()
	default:
		return exitCodeUnknownFailure
	}
}
