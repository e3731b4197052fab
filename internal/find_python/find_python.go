// Package find_python finds the executable that runs the web application
// framework, usually a Python interpreter.
package find_python

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when the executable cannot be found at all.
var ErrNotFound = fmt.Errorf("executable not found: %w", exec.ErrNotFound)

// ErrIsDirectory is returned when the given path exists, but is a directory.
var ErrIsDirectory = errors.New("expected an executable, but is a directory")

// Find returns the absolute path of the executable.
//
// Names containing a path separator are checked as-is. Bare names are
// searched for on $PATH, and then in platform-specific default locations.
func Find(name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}

	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return checkPath(name)
	}

	found, err := exec.LookPath(name)
	switch {
	case err == nil:
		return found, nil
	case !errors.Is(err, exec.ErrNotFound):
		// Something was found, but cannot be used. Report that instead of
		// silently falling back to some other interpreter.
		return "", err
	}

	if defaultPath := searchDefaultPaths(name); defaultPath != "" {
		log.Debug().
			Str("name", name).
			Str("path", defaultPath).
			Msg("executable not on $PATH, using default location")
		return defaultPath, nil
	}

	return "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

// checkPath checks that the path points to something that could be executed.
func checkPath(path string) (string, error) {
	stat, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrNotFound, path)
	case err != nil:
		return "", err
	case stat.IsDir():
		return "", fmt.Errorf("%w: %q", ErrIsDirectory, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("making %q absolute: %w", path, err)
	}
	return absPath, nil
}

// existingFile returns the path if it exists and is not a directory, and an
// empty string otherwise.
func existingFile(path string) string {
	stat, err := os.Stat(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ""
	case err != nil:
		log.Warn().
			AnErr("cause", err).
			Str("path", path).
			Msg("could not check default path, ignoring")
		return ""
	case stat.IsDir():
		log.Warn().
			Str("path", path).
			Msg("expected executable, but is a directory, ignoring")
		return ""
	}

	return path
}
