//go:build windows

package find_python

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"os"
	"path/filepath"
)

// searchDefaultPaths searches the per-user install location of the python.org
// installer. Returns an empty string if nothing is found.
func searchDefaultPaths(name string) string {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		return ""
	}

	if filepath.Ext(name) == "" {
		name += ".exe"
	}

	matches, err := filepath.Glob(filepath.Join(localAppData, "Programs", "Python", "Python3*", name))
	if err != nil || len(matches) == 0 {
		return ""
	}
	// Glob returns sorted matches, so the last one is the newest version.
	return existingFile(matches[len(matches)-1])
}
