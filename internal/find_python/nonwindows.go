//go:build !windows && !darwin

package find_python

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"os"
	"path/filepath"
)

// searchDefaultPaths searches ~/.local/bin, where `pip install --user` and
// pipx put their executables, as that is often not on $PATH for services.
// Returns an empty string if nothing is found.
func searchDefaultPaths(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return existingFile(filepath.Join(home, ".local", "bin", name))
}
