//go:build darwin

package find_python

// SPDX-License-Identifier: GPL-3.0-or-later

var defaultDirs = []string{
	"/opt/homebrew/bin",
	"/usr/local/bin",
	"/Library/Frameworks/Python.framework/Versions/Current/bin",
}

// searchDefaultPaths searches the locations where Homebrew and the python.org
// installer put their executables. Returns an empty string if nothing is found.
func searchDefaultPaths(name string) string {
	for _, dir := range defaultDirs {
		if found := existingFile(dir + "/" + name); found != "" {
			return found
		}
	}
	return ""
}
