// Package sysinfo describes the platform the application runs on, for
// logging at startup.
package sysinfo

// SPDX-License-Identifier: GPL-3.0-or-later

// Description returns a human-readable description of the operating system,
// like "Ubuntu 24.04.1 LTS (kernel 6.8.0-45-generic)".
func Description() (string, error) {
	return description()
}
