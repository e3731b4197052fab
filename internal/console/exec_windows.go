//go:build windows

package console

// SPDX-License-Identifier: GPL-3.0-or-later

import "os/exec"

var shell = []string{"cmd", "/C"}

// prepareProcessGroup is a no-op on Windows. CommandContext kills the shell
// itself; its children are not tracked.
func prepareProcessGroup(cmd *exec.Cmd) {}

func exitCode(exitErr *exec.ExitError) int {
	return exitErr.ExitCode()
}
