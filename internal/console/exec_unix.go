//go:build !windows

package console

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

var shell = []string{"/bin/sh", "-c"}

// prepareProcessGroup starts the command in its own process group, so that
// cancellation kills the shell and everything it started.
func prepareProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		if err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL); err == nil {
			return nil
		} else if errors.Is(err, unix.ESRCH) {
			return nil
		}
		return cmd.Process.Kill()
	}
}

// exitCode returns the exit code of the process, or the negated signal number
// when it was killed by a signal.
func exitCode(exitErr *exec.ExitError) int {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if ok && status.Signaled() {
		return -int(status.Signal())
	}
	return exitErr.ExitCode()
}
