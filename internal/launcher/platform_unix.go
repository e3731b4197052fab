//go:build !windows

package launcher

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"os"
	"syscall"
)

// forwardedSignals are relayed from the launcher to the child.
//
// SIGINT is caught but not relayed: when Ctrl+C is pressed in a terminal, the
// child already receives it as part of the foreground process group.
var (
	forwardedSignals = []os.Signal{syscall.SIGTERM, syscall.SIGHUP}
	caughtSignals    = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}
)

func exitStatusFromState(state *os.ProcessState) ExitStatus {
	waitStatus, ok := state.Sys().(syscall.WaitStatus)
	if ok && waitStatus.Signaled() {
		return ExitStatus{
			Code:   exitCodeSignalBase + int(waitStatus.Signal()),
			Signal: waitStatus.Signal().String(),
		}
	}
	return ExitStatus{Code: state.ExitCode()}
}
