//go:build windows

package launcher

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"os"
)

// The Windows console delivers Ctrl+C to every attached process, and there
// is nothing else that can be relayed.
var (
	forwardedSignals = []os.Signal{}
	caughtSignals    = []os.Signal{os.Interrupt}
)

func exitStatusFromState(state *os.ProcessState) ExitStatus {
	return ExitStatus{Code: state.ExitCode()}
}
