package launcher

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// State of a launched process.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ExitStatus describes how the child process ended.
type ExitStatus struct {
	// Code is the exit code of the child. When the child was killed by a
	// signal, it is 128 + the signal number, like POSIX shells report it.
	Code int
	// Signal is the name of the signal that killed the child, or empty if it
	// exited normally.
	Signal string
}

func (s ExitStatus) Success() bool {
	return s.Code == 0
}

func (s ExitStatus) String() string {
	if s.Signal != "" {
		return fmt.Sprintf("exit code %d (%s)", s.Code, s.Signal)
	}
	return fmt.Sprintf("exit code %d", s.Code)
}

// Process is a launched child process.
type Process struct {
	cmd *exec.Cmd

	mutex sync.Mutex
	state State

	waitOnce sync.Once
	status   ExitStatus
	waitErr  error
}

func newProcess(cmd *exec.Cmd) *Process {
	return &Process{
		cmd:   cmd,
		state: StateNotStarted,
	}
}

func (p *Process) start() error {
	if err := p.cmd.Start(); err != nil {
		return err
	}
	p.setState(StateRunning)
	return nil
}

// Pid returns the process ID of the child.
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// State returns the current state of the child.
func (p *Process) State() State {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.state
}

func (p *Process) setState(state State) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.state = state
}

// Signal sends the signal to the child. Signalling a terminated process is a
// no-op.
func (p *Process) Signal(sig os.Signal) error {
	if p.State() != StateRunning {
		return nil
	}
	err := p.cmd.Process.Signal(sig)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

// Wait blocks until the child terminates, and returns its exit status.
// An error is only returned when the exit status could not be determined.
// It is safe to call Wait() more than once.
func (p *Process) Wait() (ExitStatus, error) {
	p.waitOnce.Do(func() {
		err := p.cmd.Wait()
		p.setState(StateTerminated)

		var exitErr *exec.ExitError
		switch {
		case err == nil, errors.As(err, &exitErr):
			p.status = exitStatusFromState(p.cmd.ProcessState)
		default:
			p.status = ExitStatus{Code: exitCodeUnknownFailure}
			p.waitErr = fmt.Errorf("waiting for process %d: %w", p.Pid(), err)
		}
	})
	return p.status, p.waitErr
}
