package vbox

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// CommandOutput is the captured result of running an executable.
type CommandOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// CommandRunner runs an executable and captures its output.
//
// A non-zero exit code is not an error; errors are only returned when the
// executable could not be run at all, or the context was closed.
type CommandRunner interface {
	Run(ctx context.Context, exe string, args ...string) (CommandOutput, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

var _ CommandRunner = ExecRunner{}

func (ExecRunner) Run(ctx context.Context, exe string, args ...string) (CommandOutput, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := CommandOutput{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		return output, ctx.Err()
	case errors.As(err, &exitErr):
		output.ExitCode = exitErr.ExitCode()
		return output, nil
	case err != nil:
		return output, fmt.Errorf("running %s: %w", exe, err)
	}
	return output, nil
}
