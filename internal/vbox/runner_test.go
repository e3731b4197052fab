//go:build !windows

package vbox

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner(t *testing.T) {
	output, err := ExecRunner{}.Run(context.Background(), "/bin/sh", "-c", "echo out; echo err >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, "out\n", string(output.Stdout))
	assert.Equal(t, "err\n", string(output.Stderr))
	assert.Equal(t, 3, output.ExitCode)
}

func TestExecRunnerNotFound(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "/nonexistent/vboxmanage")
	assert.Error(t, err)
}

func TestExecRunnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ExecRunner{}.Run(ctx, "/bin/sh", "-c", "exec sleep 10")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
