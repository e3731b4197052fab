// Package console runs shell commands on the host, and keeps a history of
// their results.
package console

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vboxhost/server-manager/internal/eventbus"
	"github.com/vboxhost/server-manager/internal/persistence"
)

const (
	DefaultTimeout = 1 * time.Hour

	// After killing the command, wait at most this long for its output
	// streams to close.
	waitDelay = 2 * time.Second

	// Storing the result should not depend on the caller still waiting for it.
	storeTimeout = 5 * time.Second
)

var (
	ErrEmptyCommand   = errors.New("command is empty")
	ErrInvalidTimeout = errors.New("timeout cannot be negative")
	ErrResultNotFound = errors.New("command result not found")
)

// CommandResult is the outcome of a command.
type CommandResult struct {
	ID      string
	Command string

	// ReturnCode is nil when the command did not finish by itself. When it was
	// killed by a signal, it is the negated signal number.
	ReturnCode *int
	Stdout     string
	Stderr     string
	TimedOut   bool

	StartedAt time.Time
	Duration  time.Duration
}

// Runner executes shell commands.
type Runner struct {
	store    Store
	eventbus EventBus
	clock    clock.Clock
}

func NewRunner(store Store, eventbus EventBus, clock clock.Clock) *Runner {
	return &Runner{
		store:    store,
		eventbus: eventbus,
		clock:    clock,
	}
}

// Execute runs the command with the system shell, and stores the result in
// the history. A zero timeout means "no timeout". When the timeout passes,
// the command and all its child processes are killed; the result then
// contains the output produced so far.
//
// Errors are only returned when the command could not be started at all.
func (r *Runner) Execute(ctx context.Context, command string, timeout time.Duration) (CommandResult, error) {
	switch {
	case strings.TrimSpace(command) == "":
		return CommandResult{}, ErrEmptyCommand
	case timeout < 0:
		return CommandResult{}, ErrInvalidTimeout
	}

	result := CommandResult{
		ID:        uuid.NewString(),
		Command:   command,
		StartedAt: r.clock.Now().UTC(),
	}
	logger := log.With().Str("command", command).Str("id", result.ID).Logger()

	runCtx := ctx
	cancel := func() {}
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, shell[0], append(shell[1:], command)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	prepareProcessGroup(cmd)

	logger.Debug().Str("cmdline", shellescape.QuoteCommand(cmd.Args)).Msg("console: running command")
	if err := cmd.Start(); err != nil {
		logger.Error().Err(err).Msg("console: could not start command")
		return CommandResult{}, fmt.Errorf("starting %s: %w", shell[0], err)
	}

	waitErr := cmd.Wait()
	result.Duration = r.clock.Since(result.StartedAt)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case waitErr != nil && ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.TimedOut = true
		logger.Warn().Stringer("timeout", timeout).Msg("console: command timed out, killed it")
	case waitErr != nil && ctx.Err() != nil:
		logger.Info().Msg("console: command aborted")
	case waitErr == nil:
		result.ReturnCode = ptr(0)
	case errors.As(waitErr, &exitErr):
		result.ReturnCode = ptr(exitCode(exitErr))
	default:
		logger.Warn().AnErr("cause", waitErr).Msg("console: error waiting for command")
	}

	logger.Info().
		Stringer("duration", result.Duration).
		Interface("returnCode", result.ReturnCode).
		Msg("console: command finished")

	r.saveResult(ctx, result)
	r.eventbus.BroadcastConsoleCommandEvent(eventbus.ConsoleCommandEvent{
		ID:         result.ID,
		Command:    result.Command,
		ReturnCode: result.ReturnCode,
		TimedOut:   result.TimedOut,
	})
	return result, nil
}

// saveResult saves the result in the history. Failures are logged, as the command
// has run regardless.
func (r *Runner) saveResult(ctx context.Context, result CommandResult) {
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	dbResult := toPersistence(result)
	if err := r.store.SaveCommandResult(storeCtx, &dbResult); err != nil {
		log.Error().Err(err).Str("id", result.ID).Msg("console: could not store command result")
	}
}

// History returns at most `limit` results, newest first. A non-positive
// limit returns everything.
func (r *Runner) History(ctx context.Context, limit int) ([]CommandResult, error) {
	dbResults, err := r.store.FetchCommandResults(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching console history: %w", err)
	}

	results := make([]CommandResult, len(dbResults))
	for i := range dbResults {
		results[i] = fromPersistence(dbResults[i])
	}
	return results, nil
}

// Result returns a single result from the history.
func (r *Runner) Result(ctx context.Context, id string) (CommandResult, error) {
	dbResult, err := r.store.FetchCommandResult(ctx, id)
	switch {
	case errors.Is(err, persistence.ErrCommandResultNotFound):
		return CommandResult{}, fmt.Errorf("%w: %s", ErrResultNotFound, id)
	case err != nil:
		return CommandResult{}, fmt.Errorf("fetching command result %s: %w", id, err)
	}
	return fromPersistence(*dbResult), nil
}

// Clear removes all results from the history.
func (r *Runner) Clear(ctx context.Context) error {
	if err := r.store.ClearCommandResults(ctx); err != nil {
		return fmt.Errorf("clearing console history: %w", err)
	}
	return nil
}

func toPersistence(result CommandResult) persistence.CommandResult {
	return persistence.CommandResult{
		UUID:       result.ID,
		Command:    result.Command,
		ReturnCode: result.ReturnCode,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		TimedOut:   result.TimedOut,
		StartedAt:  result.StartedAt,
		Duration:   result.Duration,
	}
}

func fromPersistence(result persistence.CommandResult) CommandResult {
	return CommandResult{
		ID:         result.UUID,
		Command:    result.Command,
		ReturnCode: result.ReturnCode,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		TimedOut:   result.TimedOut,
		StartedAt:  result.StartedAt,
		Duration:   result.Duration,
	}
}

func ptr[T any](value T) *T {
	return &value
}
