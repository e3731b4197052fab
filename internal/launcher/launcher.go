// Package launcher starts the web application as a child process, and
// mirrors its exit status.
package launcher

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"slices"
	"time"

	"github.com/alessio/shellescape"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vboxhost/server-manager/internal/find_python"
	"github.com/vboxhost/server-manager/pkg/oomscore"
)

// Launcher starts a single child process.
type Launcher struct {
	// Standard streams of the child. New() connects them to the streams of
	// the current process.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// lookPath resolves the executable name to a path.
	lookPath func(name string) (string, error)
}

func New() *Launcher {
	return &Launcher{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		lookPath: find_python.Find,
	}
}

// invocation is everything needed to start the child.
type invocation struct {
	executable  string
	args        []string
	dir         string
	oomScoreAdj int
}

// Launch starts the executable with the given arguments. The child inherits
// the standard input, output, and error streams of the Launcher.
//
// Returns a *LaunchError when the executable cannot be found or the process
// cannot be created.
func (l *Launcher) Launch(ctx context.Context, executable string, args []string) (*Process, error) {
	return l.launch(ctx, invocation{executable: executable, args: args})
}

func (l *Launcher) launch(ctx context.Context, inv invocation) (*Process, error) {
	exePath, err := l.lookPath(inv.executable)
	if err != nil {
		return nil, &LaunchError{Executable: inv.executable, Err: err}
	}

	cmd := exec.CommandContext(ctx, exePath, inv.args...)
	cmd.Dir = inv.dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	logger := log.With().
		Str("command", shellescape.QuoteCommand(append([]string{exePath}, inv.args...))).
		Logger()
	if inv.dir != "" {
		logger = logger.With().Str("dir", inv.dir).Logger()
	}

	// The child inherits the OOM score adjustment of this process, so adjust
	// it temporarily while starting the child.
	restoreOOMScore := func() {}
	if inv.oomScoreAdj != 0 {
		restoreOOMScore = oomscore.Adjust(inv.oomScoreAdj)
	}

	proc := newProcess(cmd)
	err = proc.start()
	restoreOOMScore()
	if err != nil {
		logger.Error().Err(err).Msg("launcher: could not start process")
		return nil, &LaunchError{Executable: exePath, Err: err}
	}

	logger.Info().Int("pid", proc.Pid()).Msg("launcher: process started")
	return proc, nil
}

// Run builds the command from the configuration, launches it, and waits for
// it to terminate.
//
// The returned ExitStatus is the child's exit status when the child ran, and
// the status matching the error otherwise (see ExitCodeForError).
func (l *Launcher) Run(ctx context.Context, cfg LaunchConfig) (ExitStatus, error) {
	executable, args, err := Command(cfg)
	if err != nil {
		return ExitStatus{Code: ExitCodeForError(err)}, err
	}

	proc, err := l.launch(ctx, invocation{
		executable:  executable,
		args:        args,
		dir:         cfg.WorkDir,
		oomScoreAdj: cfg.OOMScoreAdj,
	})
	if err != nil {
		return ExitStatus{Code: ExitCodeForError(err)}, err
	}

	stopForwarding := forwardSignals(proc)
	defer stopForwarding()

	startTime := time.Now()
	status, err := proc.Wait()
	logger := log.With().
		Int("pid", proc.Pid()).
		Stringer("duration", time.Since(startTime)).
		Int("exitCode", status.Code).
		Logger()

	switch {
	case err != nil:
		logger.Error().Err(err).Msg("launcher: could not determine exit status")
	case status.Signal != "":
		logger.Warn().Str("signal", status.Signal).Msg("launcher: process killed by signal")
	default:
		logger.WithLevel(exitLogLevel(status)).Msg("launcher: process exited")
	}
	return status, err
}

func exitLogLevel(status ExitStatus) zerolog.Level {
	if status.Success() {
		return zerolog.InfoLevel
	}
	return zerolog.WarnLevel
}

// forwardSignals relays termination signals received by this process to the
// child, until the returned function is called.
func forwardSignals(proc *Process) (stop func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, caughtSignals...)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case sig := <-signals:
				logger := log.With().Str("signal", sig.String()).Int("pid", proc.Pid()).Logger()
				if !slices.Contains(forwardedSignals, sig) {
					logger.Debug().Msg("launcher: signal received, waiting for process to exit")
					continue
				}
				logger.Info().Msg("launcher: forwarding signal to process")
				if err := proc.Signal(sig); err != nil {
					logger.Warn().Err(err).Msg("launcher: could not forward signal")
				}
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}
