// Package logging configures zerolog for the executables: coloured console
// output, a rotated host log file, and one log file per virtual machine.
package logging

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slogzerolog "github.com/samber/slog-zerolog/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	hostLogName = "host"
	logFilename = "host.log"
	vmFilename  = "vm.log"
)

// Options for Setup().
type Options struct {
	// Dir is the directory that holds the host log and the VM logs. Empty
	// disables logging to files.
	Dir string

	// Level is the global log level.
	Level zerolog.Level

	// ConsoleLevel is the minimum level for console output. It cannot make
	// the console more verbose than Level.
	ConsoleLevel zerolog.Level

	// Rotation settings for every log file.
	MaxSizeMB  int
	MaxBackups int

	// Console receives the human-readable output. Defaults to stdout.
	Console io.Writer
}

// Files manages the rotated log files. It is safe for concurrent use.
type Files struct {
	opts Options

	// host receives every log entry that is not VM-specific.
	host zerolog.LevelWriter

	mutex   sync.Mutex
	writers map[string]*lumberjack.Logger
}

var files *Files

// CLILevel returns the log level for the `-quiet`, `-debug` and `-trace`
// command line flags.
func CLILevel(quiet, debug, trace bool) zerolog.Level {
	switch {
	case trace:
		return zerolog.TraceLevel
	case debug:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseConsoleLevel parses a level name from the configuration file. The
// empty string means "everything".
func ParseConsoleLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.TraceLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing console log level: %w", err)
	}
	return level, nil
}

// ConsoleOnly sends the global logger to a coloured console writer. This is
// used at startup, before the configuration is known.
func ConsoleOnly() {
	output := zerolog.ConsoleWriter{Out: colorable.NewColorableStdout(), TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)
}

// Setup configures the global logger. The returned Files must be closed
// when the application shuts down.
func Setup(opts Options) (*Files, error) {
	if opts.Console == nil {
		opts.Console = colorable.NewColorableStdout()
	}
	zerolog.SetGlobalLevel(opts.Level)

	console := zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.RFC3339}
	writers := []io.Writer{
		&levelFilter{minLevel: opts.ConsoleLevel, writer: zerolog.MultiLevelWriter(console)},
	}

	f := &Files{
		opts:    opts,
		writers: map[string]*lumberjack.Logger{},
	}
	if opts.Dir != "" {
		hostLog, err := f.writer(hostLogName, logFilename)
		if err != nil {
			return nil, err
		}
		writers = append(writers, hostLog)
	}

	f.host = zerolog.MultiLevelWriter(writers...)
	log.Logger = zerolog.New(f.host).With().Timestamp().Logger()
	hookUpSlog(opts.Level)

	files = f
	return f, nil
}

// hookUpSlog makes libraries that log via log/slog end up in zerolog.
func hookUpSlog(level zerolog.Level) {
	var slogLevel slog.Level
	switch {
	case level <= zerolog.DebugLevel:
		slogLevel = slog.LevelDebug
	case level == zerolog.InfoLevel:
		slogLevel = slog.LevelInfo
	case level == zerolog.WarnLevel:
		slogLevel = slog.LevelWarn
	default:
		slogLevel = slog.LevelError
	}

	slogLogger := slog.New(slogzerolog.Option{
		Level:  slogLevel,
		Logger: &log.Logger}.NewZerologHandler())
	slog.SetDefault(slogLogger)
}

// VMLogger returns a logger that writes to both the host log and the log
// file of this virtual machine. When logging was not set up with a
// directory, it returns the global logger.
func VMLogger(vmName string) zerolog.Logger {
	if files == nil || files.opts.Dir == "" {
		return log.With().Str("vm", vmName).Logger()
	}
	return files.VMLogger(vmName)
}

// VMLogger returns a logger for the named virtual machine.
func (f *Files) VMLogger(vmName string) zerolog.Logger {
	logger := log.With().Str("vm", vmName).Logger()

	vmLog, err := f.writer(sanitiseName(vmName), vmFilename)
	if err != nil {
		logger.Warn().Err(err).Msg("logging: could not create VM log file, using host log only")
		return logger
	}

	// The host log gets everything, the VM log only its own messages.
	return logger.Output(zerolog.MultiLevelWriter(f.host, vmLog))
}

func (f *Files) writer(subdir, filename string) (*lumberjack.Logger, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	dir := filepath.Join(f.opts.Dir, subdir)
	if w, found := f.writers[dir]; found {
		return w, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, filename),
		MaxSize:    f.opts.MaxSizeMB,
		MaxBackups: f.opts.MaxBackups,
	}
	f.writers[dir] = w
	return w, nil
}

// Close closes all log files.
func (f *Files) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	var firstErr error
	for dir, w := range f.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(f.writers, dir)
	}
	return firstErr
}

// sanitiseName turns a VM name into something usable as directory name.
func sanitiseName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "_unnamed"
	}
	return name
}

// levelFilter only passes on log entries of at least minLevel.
type levelFilter struct {
	minLevel zerolog.Level
	writer   zerolog.LevelWriter
}

func (l *levelFilter) Write(p []byte) (int, error) {
	return l.writer.Write(p)
}

func (l *levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < l.minLevel {
		// Pretend it was written, as zerolog treats short writes as errors.
		return len(p), nil
	}
	return l.writer.WriteLevel(level, p)
}
