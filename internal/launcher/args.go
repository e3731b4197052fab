package launcher

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"strconv"

	"github.com/google/shlex"
)

// The framework's sub-command that serves an application file.
const subcommandRun = "run"

type option struct {
	flag  string
	value string
}

// options returns one command line option per configuration field, in the
// order they appear on the command line.
func (c LaunchConfig) options() []option {
	return []option{
		{"--server.headless", strconv.FormatBool(c.Headless)},
		{"--server.port", strconv.Itoa(c.Port)},
		{"--client.toolbarMode", string(c.ToolbarMode)},
		{"--global.developmentMode", strconv.FormatBool(c.DevelopmentMode)},
		{"--server.fileWatcherType", string(c.FileWatcherType)},
	}
}

// BuildArgs returns the arguments for the interpreter:
//
//	-m <framework> run <entry point> --server.headless <bool> --server.port <int>
//	--client.toolbarMode <mode> --global.developmentMode <bool> --server.fileWatcherType <type>
//
// Every option is always present, even when it has the framework's default value.
func BuildArgs(cfg LaunchConfig) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := cfg.options()
	args := make([]string, 0, 4+2*len(opts))
	args = append(args, "-m", cfg.Framework, subcommandRun, cfg.EntryPoint)
	for _, opt := range opts {
		args = append(args, opt.flag, opt.value)
	}
	return args, nil
}

// Command returns the executable and its complete argument list. The
// interpreter is split into words, the first is the executable and the rest
// are prepended to the BuildArgs() result.
func Command(cfg LaunchConfig) (executable string, args []string, err error) {
	buildArgs, err := BuildArgs(cfg)
	if err != nil {
		return "", nil, err
	}

	words, err := shlex.Split(cfg.Interpreter)
	if err != nil {
		return "", nil, configError("interpreter", cfg.Interpreter, "cannot be split into words: %v", err)
	}
	if len(words) == 0 {
		return "", nil, configError("interpreter", cfg.Interpreter, "must not be empty")
	}

	args = make([]string, 0, len(words)-1+len(buildArgs))
	args = append(args, words[1:]...)
	args = append(args, buildArgs...)
	return words[0], args, nil
}
