package launcher

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgsDefault(t *testing.T) {
	cfg := LaunchConfig{
		Interpreter:     "python3",
		Framework:       "streamlit",
		EntryPoint:      "main.py",
		Headless:        true,
		Port:            8000,
		ToolbarMode:     ToolbarModeMinimal,
		DevelopmentMode: false,
		FileWatcherType: FileWatcherNone,
	}
	require.Equal(t, DefaultLaunchConfig(), cfg)

	args, err := BuildArgs(cfg)
	require.NoError(t, err)

	expect := []string{
		"-m", "streamlit",
		"run",
		"main.py",
		"--server.headless", "true",
		"--server.port", "8000",
		"--client.toolbarMode", "minimal",
		"--global.developmentMode", "false",
		"--server.fileWatcherType", "none",
	}
	assert.Equal(t, expect, args)
}

func TestBuildArgsDeterministic(t *testing.T) {
	cfg := DefaultLaunchConfig()
	cfg.Port = 8123
	cfg.DevelopmentMode = true

	first, err := BuildArgs(cfg)
	require.NoError(t, err)
	for range 10 {
		again, err := BuildArgs(cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildArgsNoOmission(t *testing.T) {
	// Options that have the framework's own default value are still emitted.
	cfg := DefaultLaunchConfig()
	cfg.Headless = false
	cfg.ToolbarMode = ToolbarModeAuto
	cfg.FileWatcherType = FileWatcherAuto

	args, err := BuildArgs(cfg)
	require.NoError(t, err)
	assert.Len(t, args, 14)
	assert.Equal(t, []string{"--server.headless", "false"}, args[4:6])
	assert.Equal(t, []string{"--client.toolbarMode", "auto"}, args[8:10])
	assert.Equal(t, []string{"--server.fileWatcherType", "auto"}, args[12:14])
}

func TestBuildArgsInvalid(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(cfg *LaunchConfig)
		wantField string
	}{
		{"zero port", func(cfg *LaunchConfig) { cfg.Port = 0 }, "port"},
		{"negative port", func(cfg *LaunchConfig) { cfg.Port = -47 }, "port"},
		{"port too large", func(cfg *LaunchConfig) { cfg.Port = 65536 }, "port"},
		{"unknown toolbar mode", func(cfg *LaunchConfig) { cfg.ToolbarMode = "maximal" }, "toolbar_mode"},
		{"empty toolbar mode", func(cfg *LaunchConfig) { cfg.ToolbarMode = "" }, "toolbar_mode"},
		{"unknown file watcher", func(cfg *LaunchConfig) { cfg.FileWatcherType = "inotify" }, "file_watcher_type"},
		{"empty entry point", func(cfg *LaunchConfig) { cfg.EntryPoint = "" }, "entry_point"},
		{"blank entry point", func(cfg *LaunchConfig) { cfg.EntryPoint = "  " }, "entry_point"},
		{"empty framework", func(cfg *LaunchConfig) { cfg.Framework = "" }, "framework"},
		{"empty interpreter", func(cfg *LaunchConfig) { cfg.Interpreter = "" }, "interpreter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLaunchConfig()
			tt.modify(&cfg)

			args, err := BuildArgs(cfg)
			assert.Nil(t, args, "no partial command should be returned")

			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.wantField, configErr.Field)
			assert.Equal(t, ExitCodeConfigError, ExitCodeForError(err))
		})
	}
}

func TestCommandSplitsInterpreter(t *testing.T) {
	cfg := DefaultLaunchConfig()
	cfg.Interpreter = `uv run --directory "/srv/server manager" python`

	exe, args, err := Command(cfg)
	require.NoError(t, err)
	assert.Equal(t, "uv", exe)
	assert.Equal(t, []string{"run", "--directory", "/srv/server manager", "python", "-m", "streamlit"}, args[:6])
	assert.Equal(t, "main.py", args[7])
}

func TestCommandUnbalancedQuotes(t *testing.T) {
	cfg := DefaultLaunchConfig()
	cfg.Interpreter = `"python3`

	_, _, err := Command(cfg)
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "interpreter", configErr.Field)
}
