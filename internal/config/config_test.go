package config

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vboxhost/server-manager/internal/launcher"
)

func noEnv(string) string { return "" }

func testService(t *testing.T, yamlContents string) *Service {
	filename := filepath.Join(t.TempDir(), "server-manager.yaml")
	if yamlContents != "" {
		require.NoError(t, os.WriteFile(filename, []byte(yamlContents), 0o600))
	}

	s := NewService(filename)
	s.getenv = noEnv
	return s
}

func TestDefaultConfigLauncher(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, launcher.DefaultLaunchConfig(), c.Launcher)
	assert.NoError(t, c.Launcher.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	s := testService(t, "")

	found, err := s.Load()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, DefaultConfig(), *s.Get())
}

func TestLoadPartialFile(t *testing.T) {
	s := testService(t, `
_meta:
  version: 1
launcher:
  port: 8501
  toolbar_mode: viewer
vbox:
  metrics_interval: 1s
console:
  timeout: 90s
`)

	found, err := s.Load()
	require.NoError(t, err)
	assert.True(t, found)

	c := s.Get()
	assert.Equal(t, 8501, c.Launcher.Port)
	assert.Equal(t, launcher.ToolbarModeViewer, c.Launcher.ToolbarMode)
	assert.Equal(t, time.Second, c.VBox.MetricsInterval.D())
	assert.Equal(t, 90*time.Second, c.Console.Timeout.D())

	// Settings not in the file keep their default value.
	assert.Equal(t, "main.py", c.Launcher.EntryPoint)
	assert.True(t, c.Launcher.Headless)
	assert.Equal(t, launcher.FileWatcherNone, c.Launcher.FileWatcherType)
	assert.Equal(t, "/usr/bin/vboxmanage", c.VBox.Executable)
}

func TestLoadInvalidFile(t *testing.T) {
	s := testService(t, "launcher: [this is not a mapping")

	_, err := s.Load()
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), *s.Get())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	s := testService(t, "launcher:\n  port: 8501\n")
	env := map[string]string{
		EnvPort:        "9000",
		EnvHeadless:    "false",
		EnvEntryPoint:  "server_manager/main.py",
		EnvInterpreter: "uv run python",
		EnvPassword:    "hunter2",
	}
	s.getenv = func(name string) string { return env[name] }

	_, err := s.Load()
	require.NoError(t, err)

	c := s.Get()
	assert.Equal(t, 9000, c.Launcher.Port)
	assert.False(t, c.Launcher.Headless)
	assert.Equal(t, "server_manager/main.py", c.Launcher.EntryPoint)
	assert.Equal(t, "uv run python", c.Launcher.Interpreter)
	assert.Equal(t, "hunter2", c.Password)
	assert.Equal(t, "localhost:8001", c.API.Listen)
}

func TestLoadEnvironmentInvalid(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"port", EnvPort, "eight thousand"},
		{"headless", EnvHeadless, "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testService(t, "")
			s.getenv = func(name string) string {
				if name == tt.env {
					return tt.value
				}
				return ""
			}

			_, err := s.Load()
			assert.ErrorContains(t, err, tt.env)
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	s := testService(t, "")
	_, err := s.Load()
	require.NoError(t, err)

	s.Get().Launcher.Port = 8765
	s.Get().Console.Timeout = Duration(5 * time.Minute)
	require.NoError(t, s.Save())

	reloaded := NewService(s.ConfigFilename())
	reloaded.getenv = noEnv
	found, err := reloaded.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, *s.Get(), *reloaded.Get())
}
