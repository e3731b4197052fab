package launcher

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"slices"
	"strings"
)

// ToolbarMode is the value of the framework's `--client.toolbarMode` option.
type ToolbarMode string

const (
	ToolbarModeAuto      ToolbarMode = "auto"
	ToolbarModeDeveloper ToolbarMode = "developer"
	ToolbarModeViewer    ToolbarMode = "viewer"
	ToolbarModeMinimal   ToolbarMode = "minimal"
)

var toolbarModes = []ToolbarMode{
	ToolbarModeAuto,
	ToolbarModeDeveloper,
	ToolbarModeViewer,
	ToolbarModeMinimal,
}

func (m ToolbarMode) IsValid() bool {
	return slices.Contains(toolbarModes, m)
}

// FileWatcherType is the value of the framework's `--server.fileWatcherType` option.
type FileWatcherType string

const (
	FileWatcherAuto     FileWatcherType = "auto"
	FileWatcherWatchdog FileWatcherType = "watchdog"
	FileWatcherPoll     FileWatcherType = "poll"
	// FileWatcherNone disables reloading the application on source changes.
	FileWatcherNone FileWatcherType = "none"
)

var fileWatcherTypes = []FileWatcherType{
	FileWatcherAuto,
	FileWatcherWatchdog,
	FileWatcherPoll,
	FileWatcherNone,
}

func (t FileWatcherType) IsValid() bool {
	return slices.Contains(fileWatcherTypes, t)
}

const (
	minPort = 1
	maxPort = 65535
)

// LaunchConfig describes the child process to start.
//
// It is constructed once at startup, and consumed once by Run().
type LaunchConfig struct {
	// Interpreter is the command that runs the framework module. It may
	// consist of multiple words, like "uv run python", which are split with
	// shell quoting rules.
	Interpreter string `yaml:"interpreter" json:"interpreter"`
	// Framework is the module name passed to `-m`.
	Framework string `yaml:"framework" json:"framework"`
	// EntryPoint is the application file the framework runs.
	EntryPoint string `yaml:"entry_point" json:"entry_point"`
	// WorkDir is the working directory of the child. Empty means "inherit".
	WorkDir string `yaml:"work_dir,omitempty" json:"work_dir,omitempty"`

	Headless        bool            `yaml:"headless" json:"headless"`
	Port            int             `yaml:"port" json:"port"`
	ToolbarMode     ToolbarMode     `yaml:"toolbar_mode" json:"toolbar_mode"`
	DevelopmentMode bool            `yaml:"development_mode" json:"development_mode"`
	FileWatcherType FileWatcherType `yaml:"file_watcher_type" json:"file_watcher_type"`

	// OOMScoreAdj is applied to the launched process on Linux. Zero leaves
	// the score alone.
	OOMScoreAdj int `yaml:"oom_score_adj,omitempty" json:"oom_score_adj,omitempty"`
}

// DefaultLaunchConfig returns the configuration of a headless web app on port
// 8000, with a minimal toolbar and without file watching.
func DefaultLaunchConfig() LaunchConfig {
	return LaunchConfig{
		Interpreter:     "python3",
		Framework:       "streamlit",
		EntryPoint:      "main.py",
		Headless:        true,
		Port:            8000,
		ToolbarMode:     ToolbarModeMinimal,
		DevelopmentMode: false,
		FileWatcherType: FileWatcherNone,
	}
}

// Validate returns a *ConfigError for the first field that is missing or
// invalid, or nil if the configuration can be used to build a command.
func (c LaunchConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.Interpreter) == "":
		return configError("interpreter", c.Interpreter, "must not be empty")
	case strings.TrimSpace(c.Framework) == "":
		return configError("framework", c.Framework, "must not be empty")
	case strings.TrimSpace(c.EntryPoint) == "":
		return configError("entry_point", c.EntryPoint, "must not be empty")
	case c.Port < minPort || c.Port > maxPort:
		return configError("port", c.Port, "must be in the range 1-65535")
	case !c.ToolbarMode.IsValid():
		return configError("toolbar_mode", c.ToolbarMode, "must be one of %v", toolbarModes)
	case !c.FileWatcherType.IsValid():
		return configError("file_watcher_type", c.FileWatcherType, "must be one of %v", fileWatcherTypes)
	}
	return nil
}
