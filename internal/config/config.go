// Package config loads the Server Manager configuration file.
package config

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v2"

	"github.com/vboxhost/server-manager/internal/eventbus"
	"github.com/vboxhost/server-manager/internal/launcher"
)

const (
	configFilename = "server-manager.yaml"

	latestConfigVersion = 1
)

// Conf is the complete configuration of the launcher and the API server.
type Conf struct {
	Meta ConfMeta `yaml:"_meta" json:"_meta"`

	Launcher launcher.LaunchConfig     `yaml:"launcher" json:"launcher"`
	Logging  Logging                   `yaml:"logging" json:"logging"`
	VBox     VBox                      `yaml:"vbox" json:"vbox"`
	Console  Console                   `yaml:"console" json:"console"`
	API      API                       `yaml:"api" json:"api"`
	MQTT     eventbus.MQTTClientConfig `yaml:"mqtt" json:"mqtt"`

	// Password protects the API. Either plain text or a bcrypt hash. Empty
	// disables password protection.
	Password string `yaml:"password" json:"-"`
}

// ConfMeta allows recognising old configuration files.
type ConfMeta struct {
	Version int `yaml:"version" json:"version"`
}

type Logging struct {
	// Dir is the directory that contains the host log and the per-VM logs.
	Dir string `yaml:"dir" json:"dir"`
	// ConsoleLevel is the minimum level logged to the terminal. Empty means
	// "same as the file".
	ConsoleLevel string `yaml:"console_level,omitempty" json:"console_level,omitempty"`
	// MaxSizeMB is the size at which a log file is rotated.
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `yaml:"max_backups" json:"max_backups"`
}

type VBox struct {
	Executable      string   `yaml:"executable" json:"executable"`
	MetricsInterval Duration `yaml:"metrics_interval" json:"metrics_interval"`
}

type Console struct {
	// Timeout of a single command. Zero means no timeout.
	Timeout Duration `yaml:"timeout" json:"timeout"`
	// Database is the DSN of the SQLite database holding the command history.
	Database string `yaml:"database" json:"database"`
	// HistoryLimit is the maximum number of commands returned by the API.
	HistoryLimit int `yaml:"history_limit" json:"history_limit"`
}

type API struct {
	Listen string `yaml:"listen" json:"listen"`
}

// DefaultConfig returns the default configuration. The optional functions are
// called to modify it, which is mostly useful in unit tests.
func DefaultConfig(override ...func(c *Conf)) Conf {
	c := Conf{
		Meta:     ConfMeta{Version: latestConfigVersion},
		Launcher: launcher.DefaultLaunchConfig(),
		Logging: Logging{
			Dir:        "log",
			MaxSizeMB:  20,
			MaxBackups: 72,
		},
		VBox: VBox{
			Executable:      "/usr/bin/vboxmanage",
			MetricsInterval: Duration(200 * time.Millisecond),
		},
		Console: Console{
			Timeout:      Duration(time.Hour),
			Database:     "server-manager.sqlite",
			HistoryLimit: 100,
		},
		API: API{
			Listen: "localhost:8001",
		},
		MQTT: eventbus.MQTTClientConfig{
			TopicPrefix: "server-manager",
		},
	}
	for _, fn := range override {
		fn(&c)
	}
	return c
}

// loadConf parses the given file on top of the default configuration.
// The returned configuration is always usable, even when there is an error.
func loadConf(filename string) (Conf, error) {
	c := DefaultConfig()

	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return c, err
	}
	log.Info().Str("file", filename).Msg("loading configuration")

	if err := yaml.Unmarshal(yamlFile, &c); err != nil {
		return DefaultConfig(), fmt.Errorf("unmarshal YAML from %s: %w", filename, err)
	}

	if c.Meta.Version != latestConfigVersion {
		log.Warn().
			Str("file", filename).
			Int("version", c.Meta.Version).
			Int("expectedVersion", latestConfigVersion).
			Msg("configuration file has an unexpected version, some settings may be ignored")
	}
	return c, nil
}

// Write saves the configuration to the given file.
func (c *Conf) Write(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("converting configuration to YAML: %w", err)
	}

	tempFilename := filename + "~"
	if err := os.WriteFile(tempFilename, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tempFilename, err)
	}
	if err := os.Rename(tempFilename, filename); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tempFilename, filename, err)
	}
	return nil
}
