package config

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Environment variables that override settings from the configuration file.
const (
	EnvPort        = "SERVER_MANAGER_PORT"
	EnvEntryPoint  = "SERVER_MANAGER_ENTRY_POINT"
	EnvHeadless    = "SERVER_MANAGER_HEADLESS"
	EnvInterpreter = "SERVER_MANAGER_INTERPRETER"
	EnvPassword    = "SERVER_MANAGER_PASSWORD"
	EnvAPIListen   = "SERVER_MANAGER_API_LISTEN"
)

// ApplyEnvironment overrides settings with the non-empty environment
// variables returned by getenv. Pass os.Getenv in production code.
func (c *Conf) ApplyEnvironment(getenv func(string) string) error {
	strOverrides := map[string]*string{
		EnvEntryPoint:  &c.Launcher.EntryPoint,
		EnvInterpreter: &c.Launcher.Interpreter,
		EnvPassword:    &c.Password,
		EnvAPIListen:   &c.API.Listen,
	}
	for envName, target := range strOverrides {
		if value := getenv(envName); value != "" {
			logOverride(envName)
			*target = value
		}
	}

	if value := getenv(EnvPort); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvPort, value, err)
		}
		logOverride(EnvPort)
		c.Launcher.Port = port
	}

	if value := getenv(EnvHeadless); value != "" {
		headless, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvHeadless, value, err)
		}
		logOverride(EnvHeadless)
		c.Launcher.Headless = headless
	}

	return nil
}

func logOverride(envName string) {
	// The value is not logged, as it could be a password.
	log.Debug().Str("variable", envName).Msg("configuration overridden from environment")
}
