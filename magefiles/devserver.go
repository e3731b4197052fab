//go:build mage

package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Run the API server and the MQTT broker, with debug logging
func DevServer(ctx context.Context) {
	mg.CtxDeps(ctx, DevServerMQTT, DevServerAPI)
}

// Run the API server with debug logging
func DevServerAPI() error {
	env := map[string]string{
		"SERVER_MANAGER_API_LISTEN": "localhost:8001",
	}
	return sh.RunWithV(env, mg.GoCmd(), "run", "./cmd/server-manager-api", "-debug")
}

// Run the MQTT broker, which logs all events of the API server
func DevServerMQTT() error {
	return sh.RunV(mg.GoCmd(), "run", "./cmd/server-manager-mqtt", "-listen", "localhost:1883")
}
