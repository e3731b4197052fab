//go:build mage

package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	goPkg = "github.com/vboxhost/server-manager"
)

// Executables built by the Build target, by package.
var executables = map[string]string{
	"./cmd/server-manager":      "server-manager",
	"./cmd/server-manager-api":  "server-manager-api",
	"./cmd/server-manager-mqtt": "server-manager-mqtt",
}

// Build the launcher, the API server, and the development MQTT broker
func Build() {
	mg.Deps(ServerManager, ServerManagerAPI, ServerManagerMQTT)
}

// Build the launcher of the web application
func ServerManager() error {
	return build("./cmd/server-manager")
}

// Build the API server
func ServerManagerAPI() error {
	return build("./cmd/server-manager-api")
}

// Build the MQTT broker for development
func ServerManagerMQTT() error {
	return build("./cmd/server-manager-mqtt")
}

func build(exePackage string) error {
	flags, err := buildFlags()
	if err != nil {
		return err
	}

	args := []string{"build", "-v"}
	args = append(args, flags...)
	args = append(args, exePackage)
	return sh.RunV(mg.GoCmd(), args...)
}

func buildFlags() ([]string, error) {
	hash, err := gitHash()
	if err != nil {
		return nil, err
	}

	ldflags := "" +
		fmt.Sprintf(" -X %s/internal/appinfo.ApplicationVersion=%s", goPkg, version) +
		fmt.Sprintf(" -X %s/internal/appinfo.ApplicationGitHash=%s", goPkg, hash) +
		fmt.Sprintf(" -X %s/internal/appinfo.ReleaseCycle=%s", goPkg, releaseCycle)

	flags := []string{
		"-ldflags=" + ldflags,
	}
	return flags, nil
}
