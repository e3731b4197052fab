//go:build mage

package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

// Update these with `go run ./cmd/update-version <version> [<release cycle>]`.
const (
	version      = "0.3.0-alpha1"
	releaseCycle = "alpha"
)

func gitHash() (string, error) {
	return sh.Output("git", "rev-parse", "--short", "HEAD")
}

// Show which version information would be embedded in executables
func Version() error {
	fmt.Printf("Package     : %s\n", goPkg)
	fmt.Printf("Version     : %s\n", version)
	fmt.Printf("Release     : %s\n", releaseCycle)

	hash, err := gitHash()
	if err != nil {
		return err
	}
	fmt.Printf("Git Hash    : %s\n", hash)
	return nil
}
