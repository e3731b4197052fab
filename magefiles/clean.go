//go:build mage

package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Remove executables and other build output
func Clean() error {
	if err := sh.Run(mg.GoCmd(), "clean"); err != nil {
		return err
	}

	for _, exeName := range executables {
		if err := rm(exeName, exeName+".exe"); err != nil {
			return err
		}
	}
	return nil
}

// Remove the logs and the command history of the development server
func CleanDevData() error {
	return rm("log", "server-manager.sqlite", "server-manager.sqlite-wal", "server-manager.sqlite-shm")
}

func rm(path ...string) error {
	for _, p := range path {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}
