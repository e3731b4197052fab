//go:build tools

// This file is a bit of a hacky workaround a limitation of `go mod tidy`. It
// will never be built, but `go mod tidy` will see the packages imported here as
// dependencies of the Server Manager, and not remove them from `go.mod`.
//
// sqlc and goose are listed in the `tool` block of go.mod instead. mockgen
// stays here, as the `//go:generate` lines call it with `go run`.

package main

import (
	// Mock generator for the `mocks` packages:
	_ "github.com/golang/mock/mockgen"

	// Our build tool. Normally this isn't necessary, but it's needed to be able
	// to build the tool when `go mod vendor` has been used to vendor the
	// dependencies.
	_ "github.com/magefile/mage/mage"
)
