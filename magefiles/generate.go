//go:build mage

package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Generate code (database queries and test mocks)
func Generate() {
	mg.Deps(GenerateGo)
}

// Generate the sqlc database code and the gomock mocks
func GenerateGo(ctx context.Context) error {
	r := NewRunner(ctx)
	// The sqlc schema is exported from the migrations, so that those are the
	// single source of truth.
	r.RunGo("run", "./cmd/sqlc-export-schema")
	r.RunGo("tool", "sqlc", "generate")
	r.RunGo("generate", "./internal/...")
	if err := r.Wait(); err != nil {
		return err
	}

	// The generators always produce UNIX line-ends. This creates false file
	// modifications with Git. Convert them to DOS line-ends to avoid this.
	if runtime.GOOS == "windows" {
		unix2dosModifiedFiles(".gen.go$")
		unix2dosModifiedFiles("internal/persistence/sqlc/")
	}
	return nil
}

// unix2dosModifiedFiles changes line ends in files Git considers modified that match the given pattern.
func unix2dosModifiedFiles(pattern string) {
	// Get modified files from Git. Expected lines like:
	//
	// 	M internal/api/mocks/interfaces_mock.gen.go
	// 	M internal/persistence/sqlc/query_command_results.sql.go
	// ?? magefiles/generate.go

	gitStatus, err := sh.Output("git", "status", "--porcelain")
	if err != nil {
		panic(fmt.Sprintf("error running 'git status': %s", err))
	}

	// Construct a list of modified files that match the pattern.
	patternRe := regexp.MustCompile(pattern)
	modified := []string{}
	for _, line := range strings.Split(gitStatus, "\n") {
		if len(line) < 4 || line[0:3] != " M " {
			continue
		}
		if !patternRe.MatchString(line[3:]) {
			continue
		}
		modified = append(modified, line[3:])
	}

	// Run unix2dos on all found files.
	for _, path := range modified {
		unix2dos(path)
	}
}

func unix2dos(filename string) {
	if mg.Verbose() {
		fmt.Printf("unix2dos %s\n", filename)
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		panic(fmt.Sprintf("error converting UNIX to DOS line ends: %v", err))
	}

	lines := bytes.Split(contents, []byte("\n"))
	err = os.WriteFile(filename, bytes.Join(lines, []byte("\r\n")), os.ModePerm)
	if err != nil {
		panic(fmt.Sprintf("error writing DOS line ends: %v", err))
	}
}
