package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"

	"github.com/rs/zerolog/log"
)

const mageFile = "magefiles/version.go"

// updateMagefile changes the version constants in the Mage file.
// Returns whether the file actually changed.
func updateMagefile(filename, newVersion, releaseCycle string) (bool, error) {
	logger := log.With().Str("filename", filename).Logger()

	// Parse the mage file as AST.
	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, filename, nil, parser.SkipObjectResolution|parser.ParseComments)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", filename, err)
	}

	replacements := map[string]string{
		"version":      newVersion,
		"releaseCycle": releaseCycle,
	}

	// Only constant declarations are considered, so that identically named
	// variables elsewhere are left alone.
	anyFieldChanged := false
	ast.Inspect(astFile, func(node ast.Node) bool {
		genDecl, ok := node.(*ast.GenDecl)
		if !ok {
			return true
		}
		if genDecl.Tok != token.CONST {
			return false
		}

		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, name := range valueSpec.Names {
				replacement, ok := replacements[name.Name]
				if !ok || i >= len(valueSpec.Values) {
					continue
				}
				lit, ok := valueSpec.Values[i].(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					continue
				}

				newValue := fmt.Sprintf("%q", replacement)
				if lit.Value == newValue {
					continue
				}
				logger.Info().
					Str("name", name.Name).
					Str("old", lit.Value).
					Str("new", newValue).
					Msg("updating mage version file")
				lit.Value = newValue
				anyFieldChanged = true
			}
		}
		return false
	})

	if !anyFieldChanged {
		return false, nil
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, astFile); err != nil {
		return false, fmt.Errorf("formatting updated %s: %w", filename, err)
	}

	stat, err := os.Stat(filename)
	if err != nil {
		return false, err
	}
	tempFilename := filename + "~"
	if err := os.WriteFile(tempFilename, buf.Bytes(), stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", tempFilename, err)
	}
	if err := os.Rename(tempFilename, filename); err != nil {
		return false, fmt.Errorf("renaming %s to %s: %w", tempFilename, filename, err)
	}
	return true, nil
}
