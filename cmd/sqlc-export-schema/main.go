// Command sqlc-export-schema writes the database schema, as created by the
// migrations, to the schema file that sqlc reads.
package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	"github.com/vboxhost/server-manager/internal/logging"
	"github.com/vboxhost/server-manager/internal/persistence"
)

// SqlcConfig models the minimal subset of the sqlc.yaml we need to parse.
type SqlcConfig struct {
	Version string `yaml:"version"`
	SQL     []struct {
		Schema string `yaml:"schema"`
	} `yaml:"sql"`
}

func main() {
	logging.ConsoleOnly()
	parseCliArgs()

	mainCtx, mainCtxCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer mainCtxCancel()

	schemaPath, err := schemaPathFromSqlcYAML("sqlc.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot determine schema path")
	}

	if err := saveSchema(mainCtx, schemaPath); err != nil {
		log.Fatal().Err(err).Msg("couldn't export schema")
	}
}

// saveSchema migrates an in-memory database, and writes its schema to the file.
func saveSchema(ctx context.Context, sqlOutPath string) error {
	db, err := persistence.OpenDB(ctx, "file::memory:")
	if err != nil {
		return err
	}
	defer db.Close()

	schema, err := db.ExportSchema(ctx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(sqlOutPath, []byte(schema), 0o644); err != nil {
		return fmt.Errorf("writing to %s: %w", sqlOutPath, err)
	}

	log.Info().Str("path", sqlOutPath).Msg("schema written to file")
	return nil
}

func parseCliArgs() {
	var quiet, debug, trace bool

	flag.BoolVar(&quiet, "quiet", false, "Only log warning-level and worse.")
	flag.BoolVar(&debug, "debug", false, "Enable debug-level logging.")
	flag.BoolVar(&trace, "trace", false, "Enable trace-level logging.")

	flag.Parse()

	zerolog.SetGlobalLevel(logging.CLILevel(quiet, debug, trace))
}

func schemaPathFromSqlcYAML(filename string) (string, error) {
	var sqlcConfig SqlcConfig

	sqlcConfigBytes, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(sqlcConfigBytes, &sqlcConfig); err != nil {
		return "", fmt.Errorf("cannot parse %s: %w", filename, err)
	}

	if sqlcConfig.Version != "2" {
		return "", fmt.Errorf("unexpected version %q in %s, expected \"2\"", sqlcConfig.Version, filename)
	}
	if len(sqlcConfig.SQL) == 0 {
		return "", fmt.Errorf("%s should contain at least one item in the 'sql' list", filename)
	}

	schema := sqlcConfig.SQL[0].Schema
	if schema == "" {
		return "", fmt.Errorf("%s should have a 'schema' key in the first 'sql' item", filename)
	}
	return schema, nil
}
