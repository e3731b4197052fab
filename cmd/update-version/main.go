// Command update-version changes the version number that is embedded in the
// executables.
package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vboxhost/server-manager/internal/logging"
)

var cliArgs struct {
	quiet, debug bool

	newVersion   string
	releaseCycle string
}

func main() {
	logging.ConsoleOnly()
	parseCliArgs()

	log.Info().
		Str("version", cliArgs.newVersion).
		Str("releaseCycle", cliArgs.releaseCycle).
		Msg("updating version")

	changed, err := updateMagefile(mageFile, cliArgs.newVersion, cliArgs.releaseCycle)
	if err != nil {
		log.Fatal().Err(err).Msg("could not update the version")
	}
	if !changed {
		log.Warn().Msg("version was already set, nothing changed")
		return
	}
	log.Info().Msg("version updated, commit the change and tag it")
}

func parseCliArgs() {
	flag.BoolVar(&cliArgs.quiet, "quiet", false, "Only log warning-level and worse.")
	flag.BoolVar(&cliArgs.debug, "debug", false, "Enable debug-level logging.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <version> [<release cycle>]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	zerologLevel := logging.CLILevel(cliArgs.quiet, cliArgs.debug, false)
	log.Logger = log.Logger.Level(zerologLevel)

	switch flag.NArg() {
	case 1:
		cliArgs.newVersion = flag.Arg(0)
		cliArgs.releaseCycle = releaseCycleFor(cliArgs.newVersion)
	case 2:
		cliArgs.newVersion = flag.Arg(0)
		cliArgs.releaseCycle = flag.Arg(1)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// releaseCycleFor derives the release cycle from the version suffix, like
// "alpha" for "1.2-alpha3".
func releaseCycleFor(version string) string {
	for _, cycle := range []string{"alpha", "beta", "rc"} {
		if strings.Contains(version, "-"+cycle) {
			return cycle
		}
	}
	return "release"
}
