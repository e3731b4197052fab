package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/vboxhost/server-manager/internal/appinfo"
	"github.com/vboxhost/server-manager/internal/config"
	"github.com/vboxhost/server-manager/internal/launcher"
	"github.com/vboxhost/server-manager/internal/logging"
	"github.com/vboxhost/server-manager/pkg/sysinfo"
)

var cliArgs struct {
	quiet, debug, trace bool
	version             bool

	configFile  string
	port        int
	entryPoint  string
	interpreter string
	headless    bool

	// Names of the flags given on the command line.
	given map[string]bool
}

func main() {
	logging.ConsoleOnly()
	parseCliArgs()
	if cliArgs.version {
		fmt.Println(appinfo.FormattedApplicationInfo())
		return
	}

	configService := config.NewService(cliArgs.configFile)
	if _, err := configService.Load(); err != nil {
		log.Error().Err(err).Msg("could not load configuration")
		os.Exit(launcher.ExitCodeConfigError)
	}
	conf := configService.Get()
	applyCliOverrides(&conf.Launcher)

	files, err := setupLogging(conf.Logging)
	if err != nil {
		log.Error().Err(err).Msg("could not set up logging")
		os.Exit(launcher.ExitCodeConfigError)
	}
	logStartup()

	status, err := launcher.New().Run(context.Background(), conf.Launcher)
	if err != nil {
		log.Error().Err(err).Int("exitCode", status.Code).Msg("launcher failed")
	}

	if err := files.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log files: %v\n", err)
	}
	os.Exit(status.Code)
}

func parseCliArgs() {
	flag.BoolVar(&cliArgs.quiet, "quiet", false, "Only log warning-level and worse.")
	flag.BoolVar(&cliArgs.debug, "debug", false, "Enable debug-level logging.")
	flag.BoolVar(&cliArgs.trace, "trace", false, "Enable trace-level logging.")
	flag.BoolVar(&cliArgs.version, "version", false, "Shows the application version, then exits.")

	flag.StringVar(&cliArgs.configFile, "config", "", "Configuration file, defaults to server-manager.yaml in the current directory.")
	flag.IntVar(&cliArgs.port, "port", 0, "Port of the web application.")
	flag.StringVar(&cliArgs.entryPoint, "entry", "", "Application file to run.")
	flag.StringVar(&cliArgs.interpreter, "interpreter", "", "Command that runs the web framework, like \"python3\" or \"uv run python\".")
	flag.BoolVar(&cliArgs.headless, "headless", true, "Do not open a browser when the web application starts.")

	flag.Parse()

	cliArgs.given = map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		cliArgs.given[f.Name] = true
	})
}

// applyCliOverrides overrides the configuration with the flags that were
// given on the command line.
func applyCliOverrides(launchConfig *launcher.LaunchConfig) {
	if cliArgs.given["port"] {
		launchConfig.Port = cliArgs.port
	}
	if cliArgs.given["entry"] {
		launchConfig.EntryPoint = cliArgs.entryPoint
	}
	if cliArgs.given["interpreter"] {
		launchConfig.Interpreter = cliArgs.interpreter
	}
	if cliArgs.given["headless"] {
		launchConfig.Headless = cliArgs.headless
	}
}

func setupLogging(conf config.Logging) (*logging.Files, error) {
	consoleLevel, err := logging.ParseConsoleLevel(conf.ConsoleLevel)
	if err != nil {
		return nil, err
	}
	return logging.Setup(logging.Options{
		Dir:          conf.Dir,
		Level:        logging.CLILevel(cliArgs.quiet, cliArgs.debug, cliArgs.trace),
		ConsoleLevel: consoleLevel,
		MaxSizeMB:    conf.MaxSizeMB,
		MaxBackups:   conf.MaxBackups,
	})
}

func logStartup() {
	osDetail, err := sysinfo.Description()
	if err != nil {
		osDetail = err.Error()
	}
	log.Info().
		Str("version", appinfo.ApplicationVersion).
		Str("git", appinfo.ApplicationGitHash).
		Str("releaseCycle", appinfo.ReleaseCycle).
		Str("os", runtime.GOOS).
		Str("osDetail", osDetail).
		Str("arch", runtime.GOARCH).
		Int("pid", os.Getpid()).
		Strs("args", os.Args).
		Msgf("starting %v", appinfo.ApplicationName)
}
