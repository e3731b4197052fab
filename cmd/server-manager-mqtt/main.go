// Command server-manager-mqtt is an MQTT broker for development. It accepts
// all connections, and logs the events published by the Server Manager.
package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/vboxhost/server-manager/internal/appinfo"
	"github.com/vboxhost/server-manager/internal/config"
	"github.com/vboxhost/server-manager/internal/logging"
	"github.com/vboxhost/server-manager/pkg/sysinfo"
)

var cliArgs struct {
	quiet, debug, trace bool

	address     string
	topicPrefix string
}

func main() {
	logging.ConsoleOnly()
	parseCliArgs()

	// Only log to the console, this is a development tool.
	if _, err := logging.Setup(logging.Options{
		Level:        logging.CLILevel(cliArgs.quiet, cliArgs.debug, cliArgs.trace),
		ConsoleLevel: logging.CLILevel(cliArgs.quiet, cliArgs.debug, cliArgs.trace),
	}); err != nil {
		log.Fatal().Err(err).Msg("could not set up logging")
	}

	osDetail, err := sysinfo.Description()
	if err != nil {
		osDetail = err.Error()
	}
	log.Info().
		Str("os", runtime.GOOS).
		Str("osDetail", osDetail).
		Str("arch", runtime.GOARCH).
		Msgf("starting %v MQTT Server", appinfo.ApplicationName)

	mainCtx, mainCtxCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer mainCtxCancel()

	if err := runMQTTServer(mainCtx, cliArgs.address, cliArgs.topicPrefix); err != nil {
		log.Error().Err(err).Msg("MQTT server failed")
		os.Exit(2)
	}
}

func parseCliArgs() {
	flag.BoolVar(&cliArgs.quiet, "quiet", false, "Only log warning-level and worse.")
	flag.BoolVar(&cliArgs.debug, "debug", false, "Enable debug-level logging.")
	flag.BoolVar(&cliArgs.trace, "trace", false, "Enable trace-level logging.")

	flag.StringVar(&cliArgs.address, "listen", ":1883", "Address to listen on for MQTT connections.")
	flag.StringVar(&cliArgs.topicPrefix, "prefix", config.DefaultConfig().MQTT.TopicPrefix,
		"Topic prefix used by the Server Manager.")

	flag.Parse()
}
