package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vboxhost/server-manager/internal/api"
	"github.com/vboxhost/server-manager/internal/appinfo"
	"github.com/vboxhost/server-manager/internal/auth"
	"github.com/vboxhost/server-manager/internal/config"
	"github.com/vboxhost/server-manager/internal/console"
	"github.com/vboxhost/server-manager/internal/eventbus"
	"github.com/vboxhost/server-manager/internal/logging"
	"github.com/vboxhost/server-manager/internal/persistence"
	"github.com/vboxhost/server-manager/internal/vbox"
	"github.com/vboxhost/server-manager/internal/vmstatus"
	"github.com/vboxhost/server-manager/pkg/sysinfo"
)

// Timeout of opening & migrating the database at startup.
const dbOpenTimeout = 1 * time.Minute

var cliArgs struct {
	quiet, debug, trace bool
	version             bool
	hashPassword        string

	configFile string
	listen     string
}

func main() {
	logging.ConsoleOnly()
	parseCliArgs()

	switch {
	case cliArgs.version:
		fmt.Println(appinfo.FormattedApplicationInfo())
		return
	case cliArgs.hashPassword != "":
		hash, err := auth.HashPassword(cliArgs.hashPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("could not hash password")
		}
		fmt.Println(hash)
		return
	}

	configService := config.NewService(cliArgs.configFile)
	if _, err := configService.Load(); err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	conf := configService.Get()
	if cliArgs.listen != "" {
		conf.API.Listen = cliArgs.listen
	}

	consoleLevel, err := logging.ParseConsoleLevel(conf.Logging.ConsoleLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid logging configuration")
	}
	logFiles, err := logging.Setup(logging.Options{
		Dir:          conf.Logging.Dir,
		Level:        logging.CLILevel(cliArgs.quiet, cliArgs.debug, cliArgs.trace),
		ConsoleLevel: consoleLevel,
		MaxSizeMB:    conf.Logging.MaxSizeMB,
		MaxBackups:   conf.Logging.MaxBackups,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up logging")
	}
	defer func() {
		if err := logFiles.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log files: %v\n", err)
		}
	}()
	logStartup()

	mainCtx, mainCtxCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer mainCtxCancel()

	if err := run(mainCtx, conf); err != nil {
		log.Error().Err(err).Msg("shutting down after error")
		logFiles.Close()
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}

func run(ctx context.Context, conf *config.Conf) error {
	dbCtx, dbCtxCancel := context.WithTimeout(ctx, dbOpenTimeout)
	defer dbCtxCancel()
	db, err := persistence.OpenDB(dbCtx, conf.Console.Database)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", conf.Console.Database, err)
	}
	defer db.Close()

	if count, err := db.CountCommandResults(dbCtx); err != nil {
		log.Warn().Err(err).Msg("could not count stored console commands")
	} else {
		log.Info().Int("commands", count).Str("database", conf.Console.Database).Msg("console history loaded")
	}

	users, err := vbox.LoadUsers()
	if err != nil {
		// Guest commands are not available without users, everything else still works.
		log.Error().Err(err).Msg("could not load guest users")
		users = vbox.Users{}
	}

	timeService := clock.New()
	broker := eventbus.NewBroker()
	mqttForwarder, err := eventbus.NewMQTTForwarder(conf.MQTT)
	switch {
	case errors.Is(err, eventbus.ErrNoBroker):
		log.Debug().Msg("no MQTT broker configured, not publishing events")
	case err != nil:
		return fmt.Errorf("configuring MQTT client: %w", err)
	default:
		broker.AddForwarder(mqttForwarder)
	}

	vboxManage := vbox.New(conf.VBox.Executable)
	daemon := vmstatus.NewDaemon(vboxManage, broker, timeService, conf.VBox.MetricsInterval.D())
	consoleRunner := console.NewRunner(db, broker, timeService)

	serverManager := api.NewServerManager(
		daemon, vboxManage, consoleRunner,
		auth.NewPasswordChecker(conf.Password),
		api.Options{
			HistoryLimit:   conf.Console.HistoryLimit,
			DefaultTimeout: conf.Console.Timeout.D(),
			Users:          users,
		},
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		daemon.Run(groupCtx)
		return nil
	})
	group.Go(func() error {
		db.PeriodicWALCheckpoint(groupCtx)
		return nil
	})
	if mqttForwarder != nil {
		group.Go(func() error {
			return mqttForwarder.Run(groupCtx)
		})
	}
	group.Go(func() error {
		return api.Serve(groupCtx, serverManager.NewEcho(), conf.API.Listen)
	})

	return group.Wait()
}

func parseCliArgs() {
	flag.BoolVar(&cliArgs.quiet, "quiet", false, "Only log warning-level and worse.")
	flag.BoolVar(&cliArgs.debug, "debug", false, "Enable debug-level logging.")
	flag.BoolVar(&cliArgs.trace, "trace", false, "Enable trace-level logging.")
	flag.BoolVar(&cliArgs.version, "version", false, "Shows the application version, then exits.")
	flag.StringVar(&cliArgs.hashPassword, "hash-password", "", "Prints the bcrypt hash of the given password, for use in the configuration file, then exits.")

	flag.StringVar(&cliArgs.configFile, "config", "", "Configuration file, defaults to server-manager.yaml in the current directory.")
	flag.StringVar(&cliArgs.listen, "listen", "", "Address the API listens on, like \"localhost:8001\".")

	flag.Parse()
}

func logStartup() {
	osDetail, err := sysinfo.Description()
	if err != nil {
		osDetail = err.Error()
	}
	log.Info().
		Str("version", appinfo.ApplicationVersion).
		Str("git", appinfo.ApplicationGitHash).
		Str("os", runtime.GOOS).
		Str("osDetail", osDetail).
		Str("arch", runtime.GOARCH).
		Int("pid", os.Getpid()).
		Msgf("starting %v API server", appinfo.ApplicationName)
}
