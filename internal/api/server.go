// Package api implements the HTTP API of the Server Manager.
package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/ziflex/lecho/v3"

	"github.com/vboxhost/server-manager/internal/auth"
	"github.com/vboxhost/server-manager/internal/vbox"
)

const (
	shutdownTimeout = 5 * time.Second
	vmInfoTimeout   = 10 * time.Second
	guestRunTimeout = 10 * time.Minute
	authRealm       = "Server Manager"
	pathVersion     = "/api/version"
	defaultListen   = "localhost:8001"
)

// ServerManager implements the API handlers.
type ServerManager struct {
	vmStatus   VMStatusService
	vboxManage VBoxService
	console    ConsoleService
	password   *auth.PasswordChecker
	users      vbox.Users

	// Number of commands returned by the history when the client does not
	// ask for a specific amount.
	historyLimit   int
	defaultTimeout time.Duration
}

type Options struct {
	HistoryLimit   int
	DefaultTimeout time.Duration

	// Users are the guest accounts available for running commands inside VMs.
	Users vbox.Users
}

func NewServerManager(
	vmStatus VMStatusService,
	vboxManage VBoxService,
	console ConsoleService,
	password *auth.PasswordChecker,
	options Options,
) *ServerManager {
	return &ServerManager{
		vmStatus:       vmStatus,
		vboxManage:     vboxManage,
		console:        console,
		password:       password,
		users:          options.Users,
		historyLimit:   options.HistoryLimit,
		defaultTimeout: options.DefaultTimeout,
	}
}

// NewEcho returns the Echo router with all the API routes and middleware.
func (s *ServerManager) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Hook Zerolog onto Echo:
	logger := lecho.From(log.Logger)
	e.Logger = logger
	e.Use(lecho.Middleware(lecho.Config{
		Logger: logger,
	}))
	e.Use(middleware.Recover())

	if s.password.Enabled() {
		e.Use(middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == pathVersion
			},
			Validator: func(username, password string, c echo.Context) (bool, error) {
				ok := s.password.Check(password)
				if !ok {
					logger := requestLogger(c)
					logger.Warn().Str("username", username).Msg("api: wrong password")
				}
				return ok, nil
			},
			Realm: authRealm,
		}))
	} else {
		log.Warn().Msg("api: no password configured, anyone who can reach the API can run commands")
	}

	s.registerRoutes(e)
	return e
}

func (s *ServerManager) registerRoutes(e *echo.Echo) {
	e.GET(pathVersion, s.GetVersion)

	e.GET("/api/vms", s.FetchVMs)
	e.GET("/api/vms/:id", s.FetchVMInfo)
	e.GET("/api/vms/:id/metrics", s.FetchVMMetrics)
	e.GET("/api/vms/:id/users", s.FetchVMUsers)
	e.POST("/api/vms/:id/guest-run", s.GuestRun)

	e.GET("/api/console/history", s.FetchCommandHistory)
	e.GET("/api/console/history/:id", s.FetchCommandResult)
	e.DELETE("/api/console/history", s.ClearCommandHistory)
	e.POST("/api/console/run", s.RunCommand)
}

// Serve runs the HTTP server until the context is closed.
func Serve(ctx context.Context, e *echo.Echo, listen string) error {
	if listen == "" {
		listen = defaultListen
	}
	log.Info().Str("listen", listen).Msg("api: starting HTTP server")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(listen)
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("api: shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("api: error shutting down HTTP server")
	}
	<-serverErr
	return nil
}
