package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"fmt"
	"log/slog"

	mqtt "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"github.com/rs/zerolog/log"
)

func runMQTTServer(ctx context.Context, address, topicPrefix string) error {
	// slog is hooked up to zerolog by the logging package.
	server := mqtt.New(&mqtt.Options{
		Logger: slog.Default(),
	})

	// Allow all connections.
	if err := server.AddHook(new(auth.AllowHook), nil); err != nil {
		return fmt.Errorf("allowing all connections: %w", err)
	}

	hook := EventLoggingHook{
		Logger:      log.Logger,
		TopicPrefix: topicPrefix,
	}
	if err := server.AddHook(&hook, nil); err != nil {
		return fmt.Errorf("adding event-logging hook: %w", err)
	}

	tcp := listeners.NewTCP(listeners.Config{ID: "server-manager-dev", Address: address})
	tcpLogger := log.With().Str("address", address).Logger()
	if err := server.AddListener(tcp); err != nil {
		return fmt.Errorf("listening for TCP connections on %s: %w", address, err)
	}
	tcpLogger.Info().Str("topicPrefix", topicPrefix).Msg("listening for TCP connections")

	if err := server.Serve(); err != nil {
		return fmt.Errorf("starting the server: %w", err)
	}

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	if err := server.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing MQTT server")
	}
	log.Info().Msg("shutting down")
	return nil
}
