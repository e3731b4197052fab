package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"encoding/json"
	"strings"

	mqtt "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/packets"
	"github.com/rs/zerolog"

	"github.com/vboxhost/server-manager/internal/eventbus"
)

// EventLoggingHook logs the Server Manager events that are published to the
// broker.
type EventLoggingHook struct {
	mqtt.HookBase
	Logger      zerolog.Logger
	TopicPrefix string
}

func (h *EventLoggingHook) ID() string           { return "event-logger" }
func (h *EventLoggingHook) Provides(b byte) bool { return b == mqtt.OnPacketRead }

// OnPacketRead is called when a new packet is received from a client.
func (h *EventLoggingHook) OnPacketRead(cl *mqtt.Client, pk packets.Packet) (packets.Packet, error) {
	if pk.FixedHeader.Type != packets.Publish {
		return pk, nil
	}

	logger := h.Logger.With().
		Str("client", cl.ID).
		Str("topic", pk.TopicName).
		Uint8("qos", pk.FixedHeader.Qos).
		Logger()

	topic, ok := strings.CutPrefix(pk.TopicName, h.TopicPrefix)
	if !ok {
		logger.Info().Int("size", len(pk.Payload)).Msg("message outside of the Server Manager topics")
		return pk, nil
	}

	switch {
	case topic == string(eventbus.TopicConsole):
		var event eventbus.ConsoleCommandEvent
		if !h.unmarshal(logger, pk.Payload, &event) {
			break
		}
		entry := logger.Info().
			Str("id", event.ID).
			Str("command", event.Command).
			Bool("timedOut", event.TimedOut)
		if event.ReturnCode != nil {
			entry = entry.Int("returnCode", *event.ReturnCode)
		}
		entry.Msg("console command")

	case strings.HasPrefix(topic, string(eventbus.TopicVMState)):
		var event eventbus.VMStateEvent
		if !h.unmarshal(logger, pk.Payload, &event) {
			break
		}
		logger.Info().
			Str("vm", event.Name).
			Str("state", event.State).
			Str("previousState", event.PreviousState).
			Msg("VM state change")

	default:
		var payload any
		if h.unmarshal(logger, pk.Payload, &payload) {
			logger.Info().Interface("payload", payload).Msg("unknown event")
		}
	}

	return pk, nil
}

func (h *EventLoggingHook) unmarshal(logger zerolog.Logger, payload []byte, target any) bool {
	if err := json.Unmarshal(payload, target); err != nil {
		logger.Warn().
			AnErr("cause", err).
			Str("payload", string(payload)).
			Msg("could not unmarshal JSON")
		return false
	}
	return true
}
