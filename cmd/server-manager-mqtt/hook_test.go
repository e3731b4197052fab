package main

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"bytes"
	"testing"

	mqtt "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/packets"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishPacket(topic, payload string) packets.Packet {
	return packets.Packet{
		FixedHeader: packets.FixedHeader{Type: packets.Publish, Qos: 1},
		TopicName:   topic,
		Payload:     []byte(payload),
	}
}

func testHook() (*EventLoggingHook, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return &EventLoggingHook{
		Logger:      zerolog.New(buf),
		TopicPrefix: "server-manager",
	}, buf
}

func TestHookConsoleEvent(t *testing.T) {
	hook, buf := testHook()
	client := &mqtt.Client{ID: "server-manager"}

	pk := publishPacket("server-manager/console",
		`{"id":"abc","command":"uptime","return_code":0,"timed_out":false}`)
	returned, err := hook.OnPacketRead(client, pk)
	require.NoError(t, err)
	assert.Equal(t, pk.TopicName, returned.TopicName)

	logged := buf.String()
	assert.Contains(t, logged, `"message":"console command"`)
	assert.Contains(t, logged, `"command":"uptime"`)
	assert.Contains(t, logged, `"returnCode":0`)
}

func TestHookVMEvent(t *testing.T) {
	hook, buf := testHook()
	client := &mqtt.Client{ID: "server-manager"}

	_, err := hook.OnPacketRead(client, publishPacket("server-manager/vms/0c3c5b8a",
		`{"id":"0c3c5b8a","name":"build-box","state":"running","previous_state":"poweroff"}`))
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, `"message":"VM state change"`)
	assert.Contains(t, logged, `"vm":"build-box"`)
	assert.Contains(t, logged, `"previousState":"poweroff"`)
}

func TestHookOtherMessages(t *testing.T) {
	hook, buf := testHook()
	client := &mqtt.Client{ID: "someone"}

	_, err := hook.OnPacketRead(client, publishPacket("elsewhere/topic", "binary"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "outside of the Server Manager topics")

	buf.Reset()
	_, err = hook.OnPacketRead(client, publishPacket("server-manager/console", "not JSON"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "could not unmarshal JSON")

	// Non-publish packets are ignored.
	buf.Reset()
	_, err = hook.OnPacketRead(client, packets.Packet{FixedHeader: packets.FixedHeader{Type: packets.Pingreq}})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
