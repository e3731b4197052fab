package eventbus

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"github.com/rs/zerolog/log"
)

const (
	defaultClientID   = "server-manager"
	keepAlive         = 30 // seconds
	connectRetryDelay = 10 * time.Second
	publishQueueSize  = 64

	mqttQoS = 1

	// Reason code of a PUBACK when the message was accepted, but nobody
	// subscribed to its topic.
	reasonNoMatchingSubscribers = 16
)

// ErrNoBroker is returned by NewMQTTForwarder when no broker is configured.
var ErrNoBroker = errors.New("no MQTT broker configured")

// publisher is the part of *autopaho.ConnectionManager used for publishing.
type publisher interface {
	Publish(ctx context.Context, p *paho.Publish) (*paho.PublishResponse, error)
}

type mqttMessage struct {
	topic   string
	payload []byte
}

// MQTTForwarder publishes every event as JSON on an MQTT broker. Messages are
// queued and published from a single goroutine, so that a slow or unreachable
// broker never blocks the component that broadcasts the event.
type MQTTForwarder struct {
	config      autopaho.ClientConfig
	conn        publisher
	topicPrefix string

	queue chan mqttMessage
}

var _ Forwarder = (*MQTTForwarder)(nil)

// MQTTClientConfig contains the MQTT client configuration.
type MQTTClientConfig struct {
	BrokerURL   string `yaml:"broker" json:"broker"`
	ClientID    string `yaml:"client_id" json:"client_id"`
	TopicPrefix string `yaml:"topic_prefix" json:"topic_prefix"`

	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"-"`
}

// NewMQTTForwarder returns an MQTT forwarder for the given configuration.
// Returns ErrNoBroker when the broker URL is empty.
func NewMQTTForwarder(config MQTTClientConfig) (*MQTTForwarder, error) {
	config.BrokerURL = strings.TrimSpace(config.BrokerURL)
	config.ClientID = strings.TrimSpace(config.ClientID)

	if config.BrokerURL == "" {
		return nil, ErrNoBroker
	}
	if config.ClientID == "" {
		config.ClientID = defaultClientID
	}

	serverURL, err := url.Parse(config.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("parsing MQTT broker URL %q: %w", config.BrokerURL, err)
	}

	client := MQTTForwarder{
		topicPrefix: strings.TrimRight(config.TopicPrefix, "/"),
		queue:       make(chan mqttMessage, publishQueueSize),
	}
	client.config = autopaho.ClientConfig{
		BrokerUrls:        []*url.URL{serverURL},
		KeepAlive:         keepAlive,
		ConnectRetryDelay: connectRetryDelay,
		OnConnectionUp:    client.onConnectionUp,
		OnConnectError:    client.onConnectionError,
		ClientConfig: paho.ClientConfig{
			ClientID:           config.ClientID,
			OnClientError:      client.onClientError,
			OnServerDisconnect: client.onServerDisconnect,
		},
	}
	client.config.SetUsernamePassword(config.Username, []byte(config.Password))
	return &client, nil
}

// Run connects to the broker and publishes queued events until the context
// is closed.
func (m *MQTTForwarder) Run(ctx context.Context) error {
	log.Debug().Str("broker", m.config.BrokerUrls[0].String()).Msg("mqtt client: connecting")
	conn, err := autopaho.NewConnection(ctx, m.config)
	if err != nil {
		return fmt.Errorf("connecting to MQTT broker: %w", err)
	}
	m.conn = conn

	m.publishLoop(ctx)

	// The context is already done, so give the disconnect its own deadline.
	disconnectCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := conn.Disconnect(disconnectCtx); err != nil {
		log.Debug().AnErr("cause", err).Msg("mqtt client: error disconnecting")
	}
	log.Debug().Msg("mqtt client: shut down")
	return nil
}

func (m *MQTTForwarder) publishLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-m.queue:
			m.publish(ctx, msg)
		}
	}
}

func (m *MQTTForwarder) publish(ctx context.Context, msg mqttMessage) {
	logger := log.With().Str("topic", msg.topic).Logger()

	pr, err := m.conn.Publish(ctx, &paho.Publish{
		QoS:     mqttQoS,
		Topic:   msg.topic,
		Payload: msg.payload,
	})
	switch {
	case err != nil:
		logger.Error().AnErr("cause", err).Msg("mqtt client: error publishing event")
	case pr.ReasonCode == reasonNoMatchingSubscribers:
		logger.Trace().Msg("mqtt client: event sent to server, but there were no subscribers")
	case pr.ReasonCode != 0:
		logger.Warn().Int("reasonCode", int(pr.ReasonCode)).Msg("mqtt client: event rejected by mqtt server")
	default:
		logger.Trace().Msg("mqtt client: event sent to server")
	}
}

func (m *MQTTForwarder) onConnectionUp(connMgr *autopaho.ConnectionManager, connAck *paho.Connack) {
	log.Info().Msg("mqtt client: connection established")
}

func (m *MQTTForwarder) onConnectionError(err error) {
	log.Warn().AnErr("cause", err).Msg("mqtt client: could not connect to MQTT server")
}

func (m *MQTTForwarder) onClientError(err error) {
	log.Warn().AnErr("cause", err).Msg("mqtt client: client error")
}

func (m *MQTTForwarder) onServerDisconnect(d *paho.Disconnect) {
	logEntry := log.Warn()
	if d.Properties != nil {
		logEntry = logEntry.Str("reason", d.Properties.ReasonString)
	} else {
		logEntry = logEntry.Int("reasonCode", int(d.ReasonCode))
	}
	logEntry.Msg("mqtt client: server requested disconnect")
}

// Broadcast queues the event for publication. When the queue is full the
// event is dropped.
func (m *MQTTForwarder) Broadcast(topic EventTopic, payload any) {
	fullTopic := m.topicPrefix + string(topic)
	logger := log.With().Str("topic", fullTopic).Logger()

	asJSON, err := json.Marshal(payload)
	if err != nil {
		logger.Error().AnErr("cause", err).Interface("event", payload).
			Msg("mqtt client: could not convert event to JSON")
		return
	}

	select {
	case m.queue <- mqttMessage{topic: fullTopic, payload: asJSON}:
	default:
		logger.Warn().Msg("mqtt client: publish queue full, dropping event")
	}
}
