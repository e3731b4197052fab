package eventbus

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"time"

	"github.com/rs/zerolog/log"
)

// VMStateEvent is sent when a virtual machine changes state, for example from
// "running" to "poweroff".
type VMStateEvent struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	State         string    `json:"state"`
	PreviousState string    `json:"previous_state,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// BroadcastVMStateEvent sends the event on both the general VM topic and the
// topic of this specific VM.
func (b *Broker) BroadcastVMStateEvent(event VMStateEvent) {
	log.Debug().Interface("event", event).Msg("eventbus: broadcasting VMState event")
	b.broadcast(TopicVMState, event)
	b.broadcast(topicForVM(event.ID), event)
}
