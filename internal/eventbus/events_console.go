package eventbus

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"github.com/rs/zerolog/log"
)

// ConsoleCommandEvent is sent after a command was run on the host console.
// The command output is not included, as it can be large and may contain
// sensitive information.
type ConsoleCommandEvent struct {
	ID         string `json:"id"`
	Command    string `json:"command"`
	ReturnCode *int   `json:"return_code"`
	TimedOut   bool   `json:"timed_out"`
}

func (b *Broker) BroadcastConsoleCommandEvent(event ConsoleCommandEvent) {
	log.Debug().Str("id", event.ID).Msg("eventbus: broadcasting ConsoleCommand event")
	b.broadcast(TopicConsole, event)
}
