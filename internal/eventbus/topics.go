package eventbus

// SPDX-License-Identifier: GPL-3.0-or-later

import "fmt"

const (
	// Topics on which events are published.
	TopicVMState EventTopic = "/vms"     // sends VMStateEvent
	TopicConsole EventTopic = "/console" // sends ConsoleCommandEvent

	// Parameterised topics.
	TopicVMSpecific EventTopic = "/vms/%s" // %s = VM UUID
)

// topicForVM returns the event topic for the given virtual machine. Clients
// that only care about one VM can subscribe to this topic instead of the
// general one.
func topicForVM(vmID string) EventTopic {
	return EventTopic(fmt.Sprintf(string(TopicVMSpecific), vmID))
}
