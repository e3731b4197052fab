package vbox

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"slices"
	"strings"
)

// VirtualMachine is a VM registered with VirtualBox.
type VirtualMachine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VMState is the state of a virtual machine, as reported by showvminfo.
type VMState string

const (
	VMStateRunning   VMState = "running"
	VMStatePowerOff  VMState = "poweroff"
	VMStatePaused    VMState = "paused"
	VMStateSaving    VMState = "saving"
	VMStateSaved     VMState = "saved"
	VMStateRestoring VMState = "restoring"
	VMStateAborted   VMState = "aborted"
	VMStateOther     VMState = "other"
)

var knownVMStates = []VMState{
	VMStateRunning,
	VMStatePowerOff,
	VMStatePaused,
	VMStateSaving,
	VMStateSaved,
	VMStateRestoring,
	VMStateAborted,
}

// ParseVMState returns the state with this name, or VMStateOther.
func ParseVMState(name string) VMState {
	state := VMState(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(knownVMStates, state) {
		return state
	}
	return VMStateOther
}

const unknownSystem = "<unknown>"

// VMInfo is the output of `VBoxManage showvminfo --machinereadable`.
type VMInfo struct {
	values map[string]string
}

// KeyValue is a single item of VMInfo.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ParseVMInfo parses `key=value` lines. Surrounding double quotes are
// removed from keys and values; lines without `=` are ignored.
func ParseVMInfo(output []byte) VMInfo {
	values := map[string]string{}
	for _, line := range strings.Split(string(output), "\n") {
		key, value, found := strings.Cut(strings.TrimRight(line, "\r"), "=")
		if !found {
			continue
		}
		values[strings.Trim(key, `"`)] = strings.Trim(value, `"`)
	}
	return VMInfo{values: values}
}

func (i VMInfo) State() VMState {
	return ParseVMState(i.values["VMState"])
}

// System returns the guest OS type.
func (i VMInfo) System() string {
	if system, found := i.values["ostype"]; found {
		return system
	}
	return unknownSystem
}

func (i VMInfo) Get(key string) (string, bool) {
	value, found := i.values[key]
	return value, found
}

// Items returns all key/value pairs, sorted by key.
func (i VMInfo) Items() []KeyValue {
	items := make([]KeyValue, 0, len(i.values))
	for key, value := range i.values {
		items = append(items, KeyValue{Key: key, Value: value})
	}
	slices.SortFunc(items, func(a, b KeyValue) int {
		return strings.Compare(a.Key, b.Key)
	})
	return items
}

func (i VMInfo) Len() int {
	return len(i.values)
}
