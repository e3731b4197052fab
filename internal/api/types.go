package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"math"
	"time"

	"github.com/vboxhost/server-manager/internal/console"
	"github.com/vboxhost/server-manager/internal/vbox"
	"github.com/vboxhost/server-manager/internal/vmstatus"
)

// Error is sent to the client whenever a request cannot be handled.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Version struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	GitHash      string `json:"git_hash"`
	ReleaseCycle string `json:"release_cycle"`
}

type VMList struct {
	VMs []vmstatus.VMStatus `json:"vms"`
}

type VMInfo struct {
	ID     string          `json:"id"`
	State  vbox.VMState    `json:"state"`
	System string          `json:"system"`
	Items  []vbox.KeyValue `json:"items"`
}

// VMMetrics is the metric history of a VM. Samples that could not be obtained
// are null.
type VMMetrics struct {
	ID string `json:"id"`

	// Timestamps are relative to the latest sample, in seconds.
	Timestamps []float64                  `json:"timestamps"`
	Metrics    map[vbox.Metric][]*float64 `json:"metrics"`
	RAMUsedMB  []*float64                 `json:"ram_used_mb"`
}

type RunCommandRequest struct {
	Command string `json:"command"`
	// TimeoutSeconds is the command timeout. Absent means the configured
	// default, zero means no timeout.
	TimeoutSeconds *float64 `json:"timeout_seconds,omitempty"`
}

type CommandResult struct {
	ID              string    `json:"id"`
	Command         string    `json:"command"`
	ReturnCode      *int      `json:"return_code"`
	Stdout          string    `json:"stdout"`
	Stderr          string    `json:"stderr"`
	TimedOut        bool      `json:"timed_out"`
	StartedAt       time.Time `json:"started_at"`
	DurationSeconds float64   `json:"duration_seconds"`
}

type CommandHistory struct {
	Commands []CommandResult `json:"commands"`
}

func vmMetricsToAPI(vmID string, history vmstatus.History) VMMetrics {
	metrics := make(map[vbox.Metric][]*float64, len(history.Metrics))
	for metric, values := range history.Metrics {
		metrics[metric] = nullableFloats(values)
	}
	return VMMetrics{
		ID:         vmID,
		Timestamps: history.Timestamps,
		Metrics:    metrics,
		RAMUsedMB:  nullableFloats(history.RAMUsedMB()),
	}
}

// nullableFloats converts NaN to nil, as JSON cannot represent NaN.
func nullableFloats(values []float64) []*float64 {
	result := make([]*float64, len(values))
	for i, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		result[i] = &value
	}
	return result
}

func commandResultToAPI(result console.CommandResult) CommandResult {
	return CommandResult{
		ID:              result.ID,
		Command:         result.Command,
		ReturnCode:      result.ReturnCode,
		Stdout:          result.Stdout,
		Stderr:          result.Stderr,
		TimedOut:        result.TimedOut,
		StartedAt:       result.StartedAt,
		DurationSeconds: result.Duration.Seconds(),
	}
}

// GuestUser is a user account inside a VM. The password is never sent.
type GuestUser struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type GuestUsers struct {
	Users []GuestUser `json:"users"`
}

type GuestRunRequest struct {
	Username   string   `json:"username"`
	Executable string   `json:"executable"`
	Args       []string `json:"args"`
}

type GuestRunResult struct {
	ReturnCode int    `json:"return_code"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
}
