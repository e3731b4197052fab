package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"time"

	"github.com/vboxhost/server-manager/internal/console"
	"github.com/vboxhost/server-manager/internal/vbox"
	"github.com/vboxhost/server-manager/internal/vmstatus"
)

// Generate mock implementations of these interfaces.
//go:generate go run github.com/golang/mock/mockgen -destination mocks/interfaces_mock.gen.go -package mocks github.com/vboxhost/server-manager/internal/api VMStatusService,VBoxService,ConsoleService

type VMStatusService interface {
	VMs() []vmstatus.VMStatus
	// Snapshot returns a copy of the VM's metric history, and whether the VM
	// is known.
	Snapshot(vmID string) (vmstatus.History, bool)
}

var _ VMStatusService = (*vmstatus.Daemon)(nil)

type VBoxService interface {
	ShowVMInfo(ctx context.Context, vmID string) (vbox.VMInfo, error)
	GuestControlRun(ctx context.Context, vmID string, user vbox.UserInfo, exe string, args ...string) (vbox.CommandOutput, error)
}

var _ VBoxService = (*vbox.VBoxManage)(nil)

type ConsoleService interface {
	Execute(ctx context.Context, command string, timeout time.Duration) (console.CommandResult, error)
	History(ctx context.Context, limit int) ([]console.CommandResult, error)
	Result(ctx context.Context, id string) (console.CommandResult, error)
	Clear(ctx context.Context) error
}

var _ ConsoleService = (*console.Runner)(nil)
