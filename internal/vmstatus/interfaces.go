package vmstatus

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"time"

	"github.com/vboxhost/server-manager/internal/eventbus"
	"github.com/vboxhost/server-manager/internal/vbox"
)

// Generate mock implementations of these interfaces.
//go:generate go run github.com/golang/mock/mockgen -destination mocks/interfaces_mock.gen.go -package mocks github.com/vboxhost/server-manager/internal/vmstatus VBox,EventBus

type VBox interface {
	ListVMs(ctx context.Context) ([]vbox.VirtualMachine, error)
	ShowVMInfo(ctx context.Context, vmID string) (vbox.VMInfo, error)

	MetricsEnable(ctx context.Context) error
	MetricsCollect(ctx context.Context) error
	MetricsSetup(ctx context.Context, period time.Duration, samples int, selectors ...string) error
	QueryMetric(ctx context.Context, vmID string, metric vbox.Metric) (float64, error)
}

var _ VBox = (*vbox.VBoxManage)(nil)

type EventBus interface {
	BroadcastVMStateEvent(event eventbus.VMStateEvent)
}

var _ EventBus = (*eventbus.Broker)(nil)
