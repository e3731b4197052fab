package console

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"

	"github.com/vboxhost/server-manager/internal/eventbus"
	"github.com/vboxhost/server-manager/internal/persistence"
)

// Generate mock implementations of these interfaces.
//go:generate go run github.com/golang/mock/mockgen -destination mocks/interfaces_mock.gen.go -package mocks github.com/vboxhost/server-manager/internal/console Store,EventBus

// Store keeps the command history.
type Store interface {
	SaveCommandResult(ctx context.Context, result *persistence.CommandResult) error
	FetchCommandResult(ctx context.Context, uuid string) (*persistence.CommandResult, error)
	FetchCommandResults(ctx context.Context, limit int) ([]persistence.CommandResult, error)
	ClearCommandResults(ctx context.Context) error
}

var _ Store = (*persistence.DB)(nil)

type EventBus interface {
	BroadcastConsoleCommandEvent(event eventbus.ConsoleCommandEvent)
}

var _ EventBus = (*eventbus.Broker)(nil)
