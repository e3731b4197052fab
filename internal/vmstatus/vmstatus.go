// Package vmstatus periodically samples the performance metrics and state of
// all virtual machines.
package vmstatus

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gertd/go-pluralize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vboxhost/server-manager/internal/eventbus"
	"github.com/vboxhost/server-manager/internal/logging"
	"github.com/vboxhost/server-manager/internal/vbox"
)

const (
	DefaultInterval = 200 * time.Millisecond

	// Number of samples VirtualBox should keep per metric.
	metricSamples = 1
)

// VMStatus is the last-known status of a virtual machine.
type VMStatus struct {
	vbox.VirtualMachine
	State  vbox.VMState `json:"state"`
	System string       `json:"system"`
}

// Daemon keeps track of the metrics of all virtual machines.
type Daemon struct {
	vbox     VBox
	eventbus EventBus
	clock    clock.Clock
	interval time.Duration

	// vmLogger returns the logger for VM-specific messages.
	vmLogger   func(vmName string) zerolog.Logger
	pluralizer *pluralize.Client

	mutex     sync.Mutex
	vms       []vbox.VirtualMachine
	histories map[string]*History
	statuses  map[string]VMStatus
	loggers   map[string]zerolog.Logger
}

func NewDaemon(vboxManage VBox, eventbus EventBus, clock clock.Clock, interval time.Duration) *Daemon {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Daemon{
		vbox:     vboxManage,
		eventbus: eventbus,
		clock:    clock,
		interval: interval,

		vmLogger:   logging.VMLogger,
		pluralizer: pluralize.NewClient(),

		vms:       []vbox.VirtualMachine{},
		histories: map[string]*History{},
		statuses:  map[string]VMStatus{},
		loggers:   map[string]zerolog.Logger{},
	}
}

// Run the metric sampling loop until the context is closed.
func (d *Daemon) Run(ctx context.Context) {
	log.Debug().Stringer("interval", d.interval).Msg("vm status: sampling loop running")
	defer log.Debug().Msg("vm status: sampling loop stopped")

	for {
		if ctx.Err() != nil {
			return
		}
		d.tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-d.clock.After(d.interval):
		}
	}
}

// Interval returns the time between samples.
func (d *Daemon) Interval() time.Duration {
	return d.interval
}

// Snapshot returns a copy of the history of the virtual machine.
func (d *Daemon) Snapshot(vmID string) (History, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	history, found := d.histories[vmID]
	if !found {
		return History{}, false
	}
	return history.clone(), true
}

// VMs returns the status of every known virtual machine, in the order
// VirtualBox lists them.
func (d *Daemon) VMs() []VMStatus {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	statuses := make([]VMStatus, 0, len(d.vms))
	for _, vm := range d.vms {
		status, found := d.statuses[vm.ID]
		if !found {
			status = VMStatus{VirtualMachine: vm, State: vbox.VMStateOther}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (d *Daemon) tick(ctx context.Context) {
	startTime := d.clock.Now()
	defer func() {
		log.Trace().Stringer("duration", d.clock.Since(startTime)).Msg("vm status: sampled metrics")
	}()

	if err := d.vbox.MetricsEnable(ctx); err != nil {
		logError(log.Logger, err, "vm status: could not enable metrics")
	}
	if err := d.vbox.MetricsCollect(ctx); err != nil {
		logError(log.Logger, err, "vm status: could not collect metrics")
	}

	vms, err := d.vbox.ListVMs(ctx)
	if err != nil {
		// Keep the histories of the last-known VMs around for querying.
		logError(log.Logger, err, "vm status: could not list virtual machines")
		return
	}
	d.refreshVMs(vms)

	for _, vm := range vms {
		if ctx.Err() != nil {
			return
		}
		d.sampleVM(ctx, vm)
	}
}

// refreshVMs creates histories for new VMs, and forgets about removed ones.
func (d *Daemon) refreshVMs(vms []vbox.VirtualMachine) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	current := map[string]bool{}
	for _, vm := range vms {
		current[vm.ID] = true
		if _, found := d.histories[vm.ID]; found {
			continue
		}
		d.histories[vm.ID] = newHistory(d.interval)
		d.loggers[vm.ID] = d.vmLogger(vm.Name)
		log.Info().Str("vm", vm.Name).Str("id", vm.ID).Msg("vm status: tracking new virtual machine")
	}

	for vmID := range d.histories {
		if current[vmID] {
			continue
		}
		log.Info().Str("id", vmID).Msg("vm status: virtual machine disappeared")
		delete(d.histories, vmID)
		delete(d.statuses, vmID)
		delete(d.loggers, vmID)
	}

	if !slices.Equal(d.vms, vms) {
		log.Debug().Msgf("vm status: tracking %s", d.pluralizer.Pluralize("virtual machine", len(vms), true))
	}
	d.vms = slices.Clone(vms)
}

func (d *Daemon) loggerFor(vm vbox.VirtualMachine) zerolog.Logger {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	logger, found := d.loggers[vm.ID]
	if !found {
		return log.With().Str("vm", vm.Name).Logger()
	}
	return logger
}

func (d *Daemon) sampleVM(ctx context.Context, vm vbox.VirtualMachine) {
	logger := d.loggerFor(vm)

	d.updateStatus(ctx, vm, logger)

	if err := d.vbox.MetricsSetup(ctx, d.interval, metricSamples, vm.ID); err != nil {
		logError(logger, err, "vm status: could not set up metrics")
	}

	samples := make(map[vbox.Metric]float64, len(vbox.AllMetrics))
	failedMetrics := []string{}
	for _, metric := range vbox.AllMetrics {
		value, err := d.vbox.QueryMetric(ctx, vm.ID, metric)
		if err != nil {
			logger.Debug().AnErr("cause", err).Str("metric", string(metric)).Msg("vm status: could not query metric")
			failedMetrics = append(failedMetrics, string(metric))
			value = math.NaN()
		}
		samples[metric] = value
	}
	if len(failedMetrics) > 0 {
		logger.Warn().
			Str("metrics", strings.Join(failedMetrics, ", ")).
			Msgf("vm status: could not query %s", d.pluralizer.Pluralize("metric", len(failedMetrics), true))
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	history, found := d.histories[vm.ID]
	if !found {
		// The VM was removed while sampling.
		return
	}
	for metric, value := range samples {
		history.add(metric, value)
	}
}

// updateStatus reloads the VM info, and broadcasts an event when its state changed.
func (d *Daemon) updateStatus(ctx context.Context, vm vbox.VirtualMachine, logger zerolog.Logger) {
	info, err := d.vbox.ShowVMInfo(ctx, vm.ID)
	if err != nil {
		logError(logger, err, "vm status: could not get virtual machine info")
		return
	}

	status := VMStatus{
		VirtualMachine: vm,
		State:          info.State(),
		System:         info.System(),
	}

	d.mutex.Lock()
	previous, seenBefore := d.statuses[vm.ID]
	d.statuses[vm.ID] = status
	d.mutex.Unlock()

	if seenBefore && previous.State == status.State {
		return
	}

	logger.Info().
		Str("previousState", string(previous.State)).
		Str("state", string(status.State)).
		Msg("vm status: state changed")
	d.eventbus.BroadcastVMStateEvent(eventbus.VMStateEvent{
		ID:            vm.ID,
		Name:          vm.Name,
		State:         string(status.State),
		PreviousState: string(previous.State),
		Timestamp:     d.clock.Now().UTC(),
	})
}

func logError(logger zerolog.Logger, err error, message string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Msg(message + " (it took too long)")
	case errors.Is(err, context.Canceled):
		logger.Debug().Msg(message + " (shutting down)")
	default:
		logger.Warn().AnErr("cause", err).Msg(message)
	}
}
