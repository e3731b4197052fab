// Package vbox controls VirtualBox through its VBoxManage command line tool.
package vbox

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultExecutable = "/usr/bin/vboxmanage"

	// Collecting metrics blocks until the collection period has passed, so it
	// is bounded by this timeout. Hitting it is not an error.
	metricsCollectTimeout = 1 * time.Second
)

// ErrCommandFailed is returned when VBoxManage exits with a non-zero status.
var ErrCommandFailed = errors.New("VBoxManage command failed")

// Lines of `VBoxManage list vms` look like `"name" {uuid}`.
var listVMsRegexp = regexp.MustCompile(`^"(.+)" {(.+)}`)

// VBoxManage runs VBoxManage commands.
type VBoxManage struct {
	Executable string
	Runner     CommandRunner
}

// New returns a VBoxManage that runs the given executable. An empty string
// uses DefaultExecutable.
func New(executable string) *VBoxManage {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &VBoxManage{
		Executable: executable,
		Runner:     ExecRunner{},
	}
}

func (m *VBoxManage) run(ctx context.Context, args ...string) (CommandOutput, error) {
	log.Trace().Strs("args", args).Msg("vboxmanage: running")
	output, err := m.Runner.Run(ctx, m.Executable, args...)
	if err != nil {
		return output, fmt.Errorf("running VBoxManage %s: %w", firstWords(args, 2), err)
	}
	return output, nil
}

// runChecked runs VBoxManage and returns an error when it exits unsuccessfully.
func (m *VBoxManage) runChecked(ctx context.Context, args ...string) (CommandOutput, error) {
	output, err := m.run(ctx, args...)
	if err != nil {
		return output, err
	}
	if output.ExitCode != 0 {
		return output, fmt.Errorf("%w: VBoxManage %s exited with status %d: %s",
			ErrCommandFailed, firstWords(args, 2), output.ExitCode, strings.TrimSpace(string(output.Stderr)))
	}
	return output, nil
}

// ListVMs returns all registered virtual machines.
func (m *VBoxManage) ListVMs(ctx context.Context) ([]VirtualMachine, error) {
	output, err := m.runChecked(ctx, "list", "vms")
	if err != nil {
		return nil, err
	}

	vms := []VirtualMachine{}
	for _, line := range strings.Split(string(output.Stdout), "\n") {
		match := listVMsRegexp.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}
		vms = append(vms, VirtualMachine{Name: match[1], ID: match[2]})
	}
	return vms, nil
}

// RunningVMs returns the virtual machines that are currently running.
func (m *VBoxManage) RunningVMs(ctx context.Context) ([]VirtualMachine, error) {
	vms, err := m.ListVMs(ctx)
	if err != nil {
		return nil, err
	}

	running := []VirtualMachine{}
	for _, vm := range vms {
		info, err := m.ShowVMInfo(ctx, vm.ID)
		if err != nil {
			return nil, err
		}
		if info.State() == VMStateRunning {
			running = append(running, vm)
		}
	}
	return running, nil
}

// ShowVMInfo returns the machine-readable information of a virtual machine.
func (m *VBoxManage) ShowVMInfo(ctx context.Context, vmID string) (VMInfo, error) {
	output, err := m.runChecked(ctx, "showvminfo", vmID, "--machinereadable")
	if err != nil {
		return VMInfo{}, err
	}
	return ParseVMInfo(output.Stdout), nil
}

func (m *VBoxManage) MetricsEnable(ctx context.Context) error {
	_, err := m.run(ctx, "metrics", "enable")
	return err
}

// MetricsSetup configures metric sampling. The selectors limit the setup to
// specific objects, like a VM ID.
func (m *VBoxManage) MetricsSetup(ctx context.Context, period time.Duration, samples int, selectors ...string) error {
	args := []string{
		"metrics", "setup",
		"--period", strconv.FormatFloat(period.Seconds(), 'f', -1, 64),
		"--samples", strconv.Itoa(samples),
	}
	args = append(args, selectors...)
	_, err := m.run(ctx, args...)
	return err
}

// MetricsCollect collects metrics for at most one second.
func (m *VBoxManage) MetricsCollect(ctx context.Context) error {
	collectCtx, cancel := context.WithTimeout(ctx, metricsCollectTimeout)
	defer cancel()

	_, err := m.run(collectCtx, "metrics", "collect")
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil
	}
	return err
}

// QueryMetric returns the current value of the metric. Missing or empty
// values are returned as NaN.
func (m *VBoxManage) QueryMetric(ctx context.Context, vmID string, metric Metric) (float64, error) {
	output, err := m.run(ctx, "metrics", "query", vmID, string(metric))
	if err != nil {
		return 0, err
	}
	return metric.Parse(metricValue(string(output.Stdout), metric))
}

// GuestControlRun runs an executable inside the guest, as the given user.
func (m *VBoxManage) GuestControlRun(ctx context.Context, vmID string, user UserInfo, exe string, args ...string) (CommandOutput, error) {
	vboxArgs := []string{
		"guestcontrol", vmID, "run",
		"--username", user.Username,
		"--password", user.Password,
		"--exe", exe,
		"--",
	}
	vboxArgs = append(vboxArgs, args...)

	// Not using m.run(), as that would log the password.
	log.Debug().Str("vm", vmID).Str("user", user.Username).Str("exe", exe).Msg("vboxmanage: running command in guest")
	output, err := m.Runner.Run(ctx, m.Executable, vboxArgs...)
	if err != nil {
		return output, fmt.Errorf("running %s in VM %s: %w", exe, vmID, err)
	}
	return output, nil
}

func firstWords(args []string, count int) string {
	if len(args) > count {
		args = args[:count]
	}
	return strings.Join(args, " ")
}
