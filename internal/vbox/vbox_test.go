package vbox

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned output per VBoxManage command line.
type fakeRunner struct {
	outputs map[string]CommandOutput
	calls   []string
	block   bool
}

func (f *fakeRunner) Run(ctx context.Context, exe string, args ...string) (CommandOutput, error) {
	cmdline := strings.Join(args, " ")
	f.calls = append(f.calls, cmdline)
	if f.block {
		<-ctx.Done()
		return CommandOutput{}, ctx.Err()
	}
	return f.outputs[cmdline], nil
}

func testVBox(outputs map[string]CommandOutput) (*VBoxManage, *fakeRunner) {
	runner := &fakeRunner{outputs: outputs}
	return &VBoxManage{Executable: DefaultExecutable, Runner: runner}, runner
}

func stdout(s string) CommandOutput {
	return CommandOutput{Stdout: []byte(s)}
}

const listVMsOutput = `"build-box" {0c3c5b8a-22d6-4d4b-a2a5-4f8bd0c7e111}
"Windows 11 (test)" {a6d0e2a4-8a5b-4bf6-9d4e-1d1b1f1c7d22}
<inaccessible> {b1b2b3b4-0000-0000-0000-000000000000}
`

func TestNew(t *testing.T) {
	assert.Equal(t, DefaultExecutable, New("").Executable)
	assert.Equal(t, "/opt/vbox/VBoxManage", New("/opt/vbox/VBoxManage").Executable)
}

func TestListVMs(t *testing.T) {
	vbox, _ := testVBox(map[string]CommandOutput{"list vms": stdout(listVMsOutput)})

	vms, err := vbox.ListVMs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []VirtualMachine{
		{ID: "0c3c5b8a-22d6-4d4b-a2a5-4f8bd0c7e111", Name: "build-box"},
		{ID: "a6d0e2a4-8a5b-4bf6-9d4e-1d1b1f1c7d22", Name: "Windows 11 (test)"},
	}, vms)
}

func TestListVMsEmpty(t *testing.T) {
	vbox, _ := testVBox(map[string]CommandOutput{"list vms": stdout("")})

	vms, err := vbox.ListVMs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, vms)
	assert.NotNil(t, vms)
}

func TestListVMsFailure(t *testing.T) {
	vbox, _ := testVBox(map[string]CommandOutput{
		"list vms": {ExitCode: 1, Stderr: []byte("VBoxManage: error: cannot connect\n")},
	})

	_, err := vbox.ListVMs(context.Background())
	require.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, err.Error(), "cannot connect")
}

const showVMInfoOutput = `name="build-box"
ostype="Ubuntu (64-bit)"
UUID="0c3c5b8a-22d6-4d4b-a2a5-4f8bd0c7e111"
memory=4096
VMState="Running"
VMStateChangeTime="2024-03-01T12:00:00.000000000"
"GuestAdditionsFacility_VirtualBox Base Driver"=50,1709294400000
description="uses = in its value"
Some line without an equals sign
`

func TestShowVMInfo(t *testing.T) {
	vbox, runner := testVBox(map[string]CommandOutput{
		"showvminfo 0c3c5b8a --machinereadable": stdout(showVMInfoOutput),
	})

	info, err := vbox.ShowVMInfo(context.Background(), "0c3c5b8a")
	require.NoError(t, err)
	assert.Equal(t, []string{"showvminfo 0c3c5b8a --machinereadable"}, runner.calls)

	assert.Equal(t, VMStateRunning, info.State())
	assert.Equal(t, "Ubuntu (64-bit)", info.System())
	assert.Equal(t, 8, info.Len())

	value, found := info.Get("GuestAdditionsFacility_VirtualBox Base Driver")
	assert.True(t, found)
	assert.Equal(t, "50,1709294400000", value)

	value, _ = info.Get("description")
	assert.Equal(t, "uses = in its value", value)

	items := info.Items()
	require.Len(t, items, 8)
	assert.Equal(t, KeyValue{"GuestAdditionsFacility_VirtualBox Base Driver", "50,1709294400000"}, items[0])
	assert.Equal(t, KeyValue{"ostype", "Ubuntu (64-bit)"}, items[len(items)-1])
}

func TestShowVMInfoUnknownVM(t *testing.T) {
	vbox, _ := testVBox(map[string]CommandOutput{
		"showvminfo nope --machinereadable": {
			ExitCode: 1,
			Stderr:   []byte("VBoxManage: error: Could not find a registered machine named 'nope'\n"),
		},
	})

	_, err := vbox.ShowVMInfo(context.Background(), "nope")
	require.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, err.Error(), "Could not find a registered machine")
}

func TestVMInfoDefaults(t *testing.T) {
	info := ParseVMInfo(nil)
	assert.Equal(t, VMStateOther, info.State())
	assert.Equal(t, "<unknown>", info.System())
	assert.Empty(t, info.Items())
}

func TestParseVMState(t *testing.T) {
	tests := map[string]VMState{
		"running":        VMStateRunning,
		"PowerOff":       VMStatePowerOff,
		"paused":         VMStatePaused,
		"saving":         VMStateSaving,
		"SAVED":          VMStateSaved,
		"restoring":      VMStateRestoring,
		"aborted":        VMStateAborted,
		"gurumeditation": VMStateOther,
		"":               VMStateOther,
	}
	for input, expect := range tests {
		assert.Equal(t, expect, ParseVMState(input), "input %q", input)
	}
}

func TestRunningVMs(t *testing.T) {
	vbox, _ := testVBox(map[string]CommandOutput{
		"list vms": stdout(listVMsOutput),
		"showvminfo 0c3c5b8a-22d6-4d4b-a2a5-4f8bd0c7e111 --machinereadable": stdout(`VMState="running"`),
		"showvminfo a6d0e2a4-8a5b-4bf6-9d4e-1d1b1f1c7d22 --machinereadable": stdout(`VMState="poweroff"`),
	})

	vms, err := vbox.RunningVMs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []VirtualMachine{{ID: "0c3c5b8a-22d6-4d4b-a2a5-4f8bd0c7e111", Name: "build-box"}}, vms)
}

const metricsQueryOutput = `Object          Metric                                   Values
--------------- ---------------------------------------- --------------------------------------------
build-box       Guest/CPU/Load/User                      12.50%
build-box       Guest/RAM/Usage/Total                    4194304 kB
build-box       Guest/RAM/Usage/Free
`

func TestQueryMetric(t *testing.T) {
	const vmID = "0c3c5b8a"
	outputs := map[string]CommandOutput{}
	for _, metric := range AllMetrics {
		outputs["metrics query "+vmID+" "+string(metric)] = stdout(metricsQueryOutput)
	}
	vbox, _ := testVBox(outputs)
	ctx := context.Background()

	value, err := vbox.QueryMetric(ctx, vmID, MetricCPULoadUser)
	require.NoError(t, err)
	assert.Equal(t, 12.5, value)

	value, err = vbox.QueryMetric(ctx, vmID, MetricRAMTotal)
	require.NoError(t, err)
	assert.Equal(t, 4194304.0*1024, value)

	// Empty value.
	value, err = vbox.QueryMetric(ctx, vmID, MetricRAMFree)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(value))

	// Missing metric.
	value, err = vbox.QueryMetric(ctx, vmID, MetricDiskUsed)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(value))
}

func TestMetricsSetup(t *testing.T) {
	vbox, runner := testVBox(nil)

	require.NoError(t, vbox.MetricsSetup(context.Background(), 200*time.Millisecond, 1, "0c3c5b8a"))
	require.NoError(t, vbox.MetricsEnable(context.Background()))
	assert.Equal(t, []string{
		"metrics setup --period 0.2 --samples 1 0c3c5b8a",
		"metrics enable",
	}, runner.calls)
}

func TestMetricsCollectTimeout(t *testing.T) {
	vbox, runner := testVBox(nil)
	runner.block = true

	start := time.Now()
	err := vbox.MetricsCollect(context.Background())
	assert.NoError(t, err, "hitting the collection timeout should not be an error")
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, []string{"metrics collect"}, runner.calls)
}

func TestMetricsCollectCancelled(t *testing.T) {
	vbox, runner := testVBox(nil)
	runner.block = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := vbox.MetricsCollect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGuestControlRun(t *testing.T) {
	vbox, runner := testVBox(map[string]CommandOutput{
		"guestcontrol 0c3c5b8a run --username admin --password hunter2 --exe /bin/ls -- -l /tmp": stdout("total 0\n"),
	})

	user := UserInfo{Username: "admin", Password: "hunter2", IsAdmin: true}
	output, err := vbox.GuestControlRun(context.Background(), "0c3c5b8a", user, "/bin/ls", "-l", "/tmp")
	require.NoError(t, err)
	assert.Equal(t, "total 0\n", string(output.Stdout))
	assert.Len(t, runner.calls, 1)
}
