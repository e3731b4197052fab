package vbox

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Metric is the name of a performance metric of VirtualBox.
type Metric string

const (
	MetricCPULoadUser   Metric = "Guest/CPU/Load/User"
	MetricCPULoadKernel Metric = "Guest/CPU/Load/Kernel"
	MetricRAMTotal      Metric = "Guest/RAM/Usage/Total"
	MetricRAMFree       Metric = "Guest/RAM/Usage/Free"
	MetricDiskUsed      Metric = "Disk/Usage/Used"
	MetricRAMCache      Metric = "Guest/RAM/Usage/Cache"
)

// AllMetrics lists every metric that is tracked, in display order.
var AllMetrics = []Metric{
	MetricCPULoadUser,
	MetricCPULoadKernel,
	MetricRAMTotal,
	MetricRAMFree,
	MetricDiskUsed,
	MetricRAMCache,
}

// Parse converts a value as reported by `VBoxManage metrics query` into a
// number. CPU loads are percentages, everything else is an amount of bytes.
func (m Metric) Parse(value string) (float64, error) {
	switch m {
	case MetricCPULoadUser, MetricCPULoadKernel:
		return ParsePercent(value)
	default:
		return ParseBytes(value)
	}
}

// ParsePercent parses "12.5%" into 12.5.
func ParsePercent(value string) (float64, error) {
	number := strings.Trim(value, "%")
	parsed, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("parsing percentage %q: %w", value, err)
	}
	return parsed, nil
}

var byteUnits = []struct {
	suffix     string
	multiplier float64
}{
	{" b", 1},
	{" kb", 1024},
	{" mb", 1024 * 1024},
	{" gb", 1024 * 1024 * 1024},
}

// ParseBytes parses an amount of bytes like "512 kB" or "2 GB". Units are
// powers of 1024 and case-insensitive. A bare number is a number of bytes.
func ParseBytes(value string) (float64, error) {
	normalised := strings.ToLower(strings.TrimSpace(value))

	number, multiplier := normalised, 1.0
	for _, unit := range byteUnits {
		if trimmed, found := strings.CutSuffix(normalised, unit.suffix); found {
			number, multiplier = trimmed, unit.multiplier
			break
		}
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("parsing amount of bytes %q: %w", value, err)
	}
	return parsed * multiplier, nil
}

// metricValue finds the value of the named metric in the output of
// `VBoxManage metrics query`. It returns "nan" when the metric is missing or
// has no value.
func metricValue(output string, metric Metric) string {
	const missing = "nan"

	name := string(metric)
	index := strings.Index(output, name)
	if index < 0 {
		return missing
	}

	line := output[index+len(name):]
	if eol := strings.IndexByte(line, '\n'); eol >= 0 {
		line = line[:eol]
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return missing
	}
	return value
}
