package vmstatus

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"maps"
	"math"
	"slices"
	"time"

	"github.com/vboxhost/server-manager/internal/vbox"
)

// HistoryLength is the number of samples kept per metric.
const HistoryLength = 120

const bytesPerMB = 1024 * 1024

// History contains the last HistoryLength samples of every metric of a VM.
// Samples that could not be obtained are NaN.
type History struct {
	// Timestamps contains the time of each sample relative to the latest one,
	// in seconds. It runs from -(HistoryLength * interval) to 0.
	Timestamps []float64
	Metrics    map[vbox.Metric][]float64
}

func newHistory(interval time.Duration) *History {
	h := History{
		Timestamps: timestampAxis(interval),
		Metrics:    make(map[vbox.Metric][]float64, len(vbox.AllMetrics)),
	}
	for _, metric := range vbox.AllMetrics {
		h.Metrics[metric] = nanSlice(HistoryLength)
	}
	return &h
}

// timestampAxis returns HistoryLength evenly spaced values from
// -(HistoryLength * interval) to 0, both inclusive.
func timestampAxis(interval time.Duration) []float64 {
	start := -float64(HistoryLength) * interval.Seconds()
	step := -start / float64(HistoryLength-1)

	axis := make([]float64, HistoryLength)
	for i := range axis {
		axis[i] = start + float64(i)*step
	}
	axis[HistoryLength-1] = 0
	return axis
}

func nanSlice(length int) []float64 {
	values := make([]float64, length)
	for i := range values {
		values[i] = math.NaN()
	}
	return values
}

// add appends the sample to the metric's history, and drops the oldest one.
func (h *History) add(metric vbox.Metric, value float64) {
	values := h.Metrics[metric]
	if len(values) == 0 {
		values = nanSlice(HistoryLength)
	}
	h.Metrics[metric] = append(values[1:], value)
}

func (h *History) clone() History {
	clone := History{
		Timestamps: slices.Clone(h.Timestamps),
		Metrics:    maps.Clone(h.Metrics),
	}
	for metric, values := range clone.Metrics {
		clone.Metrics[metric] = slices.Clone(values)
	}
	return clone
}

// RAMUsedMB returns the used guest RAM in megabytes, per sample.
func (h History) RAMUsedMB() []float64 {
	total := h.Metrics[vbox.MetricRAMTotal]
	free := h.Metrics[vbox.MetricRAMFree]

	used := make([]float64, min(len(total), len(free)))
	for i := range used {
		used[i] = (total[i] - free[i]) / bytesPerMB
	}
	return used
}
