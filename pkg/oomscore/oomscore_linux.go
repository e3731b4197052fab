//go:build linux

package oomscore

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	available = true

	// The "self" symlink always points to the current process.
	scoreAdjPath = "/proc/self/oom_score_adj"
)

func readScoreAdj() (int, error) {
	contents, err := os.ReadFile(scoreAdjPath)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", scoreAdjPath, err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", scoreAdjPath, err)
	}
	return value, nil
}

func writeScoreAdj(value int) error {
	// Lowering the value below its original requires CAP_SYS_RESOURCE, raising
	// it does not.
	if err := os.WriteFile(scoreAdjPath, []byte(strconv.Itoa(value)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", scoreAdjPath, err)
	}
	return nil
}
