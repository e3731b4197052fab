//go:build !linux

package oomscore

// SPDX-License-Identifier: GPL-3.0-or-later

const available = false

func readScoreAdj() (int, error) {
	return 0, ErrNotImplemented
}

func writeScoreAdj(int) error {
	return ErrNotImplemented
}
