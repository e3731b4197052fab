// Package oomscore adjusts the Linux out-of-memory (OOM) score adjustment of
// the current process. Child processes inherit this value, which makes it
// possible to mark a launched process as the preferred victim when the host
// runs out of memory, protecting the launcher itself.
//
// On other platforms Available() returns false and Adjust() does nothing.
package oomscore

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"errors"

	"github.com/rs/zerolog/log"
)

var ErrNotImplemented = errors.New("OOM score adjustment not implemented on this platform")

// Valid range of oom_score_adj, see proc(5).
const (
	MinScoreAdj = -1000
	MaxScoreAdj = 1000
)

// Available returns whether OOM score adjustment works on this platform.
func Available() bool {
	return available
}

// ScoreAdj returns the current process' OOM score adjustment.
func ScoreAdj() (int, error) {
	return readScoreAdj()
}

// RestoreFunc restores the OOM score adjustment to its previous value.
type RestoreFunc func()

func noRestore() {}

// Adjust temporarily sets the OOM score adjustment of the current process.
// The returned function MUST be called to restore the original value.
// Problems are logged, but not otherwise returned, as the score is only a
// hint to the kernel.
func Adjust(scoreAdj int) RestoreFunc {
	if !Available() {
		log.Debug().Int("oom_score_adj", scoreAdj).Msg("OOM score adjustment not available on this platform, ignoring")
		return noRestore
	}

	logger := log.With().Int("oom_score_adj", scoreAdj).Logger()
	if scoreAdj < MinScoreAdj || scoreAdj > MaxScoreAdj {
		logger.Error().Msg("OOM score adjustment out of range, ignoring")
		return noRestore
	}

	original, err := readScoreAdj()
	if err != nil {
		logger.Error().AnErr("cause", err).Msg("could not get the current process' oom_score_adj value")
		return noRestore
	}

	logger.Trace().Int("original", original).Msg("setting oom_score_adj")
	if err := writeScoreAdj(scoreAdj); err != nil {
		logger.Error().AnErr("cause", err).Msg("could not set the current process' oom_score_adj value")
		return noRestore
	}

	return func() {
		logger.Trace().Int("original", original).Msg("restoring oom_score_adj")
		if err := writeScoreAdj(original); err != nil {
			logger.Error().
				Int("original", original).
				AnErr("cause", err).
				Msg("could not restore the current process' oom_score_adj value")
		}
	}
}
