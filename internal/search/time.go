// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package search

import (
	"time"

	. "github.com/talonchess/talon/internal/types"
)

// moveOverhead is subtracted from every computed time slice to leave
// headroom for UCI round-trip and process scheduling latency.
const moveOverhead = 50 * time.Millisecond

// allocateTimeBudget computes how long the current iterative-deepening
// search is allowed to run, per the clock / increment / moves-to-go
// formula: budget = clock/movesToGo + increment - overhead. When the
// GUI omits movestogo, it defaults to 25 - (pliesMade mod 25) + 5, per
// spec section 6.
//
// A zero budget means no wall-clock limit: the search runs to depth or
// node limits only, or until an explicit Stop.
func allocateTimeBudget(limits *Limits, side Color, pliesMade int) time.Duration {
	if limits == nil {
		return 0
	}
	if limits.Infinite {
		return 0
	}
	if limits.MoveTime > 0 {
		return clampBudget(limits.MoveTime - moveOverhead)
	}
	if !limits.TimeControl {
		return 0
	}

	clock, inc := limits.WhiteTime, limits.WhiteInc
	if side == Black {
		clock, inc = limits.BlackTime, limits.BlackInc
	}

	movesToGo := limits.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 25 - (pliesMade % 25) + 5
	}

	budget := clock/time.Duration(movesToGo) + inc - moveOverhead
	return clampBudget(budget)
}

func clampBudget(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
