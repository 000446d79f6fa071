// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package movegen

import (
	"github.com/talonchess/talon/internal/position"
)

// Perft counts the leaf nodes reachable in exactly depth plies from
// pos, the standard move-generator correctness benchmark (spec
// section 8's S1-S4 scenarios). At depth 0 the current position
// itself counts as one leaf.
func Perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	mg := NewMoveGen()
	moves := mg.Generate(pos, GenAll)
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !pos.DoMove(m) {
			continue
		}
		nodes += Perft(pos, depth-1)
		pos.UndoMove()
	}
	return nodes
}
