// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package evaluator scores a leaf position from its incrementally
// maintained material and piece-square tallies, per spec section 4.D.
package evaluator

import (
	"github.com/talonchess/talon/internal/position"
	. "github.com/talonchess/talon/internal/types"
)

// Evaluator is stateless; it only reads the position's running
// scalars, it never recomputes them from scratch.
type Evaluator struct{}

// NewEvaluator returns a ready-to-use evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the position's score from the side-to-move's point
// of view: material plus piece-square tally for each side, with a
// king-to-edge mating-assist term once a side is down to a bare king.
func (e *Evaluator) Evaluate(pos *position.Position) Value {
	white := pos.Psqt(White) + pos.Material(White)
	black := pos.Psqt(Black) + pos.Material(Black)

	white += e.bareKingBonus(pos, White)
	black += e.bareKingBonus(pos, Black)

	score := white - black
	if pos.SideToMove() == Black {
		score = -score
	}
	return score
}

// bareKingBonus adds the king_edge nudge against the opposite color
// once that color's non-king material falls below the bare-king
// threshold: pushing the losing king toward the edge and corner helps
// deliver mate rather than shuffle at the stalemate boundary.
func (e *Evaluator) bareKingBonus(pos *position.Position, winner Color) Value {
	loser := winner.Flip()
	if pos.Material(loser)-King.ValueOf() >= BareKingThreshold {
		return 0
	}
	return KingEdgeValue(winner, pos.KingSquare(winner)) - KingEdgeValue(loser, pos.KingSquare(loser))
}
