// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package movegen produces pseudo-legal moves from a position using
// the bitboard and magic attack tables in internal/types, and assigns
// the move-ordering scores the search's alpha-beta loop relies on for
// its early cutoffs.
package movegen

import (
	"github.com/talonchess/talon/internal/moveslice"
	"github.com/talonchess/talon/internal/position"
	. "github.com/talonchess/talon/internal/types"
)

// GenMode selects which subset of pseudo-legal moves to produce.
type GenMode uint8

// Generation modes.
const (
	GenAll GenMode = iota
	GenCaptures
	GenQuiets
)

// Movegen holds the per-search killer-move table; one instance is
// shared by a single search (it is not safe for concurrent use by more
// than one search at a time).
type Movegen struct {
	killers [MaxPly][2]Move
}

// NewMoveGen returns a fresh generator with an empty killer table.
func NewMoveGen() *Movegen {
	return &Movegen{}
}

// Generate produces all pseudo-legal moves of the given mode for the
// side to move in pos. Final legality (own king left in check) is
// tested by Position.DoMove, not here.
func (mg *Movegen) Generate(pos *position.Position, mode GenMode) *moveslice.MoveSlice {
	moves := moveslice.NewMoveSlice(64)
	side := pos.SideToMove()
	own := pos.Occupied(side)
	opponent := pos.Occupied(side.Flip())
	empty := ^pos.OccupiedAll()

	for _, pt := range [4]PieceType{Knight, Bishop, Rook, Queen} {
		generatePieceMoves(pos, moves, pt, side, mode, own, opponent, empty)
	}
	generatePieceMoves(pos, moves, King, side, mode, own, opponent, empty)
	generatePawnMoves(pos, moves, side, mode, opponent, empty)
	if mode != GenCaptures {
		generateCastling(pos, moves, side)
	}
	return moves
}

func generatePieceMoves(pos *position.Position, moves *moveslice.MoveSlice, pt PieceType, side Color, mode GenMode, own, opponent, empty Bitboard) {
	occAll := ^empty
	for pieces := pos.Pieces(side, pt); pieces != BbZero; {
		from := pieces.PopLsb()
		var attacks Bitboard
		switch pt {
		case King, Knight:
			attacks = GetPseudoAttacks(pt, from)
		default:
			attacks = GetAttacksBb(pt, from, occAll)
		}
		attacks &^= own
		for targets := maskForMode(attacks, mode, opponent, empty); targets != BbZero; {
			to := targets.PopLsb()
			captured := pos.PieceOn(to).TypeOf()
			m := CreateMove(pt, from, to, captured, PtNone, false, false, false)
			moves.PushBack(m)
		}
	}
}

func maskForMode(attacks Bitboard, mode GenMode, opponent, empty Bitboard) Bitboard {
	switch mode {
	case GenCaptures:
		return attacks & opponent
	case GenQuiets:
		return attacks & empty
	default:
		return attacks
	}
}

func generatePawnMoves(pos *position.Position, moves *moveslice.MoveSlice, side Color, mode GenMode, opponent, empty Bitboard) {
	pawns := pos.Pieces(side, Pawn)
	dir := side.PawnDirection()
	promoRank := side.PromotionRankBb()
	doublePushRank := side.DoublePushRankBb()

	if mode != GenCaptures {
		for bb := pawns; bb != BbZero; {
			from := bb.PopLsb()
			one := from.To(dir)
			if !one.IsValid() || !empty.Has(one) {
				continue
			}
			emitPawnMoves(moves, from, one, PtNone, false, promoRank)
			two := one.To(dir)
			if two.IsValid() && empty.Has(two) && doublePushRank.Has(two.Bb()) {
				moves.PushBack(CreateMove(Pawn, from, two, PtNone, PtNone, false, true, false))
			}
		}
	}

	if mode == GenQuiets {
		return
	}
	for bb := pawns; bb != BbZero; {
		from := bb.PopLsb()
		attacks := GetPawnAttacks(side, from)
		captures := attacks & opponent
		for targets := captures; targets != BbZero; {
			to := targets.PopLsb()
			captured := pos.PieceOn(to).TypeOf()
			emitPawnMoves(moves, from, to, captured, false, promoRank)
		}
		if ep := pos.EpTarget(); ep != SqNone && attacks.Has(ep) {
			moves.PushBack(CreateMove(Pawn, from, ep, Pawn, PtNone, true, false, false))
		}
	}
}

func emitPawnMoves(moves *moveslice.MoveSlice, from, to Square, captured PieceType, isEp bool, promoRank Bitboard) {
	if promoRank.Has(to.Bb()) {
		for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
			moves.PushBack(CreateMove(Pawn, from, to, captured, promo, isEp, false, false))
		}
		return
	}
	moves.PushBack(CreateMove(Pawn, from, to, captured, PtNone, isEp, false, false))
}

func generateCastling(pos *position.Position, moves *moveslice.MoveSlice, side Color) {
	cr := pos.CastlingRights()
	occ := pos.OccupiedAll()
	opponent := side.Flip()

	type castle struct {
		right             CastlingRights
		kingFrom, kingTo  Square
		transit, between  Bitboard
		kingPassesThrough [2]Square
	}

	var candidates []castle
	if side == White {
		candidates = []castle{
			{CastlingWhiteOO, SqE1, SqG1, (SqF1.Bb() | SqG1.Bb()), SqF1.Bb() | SqG1.Bb(), [2]Square{SqE1, SqF1}},
			{CastlingWhiteOOO, SqE1, SqC1, (SqB1.Bb() | SqC1.Bb() | SqD1.Bb()), SqC1.Bb() | SqD1.Bb(), [2]Square{SqE1, SqD1}},
		}
	} else {
		candidates = []castle{
			{CastlingBlackOO, SqE8, SqG8, (SqF8.Bb() | SqG8.Bb()), SqF8.Bb() | SqG8.Bb(), [2]Square{SqE8, SqF8}},
			{CastlingBlackOOO, SqE8, SqC8, (SqB8.Bb() | SqC8.Bb() | SqD8.Bb()), SqC8.Bb() | SqD8.Bb(), [2]Square{SqE8, SqD8}},
		}
	}

	for _, c := range candidates {
		if !cr.Has(c.right) {
			continue
		}
		if occ&c.transit != BbZero {
			continue
		}
		if pos.IsAttacked(opponent, c.kingPassesThrough[0]) || pos.IsAttacked(opponent, c.kingPassesThrough[1]) || pos.IsAttacked(opponent, c.kingTo) {
			continue
		}
		moves.PushBack(CreateMove(King, c.kingFrom, c.kingTo, PtNone, PtNone, false, false, true))
	}
}

// HasLegalMove reports whether the side to move has at least one legal
// move, used for checkmate/stalemate detection. It generates the full
// pseudo-legal list but does not score it, and stops at the first move
// that DoMove accepts.
func HasLegalMove(pos *position.Position, mg *Movegen) bool {
	moves := mg.Generate(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if pos.DoMove(m) {
			pos.UndoMove()
			return true
		}
	}
	return false
}
