// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package search

import (
	"github.com/talonchess/talon/internal/movegen"
	"github.com/talonchess/talon/internal/transpositiontable"
	. "github.com/talonchess/talon/internal/types"
)

// alphaBeta is the principal-variation alpha-beta search. It returns a
// score from the side-to-move's viewpoint and, on a new best move,
// writes the move followed by its child's principal variation into
// line. depth is the remaining nominal depth; ply is the distance from
// the search root, used for mate-distance bookkeeping, killers, and
// the TT's ply-relative mate-score encoding.
func (s *Search) alphaBeta(depth, ply int, alpha, beta Value, line *pv) Value {
	if s.pollTermination() {
		return 0
	}

	pos := s.pos

	if pos.InCheck() {
		depth++
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta, line)
	}

	if ply > 0 && pos.CheckRepetitions(3) {
		return ValueDraw
	}

	var ttMove Move
	if entry, ok := s.tt.Probe(pos.ZobristKey()); ok {
		ttMove = entry.Move
		if int(entry.Depth) >= depth {
			ttValue := transpositiontable.ValueFromTT(entry.Value, ply)
			if ply > 0 {
				switch entry.Flag {
				case transpositiontable.Exact:
					*line = pv{entry.Move}
					return ttValue
				case transpositiontable.LowerBound:
					if ttValue >= beta {
						return beta
					}
				case transpositiontable.UpperBound:
					if ttValue <= alpha {
						return alpha
					}
				}
			}
		}
	}

	moves := s.mg.Generate(pos, movegen.GenAll)
	s.mg.AssignOrderingValues(moves, ply, ttMove)

	legalMoves := 0
	bestValue := -ValueInfinite
	bestMove := MoveNone
	flag := transpositiontable.UpperBound

	for i := 0; i < moves.Len(); i++ {
		m := moves.SelectBest(i)
		if !pos.DoMove(m) {
			continue
		}
		legalMoves++
		if ply+1 > s.selDepth {
			s.selDepth = ply + 1
		}

		var childPV pv
		var score Value
		switch {
		case pos.IsFiftyMoveDraw() || pos.HasInsufficientMaterial():
			score = ValueDraw
		case legalMoves == 1:
			score = -s.alphaBeta(depth-1, ply+1, -beta, -alpha, &childPV)
		default:
			score = -s.alphaBeta(depth-1, ply+1, -alpha-1, -alpha, &childPV)
			if score > alpha && score < beta {
				childPV = pv{}
				score = -s.alphaBeta(depth-1, ply+1, -beta, -alpha, &childPV)
			}
		}
		pos.UndoMove()

		if s.shouldStop() {
			return 0
		}

		if score >= beta {
			s.tt.Store(pos.ZobristKey(), depth, transpositiontable.LowerBound, transpositiontable.ValueToTT(beta, ply), m)
			if !m.IsCapture() {
				s.mg.StoreKiller(ply, m)
			}
			return beta
		}
		if score > bestValue {
			bestValue = score
			bestMove = m
			if score > alpha {
				alpha = score
				flag = transpositiontable.Exact
				*line = childPV.withMove(m)
			}
		}
	}

	if legalMoves == 0 {
		if pos.InCheck() {
			return -ValueCheckmate + Value(ply)
		}
		return ValueDraw
	}

	s.tt.Store(pos.ZobristKey(), depth, flag, transpositiontable.ValueToTT(alpha, ply), bestMove)
	return alpha
}

// quiescence extends the search beyond nominal depth along capture
// lines only, to avoid the horizon effect at leaf nodes.
func (s *Search) quiescence(ply int, alpha, beta Value, line *pv) Value {
	if s.pollTermination() {
		return 0
	}

	pos := s.pos
	standPat := s.eval.Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if ply >= MaxPly-1 {
		return alpha
	}

	moves := s.mg.Generate(pos, movegen.GenCaptures)
	s.mg.AssignOrderingValues(moves, ply, MoveNone)

	for i := 0; i < moves.Len(); i++ {
		m := moves.SelectBest(i)
		if !pos.DoMove(m) {
			continue
		}
		if ply+1 > s.selDepth {
			s.selDepth = ply + 1
		}

		var childPV pv
		score := -s.quiescence(ply+1, -beta, -alpha, &childPV)
		pos.UndoMove()

		if s.shouldStop() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
			*line = childPV.withMove(m)
		}
	}
	return alpha
}
