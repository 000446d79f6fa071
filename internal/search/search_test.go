// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonchess/talon/internal/position"
	"github.com/talonchess/talon/internal/transpositiontable"
	. "github.com/talonchess/talon/internal/types"
)

func newTestSearch() *Search {
	tt := transpositiontable.NewTtTable(1)
	return NewSearch(tt, nil)
}

// TestBackRankMateIsFound checks scenario S5: from a position with a
// forced back-rank mate, the search at sufficient depth reports a mate
// score and a rook move delivering it.
func TestBackRankMateIsFound(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/8/8/8/R7/4K2R w K - 0 1")
	require.NoError(t, err)

	s := newTestSearch()
	limits := NewLimits()
	limits.Depth = 5
	result := s.StartSearch(pos, limits)

	require.NotEqual(t, MoveNone, result.BestMove)
	assert.True(t, IsMateScore(result.Value), "expected a mate score, got %d", result.Value)
	assert.Equal(t, Rook, result.BestMove.PieceKind())
}

// TestCastlingIsPlayed checks scenario S6: from a position where
// castling is the only reasonable developing move available, the
// engine chooses it and castling rights clear afterward. A black king
// is added on e8 so the position satisfies invariant I3 (exactly one
// king per side) through the full search; spec section 8's literal S6
// FEN omits it.
func TestCastlingIsPlayed(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	s := newTestSearch()
	limits := NewLimits()
	limits.Depth = 4
	result := s.StartSearch(pos, limits)

	require.NotEqual(t, MoveNone, result.BestMove)
	assert.Equal(t, "e1g1", result.BestMove.StringUci())
	assert.True(t, result.BestMove.IsCastling())

	require.True(t, pos.DoMove(result.BestMove))
	assert.False(t, pos.CastlingRights().Has(CastlingWhiteOO))
	assert.False(t, pos.CastlingRights().Has(CastlingWhiteOOO))
}

// TestStalemateScoresAsDraw checks that a position with no legal moves
// and no check returns the draw value rather than a mate score.
func TestStalemateScoresAsDraw(t *testing.T) {
	pos, err := position.NewPositionFen("k7/8/1QK5/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	s := newTestSearch()
	limits := NewLimits()
	limits.Depth = 2
	result := s.StartSearch(pos, limits)

	assert.Equal(t, ValueDraw, result.Value)
	assert.Equal(t, MoveNone, result.BestMove)
}

// TestFiftyMoveRuleScoresAsDraw checks that a halfmove clock at the
// 100-ply threshold produces a draw score for the side to move, per
// spec section 8's boundary behavior and the open-question decision
// to use >= 100 plies (section 9-2).
func TestFiftyMoveRuleScoresAsDraw(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/8/8/8/8/R3K3 w - - 99 50")
	require.NoError(t, err)

	s := newTestSearch()
	limits := NewLimits()
	limits.Depth = 1
	result := s.StartSearch(pos, limits)

	require.NotEqual(t, MoveNone, result.BestMove)
	assert.Equal(t, ValueDraw, result.Value)
	require.True(t, pos.DoMove(result.BestMove))
	assert.True(t, pos.IsFiftyMoveDraw())
}

// TestStopFlagIsCooperative checks that Stop sets the flag the search
// loop polls, and that StartSearch clears it again at the start of a
// fresh search (a stale Stop from a previous search must not abort the
// next one before it begins).
func TestStopFlagIsCooperative(t *testing.T) {
	s := newTestSearch()
	s.Stop()
	assert.True(t, s.shouldStop())

	pos := position.NewPosition()
	limits := NewLimits()
	limits.Depth = 1
	result := s.StartSearch(pos, limits)
	assert.NotEqual(t, MoveNone, result.BestMove, "a fresh search must not inherit a stale stop flag")
}
