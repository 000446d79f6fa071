// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonchess/talon/internal/position"
	. "github.com/talonchess/talon/internal/types"
)

// TestEveryGeneratedMoveRoundTrips plays every pseudo-legal move from a
// handful of positions and checks that legal ones round-trip through
// DoMove/UndoMove back to the exact starting FEN (spec section 8, Q6).
func TestEveryGeneratedMoveRoundTrips(t *testing.T) {
	fens := []string{
		position.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := position.NewPositionFen(fen)
		require.NoError(t, err)
		mg := NewMoveGen()
		moves := mg.Generate(pos, GenAll)
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			if !pos.DoMove(m) {
				continue
			}
			pos.UndoMove()
			assert.Equal(t, fen, pos.StringFen(), "move %s from %q should round-trip", m.StringUci(), fen)
		}
	}
}

// TestPerftStartpos checks scenario S1: the standard perft node counts
// from the starting position.
func TestPerftStartpos(t *testing.T) {
	pos := position.NewPosition()
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4_865_609},
	}
	for _, c := range cases {
		assert.Equal(t, c.nodes, Perft(pos, c.depth), "perft(%d) from startpos", c.depth)
	}
}

// TestPerftKiwipete checks scenario S2: the "Kiwipete" position, which
// exercises castling, en passant, and promotions heavily.
func TestPerftKiwipete(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(48), Perft(pos, 1))
	assert.Equal(t, uint64(2039), Perft(pos, 2))
	assert.Equal(t, uint64(97862), Perft(pos, 3))
	assert.Equal(t, uint64(4_085_603), Perft(pos, 4))
}

// TestPerftPosition3 checks scenario S3.
func TestPerftPosition3(t *testing.T) {
	pos, err := position.NewPositionFen("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(14), Perft(pos, 1))
	assert.Equal(t, uint64(191), Perft(pos, 2))
	assert.Equal(t, uint64(2812), Perft(pos, 3))
	assert.Equal(t, uint64(674_624), Perft(pos, 5))
}

// TestPerftPosition4 checks scenario S4: a position with under-promotion
// and discovered-check corner cases.
func TestPerftPosition4(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(6), Perft(pos, 1))
	assert.Equal(t, uint64(264), Perft(pos, 2))
	assert.Equal(t, uint64(9467), Perft(pos, 3))
	assert.Equal(t, uint64(422_333), Perft(pos, 4))
}

// TestPerftPosition4Mirror checks scenario S4 again from its literal
// rank-mirrored, color-swapped FEN: a correct generator must produce
// identical node counts from either side's point of view.
func TestPerftPosition4Mirror(t *testing.T) {
	pos, err := position.NewPositionFen("r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(6), Perft(pos, 1))
	assert.Equal(t, uint64(264), Perft(pos, 2))
	assert.Equal(t, uint64(9467), Perft(pos, 3))
	assert.Equal(t, uint64(422_333), Perft(pos, 4))
}

func TestPromotionEmitsFourMoves(t *testing.T) {
	pos, err := position.NewPositionFen("8/P7/8/8/8/8/8/4K2k w - - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.Generate(pos, GenAll)
	count := 0
	seen := map[PieceType]bool{}
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.From() == SqA7 && m.To() == SqA8 {
			count++
			seen[m.PromotedKind()] = true
		}
	}
	assert.Equal(t, 4, count)
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		assert.True(t, seen[pt], "promotion to %s should be generated", pt)
	}
}

func TestEnPassantLeavingKingInCheckIsRejected(t *testing.T) {
	// White king on a5, white pawn on e5, black pawn just double-pushed
	// to d5, black rook on h5: capturing exd6 en passant removes both
	// pawns from the 5th rank and exposes the king to the rook.
	pos, err := position.NewPositionFen("8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.Generate(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsEnPassant() {
			assert.False(t, pos.DoMove(m), "en passant exposing the king on the rank should be illegal")
		}
	}
}

func TestCastlingThroughAttackedSquareIsRejected(t *testing.T) {
	// Black rook on f8 attacks f1, the square the white king must pass
	// through to castle kingside.
	pos, err := position.NewPositionFen("5rk1/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.Generate(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsCastling() {
			t.Fatalf("castling move %s should not be generated while f1 is attacked", m.StringUci())
		}
	}
}

func TestCastlingRightsClearedAfterCastling(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.Generate(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsCastling() && m.To() == SqG1 {
			require.True(t, pos.DoMove(m))
			assert.Equal(t, SqG1, pos.KingSquare(White))
			assert.Equal(t, Rook, pos.PieceOn(SqF1).TypeOf())
			assert.Equal(t, White, pos.PieceOn(SqF1).ColorOf())
			assert.Equal(t, CastlingNone, pos.CastlingRights())
			return
		}
	}
	t.Fatal("kingside castling move not found")
}

func TestAssignOrderingValuesPrefersTtMoveThenCaptures(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.Generate(pos, GenAll)

	var capture Move
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).IsCapture() {
			capture = moves.At(i)
			break
		}
	}
	require.NotEqual(t, MoveNone, capture)

	ttMove := MoveNone
	for i := 0; i < moves.Len(); i++ {
		if !moves.At(i).IsCapture() {
			ttMove = moves.At(i).ShortMove()
			break
		}
	}
	require.NotEqual(t, MoveNone, ttMove)

	mg.AssignOrderingValues(moves, 0, ttMove)
	best := moves.SelectBest(0)
	assert.True(t, best.Equals(ttMove), "the tt move should sort first")

	moves2 := mg.Generate(pos, GenAll)
	mg.AssignOrderingValues(moves2, 0, MoveNone)
	best2 := moves2.SelectBest(0)
	assert.True(t, best2.IsCapture(), "without a tt move, a capture should sort first")
}

func TestHasLegalMoveDetectsStalemate(t *testing.T) {
	// Classic stalemate: black king on a8 has no legal move.
	pos, err := position.NewPositionFen("k7/8/1QK5/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	assert.False(t, HasLegalMove(pos, mg))
	assert.False(t, pos.InCheck())
}
