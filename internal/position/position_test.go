// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/talonchess/talon/internal/types"
)

func TestNewPositionIsStartpos(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, White, p.SideToMove())
	assert.Equal(t, SqE1, p.KingSquare(White))
	assert.Equal(t, SqE8, p.KingSquare(Black))
	assert.Equal(t, StartFen, p.StringFen())
}

func doUci(t *testing.T, p *Position, uci string) {
	t.Helper()
	from := MakeSquare(uci[0:2])
	to := MakeSquare(uci[2:4])
	pt := p.PieceOn(from).TypeOf()
	captured := p.PieceOn(to).TypeOf()
	isEp := false
	isDouble := false
	if pt == Pawn {
		if captured == PtNone && from.FileOf() != to.FileOf() {
			isEp = true
			captured = Pawn
		}
		if SquareDistance(from, to) == 2 {
			isDouble = true
		}
	}
	m := CreateMove(pt, from, to, captured, PtNone, isEp, isDouble, false)
	require.True(t, p.DoMove(m), "move %s should be legal", uci)
}

// TestMakeUnmakeRoundTrip plays a short sequence of quiet, non-castling
// moves and checks that UndoMove restores the exact pre-move FEN and
// zobrist key at every step.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	p := NewPosition()
	type step struct{ uci string }
	steps := []step{{"e2e4"}, {"e7e5"}, {"g1f3"}, {"b8c6"}}

	type snapshot struct {
		fen string
		key uint64
	}
	var snapshots []snapshot
	for _, s := range steps {
		snapshots = append(snapshots, snapshot{p.StringFen(), p.ZobristKey()})
		doUci(t, p, s.uci)
	}
	for i := len(steps) - 1; i >= 0; i-- {
		p.UndoMove()
		assert.Equal(t, snapshots[i].fen, p.StringFen())
		assert.Equal(t, snapshots[i].key, p.ZobristKey())
	}
}

// TestZobristKeyMatchesFreshParse checks invariant I4: after a sequence
// of moves, re-parsing the resulting FEN from scratch yields the same
// zobrist key as the incrementally maintained one.
func TestZobristKeyMatchesFreshParse(t *testing.T) {
	p := NewPosition()
	doUci(t, p, "e2e4")
	doUci(t, p, "e7e5")
	doUci(t, p, "g1f3")
	doUci(t, p, "b8c6")

	fresh, err := NewPositionFen(p.StringFen())
	require.NoError(t, err)
	assert.Equal(t, fresh.ZobristKey(), p.ZobristKey())
}

func TestSquareToPieceAgreesWithBitboards(t *testing.T) {
	p := NewPosition()
	for sq := SqA1; sq < SqNone; sq++ {
		piece := p.PieceOn(sq)
		if !piece.IsValid() {
			assert.False(t, p.OccupiedAll().Has(sq))
			continue
		}
		assert.True(t, p.Pieces(piece.ColorOf(), piece.TypeOf()).Has(sq))
		assert.True(t, p.Occupied(piece.ColorOf()).Has(sq))
	}
}

func TestIsAttackedOracleAgainstKnownPosition(t *testing.T) {
	// White rook on e1, black king on e8: e8 is attacked along the open
	// e-file.
	p, err := NewPositionFen("4k3/8/8/8/8/8/8/4R2K w - - 0 1")
	require.NoError(t, err)
	assert.True(t, p.IsAttacked(White, SqE8))
	assert.False(t, p.IsAttacked(White, SqD8))
}

func TestCheckRepetitionsThreefold(t *testing.T) {
	p := NewPosition()
	assert.False(t, p.CheckRepetitions(3))

	doUci(t, p, "g1f3")
	doUci(t, p, "g8f6")
	doUci(t, p, "f3g1")
	doUci(t, p, "f6g8")
	assert.False(t, p.CheckRepetitions(3))

	doUci(t, p, "g1f3")
	doUci(t, p, "g8f6")
	doUci(t, p, "f3g1")
	doUci(t, p, "f6g8")
	assert.True(t, p.CheckRepetitions(3))
}

func TestFiftyMoveRuleAtHundredPlies(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/8/8/4K3 w - - 99 60")
	require.NoError(t, err)
	assert.False(t, p.IsFiftyMoveDraw())

	doUci(t, p, "e1d1")
	assert.True(t, p.IsFiftyMoveDraw())
}

func TestHasInsufficientMaterial(t *testing.T) {
	bareKings, err := NewPositionFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, bareKings.HasInsufficientMaterial())

	withRook, err := NewPositionFen("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, withRook.HasInsufficientMaterial())
}
