// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFenRoundTripIdentity(t *testing.T) {
	fens := []string{
		StartFen,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/8/8/8/8/R3K2R w KQ - 0 1",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		require.NoError(t, err, "fen %q should parse", fen)
		assert.Equal(t, fen, p.StringFen())
	}
}

func TestFenRejectsWrongFieldCount(t *testing.T) {
	_, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.Error(t, err)
	var ferr *FenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 0, ferr.Part)
}

func TestFenRejectsBadPieceField(t *testing.T) {
	_, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1")
	require.Error(t, err)
	var ferr *FenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 1, ferr.Part)
}

func TestFenRejectsBadSideToMove(t *testing.T) {
	_, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	require.Error(t, err)
	var ferr *FenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 2, ferr.Part)
}

func TestFenRejectsBadCastling(t *testing.T) {
	_, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZZZZ - 0 1")
	require.Error(t, err)
	var ferr *FenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 3, ferr.Part)
}

func TestFenRejectsBadEnPassant(t *testing.T) {
	_, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1")
	require.Error(t, err)
	var ferr *FenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 4, ferr.Part)
}

func TestFenRejectsBadHalfmoveClock(t *testing.T) {
	_, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1")
	require.Error(t, err)
	var ferr *FenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 5, ferr.Part)
}

func TestFenRejectsBadFullmoveNumber(t *testing.T) {
	_, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0")
	require.Error(t, err)
	var ferr *FenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 6, ferr.Part)
}
