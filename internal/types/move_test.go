// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveIdentityRoundTrip(t *testing.T) {
	m := CreateMove(Pawn, SqE2, SqE4, PtNone, PtNone, false, true, false)
	assert.Equal(t, Pawn, m.PieceKind())
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.False(t, m.IsCapture())
	assert.False(t, m.IsPromotion())
	assert.True(t, m.IsDoublePush())
	assert.False(t, m.IsCastling())
	assert.False(t, m.IsEnPassant())
}

func TestMoveCaptureAndPromotion(t *testing.T) {
	m := CreateMove(Pawn, SqE7, SqD8, Rook, Queen, false, false, false)
	assert.True(t, m.IsCapture())
	assert.Equal(t, Rook, m.CapturedKind())
	assert.True(t, m.IsPromotion())
	assert.Equal(t, Queen, m.PromotedKind())
}

func TestMoveEnPassantFlag(t *testing.T) {
	m := CreateMove(Pawn, SqD5, SqE6, Pawn, PtNone, true, false, false)
	assert.True(t, m.IsEnPassant())
	assert.True(t, m.IsCapture())
}

func TestMoveValueDoesNotAffectIdentity(t *testing.T) {
	a := CreateMove(Knight, SqB1, SqC3, PtNone, PtNone, false, false, false)
	b := a.WithValue(12345)
	assert.True(t, a.Equals(b))
	assert.NotEqual(t, a, b, "value should change the raw representation")
	assert.Equal(t, a.ShortMove(), b.ShortMove())
	assert.Equal(t, int32(12345), b.Value())
}

func TestMoveValueRoundTripsNegative(t *testing.T) {
	m := CreateMove(Queen, SqD1, SqD8, PtNone, PtNone, false, false, false)
	m = m.WithValue(-500)
	assert.Equal(t, int32(-500), m.Value())
}

func TestMoveStringUci(t *testing.T) {
	assert.Equal(t, "-", MoveNone.StringUci())

	quiet := CreateMove(Pawn, SqE2, SqE4, PtNone, PtNone, false, true, false)
	assert.Equal(t, "e2e4", quiet.StringUci())

	promo := CreateMove(Pawn, SqE7, SqE8, PtNone, Queen, false, false, false)
	assert.Equal(t, "e7e8q", promo.StringUci())
}

func TestMoveCastlingFlag(t *testing.T) {
	m := CreateMove(King, SqE1, SqG1, PtNone, PtNone, false, false, true)
	assert.True(t, m.IsCastling())
	assert.False(t, m.IsCapture())
}
