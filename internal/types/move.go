// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package types

import "strings"

// Move packs a move's identity and its move-ordering score into a
// single 64-bit value:
//
//	bits  0- 2  piece kind moving
//	bits  3- 8  from square
//	bits  9-14  to square
//	bits 15-17  captured piece kind (PtNone if none)
//	bits 18-20  promoted piece kind (PtNone if none)
//	bit     21  en-passant capture flag
//	bit     22  double pawn push flag
//	bit     23  castling flag
//	bits 24-55  32-bit ordering score, not part of move identity
//
// The low 24 bits are a move's "short" identity; two moves with equal
// identity bits represent the same move regardless of their score.
type Move uint64

// MoveNone is the sentinel for "no move".
const MoveNone Move = 0

const (
	shiftPieceKind = 0
	shiftFrom      = 3
	shiftTo        = 9
	shiftCaptured  = 15
	shiftPromoted  = 18
	shiftEpFlag    = 21
	shiftDouble    = 22
	shiftCastling  = 23
	shiftValue     = 24

	maskKind  = 0x7
	maskSq    = 0x3F
	maskValue = 0xFFFFFFFF

	identityMask Move = (1 << shiftValue) - 1
)

// CreateMove builds a move's identity bits (score starts at zero).
func CreateMove(pieceKind PieceType, from, to Square, captured, promoted PieceType, isEp, isDoublePush, isCastling bool) Move {
	m := Move(pieceKind&maskKind) << shiftPieceKind
	m |= Move(from&maskSq) << shiftFrom
	m |= Move(to&maskSq) << shiftTo
	m |= Move(captured&maskKind) << shiftCaptured
	m |= Move(promoted&maskKind) << shiftPromoted
	if isEp {
		m |= 1 << shiftEpFlag
	}
	if isDoublePush {
		m |= 1 << shiftDouble
	}
	if isCastling {
		m |= 1 << shiftCastling
	}
	return m
}

// PieceKind returns the kind of piece making the move.
func (m Move) PieceKind() PieceType {
	return PieceType((m >> shiftPieceKind) & maskKind)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square((m >> shiftFrom) & maskSq)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> shiftTo) & maskSq)
}

// CapturedKind returns the kind of the captured piece, or PtNone.
func (m Move) CapturedKind() PieceType {
	return PieceType((m >> shiftCaptured) & maskKind)
}

// IsCapture reports whether the move captures a piece (en-passant
// counts, even though the captured square differs from To()).
func (m Move) IsCapture() bool {
	return m.CapturedKind() != PtNone || m.IsEnPassant()
}

// PromotedKind returns the piece kind promoted to, or PtNone.
func (m Move) PromotedKind() PieceType {
	return PieceType((m >> shiftPromoted) & maskKind)
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.PromotedKind() != PtNone
}

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return (m>>shiftEpFlag)&1 != 0
}

// IsDoublePush reports whether the move is a pawn double push.
func (m Move) IsDoublePush() bool {
	return (m>>shiftDouble)&1 != 0
}

// IsCastling reports whether the move is a castling move.
func (m Move) IsCastling() bool {
	return (m>>shiftCastling)&1 != 0
}

// ShortMove returns the identity-only bits of the move, discarding the
// ordering score. Two moves with equal ShortMove are the same move.
func (m Move) ShortMove() Move {
	return m & identityMask
}

// WithValue returns a copy of m carrying the given ordering score.
func (m Move) WithValue(v int32) Move {
	return (m &^ (Move(maskValue) << shiftValue)) | (Move(uint32(v)) << shiftValue)
}

// Value returns the move's ordering score.
func (m Move) Value() int32 {
	return int32(uint32((m >> shiftValue) & maskValue))
}

// Equals compares two moves by identity only, ignoring ordering score.
func (m Move) Equals(other Move) bool {
	return m.ShortMove() == other.ShortMove()
}

var promotionLetters = map[PieceType]string{Queen: "q", Rook: "r", Bishop: "b", Knight: "n"}

// StringUci renders the move in UCI notation: from-square, to-square,
// and an optional lowercase promotion letter (e.g. "e7e8q").
func (m Move) StringUci() string {
	if m == MoveNone {
		return "-"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if m.IsPromotion() {
		sb.WriteString(promotionLetters[m.PromotedKind()])
	}
	return sb.String()
}

// String renders the move for debug/log output.
func (m Move) String() string {
	return m.StringUci()
}
