// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package types

import "strings"

// Piece packs a color and a piece kind into a single value: bit 3 holds
// the color, the low three bits hold the PieceType.
type Piece uint8

// PieceNone is the sentinel for an empty square.
const PieceNone Piece = Piece(PtNone)

// MakePiece builds a Piece from a color and a piece kind.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(uint8(c)<<3 | uint8(pt))
}

// ColorOf returns the color of the piece. Meaningless if p is PieceNone.
func (p Piece) ColorOf() Color {
	return Color(p >> 3)
}

// TypeOf returns the piece kind of the piece.
func (p Piece) TypeOf() PieceType {
	return PieceType(p & 0b111)
}

// IsValid reports whether p is an occupied-square piece.
func (p Piece) IsValid() bool {
	return p.TypeOf() != PtNone
}

// ValueOf returns the static centipawn value of the piece.
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

var pieceToChar = " KQRBNP"

// PieceFromChar returns the Piece corresponding to a single FEN piece
// letter (uppercase for White, lowercase for Black). Returns PieceNone
// for any input that isn't exactly one recognized letter.
func PieceFromChar(s string) Piece {
	if len(s) != 1 {
		return PieceNone
	}
	upper := strings.ToUpper(s)
	idx := strings.Index(pieceToChar, upper)
	if idx <= 0 {
		return PieceNone
	}
	pt := PieceType(0)
	switch upper {
	case "K":
		pt = King
	case "Q":
		pt = Queen
	case "R":
		pt = Rook
	case "B":
		pt = Bishop
	case "N":
		pt = Knight
	case "P":
		pt = Pawn
	default:
		return PieceNone
	}
	color := White
	if s != upper {
		color = Black
	}
	return MakePiece(color, pt)
}

// Char returns the FEN letter for the piece: uppercase for White,
// lowercase for Black, "-" for PieceNone.
func (p Piece) Char() string {
	if !p.IsValid() {
		return "-"
	}
	c := pieceToChar[p.TypeOf()+1]
	if p.ColorOf() == Black {
		return strings.ToLower(string(c))
	}
	return string(c)
}

var pieceToUnicode = map[Piece]string{
	MakePiece(White, King): "♔", MakePiece(White, Queen): "♕",
	MakePiece(White, Rook): "♖", MakePiece(White, Bishop): "♗",
	MakePiece(White, Knight): "♘", MakePiece(White, Pawn): "♙",
	MakePiece(Black, King): "♚", MakePiece(Black, Queen): "♛",
	MakePiece(Black, Rook): "♜", MakePiece(Black, Bishop): "♝",
	MakePiece(Black, Knight): "♞", MakePiece(Black, Pawn): "♟",
}

// UniChar returns a unicode chess glyph for the piece, " " for PieceNone.
func (p Piece) UniChar() string {
	if !p.IsValid() {
		return " "
	}
	return pieceToUnicode[p]
}

// String is an alias for Char, for use in generic formatting contexts.
func (p Piece) String() string {
	return p.Char()
}
