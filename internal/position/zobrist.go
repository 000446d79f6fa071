// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package position

import (
	. "github.com/talonchess/talon/internal/types"
)

// zobristTable holds the fixed, deterministically seeded random words
// used to build the incremental hash key described in spec section 3,
// invariant I4: one word per (piece, square), one per castling-rights
// value, one per en-passant file, and one for side to move.
type zobristTable struct {
	pieces         [PtLength][Color(2)][SqLength]uint64
	castlingRights [CastlingAny + 1]uint64
	enPassantFile  [FileLength]uint64
	noEnPassant    uint64
	sideToMove     uint64
}

var zobrist zobristTable

// seededRand is the same xorshift64star generator the magic-table
// builder uses, re-seeded here so the zobrist words are reproducible
// across runs without depending on package init order between types
// and position.
type seededRand struct{ s uint64 }

func newSeededRand(seed uint64) *seededRand {
	return &seededRand{s: seed}
}

func (r *seededRand) next() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

func init() {
	r := newSeededRand(1070372)
	for pt := King; pt < PtLength; pt++ {
		for c := White; c <= Black; c++ {
			for sq := SqA1; sq < SqNone; sq++ {
				zobrist.pieces[pt][c][sq] = r.next()
			}
		}
	}
	for cr := CastlingNone; cr <= CastlingAny; cr++ {
		zobrist.castlingRights[cr] = r.next()
	}
	for f := FileA; f < FileLength; f++ {
		zobrist.enPassantFile[f] = r.next()
	}
	zobrist.noEnPassant = r.next()
	zobrist.sideToMove = r.next()
}

func zobristPiece(p Piece, sq Square) uint64 {
	return zobrist.pieces[p.TypeOf()][p.ColorOf()][sq]
}

func zobristCastling(cr CastlingRights) uint64 {
	return zobrist.castlingRights[cr]
}

func zobristEp(sq Square) uint64 {
	if sq == SqNone {
		return zobrist.noEnPassant
	}
	return zobrist.enPassantFile[sq.FileOf()]
}
