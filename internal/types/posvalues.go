// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package types

// Piece-square tables, one per piece kind, indexed a1..h8 from White's
// point of view. Black's value for a square is read by mirroring the
// square with XorFlip (sq ⊕ 56) before indexing.
//
// Values follow the common handcrafted tables used by small engines:
// nudge knights and bishops toward the center, keep the king home in
// the middlegame, push rooks to open files isn't modeled (kept simple,
// per spec section 4.D which only asks for a material + psqt sum).

var pawnPsqt = [SqLength]Value{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPsqt = [SqLength]Value{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPsqt = [SqLength]Value{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPsqt = [SqLength]Value{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPsqt = [SqLength]Value{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingPsqt = [SqLength]Value{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

// kingEdgeTable pushes a bare (mating) king toward the edge and corner;
// added to the material/psqt sum per spec section 4.D once the losing
// side's non-king material falls below BareKingThreshold.
var kingEdgeTable = [SqLength]Value{
	100, 90, 80, 70, 70, 80, 90, 100,
	90, 70, 60, 50, 50, 60, 70, 90,
	80, 60, 40, 30, 30, 40, 60, 80,
	70, 50, 30, 20, 20, 30, 50, 70,
	70, 50, 30, 20, 20, 30, 50, 70,
	80, 60, 40, 30, 30, 40, 60, 80,
	90, 70, 60, 50, 50, 60, 70, 90,
	100, 90, 80, 70, 70, 80, 90, 100,
}

var psqtByType = [PtLength]*[SqLength]Value{
	King:   &kingPsqt,
	Queen:  &queenPsqt,
	Rook:   &rookPsqt,
	Bishop: &bishopPsqt,
	Knight: &knightPsqt,
	Pawn:   &pawnPsqt,
}

// PsqtValue returns the piece-square table bonus for a piece of kind pt
// and color c standing on sq.
func PsqtValue(c Color, pt PieceType, sq Square) Value {
	if c == Black {
		sq = sq.XorFlip()
	}
	return psqtByType[pt][sq]
}

// KingEdgeValue returns the mating-assist bonus for the king of color c
// standing on sq.
func KingEdgeValue(c Color, sq Square) Value {
	if c == Black {
		sq = sq.XorFlip()
	}
	return kingEdgeTable[sq]
}

// BareKingThreshold is the non-king material value (a side's Material
// total minus the king's own value) below which that side is
// considered to have only its king left for mating-assist purposes.
const BareKingThreshold = Value(400)
