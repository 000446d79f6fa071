// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package position implements the board representation: piece
// placement, side to move, castling rights, en passant, the
// incremental zobrist key, and make/unmake with a bounded history
// stack, as described by the board & zobrist component of the engine.
package position

import (
	"fmt"
	"strings"

	myLogging "github.com/talonchess/talon/internal/logging"
	. "github.com/talonchess/talon/internal/types"
)

// log is the standard engine logger; used only on the fatal-invariant
// paths below, never inside make/unmake itself, so it carries no cost
// for the search hot path (spec section 7).
var log = myLogging.GetLog()

// MaxGameMoves bounds the history stack; no legal game exceeds it.
const MaxGameMoves = 1024

// historyEntry is the snapshot pushed before every DoMove: everything
// needed to restore the position except the piece bitboards and the
// square-to-piece map, which are reversed by inspecting the move itself.
type historyEntry struct {
	castlingRights CastlingRights
	epTarget       Square
	halfmoveClock  int
	fullmoveNumber int
	zobristKey     uint64
	material       [2]Value
	psqt           [2]Value
	move           Move
}

// Position is the mutable board state the search and move generator
// operate on. All fields are exported read-only via accessor methods;
// mutation only ever happens through PutPiece/RemovePiece/MovePiece,
// DoMove/UndoMove, or the FEN setup path.
type Position struct {
	byPiece       [2][6]Bitboard
	bySide        [2]Bitboard
	squareToPiece [64]Piece

	sideToMove     Color
	castlingRights CastlingRights
	epTarget       Square
	halfmoveClock  int
	fullmoveNumber int
	zobristKey     uint64
	material       [2]Value
	psqt           [2]Value

	history [MaxGameMoves]historyEntry
	ply     int
}

// StartFen is the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPosition returns a position set up at the standard starting
// position.
func NewPosition() *Position {
	p, err := NewPositionFen(StartFen)
	if err != nil {
		log.Criticalf("invalid built-in start fen: %v", err)
		panic(fmt.Sprintf("position: invalid built-in start fen: %v", err))
	}
	return p
}

// NewPositionFen parses a FEN string and returns the position it
// describes, or an error naming which of the six fields failed.
func NewPositionFen(fen string) (*Position, error) {
	p := &Position{}
	for sq := range p.squareToPiece {
		p.squareToPiece[sq] = PieceNone
	}
	p.epTarget = SqNone
	if err := p.setupFromFen(fen); err != nil {
		return nil, err
	}
	return p, nil
}

// SideToMove returns the color whose turn it is.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the current castling rights mask.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EpTarget returns the current en-passant target square, or SqNone.
func (p *Position) EpTarget() Square { return p.epTarget }

// HalfmoveClock returns the plies since the last pawn move or capture.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the current full move counter.
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// ZobristKey returns the incremental hash key for the current position.
func (p *Position) ZobristKey() uint64 { return p.zobristKey }

// Material returns the raw material tally for color c.
func (p *Position) Material(c Color) Value { return p.material[c] }

// Psqt returns the raw piece-square tally for color c.
func (p *Position) Psqt(c Color) Value { return p.psqt[c] }

// Ply returns the number of moves made since this position was set up.
func (p *Position) Ply() int { return p.ply }

// PieceOn returns the piece occupying sq, or PieceNone.
func (p *Position) PieceOn(sq Square) Piece { return p.squareToPiece[sq] }

// Pieces returns the bitboard of all pieces of kind pt belonging to c.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard { return p.byPiece[c][pt] }

// Occupied returns the union of all pieces of color c.
func (p *Position) Occupied(c Color) Bitboard { return p.bySide[c] }

// OccupiedAll returns the union of all pieces on the board.
func (p *Position) OccupiedAll() Bitboard { return p.bySide[White] | p.bySide[Black] }

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.byPiece[c][King].Lsb()
}

// ///////////////////////////////////////////////////////////////////
// Mutators (spec section 4.B)
// ///////////////////////////////////////////////////////////////////

// PutPiece places piece (c, pt) on sq, updating bitboards, the mirror
// array, the zobrist key, and the material/psqt tallies.
func (p *Position) PutPiece(c Color, pt PieceType, sq Square) {
	piece := MakePiece(c, pt)
	p.byPiece[c][pt].PushSquare(sq)
	p.bySide[c].PushSquare(sq)
	p.squareToPiece[sq] = piece
	p.zobristKey ^= zobristPiece(piece, sq)
	p.material[c] += pt.ValueOf()
	p.psqt[c] += PsqtValue(c, pt, sq)
}

// RemovePiece clears whatever piece stands on sq and returns it.
// Panics if sq is empty: callers must know a piece is there.
func (p *Position) RemovePiece(sq Square) Piece {
	piece := p.squareToPiece[sq]
	if !piece.IsValid() {
		log.Criticalf("RemovePiece on empty square %s: bitboard/piece-map desync", sq)
		panic(fmt.Sprintf("position: RemovePiece on empty square %s", sq))
	}
	c := piece.ColorOf()
	pt := piece.TypeOf()
	p.byPiece[c][pt].PopSquare(sq)
	p.bySide[c].PopSquare(sq)
	p.squareToPiece[sq] = PieceNone
	p.zobristKey ^= zobristPiece(piece, sq)
	p.material[c] -= pt.ValueOf()
	p.psqt[c] -= PsqtValue(c, pt, sq)
	return piece
}

// MovePiece relocates the piece on from to to. to must be empty.
func (p *Position) MovePiece(from, to Square) {
	piece := p.RemovePiece(from)
	p.PutPiece(piece.ColorOf(), piece.TypeOf(), to)
}

// SetCastling replaces the castling-rights mask, toggling the zobrist
// key for the old and new values.
func (p *Position) SetCastling(newMask CastlingRights) {
	p.zobristKey ^= zobristCastling(p.castlingRights)
	p.castlingRights = newMask
	p.zobristKey ^= zobristCastling(p.castlingRights)
}

// SetEp sets the en-passant target square (SqNone clears it), toggling
// the zobrist key for the old and new en-passant file.
func (p *Position) SetEp(sq Square) {
	p.zobristKey ^= zobristEp(p.epTarget)
	p.epTarget = sq
	p.zobristKey ^= zobristEp(p.epTarget)
}

// SwapSide flips the side to move and toggles the zobrist side key.
func (p *Position) SwapSide() {
	p.sideToMove = p.sideToMove.Flip()
	p.zobristKey ^= zobrist.sideToMove
}

// ///////////////////////////////////////////////////////////////////
// square_attacked (spec section 4.A)
// ///////////////////////////////////////////////////////////////////

// IsAttacked reports whether sq is attacked by any piece of attacker,
// using the super-piece trick: project a super-piece from sq and
// intersect each piece kind's projection with the attacker's actual
// pieces of that kind.
func (p *Position) IsAttacked(attacker Color, sq Square) bool {
	occ := p.OccupiedAll()
	if GetPseudoAttacks(Knight, sq)&p.byPiece[attacker][Knight] != 0 {
		return true
	}
	if GetPseudoAttacks(King, sq)&p.byPiece[attacker][King] != 0 {
		return true
	}
	if GetAttacksBb(Rook, sq, occ)&(p.byPiece[attacker][Rook]|p.byPiece[attacker][Queen]) != 0 {
		return true
	}
	if GetAttacksBb(Bishop, sq, occ)&(p.byPiece[attacker][Bishop]|p.byPiece[attacker][Queen]) != 0 {
		return true
	}
	// A pawn of the attacker's color attacks sq iff sq is one of the
	// squares that attacker's pawn attacks pattern reaches from sq,
	// mirrored: use the defender's pawn-attack table from sq and look
	// for an attacker pawn there.
	if GetPawnAttacks(attacker.Flip(), sq)&p.byPiece[attacker][Pawn] != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move's king is currently attacked.
func (p *Position) InCheck() bool {
	return p.IsAttacked(p.sideToMove.Flip(), p.KingSquare(p.sideToMove))
}

// ///////////////////////////////////////////////////////////////////
// make / unmake (spec section 4.B)
// ///////////////////////////////////////////////////////////////////

// DoMove executes m and reports whether it was legal (did not leave the
// mover's own king in check). On an illegal move the position is
// restored via UndoMove before returning false.
func (p *Position) DoMove(m Move) bool {
	mover := p.sideToMove

	p.history[p.ply] = historyEntry{
		castlingRights: p.castlingRights,
		epTarget:       p.epTarget,
		halfmoveClock:  p.halfmoveClock,
		fullmoveNumber: p.fullmoveNumber,
		zobristKey:     p.zobristKey,
		material:       p.material,
		psqt:           p.psqt,
		move:           m,
	}
	p.ply++

	p.halfmoveClock++
	p.SetEp(SqNone)

	from, to := m.From(), m.To()

	if m.IsCapture() {
		capSq := to
		if m.IsEnPassant() {
			capSq = Square(int(to) ^ 8)
		}
		p.RemovePiece(capSq)
		p.halfmoveClock = 0
		if loss := CastlingLoss(capSq); loss != CastlingNone {
			p.SetCastling(p.castlingRights &^ loss)
		}
	}

	if m.PieceKind() == Pawn {
		p.halfmoveClock = 0
		if m.IsDoublePush() {
			p.SetEp(Square(int(to) ^ 8))
		}
		p.MovePiece(from, to)
		if m.IsPromotion() {
			p.RemovePiece(to)
			p.PutPiece(mover, m.PromotedKind(), to)
		}
	} else {
		p.MovePiece(from, to)
		if loss := CastlingLoss(from); loss != CastlingNone {
			p.SetCastling(p.castlingRights &^ loss)
		}
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(to)
		p.MovePiece(rookFrom, rookTo)
	}

	p.SwapSide()
	if p.sideToMove == White {
		p.fullmoveNumber++
	}

	if p.IsAttacked(p.sideToMove, p.KingSquare(mover)) {
		p.UndoMove()
		return false
	}
	return true
}

// castlingRookSquares returns the rook's origin and destination for a
// castling move identified by the king's destination square.
func castlingRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case SqG1:
		return SqH1, SqF1
	case SqC1:
		return SqA1, SqD1
	case SqG8:
		return SqH8, SqF8
	case SqC8:
		return SqA8, SqD8
	default:
		log.Criticalf("%s is not a castling destination", kingTo)
		panic(fmt.Sprintf("position: %s is not a castling destination", kingTo))
	}
}

// UndoMove reverses the most recently made move, restoring the
// position to its exact prior state.
func (p *Position) UndoMove() {
	p.ply--
	h := p.history[p.ply]
	m := h.move

	p.sideToMove = p.sideToMove.Flip()
	mover := p.sideToMove

	to := m.To()
	from := m.From()

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(to)
		p.unmovePiece(rookTo, rookFrom)
	}

	if m.IsPromotion() {
		p.unremovePiece(to)
		p.unputPiece(mover, Pawn, from)
	} else {
		p.unmovePiece(to, from)
	}

	if m.IsCapture() {
		capSq := to
		if m.IsEnPassant() {
			capSq = Square(int(to) ^ 8)
		}
		p.unputPiece(mover.Flip(), m.CapturedKind(), capSq)
	}

	p.castlingRights = h.castlingRights
	p.epTarget = h.epTarget
	p.halfmoveClock = h.halfmoveClock
	p.fullmoveNumber = h.fullmoveNumber
	p.zobristKey = h.zobristKey
	p.material = h.material
	p.psqt = h.psqt
}

// unmovePiece/unputPiece/unremovePiece perform raw bitboard/mirror
// mutation without touching the zobrist key or material/psqt tallies,
// since UndoMove restores those scalar fields directly from the
// history snapshot instead of re-deriving them.

func (p *Position) unmovePiece(from, to Square) {
	piece := p.squareToPiece[from]
	c, pt := piece.ColorOf(), piece.TypeOf()
	p.byPiece[c][pt].PopSquare(from)
	p.bySide[c].PopSquare(from)
	p.squareToPiece[from] = PieceNone
	p.byPiece[c][pt].PushSquare(to)
	p.bySide[c].PushSquare(to)
	p.squareToPiece[to] = piece
}

func (p *Position) unputPiece(c Color, pt PieceType, sq Square) {
	p.byPiece[c][pt].PushSquare(sq)
	p.bySide[c].PushSquare(sq)
	p.squareToPiece[sq] = MakePiece(c, pt)
}

func (p *Position) unremovePiece(sq Square) {
	piece := p.squareToPiece[sq]
	c, pt := piece.ColorOf(), piece.TypeOf()
	p.byPiece[c][pt].PopSquare(sq)
	p.bySide[c].PopSquare(sq)
	p.squareToPiece[sq] = PieceNone
}

// ///////////////////////////////////////////////////////////////////
// Draw conditions (spec sections 4.E, 9)
// ///////////////////////////////////////////////////////////////////

// CheckRepetitions reports whether the current zobrist key has occurred
// at least reps times (including the current position) within the
// bounded history, stopping the walk at the last irreversible move
// (halfmove clock reset to 0).
func (p *Position) CheckRepetitions(reps int) bool {
	count := 1
	clock := p.halfmoveClock
	for i := p.ply - 1; i >= 0 && clock > 0; i-- {
		if p.history[i].zobristKey == p.zobristKey {
			count++
			if count >= reps {
				return true
			}
		}
		clock = p.history[i].halfmoveClock
	}
	return false
}

// IsFiftyMoveDraw reports whether the halfmove clock has reached the
// fifty-move-rule threshold of 100 plies.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.halfmoveClock >= 100
}

// HasInsufficientMaterial reports whether neither side has enough
// material to deliver checkmate (K vs K, K+N vs K, K+B vs K).
func (p *Position) HasInsufficientMaterial() bool {
	for _, c := range [2]Color{White, Black} {
		if p.byPiece[c][Pawn] != 0 || p.byPiece[c][Queen] != 0 || p.byPiece[c][Rook] != 0 {
			return false
		}
		minorCount := p.byPiece[c][Bishop].PopCount() + p.byPiece[c][Knight].PopCount()
		if minorCount > 1 {
			return false
		}
	}
	return true
}

// ///////////////////////////////////////////////////////////////////
// Debug rendering
// ///////////////////////////////////////////////////////////////////

// String renders an 8x8 ASCII board with rank 8 at the top.
func (p *Position) String() string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		for f := int(FileA); f <= int(FileH); f++ {
			sq := SquareOf(File(f), Rank(r))
			sb.WriteString(p.squareToPiece[sq].Char())
		}
		sb.WriteString("\n")
	}
	sb.WriteString(p.StringFen())
	return sb.String()
}
