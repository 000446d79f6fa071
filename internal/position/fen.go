// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package position

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/talonchess/talon/internal/types"
)

// FenError names which of the six space-separated FEN fields failed to
// parse, per spec section 7 ("FEN parse error"). Part is 1-6 for the
// failing field, or 0 when the string does not have six fields.
type FenError struct {
	Part int
	Msg  string
}

func (e *FenError) Error() string {
	return fmt.Sprintf("fen: field %d: %s", e.Part, e.Msg)
}

// setupFromFen parses a strict six-field FEN string into p. On error
// the position may be left partially populated; callers should discard
// it rather than continue using it.
func (p *Position) setupFromFen(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 6 {
		return &FenError{Part: 0, Msg: fmt.Sprintf("expected 6 fields, got %d", len(fields))}
	}

	if err := p.parsePieces(fields[0]); err != nil {
		return err
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
		p.zobristKey ^= zobrist.sideToMove
	default:
		return &FenError{Part: 2, Msg: fmt.Sprintf("invalid side to move %q", fields[1])}
	}

	cr, err := parseCastling(fields[2])
	if err != nil {
		return err
	}
	p.castlingRights = cr
	p.zobristKey ^= zobristCastling(p.castlingRights)

	ep := SqNone
	if fields[3] != "-" {
		ep = MakeSquare(fields[3])
		if ep == SqNone {
			return &FenError{Part: 4, Msg: fmt.Sprintf("invalid en-passant square %q", fields[3])}
		}
	}
	p.epTarget = ep
	p.zobristKey ^= zobristEp(p.epTarget)

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 || half > 100 {
		return &FenError{Part: 5, Msg: fmt.Sprintf("invalid halfmove clock %q", fields[4])}
	}
	p.halfmoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return &FenError{Part: 6, Msg: fmt.Sprintf("invalid fullmove number %q", fields[5])}
	}
	p.fullmoveNumber = full

	return nil
}

func (p *Position) parsePieces(field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return &FenError{Part: 1, Msg: fmt.Sprintf("expected 8 ranks, got %d", len(ranks))}
	}
	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := FileA
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += File(ch - '0')
				continue
			}
			if !file.IsValid() {
				return &FenError{Part: 1, Msg: fmt.Sprintf("rank %d overflows files", 8-i)}
			}
			piece := PieceFromChar(string(ch))
			if !piece.IsValid() {
				return &FenError{Part: 1, Msg: fmt.Sprintf("invalid piece char %q", ch)}
			}
			p.PutPiece(piece.ColorOf(), piece.TypeOf(), SquareOf(file, rank))
			file++
		}
		if file != FileNone {
			return &FenError{Part: 1, Msg: fmt.Sprintf("rank %d does not sum to 8 files", 8-i)}
		}
	}
	return nil
}

func parseCastling(field string) (CastlingRights, error) {
	if field == "-" {
		return CastlingNone, nil
	}
	var cr CastlingRights
	for _, ch := range field {
		switch ch {
		case 'K':
			cr |= CastlingWhiteOO
		case 'Q':
			cr |= CastlingWhiteOOO
		case 'k':
			cr |= CastlingBlackOO
		case 'q':
			cr |= CastlingBlackOOO
		default:
			return 0, &FenError{Part: 3, Msg: fmt.Sprintf("invalid castling char %q", ch)}
		}
	}
	return cr, nil
}

// StringFen serializes the position back into a FEN string.
func (p *Position) StringFen() string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		empty := 0
		for f := int(FileA); f <= int(FileH); f++ {
			sq := SquareOf(File(f), Rank(r))
			piece := p.squareToPiece[sq]
			if !piece.IsValid() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > int(Rank1) {
			sb.WriteString("/")
		}
	}
	sb.WriteString(" ")
	sb.WriteString(p.sideToMove.String())
	sb.WriteString(" ")
	sb.WriteString(p.castlingRights.String())
	sb.WriteString(" ")
	sb.WriteString(p.epTarget.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}
