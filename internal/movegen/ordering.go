// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package movegen

import (
	"github.com/talonchess/talon/internal/moveslice"
	. "github.com/talonchess/talon/internal/types"
)

// Ordering score bands, highest first: TT move, then MVV-LVA captures,
// then the two killer slots for the current ply, then quiet moves at
// zero. Bands never overlap so a lazy selection sort over the whole
// list produces exactly the order spec section 4.E step 6 describes.
const (
	ttMoveScore      int32 = 2_000_000_000
	captureBaseScore int32 = 1_000_000_000
	killerScore0     int32 = 900_000_000
	killerScore1     int32 = 899_999_999
)

// AssignOrderingValues scores every move in place: the TT move highest,
// captures by MVV-LVA (victim value first, attacker value subtracted),
// this ply's two killer moves next, quiets last at zero.
func (mg *Movegen) AssignOrderingValues(moves *moveslice.MoveSlice, ply int, ttMove Move) {
	killers := mg.killers[ply]
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		var score int32
		switch {
		case ttMove != MoveNone && m.Equals(ttMove):
			score = ttMoveScore
		case m.IsCapture():
			victim := m.CapturedKind()
			if m.IsEnPassant() {
				victim = Pawn
			}
			score = captureBaseScore + int32(victim.ValueOf())*64 - int32(m.PieceKind().ValueOf())
		case killers[0] != MoveNone && m.Equals(killers[0]):
			score = killerScore0
		case killers[1] != MoveNone && m.Equals(killers[1]):
			score = killerScore1
		default:
			score = 0
		}
		moves.Set(i, m.WithValue(score))
	}
}

// StoreKiller records a quiet move that caused a beta cutoff at ply.
// The older killer slides down; a move equal to the current slot 0 is
// not re-inserted. Capturing cutoffs are never recorded here.
func (mg *Movegen) StoreKiller(ply int, m Move) {
	if m.IsCapture() || m.IsPromotion() {
		return
	}
	if mg.killers[ply][0].Equals(m) {
		return
	}
	mg.killers[ply][1] = mg.killers[ply][0]
	mg.killers[ply][0] = m
}

// Killers returns the two killer-move slots for ply.
func (mg *Movegen) Killers(ply int) [2]Move {
	return mg.killers[ply]
}

// ClearKillers resets the killer table, used at the start of a new
// search so stale killers from a previous position don't bias ordering.
func (mg *Movegen) ClearKillers() {
	for i := range mg.killers {
		mg.killers[i] = [2]Move{}
	}
}
