// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package moveslice provides a small growable container for the
// packed Move type, with a lazy selection sort tuned for the way the
// search wants moves: mostly small, mostly already close to sorted by
// a previous TT-move hint.
package moveslice

import (
	"fmt"
	"strings"

	. "github.com/talonchess/talon/internal/types"
)

// MoveSlice is a slice of Move with helper methods for the generator
// and search move-ordering loop.
type MoveSlice []Move

// NewMoveSlice returns an empty move slice with the given capacity.
func NewMoveSlice(capacity int) *MoveSlice {
	moves := make([]Move, 0, capacity)
	return (*MoveSlice)(&moves)
}

// Len returns the number of moves currently stored.
func (ms *MoveSlice) Len() int { return len(*ms) }

// PushBack appends a move.
func (ms *MoveSlice) PushBack(m Move) { *ms = append(*ms, m) }

// At returns the move at index i.
func (ms *MoveSlice) At(i int) Move { return (*ms)[i] }

// Set overwrites the move at index i.
func (ms *MoveSlice) Set(i int, m Move) { (*ms)[i] = m }

// Clear empties the slice while retaining its backing array.
func (ms *MoveSlice) Clear() { *ms = (*ms)[:0] }

// SelectBest swaps the highest-scoring move in [from, len) into slot
// from and returns it. This is the lazy selection sort spec section
// 4.E step 6 calls for: moves beyond the current index stay unsorted
// until (if ever) they are visited.
func (ms *MoveSlice) SelectBest(from int) Move {
	best := from
	for i := from + 1; i < len(*ms); i++ {
		if (*ms)[i].Value() > (*ms)[best].Value() {
			best = i
		}
	}
	(*ms)[from], (*ms)[best] = (*ms)[best], (*ms)[from]
	return (*ms)[from]
}

// Contains reports whether m's identity (ignoring ordering score)
// appears in the slice.
func (ms *MoveSlice) Contains(m Move) bool {
	for _, x := range *ms {
		if x.Equals(m) {
			return true
		}
	}
	return false
}

// String renders the slice for debug output.
func (ms *MoveSlice) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("MoveSlice[%d]{", len(*ms)))
	for i, m := range *ms {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.StringUci())
	}
	sb.WriteString("}")
	return sb.String()
}

// StringUci renders the slice as a space-separated UCI move list.
func (ms *MoveSlice) StringUci() string {
	var sb strings.Builder
	for i, m := range *ms {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.StringUci())
	}
	return sb.String()
}
