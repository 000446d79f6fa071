// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package puzzle loads a Lichess-style puzzle CSV (PuzzleId, FEN,
// Moves, Rating, RatingDeviation, Popularity, NbPlays, Themes,
// GameUrl) and validates each puzzle's solution moves against the
// core's FEN parser and move generator. Out of scope for search
// correctness per spec section 1; kept as a small standalone utility
// that exercises the core as a collaborator, the way
// original_source/src/puzzle.rs uses the board and move generator it
// sits on top of.
package puzzle

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/talonchess/talon/internal/movegen"
	"github.com/talonchess/talon/internal/position"
	. "github.com/talonchess/talon/internal/types"
)

// Puzzle is one tactics puzzle: a starting position and the sequence
// of moves (in UCI long-algebraic notation) that solves it.
type Puzzle struct {
	ID            string
	Fen           string
	SolutionMoves []string
	Rating        int
	Themes        []string
}

// csv column order, matching the Lichess puzzle database export.
const (
	colPuzzleID = iota
	colFen
	colMoves
	colRating
	colRatingDeviation
	colPopularity
	colNbPlays
	colThemes
	colGameURL
	numColumns
)

// ReadPuzzlesFromCSV reads every puzzle record from path. A header row
// is expected and skipped; the first malformed data row stops the read
// with an error naming its 1-based line number.
func ReadPuzzlesFromCSV(path string) ([]Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("puzzle: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("puzzle: reading header of %s: %w", path, err)
	}

	var puzzles []Puzzle
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("puzzle: %s line %d: %w", path, line, err)
		}
		if len(record) < numColumns {
			return nil, fmt.Errorf("puzzle: %s line %d: expected %d columns, got %d", path, line, numColumns, len(record))
		}

		rating, _ := strconv.Atoi(record[colRating])
		var themes []string
		if t := strings.TrimSpace(record[colThemes]); t != "" {
			themes = strings.Fields(t)
		}

		puzzles = append(puzzles, Puzzle{
			ID:            record[colPuzzleID],
			Fen:           record[colFen],
			SolutionMoves: strings.Fields(record[colMoves]),
			Rating:        rating,
			Themes:        themes,
		})
	}
	return puzzles, nil
}

// Verify replays p's solution moves from its starting FEN through the
// move generator, reporting the index of the first move that is
// missing from the pseudo-legal set or illegal (leaves its own king in
// check). A nil error means every move in the solution is playable.
func (p Puzzle) Verify() error {
	pos, err := position.NewPositionFen(p.Fen)
	if err != nil {
		return fmt.Errorf("puzzle %s: bad fen: %w", p.ID, err)
	}
	mg := movegen.NewMoveGen()

	for i, uci := range p.SolutionMoves {
		m, ok := matchUciMove(pos, mg, uci)
		if !ok {
			return fmt.Errorf("puzzle %s: move %d (%s) is not pseudo-legal", p.ID, i, uci)
		}
		if !pos.DoMove(m) {
			return fmt.Errorf("puzzle %s: move %d (%s) leaves own king in check", p.ID, i, uci)
		}
	}
	return nil
}

func matchUciMove(pos *position.Position, mg *movegen.Movegen, s string) (Move, bool) {
	moves := mg.Generate(pos, movegen.GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.StringUci() == s {
			return m, true
		}
	}
	return MoveNone, false
}
