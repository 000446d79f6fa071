// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package openingbook reads a simple-format opening book (one game per
// line, moves as space-separated UCI long-algebraic strings) into a
// zobrist-keyed lookup table, and answers book-move queries for the
// search entry point before it falls back to its own search.
//
// Only the "Simple" format is implemented: the teacher's own opening
// book additionally parses SAN and PGN game text, which needs a SAN
// disambiguator Talon's core has no use for elsewhere, so that part of
// the teacher package is not carried forward (see DESIGN.md).
package openingbook

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/talonchess/talon/internal/logging"
	"github.com/talonchess/talon/internal/movegen"
	"github.com/talonchess/talon/internal/position"
	. "github.com/talonchess/talon/internal/types"
)

var out = message.NewPrinter(language.English)

// parallel toggles goroutine-per-line processing; false is useful when
// debugging a malformed book file line by line.
const parallel = true

// Successor pairs a short move with the zobrist key of the position it
// leads to, so a probe can walk further into the book after playing it.
type Successor struct {
	Move    Move
	NextKey uint64
}

// Entry describes one book position: how often it was seen across the
// loaded games, and which moves were played from it.
type Entry struct {
	ZobristKey uint64
	Counter    int
	Moves      []Successor
}

// Book is the loaded, queryable opening book. Safe for concurrent
// Probe calls once Load has returned; Load itself is not re-entrant.
type Book struct {
	mu          sync.Mutex
	byKey       map[uint64]Entry
	rootKey     uint64
	initialized bool
}

// NewBook returns an empty, unloaded book.
func NewBook() *Book {
	return &Book{}
}

// IsLoaded reports whether Load has successfully populated the book.
func (b *Book) IsLoaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// NumberOfEntries returns how many distinct positions the book knows.
func (b *Book) NumberOfEntries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byKey)
}

// Load reads bookPath (a text file, one game per line) and builds the
// lookup table. When useCache is true and a "<bookPath>.cache" file
// exists and is newer-looking than the source (best-effort: we don't
// compare mtimes, only existence, since a corrupt cache is cheap to
// detect and fall back from), it is loaded instead of re-parsing the
// text file; Load then writes a fresh cache after a from-scratch parse.
func (b *Book) Load(bookPath string, useCache bool) error {
	b.mu.Lock()
	if b.initialized {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	log := logging.GetLog()
	start := time.Now()

	cachePath := bookPath + ".cache"
	if useCache {
		if ok, err := b.loadCache(cachePath); ok {
			log.Infof("openingbook: loaded %d entries from cache %s in %s", b.NumberOfEntries(), cachePath, time.Since(start))
			return nil
		} else if err != nil {
			log.Warningf("openingbook: cache %s unusable, reparsing: %v", cachePath, err)
		}
	}

	lines, err := readLines(bookPath)
	if err != nil {
		return fmt.Errorf("openingbook: reading %s: %w", bookPath, err)
	}

	root := position.NewPosition()
	byKey := map[uint64]Entry{root.ZobristKey(): {ZobristKey: root.ZobristKey()}}
	var mu sync.Mutex

	process := func(line string) {
		processLine(line, root.ZobristKey(), byKey, &mu)
	}
	if parallel {
		var wg sync.WaitGroup
		wg.Add(len(lines))
		for _, line := range lines {
			go func(line string) {
				defer wg.Done()
				process(line)
			}(line)
		}
		wg.Wait()
	} else {
		for _, line := range lines {
			process(line)
		}
	}

	b.mu.Lock()
	b.byKey = byKey
	b.rootKey = root.ZobristKey()
	b.initialized = true
	b.mu.Unlock()

	log.Infof("openingbook: parsed %d lines into %d entries in %s", len(lines), len(byKey), time.Since(start))

	if useCache {
		if err := b.saveCache(cachePath); err != nil {
			log.Warningf("openingbook: could not write cache %s: %v", cachePath, err)
		}
	}
	return nil
}

var regexUciMove = regexp.MustCompile(`[a-h][1-8][a-h][1-8][qrbn]?`)

// processLine replays one line's moves from the start position,
// recording each position's successor moves. A malformed or illegal
// move string stops processing of that line only.
func processLine(line string, rootKey uint64, byKey map[uint64]Entry, mu *sync.Mutex) {
	matches := regexUciMove.FindAllString(line, -1)
	if len(matches) == 0 {
		return
	}

	pos := position.NewPosition()
	mg := movegen.NewMoveGen()

	mu.Lock()
	e := byKey[rootKey]
	e.Counter++
	byKey[rootKey] = e
	mu.Unlock()

	for _, s := range matches {
		from := pos.ZobristKey()
		m, ok := matchUciMove(pos, mg, s)
		if !ok || !pos.DoMove(m) {
			return
		}
		to := pos.ZobristKey()

		mu.Lock()
		e := byKey[from]
		e.ZobristKey = from
		added := false
		short := m.ShortMove()
		for i, succ := range e.Moves {
			if succ.Move.ShortMove() == short {
				e.Moves[i].NextKey = to
				added = true
				break
			}
		}
		if !added {
			e.Moves = append(e.Moves, Successor{Move: short, NextKey: to})
		}
		byKey[from] = e

		next := byKey[to]
		next.ZobristKey = to
		next.Counter++
		byKey[to] = next
		mu.Unlock()
	}
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

// Probe returns the book entry for key, if any.
func (b *Book) Probe(key uint64) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return Entry{}, false
	}
	e, ok := b.byKey[key]
	if !ok || len(e.Moves) == 0 {
		return Entry{}, false
	}
	return e, true
}

// BestMove returns the most-frequently-played successor move from key,
// or MoveNone if the position is not in the book.
func (b *Book) BestMove(key uint64) Move {
	e, ok := b.Probe(key)
	if !ok {
		return MoveNone
	}
	best := e.Moves[0]
	for _, succ := range e.Moves[1:] {
		if byKeyCounter(b, succ.NextKey) > byKeyCounter(b, best.NextKey) {
			best = succ
		}
	}
	return best.Move
}

func byKeyCounter(b *Book, key uint64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.byKey[key].Counter
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	return lines, s.Err()
}

// loadCache tries to decode a previously saved gob cache. A missing
// file is not an error (ok=false, err=nil); a present-but-corrupt file
// is (ok=false, err!=nil) so the caller can log why it fell back.
func (b *Book) loadCache(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var cached struct {
		ByKey   map[uint64]Entry
		RootKey uint64
	}
	if err := gob.NewDecoder(f).Decode(&cached); err != nil {
		return false, err
	}

	b.mu.Lock()
	b.byKey = cached.ByKey
	b.rootKey = cached.RootKey
	b.initialized = true
	b.mu.Unlock()
	return true, nil
}

func (b *Book) saveCache(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b.mu.Lock()
	cached := struct {
		ByKey   map[uint64]Entry
		RootKey uint64
	}{ByKey: b.byKey, RootKey: b.rootKey}
	b.mu.Unlock()

	return gob.NewEncoder(f).Encode(&cached)
}

// String renders occupancy for startup logging, matching the teacher's
// localized-number-printer idiom used across the engine's stats output.
func (b *Book) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return out.Sprintf("Book: %d entries, loaded=%v", len(b.byKey), b.initialized)
}
