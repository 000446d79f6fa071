// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package uci implements the protocol task of the engine: a
// line-oriented reader of UCI commands that owns the authoritative
// board (behind a mutex, per spec section 5) and drives the search
// task.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/op/go-logging"

	"github.com/talonchess/talon/internal/config"
	myLogging "github.com/talonchess/talon/internal/logging"
	"github.com/talonchess/talon/internal/movegen"
	"github.com/talonchess/talon/internal/openingbook"
	"github.com/talonchess/talon/internal/position"
	"github.com/talonchess/talon/internal/search"
	"github.com/talonchess/talon/internal/transpositiontable"
	. "github.com/talonchess/talon/internal/types"
)

const engineName = "Talon"
const engineAuthor = "the Talon contributors"

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// Handler owns the board mutex, the move generator, and the search
// task, and translates stdin lines into calls against them.
type Handler struct {
	in  *bufio.Scanner
	out *bufio.Writer

	log    *logging.Logger
	uciLog *logging.Logger

	boardMu sync.Mutex
	pos     *position.Position

	mg   *movegen.Movegen
	tt   *transpositiontable.TtTable
	eng  *search.Search
	book *openingbook.Book
	pool sync.WaitGroup
}

// NewHandler wires up a ready-to-run UCI handler reading stdin and
// writing stdout.
func NewHandler() *Handler {
	tt := transpositiontable.NewTtTable(config.Settings.Search.TTSizeMb)
	log := myLogging.GetLog()
	book := openingbook.NewBook()
	if config.Settings.Search.UseBook {
		if err := book.Load(config.Settings.Search.BookPath, true); err != nil {
			log.Warningf("openingbook: %v (continuing without a book)", err)
		}
	}
	h := &Handler{
		in:     bufio.NewScanner(os.Stdin),
		out:    bufio.NewWriter(os.Stdout),
		log:    log,
		uciLog: myLogging.GetUciLog(),
		pos:    position.NewPosition(),
		mg:     movegen.NewMoveGen(),
		tt:     tt,
		eng:    search.NewSearch(tt, myLogging.GetSearchLog()),
		book:   book,
	}
	h.eng.SetReporter(h)
	return h
}

// Loop blocks reading commands from stdin until "quit" is received.
func (h *Handler) Loop() {
	h.in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for h.in.Scan() {
		if h.handle(h.in.Text()) {
			return
		}
	}
}

// Command processes a single line and is exposed for tests that don't
// want to drive the handler through stdin.
func (h *Handler) Command(cmd string) bool {
	return h.handle(cmd)
}

func (h *Handler) send(line string) {
	h.uciLog.Debugf(">> %s", line)
	fmt.Fprintln(h.out, line)
	_ = h.out.Flush()
}

func (h *Handler) sendInfoString(s string) {
	h.send("info string " + s)
}

func (h *Handler) handle(cmd string) (quit bool) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}
	h.uciLog.Debugf("<< %s", cmd)
	tokens := regexWhiteSpace.Split(cmd, -1)
	switch tokens[0] {
	case "quit":
		h.eng.Stop()
		return true
	case "uci":
		h.uciCommand()
	case "isready":
		h.send("readyok")
	case "ucinewgame":
		h.boardMu.Lock()
		h.pos = position.NewPosition()
		h.tt.Clear()
		h.boardMu.Unlock()
	case "position":
		h.positionCommand(tokens)
	case "go":
		h.goCommand(tokens)
	case "stop":
		h.eng.Stop()
	default:
		h.log.Warningf("unknown command: %s", cmd)
	}
	return false
}

func (h *Handler) uciCommand() {
	h.send("id name " + engineName)
	h.send("id author " + engineAuthor)
	h.send("uciok")
}

func (h *Handler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		h.sendInfoString("command 'position' malformed: missing argument")
		return
	}
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var b strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			b.WriteString(tokens[i])
			b.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(b.String())
	default:
		h.sendInfoString("command 'position' malformed: expected startpos or fen")
		return
	}

	newPos, err := position.NewPositionFen(fen)
	if err != nil {
		h.sendInfoString(fmt.Sprintf("bad fen: %v", err))
		return
	}

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			m, ok := parseUciMove(newPos, h.mg, tokens[i])
			if !ok {
				h.sendInfoString(fmt.Sprintf("illegal move in position command: %s", tokens[i]))
				return
			}
			if !newPos.DoMove(m) {
				h.sendInfoString(fmt.Sprintf("illegal move in position command: %s", tokens[i]))
				return
			}
		}
	}

	h.boardMu.Lock()
	h.pos = newPos
	h.boardMu.Unlock()
}

// parseUciMove matches a UCI long-algebraic move string (e.g. "e2e4",
// "e7e8q") against the pseudo-legal move list, since the packed Move
// type carries more than the wire format encodes.
func parseUciMove(pos *position.Position, mg *movegen.Movegen, s string) (Move, bool) {
	moves := mg.Generate(pos, movegen.GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.StringUci() == s {
			return m, true
		}
	}
	return MoveNone, false
}

func (h *Handler) goCommand(tokens []string) {
	limits := search.NewLimits()
	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "infinite":
			limits.Infinite = true
		case "depth":
			i++
			limits.Depth = atoiOr(tokens, i, 0)
		case "nodes":
			i++
			limits.Nodes = uint64(atoiOr(tokens, i, 0))
		case "movetime":
			i++
			limits.MoveTime = time.Duration(atoiOr(tokens, i, 0)) * time.Millisecond
		case "perft":
			i++
			depth := atoiOr(tokens, i, 1)
			h.perftCommand(depth)
			return
		case "wtime":
			i++
			limits.TimeControl = true
			limits.WhiteTime = time.Duration(atoiOr(tokens, i, 0)) * time.Millisecond
		case "btime":
			i++
			limits.TimeControl = true
			limits.BlackTime = time.Duration(atoiOr(tokens, i, 0)) * time.Millisecond
		case "winc":
			i++
			limits.WhiteInc = time.Duration(atoiOr(tokens, i, 0)) * time.Millisecond
		case "binc":
			i++
			limits.BlackInc = time.Duration(atoiOr(tokens, i, 0)) * time.Millisecond
		case "movestogo":
			i++
			limits.MovesToGo = atoiOr(tokens, i, 0)
		}
		i++
	}

	h.boardMu.Lock()
	clone := *h.pos
	h.boardMu.Unlock()

	if !limits.Infinite {
		if bm := h.book.BestMove(clone.ZobristKey()); bm != MoveNone {
			h.send(bestMoveLine(search.Result{BestMove: bm, PV: []Move{bm}}))
			return
		}
	}

	h.pool.Add(1)
	go func() {
		defer h.pool.Done()
		result := h.eng.StartSearch(&clone, limits)
		h.send(bestMoveLine(result))
	}()
}

func bestMoveLine(r search.Result) string {
	if r.BestMove == MoveNone {
		return "bestmove 0000"
	}
	if len(r.PV) > 1 {
		return "bestmove " + r.BestMove.StringUci() + " ponder " + r.PV[1].StringUci()
	}
	return "bestmove " + r.BestMove.StringUci()
}

func (h *Handler) perftCommand(depth int) {
	h.boardMu.Lock()
	root := *h.pos
	h.boardMu.Unlock()

	h.pool.Add(1)
	go func() {
		defer h.pool.Done()
		start := time.Now()
		nodes := movegen.Perft(&root, depth)
		elapsed := time.Since(start)
		h.send(fmt.Sprintf("info string perft depth %d nodes %d time %d", depth, nodes, elapsed.Milliseconds()))
		h.send("bestmove 0000")
	}()
}

// SearchSummary implements search.Reporter: it formats one `info` line
// per completed iterative-deepening depth.
func (h *Handler) SearchSummary(depth, selDepth int, elapsed time.Duration, nodes uint64, value Value, pv []Move) {
	nps := uint64(0)
	if elapsed > 0 {
		nps = nodes * uint64(time.Second) / uint64(elapsed)
	}
	var pvb strings.Builder
	for i, m := range pv {
		if i > 0 {
			pvb.WriteString(" ")
		}
		pvb.WriteString(m.StringUci())
	}
	h.send(fmt.Sprintf("info depth %d seldepth %d score %s time %d nodes %d nps %d hashfull %d pv %s",
		depth, selDepth, scoreString(value), elapsed.Milliseconds(), nodes, nps, h.tt.Hashfull(), pvb.String()))
}

func scoreString(v Value) string {
	if IsMateScore(v) {
		pliesToMate := int(ValueCheckmate) - absValue(v)
		movesToMate := (pliesToMate + 1) / 2
		if v < 0 {
			movesToMate = -movesToMate
		}
		return fmt.Sprintf("mate %d", movesToMate)
	}
	return fmt.Sprintf("cp %d", v)
}

func absValue(v Value) int {
	if v < 0 {
		return int(-v)
	}
	return int(v)
}

func atoiOr(tokens []string, i int, fallback int) int {
	if i < 0 || i >= len(tokens) {
		return fallback
	}
	n, err := strconv.Atoi(tokens[i])
	if err != nil {
		return fallback
	}
	return n
}
