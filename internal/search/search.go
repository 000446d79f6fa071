// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package search implements iterative-deepening principal-variation
// alpha-beta search over a transposition table, as described by the
// search component of the engine. The Search type is the search task
// of the three-task concurrency model: the engine task clones the
// board under its mutex and hands the clone to StartSearch, which then
// runs entirely against its own copy.
package search

import (
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/talonchess/talon/internal/evaluator"
	"github.com/talonchess/talon/internal/logging"
	"github.com/talonchess/talon/internal/movegen"
	"github.com/talonchess/talon/internal/position"
	"github.com/talonchess/talon/internal/transpositiontable"
	. "github.com/talonchess/talon/internal/types"
)

// checkTerminationNodes is how often, in visited nodes, the search
// polls for cancellation and re-checks its time budget.
const checkTerminationNodes = 2047

// pv is a per-node growable principal-variation sequence. A child's pv
// is prepended with the move that produced it: pv = [best] ++ child.
type pv []Move

func (p pv) withMove(m Move) pv {
	out := make(pv, 0, len(p)+1)
	out = append(out, m)
	out = append(out, p...)
	return out
}

// Statistics holds the counters a SearchSummary report surfaces.
type Statistics struct {
	Nodes    uint64
	SelDepth int
}

// Result is the outcome of a completed or stopped search: the best
// move found, its score, the depth it was found at, and the full
// principal variation from the root.
type Result struct {
	BestMove Move
	Value    Value
	Depth    int
	PV       []Move
	Stats    Statistics
}

// Reporter receives one SearchSummary per completed iterative-deepening
// level, matching the UCI `info` line fields.
type Reporter interface {
	SearchSummary(depth, selDepth int, elapsed time.Duration, nodes uint64, value Value, pv []Move)
}

// Search is the search task: one instance serves one search at a time.
// It is not safe for concurrent StartSearch calls; the engine task is
// responsible for serializing Start/Stop against it.
type Search struct {
	log *logging.Logger

	tt   *transpositiontable.TtTable
	eval *evaluator.Evaluator
	mg   *movegen.Movegen

	running *semaphore.Weighted

	mu       sync.Mutex
	stopFlag bool

	pos       *position.Position
	limits    *Limits
	startTime time.Time
	budget    time.Duration

	nodes    uint64
	selDepth int

	reporter Reporter
}

// NewSearch returns a search task backed by the given transposition
// table, sharing it with any sibling search the engine might create.
func NewSearch(tt *transpositiontable.TtTable, log *logging.Logger) *Search {
	return &Search{
		log:     log,
		tt:      tt,
		eval:    evaluator.NewEvaluator(),
		mg:      movegen.NewMoveGen(),
		running: semaphore.NewWeighted(1),
	}
}

// SetReporter installs the sink for per-depth SearchSummary reports.
func (s *Search) SetReporter(r Reporter) {
	s.reporter = r
}

// IsRunning reports whether a search is currently in flight.
func (s *Search) IsRunning() bool {
	if s.running.TryAcquire(1) {
		s.running.Release(1)
		return false
	}
	return true
}

// Stop requests cooperative termination of the in-flight search. It is
// safe to call whether or not a search is running.
func (s *Search) Stop() {
	s.mu.Lock()
	s.stopFlag = true
	s.mu.Unlock()
}

func (s *Search) shouldStop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopFlag
}

// StartSearch runs iterative deepening on pos (which the caller must
// already own exclusively — typically a clone taken under the engine's
// board mutex) up to the limits given, and returns the best result
// found at the last depth completed before termination.
func (s *Search) StartSearch(pos *position.Position, limits *Limits) Result {
	if err := s.running.Acquire(nil, 1); err != nil {
		return Result{}
	}
	defer s.running.Release(1)

	s.mu.Lock()
	s.stopFlag = false
	s.mu.Unlock()

	s.pos = pos
	s.limits = limits
	s.startTime = time.Now()
	s.budget = allocateTimeBudget(limits, pos.SideToMove(), pos.FullmoveNumber()*2)
	s.nodes = 0
	s.selDepth = 0
	s.mg.ClearKillers()

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	var best Result
	for depth := 1; depth <= maxDepth; depth++ {
		if s.shouldStop() {
			break
		}
		line := pv{}
		value := s.alphaBeta(depth, 0, -ValueInfinite, ValueInfinite, &line)

		if s.shouldStop() && depth > 1 {
			// Depth was abandoned mid-search; the previous completed
			// depth's result stands.
			break
		}

		best = Result{
			BestMove: firstMove(line),
			Value:    value,
			Depth:    depth,
			PV:       append([]Move(nil), line...),
			Stats:    Statistics{Nodes: s.nodes, SelDepth: s.selDepth},
		}
		if s.log != nil {
			s.log.Debugf("depth %d nodes %d value %d pv %v", depth, s.nodes, value, line)
		}
		if s.reporter != nil {
			s.reporter.SearchSummary(depth, s.selDepth, time.Since(s.startTime), s.nodes, value, best.PV)
		}
	}
	return best
}

func firstMove(line pv) Move {
	if len(line) == 0 {
		return MoveNone
	}
	return line[0]
}

// pollTermination is called at every node. It counts the node and, once
// every checkTerminationNodes nodes, checks the stop flag, the time
// budget and the node limit, setting the stop flag when one is reached.
func (s *Search) pollTermination() bool {
	s.nodes++
	if s.nodes%checkTerminationNodes != 0 {
		return false
	}
	if s.shouldStop() {
		return true
	}
	if s.budget > 0 && time.Since(s.startTime) >= s.budget {
		s.mu.Lock()
		s.stopFlag = true
		s.mu.Unlock()
		return true
	}
	if s.limits != nil && s.limits.Nodes > 0 && s.nodes >= s.limits.Nodes {
		s.mu.Lock()
		s.stopFlag = true
		s.mu.Unlock()
		return true
	}
	return false
}
