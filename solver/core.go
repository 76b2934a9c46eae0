package solver

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Conflict is the result of a failed propagation: the clause that ran out
// of non-false literals, and the literal being enqueued when it happened.
type Conflict struct {
	Reason Reason
	Lit    Lit
}

// Searcher is the whole CDCL/XOR core (spec.md 1-2, components C1-C11):
// trail, watch lists, clause store, heuristics, restart and reduction
// policy all live here, owned by a single instance with no locking, per
// spec.md 5. Nothing outside this struct is required for a solve() call.
type Searcher struct {
	// ID identifies this instance across a multi-worker embedding; every
	// clause this core publishes to its SyncMailbox is tagged with it.
	ID uuid.UUID

	Log logr.Logger // defaults to logr.Discard(); see NewSearcher

	cfg Config

	nbVars int
	vars   []varData

	trail trail
	qhead int // C5 contract: propagate() runs until qhead == len(trail.lits)

	wl watches // binary + long-clause watch lists plus the clause store

	xors       []*xorClause
	xorWatchOf [][]int32 // Var -> indices into xors currently watching it

	assumptions   []Lit
	finalConflict []Lit // valid only after Unsat with assumptions

	brancher  Brancher
	polarity  *polarityPicker
	restart   *restartController
	db        *learntDB
	cleaner   cleanerState
	mailbox   SyncMailbox
	metrics   *Metrics
	trace     io.Writer // add/delete events only; see SetTraceSink

	stats Stats

	pool litPool

	status       Status
	mustAbort    func() bool // polled at restarts and every 256 conflicts
	conflictIdx  int32       // global conflict counter, used as a "time" axis
	bestTrailDepth int       // deepest trail length reached so far, for phase saving

	// seen/analysis scratch buffers, reused across analyze() calls to
	// avoid per-conflict allocation (grounded on the teacher's bufLits).
	seen           []bool
	touched        []Var // vars currently marked in seen, for O(touched) clearing
	seenLvl        []bool
	glueTouched    []int32
	litBuf         []Lit
	redundantStack []Lit

	model []LBool // valid only after Sat
}

// watches bundles the two- (or XOR-)watched-literal lists together with
// the clause store they reference by pointer.
type watches struct {
	wl      watchList
	clauses []*Clause // original clauses, kept for cleaner/model verification
}

// value returns the current LBool value of l.
func (s *Searcher) value(l Lit) LBool {
	return litValue(l, s.vars[l.Var()].assign)
}

// varValue returns the current LBool value of v itself (unsigned).
func (s *Searcher) varValue(v Var) LBool { return s.vars[v].assign }

// level returns the decision level v was assigned at, or -1 if unassigned.
func (s *Searcher) level(v Var) int {
	if s.vars[v].assign == LUndef {
		return -1
	}
	return int(s.vars[v].level)
}

// decisionLevel returns the current decision level.
func (s *Searcher) decisionLevel() int { return s.trail.level() }

// NbVars returns the number of variables allocated so far.
func (s *Searcher) NbVars() int { return s.nbVars }

// StatsSnapshot returns a snapshot of the solver's running statistics.
func (s *Searcher) StatsSnapshot() Stats { return s.stats }
