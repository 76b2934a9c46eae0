package solver

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// This file implements C11, the search driver, per spec.md 4.11: the
// PROPAGATE/DECIDE/ANALYSE/BACKTRACK/RESTART state machine that ties
// every other component (C5-C10) into a single Solve call. Grounded on
// gophersat/solver/solver.go:Solve's decide/propagate/analyze loop,
// generalised to XOR clauses, the tiered learnt DB, pluggable branching,
// the five restart policies and the sync mailbox.

// NewSearcher allocates an empty instance ready for NewVar/AddClause
// calls, wired from cfg per spec.md 6.
func NewSearcher(cfg Config) *Searcher {
	rng := rand.New(rand.NewSource(cfg.Seed))
	s := &Searcher{
		ID:      uuid.New(),
		Log:     logr.Discard(),
		cfg:     cfg,
		wl:      watches{wl: newWatchList(0)},
		restart: newRestartController(cfg),
		db:      newLearntDB(cfg),
	}
	specs, err := parseBranchStrategySetup(cfg.BranchStrategySetup)
	if err != nil {
		// A malformed setup string falls back to plain VSIDS rather than
		// panicking: Config is usually decoded from an external source
		// (CLI flags, a saved options file) well before the problem size
		// is known.
		specs = []branchStageSpec{{Kind: BranchVSIDS, DecayStart: 0.95, DecayMax: 0.95}}
	}
	branchers := newBranchersFromSetup(specs, 0, cfg, &s.conflictIdx, rng)
	s.brancher = newRotatingBrancher(branchers, cfg.BranchSwitchEvery)
	s.polarity = newPolarityPicker(cfg.PolarityMode, rng, nil)
	return s
}

// NewVar allocates a fresh variable and returns it.
func (s *Searcher) NewVar() Var {
	v := Var(s.nbVars)
	s.nbVars++
	s.vars = append(s.vars, varData{})
	s.xorWatchOf = append(s.xorWatchOf, nil)
	s.wl.wl.ws = append(s.wl.wl.ws, nil, nil)
	s.seen = append(s.seen, false)
	s.brancher.Grow(v)
	s.polarity.grow(v)
	return v
}

// growScratch resizes the level-indexed scratch buffers analyze.go uses
// once the highest decision level seen so far grows.
func (s *Searcher) growScratch() {
	for len(s.seenLvl) <= s.decisionLevel()+1 {
		s.seenLvl = append(s.seenLvl, false)
	}
}

// SetMailbox wires a SyncMailbox for multi-instance clause sharing
// (spec.md 5). Passing nil disables it, the default.
func (s *Searcher) SetMailbox(mb SyncMailbox) { s.mailbox = mb }

// SetMetrics wires a *Metrics instance (see NewMetrics). Passing nil
// disables metrics, the default.
func (s *Searcher) SetMetrics(m *Metrics) { s.metrics = m }

// SetAbort installs a callback polled at every restart and every 256
// conflicts; once it returns true, Solve returns Unknown at the next
// poll point.
func (s *Searcher) SetAbort(f func() bool) { s.mustAbort = f }

// SetTraceSink wires an opaque add/delete event sink, per spec.md 1's
// "no guarantee of unsatisfiability-proof certificates beyond emitting
// add/delete events to an opaque trace sink": the core only ever writes
// DIMACS-shaped "a ..." / "d ..." lines to it, with no notion of what
// proof format (if any) the writer builds from them. Passing nil (the
// default) disables tracing entirely, at zero cost to the hot path.
func (s *Searcher) SetTraceSink(w io.Writer) { s.trace = w }

func (s *Searcher) traceAdd(lits []Lit) {
	if s.trace == nil {
		return
	}
	c := Clause{lits: lits}
	fmt.Fprintf(s.trace, "a %s\n", c.CNF())
}

func (s *Searcher) traceDelete(c *Clause) {
	if s.trace == nil {
		return
	}
	fmt.Fprintf(s.trace, "d %s\n", c.CNF())
}

// Model returns the satisfying assignment found by the last Solve call
// that returned Sat. Valid only until the next Solve call.
func (s *Searcher) Model() []LBool { return s.model }

// FinalConflict returns the assumption subset that proved Unsat, valid
// only after a Solve call with assumptions returned Unsat.
func (s *Searcher) FinalConflict() []Lit { return s.finalConflict }

// Solve runs the CDCL/XOR search under the given assumptions (may be
// nil) until a verdict is reached or maxConflicts conflicts have been
// seen since the call began (0 means unbounded), per spec.md 4.11.
func (s *Searcher) Solve(assumptions []Lit, maxConflicts int64) Status {
	if s.status == Unsat && s.finalConflict == nil {
		// The formula itself is unsatisfiable; that verdict is final.
		return Unsat
	}
	s.assumptions = append([]Lit(nil), assumptions...)
	s.finalConflict = nil
	s.status = Unknown
	s.polarity.ensureJeroslowWang(s)

	conflictBudget := maxConflicts
	var conflictsThisCall int64

	for {
		if s.mustAbort != nil && s.stats.NbConflicts%256 == 0 && s.mustAbort() {
			return Unknown
		}

		confl := s.propagate()
		if confl == nil {
			if s.decisionLevel() == 0 {
				s.drainMailbox()
				if confl = s.propagate(); confl == nil && s.cleaner.due(s.cfg, len(s.trail.lits)) {
					s.cleanLevel0()
				}
			}
		}
		if confl != nil {
			s.stats.NbConflicts++
			conflictsThisCall++
			if s.decisionLevel() == 0 {
				s.status = Unsat
				return Unsat
			}
			restartsBefore := s.stats.NbRestarts
			s.handleConflict(confl)
			if s.status == Unsat {
				return Unsat
			}
			if s.mustAbort != nil && s.stats.NbRestarts != restartsBefore && s.mustAbort() {
				return Unknown
			}
			if conflictBudget > 0 && conflictsThisCall >= conflictBudget {
				return Unknown
			}
			continue
		}

		// No conflict, fully propagated: decide next, or finish if the
		// trail already covers every variable.
		lit, ok := s.decide()
		if !ok {
			return s.finish()
		}
		s.stats.NbDecisions++
		s.trail.newDecisionLevel()
		s.growScratch()
		s.assignDecision(lit)
	}
}

// decide picks the next decision literal: first drains any pending
// assumption (forcing its literal, or reporting an assumption conflict
// immediately), then falls back to the active Brancher plus
// polarityPicker once assumptions are exhausted.
func (s *Searcher) decide() (Lit, bool) {
	for s.decisionLevel() < len(s.assumptions) {
		a := s.assumptions[s.decisionLevel()]
		switch s.value(a) {
		case LTrue:
			// Already implied; this assumption doesn't open a fresh level.
			s.assumptions = append(s.assumptions[:s.decisionLevel()], s.assumptions[s.decisionLevel()+1:]...)
			continue
		case LFalse:
			s.finalConflict = s.analyzeFinal(&Conflict{Reason: s.vars[a.Var()].reason, Lit: a.Negation()})
			s.status = Unsat
			return 0, false
		default:
			s.vars[a.Var()].isAssumption = true
			return a, true
		}
	}
	v, ok := s.brancher.Pick(s)
	if !ok {
		return 0, false
	}
	return s.polarity.pick(s, v), true
}

// assignDecision enqueues lit as a fresh decision at the current level.
func (s *Searcher) assignDecision(lit Lit) {
	s.enqueue(lit, s.decisionLevel(), decisionReason)
	s.brancher.Assigned(lit.Var())
	s.polarity.onAssigned(lit.Var(), lit.Sign())
}

// handleConflict runs conflict analysis, learns the resulting clause,
// backtracks, enqueues the asserted literal, and applies whatever
// restart/reduction/sync bookkeeping is due at the new decision level.
func (s *Searcher) handleConflict(confl *Conflict) {
	res := s.analyze(confl)
	s.restart.onConflict(res.glue, len(s.trail.lits))
	s.conflictIdx++

	s.cancelUntil(res.btLevel)
	s.fileLearnt(res)

	if s.restart.shouldRestart(len(s.trail.lits)) {
		s.cancelUntil(0)
		s.restart.advance(s.cfg)
		s.stats.NbRestarts++
		s.db.populateStats(&s.stats)
		s.metrics.observe(s.stats)
	}
	if s.cfg.SyncEveryConf > 0 && int(s.stats.NbConflicts)%s.cfg.SyncEveryConf == 0 {
		s.drainMailbox()
	}
	if s.db.needsLev1Sweep(s.cfg) {
		s.sweepTier1()
	} else {
		s.db.conflictsSinceLev1++
	}
	if s.db.needsLev2Reduce(s.cfg) {
		s.reduceTier2()
	} else {
		s.db.conflictsSinceLev2++
	}
}

// cancelUntil backtracks the trail to lvl, undoing every assignment
// above it: unassigning the variable, unlocking its reason if any, and
// notifying the active brancher and polarity tracker. Per spec.md 4.7's
// Stable/BestInverted polarity modes, whenever the trail is about to be
// truncated from its deepest point reached so far, every currently
// assigned variable's sign is snapshotted as its best-known polarity
// before the truncation erases it.
func (s *Searcher) cancelUntil(lvl int) {
	if cur := len(s.trail.lits); cur > s.bestTrailDepth {
		s.bestTrailDepth = cur
		for _, l := range s.trail.lits {
			s.vars[l.Var()].bestPolarity = l.Sign()
		}
	}
	s.trail.truncateToLevel(lvl, func(l Lit) {
		v := l.Var()
		if r := s.vars[v].reason; r.Kind == ReasonLong {
			r.Clause.Unlock()
			s.maybeDropOnBacktrack(r.Clause)
		}
		s.vars[v].assign = LUndef
		s.vars[v].isAssumption = false
		s.brancher.Cancelled(v, s.conflictIdx)
	})
	s.qhead = len(s.trail.lits)
}

// maybeDropOnBacktrack implements spec.md 6's do_max_glue_del/max_glue
// pair: once a redundant clause is no longer anyone's reason, a glue
// above the configured threshold gets it deleted immediately instead of
// waiting for the next tiered reduction pass.
func (s *Searcher) maybeDropOnBacktrack(c *Clause) {
	if !s.cfg.DoMaxGlueDel || !c.Redundant() || c.Removed() || c.Locked() {
		return
	}
	if uint32(c.Glue()) <= s.cfg.MaxGlue {
		return
	}
	s.db.removeFrom(c, c.TierOf())
	s.detachLearnt(c)
}

// fileLearnt attaches the clause analyze() produced, per its length,
// and enqueues its asserting literal at btLevel.
func (s *Searcher) fileLearnt(res analysisResult) {
	lits := res.lits
	s.stats.NbLearned++

	s.traceAdd(lits)
	switch len(lits) {
	case 1:
		s.stats.NbUnitLearned++
		s.enqueue(lits[0], 0, decisionReason)
		s.publishLearnt(lits)
	case 2:
		s.stats.NbBinaryLearned++
		s.wl.wl.add(lits[0].Negation(), Watch{Kind: WatchBinary, Other: lits[1], Redundant: true})
		s.wl.wl.add(lits[1].Negation(), Watch{Kind: WatchBinary, Other: lits[0], Redundant: true})
		s.enqueue(lits[0], res.btLevel, Reason{Kind: ReasonBinary, Lit: lits[1]})
		s.publishLearnt(lits)
	default:
		s.stats.NbLongLearned++
		c := NewLearnedClause(s.pool.newLits(lits...))
		c.SetGlue(int(res.glue))
		c.Touch(int(s.conflictIdx))
		s.db.add(c, s.cfg)
		s.wl.wl.watchClause(c)
		s.enqueue(lits[0], res.btLevel, Reason{Kind: ReasonLong, Clause: c})
	}
}

// finish reports Sat and snapshots the model, or propagates an
// already-set Unsat/Unknown status through unchanged. Either way the
// trail is cancelled back to level 0, so clauses added before the next
// Solve call are filed against level-0 facts only.
func (s *Searcher) finish() Status {
	if s.status == Unsat {
		s.cancelUntil(0)
		return Unsat
	}
	s.status = Sat
	s.model = make([]LBool, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		s.model[v] = s.vars[v].assign
	}
	s.cancelUntil(0)
	s.db.populateStats(&s.stats)
	s.metrics.observe(s.stats)
	return Sat
}
