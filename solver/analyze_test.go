package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newAnalyzeSearcher builds a Searcher with minimisation disabled, so
// analyze()'s raw first-UIP output can be checked without also tracing
// minimizeRecursive/minimizeBinary.
func newAnalyzeSearcher() *Searcher {
	cfg := DefaultConfig()
	cfg.DoRecursiveMinim = false
	cfg.DoMinimRedMore = false
	return NewSearcher(cfg)
}

func TestAnalyzeFirstUIP(t *testing.T) {
	s := newAnalyzeSearcher()
	a, b, c, d := s.NewVar(), s.NewVar(), s.NewVar(), s.NewVar()

	require.True(t, s.AddClause([]Lit{a.Neg(), b.Neg(), c.Pos()}))
	require.True(t, s.AddClause([]Lit{c.Neg(), d.Pos()}))
	require.True(t, s.AddClause([]Lit{d.Neg(), b.Neg()}))

	s.trail.newDecisionLevel()
	s.growScratch()
	s.enqueue(a.Pos(), s.decisionLevel(), decisionReason)
	require.Nil(t, s.propagate())

	s.trail.newDecisionLevel()
	s.growScratch()
	s.enqueue(b.Pos(), s.decisionLevel(), decisionReason)
	confl := s.propagate()
	require.NotNil(t, confl)

	res := s.analyze(confl)
	require.Equal(t, []Lit{b.Neg(), a.Neg()}, res.lits)
	require.Equal(t, 1, res.btLevel)
	require.Equal(t, uint32(2), res.glue)
}

func TestAnalyzeFinalReportsAssumption(t *testing.T) {
	s := newAnalyzeSearcher()
	a, b := s.NewVar(), s.NewVar()
	require.True(t, s.AddClause([]Lit{a.Neg(), b.Neg()}))

	s.trail.newDecisionLevel()
	s.growScratch()
	s.enqueue(a.Pos(), s.decisionLevel(), decisionReason)
	s.vars[a].isAssumption = true
	require.Nil(t, s.propagate())
	require.Equal(t, LFalse, s.value(b.Pos()))

	confl := &Conflict{Reason: s.vars[b].reason, Lit: b.Pos().Negation()}
	out := s.analyzeFinal(confl)
	// out[0] is the falsified assumption's own trail literal (b.Neg());
	// the sweep then walks back to the decision (a) that forced it.
	require.Equal(t, []Lit{b.Neg(), a.Neg()}, out)
}

// TestAnalyzeFinalSeedsFromConflLitAtDecisionLevelZero traces spec.md 8
// scenario 5 exactly: (x∨y)∧(¬x∨y), assumption {¬y}. The clauses force y
// true via a unit learnt clause (enqueued at level 0 with
// decisionReason), so decide() finds ¬y already false before any
// decision is ever pushed, and analyzeFinal must report {y} -- the
// falsified assumption's own trail literal -- rather than an empty set.
func TestAnalyzeFinalSeedsFromConflLitAtDecisionLevelZero(t *testing.T) {
	s := newAnalyzeSearcher()
	y := s.NewVar()
	require.True(t, s.addUnitAtLevel0(y.Pos()))
	require.Equal(t, decisionReason, s.vars[y].reason)
	require.Equal(t, 0, s.decisionLevel())

	confl := &Conflict{Reason: s.vars[y].reason, Lit: y.Neg().Negation()}
	out := s.analyzeFinal(confl)
	require.Equal(t, []Lit{y.Pos()}, out)
}

func TestComputeGlueCountsDistinctLevels(t *testing.T) {
	s := newAnalyzeSearcher()
	a, b, c := s.NewVar(), s.NewVar(), s.NewVar()
	s.trail.newDecisionLevel()
	s.trail.newDecisionLevel()
	s.growScratch()
	s.enqueue(a.Pos(), 1, decisionReason)
	s.enqueue(b.Pos(), 1, decisionReason)
	s.enqueue(c.Pos(), 2, decisionReason)

	glue := s.computeGlue([]Lit{a.Pos(), b.Pos(), c.Pos()})
	require.Equal(t, uint32(2), glue)
}

func TestPickBacktrackLevelMovesHighestLevelToSecondSlot(t *testing.T) {
	s := newAnalyzeSearcher()
	a, b, c := s.NewVar(), s.NewVar(), s.NewVar()
	s.growScratch()
	s.enqueue(a.Pos(), 3, decisionReason)
	s.enqueue(b.Pos(), 1, decisionReason)
	s.enqueue(c.Pos(), 2, decisionReason)

	learnt := []Lit{a.Pos(), b.Pos(), c.Pos()}
	lvl := s.pickBacktrackLevel(learnt)
	require.Equal(t, 2, lvl)
	require.Equal(t, c.Pos(), learnt[1])
}

func TestMinimizeBinaryDropsLiteralCoveredByWatchedBinary(t *testing.T) {
	s := newAnalyzeSearcher()
	s.cfg.DoMinimRedMore = true
	a, b, c := s.NewVar(), s.NewVar(), s.NewVar()
	// Binary clause (a ∨ c) is watched on a's negation; a learnt clause
	// (a ∨ b ∨ ~c) should drop ~c since resolving the binary clause on c
	// leaves a doing the same job.
	require.True(t, s.AddClause([]Lit{a.Pos(), c.Pos()}))

	learnt := []Lit{a.Pos(), b.Pos(), c.Neg()}
	out := s.minimizeBinary(learnt)
	require.Equal(t, []Lit{a.Pos(), b.Pos()}, out)
}
