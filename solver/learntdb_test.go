package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLearntDBPromoteMovesTier(t *testing.T) {
	cfg := DefaultConfig()
	db := newLearntDB(cfg)

	c := NewLearnedClause([]Lit{Var(0).Pos(), Var(1).Pos(), Var(2).Pos()})
	c.SetGlue(int(cfg.GluePutLev1IfBelowOrEq) + 1)
	db.add(c, cfg)
	require.Equal(t, Tier2, c.TierOf())
	require.Len(t, db.tier2, 1)

	c.SetGlue(1)
	db.promote(c, cfg)
	require.Equal(t, Tier0, c.TierOf())
	require.Len(t, db.tier2, 0)
	require.Len(t, db.tier0, 1)
}

func TestLearntDBNeedsLev2ReduceOnCadence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EveryLev2Reduce = 3
	db := newLearntDB(cfg)
	require.False(t, db.needsLev2Reduce(cfg))
	db.conflictsSinceLev2 = 3
	require.True(t, db.needsLev2Reduce(cfg))
}

func TestLearntDBNeedsLev2ReduceOnOvergrowth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTempLev2LearntCls = 1
	db := newLearntDB(cfg)
	db.tier2 = append(db.tier2,
		NewLearnedClause([]Lit{Var(0).Pos(), Var(1).Pos()}),
		NewLearnedClause([]Lit{Var(2).Pos(), Var(3).Pos()}),
	)
	require.True(t, db.needsLev2Reduce(cfg))
}

// TestMaybeDropOnBacktrackDeletesHighGlueLearnt traces spec.md 6's
// do_max_glue_del/max_glue pair, grounded on the original solver's
// "--maxgluedel: throw the clause away on backtrack": a redundant
// clause above the glue threshold is detached as soon as it stops being
// a trail reason, rather than waiting for the next tiered reduction.
func TestMaybeDropOnBacktrackDeletesHighGlueLearnt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoMaxGlueDel = true
	cfg.MaxGlue = 1
	s := NewSearcher(cfg)
	a, b, c := s.NewVar(), s.NewVar(), s.NewVar()

	lc := NewLearnedClause([]Lit{a.Pos(), b.Pos(), c.Pos()})
	lc.SetGlue(2)
	s.db.add(lc, cfg)
	s.wl.wl.watchClause(lc)

	s.trail.newDecisionLevel()
	s.growScratch()
	s.enqueue(a.Pos(), s.decisionLevel(), Reason{Kind: ReasonLong, Clause: lc})
	require.True(t, lc.Locked())

	s.cancelUntil(0)
	require.True(t, lc.Removed())
	require.Empty(t, s.db.tier0)
	require.Empty(t, s.wl.wl.get(a.Neg()))
}

// TestMaybeDropOnBacktrackKeepsLearntBelowThreshold confirms the
// threshold is a strict glue > max_glue comparison: a clause at exactly
// max_glue survives the backtrack that unlocks it.
func TestMaybeDropOnBacktrackKeepsLearntBelowThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoMaxGlueDel = true
	cfg.MaxGlue = 2
	s := NewSearcher(cfg)
	a, b, c := s.NewVar(), s.NewVar(), s.NewVar()

	lc := NewLearnedClause([]Lit{a.Pos(), b.Pos(), c.Pos()})
	lc.SetGlue(2)
	s.db.add(lc, cfg)
	s.wl.wl.watchClause(lc)

	s.trail.newDecisionLevel()
	s.growScratch()
	s.enqueue(a.Pos(), s.decisionLevel(), Reason{Kind: ReasonLong, Clause: lc})

	s.cancelUntil(0)
	require.False(t, lc.Removed())
	require.Len(t, s.db.tier0, 1)
}

func TestPopulateStats(t *testing.T) {
	cfg := DefaultConfig()
	db := newLearntDB(cfg)
	c := NewLearnedClause([]Lit{Var(0).Pos(), Var(1).Pos(), Var(2).Pos()})
	c.SetGlue(1)
	db.add(c, cfg)

	var st Stats
	db.populateStats(&st)
	require.Equal(t, 1, st.NbTier0)
	require.Equal(t, 0, st.NbTier1)
	require.Equal(t, 0, st.NbTier2)
}
