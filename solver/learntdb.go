package solver

import "sort"

// This file implements C9, the three-tier learnt-clause database, per
// spec.md 4.9: tier assigned from glue at creation, tier 2 periodically
// sorted and halved, tier 1 swept for demotion, any learnt promotable on
// glue improvement. Grounded on gophersat/solver/watcher.go:reduceLearned's
// sort-then-halve pattern, generalised from one tier to three, and on
// sort.go's comparator idiom for the tier-2 sort key.
type learntDB struct {
	tier0, tier1, tier2 []*Clause

	tier2Cap float64

	conflictsSinceLev1 int
	conflictsSinceLev2 int
}

func newLearntDB(cfg Config) *learntDB {
	return &learntDB{tier2Cap: float64(cfg.MaxTempLev2LearntCls)}
}

func (db *learntDB) assignTier(c *Clause, cfg Config) {
	glue := uint32(c.Glue())
	switch {
	case glue <= cfg.GluePutLev0IfBelowOrEq:
		c.SetTier(Tier0)
	case glue <= cfg.GluePutLev1IfBelowOrEq:
		c.SetTier(Tier1)
	default:
		c.SetTier(Tier2)
	}
}

func (db *learntDB) tierSlice(tier Tier) *[]*Clause {
	switch tier {
	case Tier0:
		return &db.tier0
	case Tier1:
		return &db.tier1
	default:
		return &db.tier2
	}
}

// add files a freshly-learned clause into its glue-determined tier.
func (db *learntDB) add(c *Clause, cfg Config) {
	db.assignTier(c, cfg)
	list := db.tierSlice(c.TierOf())
	*list = append(*list, c)
}

func (db *learntDB) removeFrom(c *Clause, tier Tier) {
	list := db.tierSlice(tier)
	for i, x := range *list {
		if x == c {
			(*list)[i] = (*list)[len(*list)-1]
			*list = (*list)[:len(*list)-1]
			return
		}
	}
}

// promote reconsiders c's tier after its glue improved and, if the tier
// changes, appends c to its new tier's list. It does not touch c: the
// LastTouched value that sweepTier1's recency check reads is left as it
// was, so the clause's time-to-live is not extended.
func (db *learntDB) promote(c *Clause, cfg Config) {
	old := c.TierOf()
	db.assignTier(c, cfg)
	if c.TierOf() == old {
		return
	}
	db.removeFrom(c, old)
	*db.tierSlice(c.TierOf()) = append(*db.tierSlice(c.TierOf()), c)
}

// needsLev2Reduce reports whether tier 2 should be reduced right now:
// either the configured conflict cadence elapsed, or the tier outgrew
// its current cap.
func (db *learntDB) needsLev2Reduce(cfg Config) bool {
	return db.conflictsSinceLev2 >= cfg.EveryLev2Reduce || len(db.tier2) > int(db.tier2Cap)
}

func (db *learntDB) needsLev1Sweep(cfg Config) bool {
	return db.conflictsSinceLev1 >= cfg.EveryLev1Reduce
}

// reduceTier2 sorts tier 2 by (descending activity, ascending glue) and
// detaches+deletes the worse half, except clauses currently locked as
// some trail literal's reason, then grows the cap.
func (s *Searcher) reduceTier2() {
	db := s.db
	sort.Slice(db.tier2, func(i, j int) bool {
		a, b := db.tier2[i], db.tier2[j]
		if a.Activity() != b.Activity() {
			return a.Activity() > b.Activity()
		}
		return a.Glue() < b.Glue()
	})
	half := len(db.tier2) / 2
	kept := db.tier2[:0]
	for i, c := range db.tier2 {
		if i < half || c.Locked() {
			kept = append(kept, c)
			continue
		}
		s.detachLearnt(c)
	}
	db.tier2 = kept
	db.tier2Cap *= s.cfg.IncMaxTempLev2RedCls
	db.conflictsSinceLev2 = 0
}

// sweepTier1 demotes tier-1 clauses that haven't been touched recently
// and aren't currently locked down to tier 2, where reduceTier2 will
// eventually judge them on activity and glue alone.
func (s *Searcher) sweepTier1() {
	db := s.db
	now := int(s.conflictIdx)
	const recencyWindow = 4000
	kept := db.tier1[:0]
	for _, c := range db.tier1 {
		if c.Locked() || now-c.LastTouched() < recencyWindow {
			kept = append(kept, c)
			continue
		}
		c.SetTier(Tier2)
		db.tier2 = append(db.tier2, c)
	}
	db.tier1 = kept
	db.conflictsSinceLev1 = 0
}

// detachLearnt unwatches and marks c removed. c must not be relocked
// (i.e. not a current trail reason) by the time this is called.
func (s *Searcher) detachLearnt(c *Clause) {
	if c.Len() == 2 {
		s.wl.wl.unwatchBinary(c.Get(0), c.Get(1))
	} else {
		s.wl.wl.unwatchClause(c)
	}
	s.traceDelete(c)
	c.MarkRemoved()
	s.stats.NbDeleted++
}

// populateStats refreshes the tier-population counters in s.stats.
func (db *learntDB) populateStats(st *Stats) {
	st.NbTier0 = len(db.tier0)
	st.NbTier1 = len(db.tier1)
	st.NbTier2 = len(db.tier2)
}
