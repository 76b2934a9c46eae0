package solver

import "math/rand"

// PolarityMode names one of spec.md 4.7's six polarity modes.
type PolarityMode uint8

const (
	PolarityAlwaysTrue PolarityMode = iota
	PolarityAlwaysFalse
	PolarityRandom
	PolarityAutomatic
	PolarityStable
	PolarityBestInverted
)

// polarityPicker decides the sign of a decision literal for whatever
// variable the active Brancher chose. It is independent of the Brancher
// itself (spec.md keeps "which variable" and "which sign" as separate
// concerns), so any Brancher can be paired with any mode.
type polarityPicker struct {
	mode PolarityMode
	rng  *rand.Rand

	// jwBias holds, in Automatic mode, the Jeroslow-Wang initial guess
	// per variable (computeJeroslowWang, run once by ensureJeroslowWang on
	// the first Solve call), then
	// gets overwritten by "last assigned sign" as the search proceeds.
	jwBias []bool
	jwDone bool
}

func newPolarityPicker(mode PolarityMode, rng *rand.Rand, jwBias []bool) *polarityPicker {
	return &polarityPicker{mode: mode, rng: rng, jwBias: jwBias}
}

func (p *polarityPicker) grow(v Var) {
	for int(v) >= len(p.jwBias) {
		p.jwBias = append(p.jwBias, false)
	}
}

// ensureJeroslowWang computes the Jeroslow-Wang initial bias once, from
// whatever original clauses are present by the time search actually
// starts; a no-op outside Automatic mode or once already computed.
// Called from Searcher.Solve rather than newPolarityPicker since clauses
// are still being added when a Searcher is constructed.
func (p *polarityPicker) ensureJeroslowWang(s *Searcher) {
	if p.mode != PolarityAutomatic || p.jwDone {
		return
	}
	p.jwDone = true
	p.jwBias = computeJeroslowWang(s.wl.clauses, s.nbVars)
}

// pick returns the decision literal for v.
func (p *polarityPicker) pick(s *Searcher, v Var) Lit {
	switch p.mode {
	case PolarityAlwaysTrue:
		return v.Pos()
	case PolarityAlwaysFalse:
		return v.Neg()
	case PolarityRandom:
		if p.rng.Intn(2) == 0 {
			return v.Pos()
		}
		return v.Neg()
	case PolarityAutomatic:
		if int(v) < len(p.jwBias) && p.jwBias[v] {
			return v.Pos()
		}
		return v.Neg()
	case PolarityStable:
		if s.vars[v].bestPolarity {
			return v.Neg()
		}
		return v.Pos()
	case PolarityBestInverted:
		if s.vars[v].bestPolarity {
			return v.Pos()
		}
		return v.Neg()
	default:
		return v.Neg()
	}
}

// onAssigned lets Automatic mode remember the sign v was last given, so
// its next decision (if any) repeats it.
func (p *polarityPicker) onAssigned(v Var, negative bool) {
	if p.mode == PolarityAutomatic {
		p.grow(v)
		p.jwBias[v] = !negative
	}
}

// computeJeroslowWang seeds jwBias from the classic Jeroslow-Wang weight:
// for each clause of length n, each of its literals gets 2^-n added to
// its polarity's score; the higher-scoring polarity per variable wins.
func computeJeroslowWang(clauses []*Clause, nbVars int) []bool {
	posScore := make([]float64, nbVars)
	negScore := make([]float64, nbVars)
	for _, c := range clauses {
		if c.Len() == 0 {
			continue
		}
		weight := 1.0
		for i := 0; i < c.Len(); i++ {
			weight /= 2
		}
		for i := 0; i < c.Len(); i++ {
			l := c.Get(i)
			if l.IsPositive() {
				posScore[l.Var()] += weight
			} else {
				negScore[l.Var()] += weight
			}
		}
	}
	bias := make([]bool, nbVars)
	for v := 0; v < nbVars; v++ {
		bias[v] = posScore[v] >= negScore[v]
	}
	return bias
}
