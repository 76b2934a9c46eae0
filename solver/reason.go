package solver

// reasonClauseLits returns the antecedent of asserted literal p under
// reason r, expressed uniformly as a slice of literals: p itself plus
// every literal that is currently false and implies it. This lets
// analyze.go resolve across binary, long and XOR reasons identically,
// without caring which kind produced p (spec.md 4.6).
func (s *Searcher) reasonClauseLits(p Lit, r Reason) []Lit {
	switch r.Kind {
	case ReasonBinary:
		return []Lit{p, r.Lit}
	case ReasonLong:
		return r.Clause.lits
	case ReasonXor:
		x := s.xors[r.Matrix]
		lits := make([]Lit, 0, len(x.vars))
		for _, v := range x.vars {
			if v == p.Var() {
				lits = append(lits, p)
				continue
			}
			lits = append(lits, s.xorReasonLit(v))
		}
		return lits
	default:
		return nil
	}
}
