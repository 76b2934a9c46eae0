package solver

// This file gives XOR clauses a baseline propagation mechanism inside the
// core: a two-watched-variable scheme, analogous in spirit to the
// two-watched-literal scheme propagate.go uses for ordinary clauses, but
// watching variables rather than literals since parity does not care about
// a variable's sign, only whether it is assigned. Full Gaussian elimination
// over many XOR rows at once is an optional collaborator (spec.md 3, 7) and
// is not implemented here; this keeps the core correct (it will unit-
// propagate and detect conflicts on every individual XOR clause) even when
// that collaborator is absent.

// attachXor finds up to two unassigned variables in xi's clause and
// registers it on their watch lists. Called once when the clause is added,
// and never again once w0/w1 are fixed short of a variable being
// unassigned (which never happens past level 0 in this core, since we
// never backtrack below a var's level without also undoing its
// assignment... but see propagateXorsOn, which re-derives watches lazily).
func (s *Searcher) attachXor(xi int) {
	x := s.xors[xi]
	x.w0, x.w1 = -1, -1
	for i, v := range x.vars {
		if s.varValue(v) != LUndef {
			continue
		}
		if x.w0 < 0 {
			x.w0 = i
		} else {
			x.w1 = i
			break
		}
	}
	if x.w0 >= 0 {
		s.xorWatchOf[x.vars[x.w0]] = append(s.xorWatchOf[x.vars[x.w0]], int32(xi))
	}
	if x.w1 >= 0 {
		s.xorWatchOf[x.vars[x.w1]] = append(s.xorWatchOf[x.vars[x.w1]], int32(xi))
	}
}

// xorParity reports the parity of the currently-assigned variables in x
// (true/1 contributes, false/0 and unassigned do not), how many variables
// remain unassigned, and the index of one of them (meaningful only when
// exactly one remains).
func (s *Searcher) xorParity(x *xorClause) (parity bool, nbUnassigned int, lastIdx int) {
	lastIdx = -1
	for i, v := range x.vars {
		switch s.varValue(v) {
		case LUndef:
			nbUnassigned++
			lastIdx = i
		case LTrue:
			parity = !parity
		}
	}
	return parity, nbUnassigned, lastIdx
}

// xorReasonLit returns the literal for v that is currently false (i.e. the
// one a resolution step can safely treat as an antecedent literal).
func (s *Searcher) xorReasonLit(v Var) Lit {
	if s.varValue(v) == LTrue {
		return v.Neg()
	}
	return v.Pos()
}

// propagateXorsOn re-examines every XOR clause watching p.Var() (one of
// them was just assigned), relocating watches, unit-propagating the last
// undetermined variable, or reporting a conflict, per spec.md 4.5's
// fixpoint contract applied to parity constraints.
func (s *Searcher) propagateXorsOn(p Lit, lvl int) *Conflict {
	v := p.Var()
	list := s.xorWatchOf[v]
	if len(list) == 0 {
		return nil
	}
	keep := list[:0]
	for i := 0; i < len(list); i++ {
		xi := list[i]
		x := s.xors[xi]
		if x.removed {
			continue
		}

		// Which slot was v watching? Try to find a fresh unassigned
		// variable to replace it.
		var slot *int
		var other int
		if x.vars[x.w0] == v {
			slot, other = &x.w0, x.w1
		} else {
			slot, other = &x.w1, x.w0
		}

		moved := false
		for j, vv := range x.vars {
			if j == *slot || j == other {
				continue
			}
			if s.varValue(vv) == LUndef {
				*slot = j
				s.xorWatchOf[vv] = append(s.xorWatchOf[vv], xi)
				moved = true
				break
			}
		}
		if moved {
			continue // watch relocated; drop it from this var's list
		}
		keep = append(keep, xi)

		parity, nbUnassigned, lastIdx := s.xorParity(x)
		switch nbUnassigned {
		case 0:
			if parity != x.inverted {
				s.xorWatchOf[v] = append(keep, list[i+1:]...)
				return &Conflict{
					Reason: Reason{Kind: ReasonXor, Matrix: xi},
					Lit:    s.xorReasonLit(x.vars[0]),
				}
			}
		case 1:
			forceTrue := parity != x.inverted
			lit := x.vars[lastIdx].Pos()
			if !forceTrue {
				lit = x.vars[lastIdx].Neg()
			}
			s.enqueue(lit, lvl, Reason{Kind: ReasonXor, Matrix: xi})
		default:
			// Nothing forced yet; keep watching the same two slots.
		}
	}
	s.xorWatchOf[v] = keep
	return nil
}
