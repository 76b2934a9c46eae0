package solver

// This file implements C5, the propagator: Boolean Constraint Propagation
// via the two-watched-literal scheme, exactly per spec.md 4.5.

// enqueue assigns lit true at the given level with the given reason and
// pushes it onto the trail. The caller must have already checked lit is
// currently unassigned.
func (s *Searcher) enqueue(lit Lit, lvl int, reason Reason) {
	v := lit.Var()
	val := LTrue
	if lit.Sign() {
		val = LFalse
	}
	s.vars[v].assign = val
	s.vars[v].level = int32(lvl)
	s.vars[v].reason = reason
	if reason.Kind == ReasonLong {
		reason.Clause.Lock()
	}
	s.trail.push(lit)
}

// propagate runs BCP to a fixpoint: either every enqueued literal has been
// processed (qhead == len(trail)), or a conflict is returned. All implied
// literals are enqueued in the order they are derived (spec.md 4.5
// contract). Invariant I1 holds on every nil return.
func (s *Searcher) propagate() *Conflict {
	for s.qhead < len(s.trail.lits) {
		p := s.trail.lits[s.qhead]
		s.qhead++
		s.stats.NbPropagations++
		lvl := int(s.vars[p.Var()].level)

		if conflict := s.propagateXorsOn(p, lvl); conflict != nil {
			return conflict
		}

		ws := s.wl.wl.get(p)
		keep := ws[:0]
		for i := 0; i < len(ws); i++ {
			w := ws[i]
			switch w.Kind {
			case WatchBinary:
				val := s.value(w.Other)
				if val == LFalse {
					s.wl.wl.ws[p] = append(keep, ws[i:]...)
					return &Conflict{Reason: Reason{Kind: ReasonBinary, Lit: p.Negation()}, Lit: w.Other}
				}
				if val == LUndef {
					s.enqueue(w.Other, lvl, Reason{Kind: ReasonBinary, Lit: p.Negation()})
				}
				keep = append(keep, w)
			case WatchLong:
				if s.value(w.Blocker) == LTrue {
					keep = append(keep, w)
					continue
				}
				c := w.Clause
				falseLit := p.Negation()
				// Normalise so c[1] == falseLit.
				if c.First() == falseLit {
					c.Swap(0, 1)
				}
				first := c.First()
				if s.value(first) == LTrue {
					keep = append(keep, Watch{Kind: WatchLong, Clause: c, Blocker: first})
					continue
				}
				moved := false
				for k := 2; k < c.Len(); k++ {
					if s.value(c.Get(k)) != LFalse {
						c.Swap(1, k)
						s.wl.wl.add(c.Second().Negation(), Watch{Kind: WatchLong, Clause: c, Blocker: first})
						moved = true
						break
					}
				}
				if moved {
					continue // watch relocated; do not keep it here
				}
				keep = append(keep, Watch{Kind: WatchLong, Clause: c, Blocker: first})
				if s.value(first) == LFalse {
					s.wl.wl.ws[p] = append(keep, ws[i+1:]...)
					return &Conflict{Reason: Reason{Kind: ReasonLong, Clause: c}, Lit: first}
				}
				// unit: enqueue first
				s.enqueue(first, lvl, Reason{Kind: ReasonLong, Clause: c})
			}
		}
		s.wl.wl.ws[p] = keep
	}
	return nil
}
