package solver

// An efficient allocator/deallocator for learnt-clause literal slices.
// Since lots of small clauses are created (and later discarded) during
// search, literals are carved out of a few large backing arrays instead
// of one allocation per learnt clause, relaxing the GC's work.
//
// Unlike the teacher, the pool is a field of Searcher rather than a
// package-level global: spec.md 5 requires that state be strictly
// per-instance when several cores are embedded by a multi-worker
// harness, and a shared global pool would violate that.

const nbLitsAlloc = 1 << 20 // literals preallocated per backing array

type litPool struct {
	lits    []Lit
	ptrFree int
}

// newLits returns a slice containing the given literals, taken from the
// pool if there is room, or backed by a freshly grown array otherwise.
func (p *litPool) newLits(lits ...Lit) []Lit {
	if p.ptrFree+len(lits) > len(p.lits) {
		size := nbLitsAlloc
		if len(lits) > size {
			size = len(lits)
		}
		p.lits = make([]Lit, size)
		copy(p.lits, lits)
		p.ptrFree = len(lits)
		return p.lits[:len(lits)]
	}
	copy(p.lits[p.ptrFree:], lits)
	p.ptrFree += len(lits)
	return p.lits[p.ptrFree-len(lits) : p.ptrFree]
}
