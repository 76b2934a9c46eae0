package solver

// mapleBrancher is C7's Maple/LRB strategy (spec.md 4.7): each variable
// tracks when it was last picked, how many conflicts it participated in
// since then, and when it was last cancelled; its activity is an
// exponential moving average of "conflicts per unit age", with the
// step size decaying from origStep toward minStep over the search.
// Grounded on EricR-saturday/solver/var_order.go and
// solver_heuristics.go, which already track an equivalent pickTime.
type mapleBrancher struct {
	activity   []float64
	pickedAt   []int32
	conflicted []int32
	assigned   []bool
	heap       queue

	conflictIdx *int32 // shared with Searcher.conflictIdx via pointer

	step    float64
	minStep float64
	decay   float64
}

func newMapleBrancher(nbVars int, origStep, minStep, decay float64, conflictIdx *int32) *mapleBrancher {
	b := &mapleBrancher{
		activity:    make([]float64, nbVars),
		pickedAt:    make([]int32, nbVars),
		conflicted:  make([]int32, nbVars),
		assigned:    make([]bool, nbVars),
		conflictIdx: conflictIdx,
		step:        origStep,
		minStep:     minStep,
		decay:       decay,
	}
	b.heap = newQueue(b.activity)
	return b
}

func (b *mapleBrancher) Grow(v Var) {
	for int(v) >= len(b.activity) {
		b.activity = append(b.activity, 0)
		b.pickedAt = append(b.pickedAt, 0)
		b.conflicted = append(b.conflicted, 0)
		b.assigned = append(b.assigned, false)
	}
	b.heap = queue{activity: b.activity}
	ns := make([]int, 0, len(b.activity))
	for i := range b.activity {
		if !b.assigned[i] {
			ns = append(ns, i)
		}
	}
	b.heap.build(ns)
}

func (b *mapleBrancher) Pick(s *Searcher) (Var, bool) {
	for !b.heap.empty() {
		v := Var(b.heap.get(0))
		b.heap.removeMin()
		if s.varValue(v) == LUndef {
			b.pickedAt[v] = *b.conflictIdx
			return v, true
		}
	}
	return 0, false
}

// Bump increments the per-conflict participation counter; the activity
// itself is only recomputed when the variable is cancelled (LRB's
// defining trait: reward is measured over the variable's whole
// "involvement span", not applied eagerly).
func (b *mapleBrancher) Bump(v Var) {
	b.conflicted[v]++
}

func (b *mapleBrancher) Decay() {
	if b.step > b.minStep {
		b.step -= b.decay
		if b.step < b.minStep {
			b.step = b.minStep
		}
	}
}

func (b *mapleBrancher) Assigned(v Var) {
	b.assigned[v] = true
}

func (b *mapleBrancher) Cancelled(v Var, conflictIdx int32) {
	age := conflictIdx - b.pickedAt[v]
	if age > 0 {
		reward := float64(b.conflicted[v]) / float64(age)
		b.activity[v] = b.step*reward + (1-b.step)*b.activity[v]
	}
	b.conflicted[v] = 0
	b.assigned[v] = false
	if !b.heap.contains(int(v)) {
		b.heap.insert(int(v))
	} else {
		b.heap.update(int(v))
	}
}
