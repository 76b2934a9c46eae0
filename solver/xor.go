package solver

import "fmt"

// An xorClause is a parity constraint x1 xor x2 xor ... xor xn = rhs,
// where rhs is true iff Inverted. It is stored separately from ordinary
// Clauses (spec.md 3, "XOR clause") since it has no watched-literal pair
// in the classic sense; instead two of its variables (w0, w1 below) are
// watched through Searcher.xorWatchOf, which maps each variable to the
// XOR clauses currently watching it.
type xorClause struct {
	vars     []Var
	inverted bool // parity bit: true means the xor sum must equal 1
	removed  bool

	// w0, w1 index into vars: the two currently-unassigned variables this
	// clause is watched on (propagateXorsOn only re-scans a clause when
	// one of them is assigned). -1 once fewer than two remain.
	w0, w1 int
}

// newXorClause returns a new XOR clause. vars must already be deduplicated
// by the caller (add_xor_clause folds repeated variables away, since
// x xor x is always false and cancels).
func newXorClause(vars []Var, inverted bool) *xorClause {
	return &xorClause{vars: vars, inverted: inverted, w0: -1, w1: -1}
}

// rhs returns the required parity as a bool (true means "must be odd").
func (x *xorClause) rhs() bool { return x.inverted }

// Len returns the number of (still present) variables in the constraint.
func (x *xorClause) Len() int { return len(x.vars) }

// dimacs renders x using the "x <lits> 0" DIMACS extension line described
// in spec.md 6: the RHS parity is encoded by negating the first literal
// when inverted is true.
func (x *xorClause) dimacs() string {
	s := "x"
	for i, v := range x.vars {
		neg := x.inverted && i == 0
		s += fmt.Sprintf(" %d", v.SignedLit(neg).Int())
	}
	return s + " 0"
}
