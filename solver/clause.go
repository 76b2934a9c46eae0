package solver

import "fmt"

// Tier classifies a learnt clause's retention policy in the learnt-clause
// database (C9). Original (non-redundant) clauses are never tiered.
type Tier uint8

const (
	// Tier0 clauses are kept permanently (glue <= glue_put_lev0_if_below_or_eq).
	Tier0 Tier = iota
	// Tier1 clauses survive reduction more aggressively than Tier2.
	Tier1
	// Tier2 clauses are temporary and subject to periodic halving.
	Tier2
)

// A Clause is a packed ordinary (disjunctive) clause. Its identity is its
// pointer: reasons and watches hold *Clause directly rather than an
// integer arena offset, since the Go runtime already guarantees pointer
// stability across GC cycles. Deletion is deferred to explicit reduction
// passes (see learntdb.go, cleaner.go), exactly as spec.md requires.
type Clause struct {
	lits []Lit

	redundant    bool // learnt vs. original
	removed      bool // detached and pending garbage collection
	locked       bool // currently the reason for some trail literal
	strengthened bool // shortened by the cleaner since last touched

	tier        Tier
	glue        uint32
	activity    float32
	lastTouched int32 // conflict index at last Touch
	abstraction uint32
}

// NewClause returns an original (non-redundant) clause over the given
// literals. The clause takes ownership of lits.
func NewClause(lits []Lit) *Clause {
	c := &Clause{lits: lits}
	c.computeAbstraction()
	return c
}

// NewLearnedClause returns a new redundant clause produced by conflict
// analysis. The clause's glue and tier are set by the caller once computed.
func NewLearnedClause(lits []Lit) *Clause {
	c := &Clause{lits: lits, redundant: true}
	c.computeAbstraction()
	return c
}

// Len returns the number of literals still in the clause.
func (c *Clause) Len() int { return len(c.lits) }

// Get returns the i-th literal.
func (c *Clause) Get(i int) Lit { return c.lits[i] }

// Set sets the i-th literal.
func (c *Clause) Set(i int, l Lit) { c.lits[i] = l }

// First returns the first (watched) literal.
func (c *Clause) First() Lit { return c.lits[0] }

// Second returns the second (watched) literal.
func (c *Clause) Second() Lit { return c.lits[1] }

// Swap exchanges the i-th and j-th literals.
func (c *Clause) Swap(i, j int) { c.lits[i], c.lits[j] = c.lits[j], c.lits[i] }

// Shrink truncates the clause to its first newLen literals.
func (c *Clause) Shrink(newLen int) {
	c.lits = c.lits[:newLen]
	c.strengthened = true
	c.computeAbstraction()
}

// Redundant is true iff c is a learnt clause.
func (c *Clause) Redundant() bool { return c.redundant }

// Glue returns c's Literal Block Distance.
func (c *Clause) Glue() int { return int(c.glue) }

// SetGlue sets c's glue score.
func (c *Clause) SetGlue(g int) { c.glue = uint32(g) }

// TierOf returns c's current retention tier.
func (c *Clause) TierOf() Tier { return c.tier }

// SetTier moves c into a new tier.
func (c *Clause) SetTier(t Tier) { c.tier = t }

// Lock marks c as the current reason for some trail literal: it must
// survive any reduction pass until unlocked.
func (c *Clause) Lock() { c.locked = true }

// Unlock clears c's lock.
func (c *Clause) Unlock() { c.locked = false }

// Locked is true iff c is currently a reason.
func (c *Clause) Locked() bool { return c.locked }

// Removed is true iff c has been detached and is pending collection.
func (c *Clause) Removed() bool { return c.removed }

// MarkRemoved flags c as detached.
func (c *Clause) MarkRemoved() { c.removed = true }

// Strengthened is true iff the cleaner shortened c since it was last
// touched by the learnt-clause DB.
func (c *Clause) Strengthened() bool { return c.strengthened }

// ClearStrengthened resets the strengthened flag once the DB has observed it.
func (c *Clause) ClearStrengthened() { c.strengthened = false }

// BumpActivity increases c's activity score (only meaningful for learnts).
func (c *Clause) BumpActivity(inc float32) { c.activity += inc }

// Activity returns c's current activity score.
func (c *Clause) Activity() float32 { return c.activity }

// Touch records conflictIdx as the time c was last touched, which
// sweepTier1's recency check measures from. fileLearnt calls it when
// c is created; promotion to another tier does not.
func (c *Clause) Touch(conflictIdx int) { c.lastTouched = int32(conflictIdx) }

// LastTouched returns the conflict index c was last touched at.
func (c *Clause) LastTouched() int { return int(c.lastTouched) }

// computeAbstraction recomputes the subset-check abstraction bitmask: one
// bit per (var % 32), used to cheaply rule out subsumption candidates
// before doing a full literal scan.
func (c *Clause) computeAbstraction() {
	var a uint32
	for _, l := range c.lits {
		a |= 1 << (uint32(l.Var()) & 31)
	}
	c.abstraction = a
}

// Abstraction returns c's subset-check abstraction bitmask.
func (c *Clause) Abstraction() uint32 { return c.abstraction }

// computeGlue sets c's glue given a function returning each variable's
// decision level, per spec.md 4.6: the number of distinct decision levels
// (> 0) among c's literals.
func (c *Clause) computeGlue(levelOf func(Var) int) {
	seen := make(map[int]struct{}, c.Len())
	for _, l := range c.lits {
		if lvl := levelOf(l.Var()); lvl > 0 {
			seen[lvl] = struct{}{}
		}
	}
	c.glue = uint32(len(seen))
}

// CNF returns a DIMACS representation of c.
func (c *Clause) CNF() string {
	res := ""
	for _, l := range c.lits {
		res += fmt.Sprintf("%d ", l.Int())
	}
	return res + "0"
}

func (c *Clause) String() string { return c.CNF() }
