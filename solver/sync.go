package solver

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

// SyncMailbox is the external collaborator spec.md 5 describes: a
// mailbox of redundant unit and binary clauses received from peers
// (drained before propagation) and a sink for newly learned short
// clauses to publish. The core tolerates a nil mailbox, any number of
// incoming clauses per drain, clauses mentioning unknown or removed
// variables (discarded), and already-satisfied or duplicate clauses.
type SyncMailbox interface {
	// Drain returns every clause published by peers since the last
	// drain, each tagged with its origin instance ID.
	Drain() []SyncClause
	// Publish offers a newly learned short clause (unit or binary) for
	// other instances to pick up.
	Publish(origin uuid.UUID, lits []Lit)
}

// SyncClause is one clause as exchanged through a SyncMailbox.
type SyncClause struct {
	Origin uuid.UUID
	Lits   []Lit
}

// memoryMailbox is a simple in-process SyncMailbox: useful for wiring up
// a multi-instance embedding in-process, or for tests, without any real
// transport. Grounded on deckarep/golang-set/v2 for the duplicate-clause
// filter spec.md 5 requires ("already-satisfied or duplicate clauses"
// must be tolerated, i.e. cheaply ignored on republish).
type memoryMailbox struct {
	pending []SyncClause
	seen    mapset.Set[string]
}

// NewMemoryMailbox returns a SyncMailbox every instance sharing it can
// publish to and drain from.
func NewMemoryMailbox() SyncMailbox {
	return &memoryMailbox{seen: mapset.NewSet[string]()}
}

func (m *memoryMailbox) Drain() []SyncClause {
	out := m.pending
	m.pending = nil
	return out
}

func (m *memoryMailbox) Publish(origin uuid.UUID, lits []Lit) {
	key := clauseKey(lits)
	if m.seen.Contains(key) {
		return
	}
	m.seen.Add(key)
	cp := make([]Lit, len(lits))
	copy(cp, lits)
	m.pending = append(m.pending, SyncClause{Origin: origin, Lits: cp})
}

func clauseKey(lits []Lit) string {
	sorted := append([]Lit(nil), lits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var b strings.Builder
	for _, l := range sorted {
		fmt.Fprintf(&b, "%d,", l.Int())
	}
	return b.String()
}

// drainMailbox pulls every pending peer clause and folds it into the
// formula at level 0, discarding clauses that mention an unknown or
// removed variable, are already satisfied, or reduce to nothing.
func (s *Searcher) drainMailbox() {
	if s.mailbox == nil || s.decisionLevel() != 0 {
		return
	}
	for _, sc := range s.mailbox.Drain() {
		s.stats.NbSyncRecv++
		lits := make([]Lit, 0, len(sc.Lits))
		discard, sat := false, false
		for _, l := range sc.Lits {
			if int(l.Var()) >= s.nbVars || s.vars[l.Var()].removed != RemovedNone {
				discard = true
				break
			}
			switch s.value(l) {
			case LTrue:
				sat = true
			case LFalse:
				// dropped
			default:
				lits = append(lits, l)
			}
		}
		if discard || sat || len(lits) == 0 {
			continue
		}
		s.addClauseInternal(lits)
	}
}

// publishLearnt offers a short (<=2 literal) learnt clause to peers, per
// spec.md 5's "sink for newly learned short clauses to publish".
func (s *Searcher) publishLearnt(lits []Lit) {
	if s.mailbox == nil || len(lits) == 0 || len(lits) > 2 {
		return
	}
	s.mailbox.Publish(s.ID, lits)
	s.stats.NbSyncSent++
}
