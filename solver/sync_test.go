package solver

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMemoryMailboxDedupesOnPublish(t *testing.T) {
	mb := NewMemoryMailbox()
	origin := uuid.New()
	mb.Publish(origin, []Lit{Var(0).Pos(), Var(1).Neg()})
	mb.Publish(origin, []Lit{Var(0).Pos(), Var(1).Neg()}) // duplicate, ignored
	mb.Publish(origin, []Lit{Var(2).Pos()})

	got := mb.Drain()
	require.Len(t, got, 2)
	require.Empty(t, mb.Drain()) // drained once, now empty
}

func TestDrainMailboxDiscardsUnknownVar(t *testing.T) {
	s := NewSearcher(DefaultConfig())
	a := s.NewVar()
	mb := NewMemoryMailbox()
	s.SetMailbox(mb)

	mb.Publish(uuid.New(), []Lit{Var(99).Pos()}) // beyond s.nbVars
	s.drainMailbox()
	require.Equal(t, LUndef, s.varValue(a))
}

func TestDrainMailboxAppliesUnit(t *testing.T) {
	s := NewSearcher(DefaultConfig())
	a := s.NewVar()
	mb := NewMemoryMailbox()
	s.SetMailbox(mb)

	mb.Publish(uuid.New(), []Lit{a.Pos()})
	s.drainMailbox()
	require.Equal(t, LTrue, s.varValue(a))
}

func TestPublishLearntSkipsLongClauses(t *testing.T) {
	s := NewSearcher(DefaultConfig())
	a := s.NewVar()
	b := s.NewVar()
	c := s.NewVar()
	mb := NewMemoryMailbox()
	s.SetMailbox(mb)

	s.publishLearnt([]Lit{a.Pos(), b.Pos(), c.Pos()})
	require.Empty(t, mb.Drain())

	s.publishLearnt([]Lit{a.Pos()})
	require.Len(t, mb.Drain(), 1)
}
