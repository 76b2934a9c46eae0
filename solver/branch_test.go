package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVSIDSPicksHighestActivity(t *testing.T) {
	s := NewSearcher(DefaultConfig())
	a := s.NewVar()
	b := s.NewVar()
	c := s.NewVar()

	vb := newVSIDSBrancher(3, 0.95, 0, rand.New(rand.NewSource(1)))
	vb.Grow(a)
	vb.Grow(b)
	vb.Grow(c)
	vb.Bump(b)
	vb.Bump(b)
	vb.Bump(c)

	v, ok := vb.Pick(s)
	require.True(t, ok)
	require.Equal(t, b, v)
}

func TestVSIDSSkipsAssignedVars(t *testing.T) {
	s := NewSearcher(DefaultConfig())
	a := s.NewVar()
	b := s.NewVar()

	vb := newVSIDSBrancher(2, 0.95, 0, rand.New(rand.NewSource(1)))
	vb.Grow(a)
	vb.Grow(b)
	vb.Bump(a)

	require.True(t, s.AddClause([]Lit{a.Pos(), b.Pos()}))
	s.enqueue(a.Pos(), 0, decisionReason)
	vb.Assigned(a)

	v, ok := vb.Pick(s)
	require.True(t, ok)
	require.Equal(t, b, v)
}

func TestRotatingBrancherSwitchesStages(t *testing.T) {
	s := NewSearcher(DefaultConfig())
	a := s.NewVar()
	b := s.NewVar()
	s.brancher.Grow(a)
	s.brancher.Grow(b)

	rng := rand.New(rand.NewSource(2))
	stages := []Brancher{
		newVSIDSBrancher(2, 0.95, 0, rng),
		newVMTFBrancher(2),
	}
	r := newRotatingBrancher(stages, 1).(*rotatingBrancher)
	r.Grow(a)
	r.Grow(b)

	require.Equal(t, 0, r.cur)
	r.Pick(s) // sinceSwitch becomes 1 == switchEvery, so this call rotates before picking
	require.Equal(t, 1, r.cur)
}

func TestParseBranchStrategySetup(t *testing.T) {
	specs, err := parseBranchStrategySetup("vsids1+maple1+rand")
	require.NoError(t, err)
	require.Len(t, specs, 3)
	require.Equal(t, BranchVSIDS, specs[0].Kind)
	require.Equal(t, BranchMaple, specs[1].Kind)
	require.Equal(t, BranchRandom, specs[2].Kind)
}

func TestParseBranchStrategySetupEmptyDefaultsVSIDS(t *testing.T) {
	specs, err := parseBranchStrategySetup("")
	require.NoError(t, err)
	require.Len(t, specs, 1)
	require.Equal(t, BranchVSIDS, specs[0].Kind)
}

func TestParseBranchStrategySetupRejectsUnknown(t *testing.T) {
	_, err := parseBranchStrategySetup("bogus")
	require.Error(t, err)
}

func TestRandomBrancherPicksAmongUnassigned(t *testing.T) {
	s := NewSearcher(DefaultConfig())
	a, b := s.NewVar(), s.NewVar()
	require.True(t, s.AddClause([]Lit{a.Pos(), b.Pos()}))
	s.enqueue(a.Pos(), 0, decisionReason)

	rb := newRandomBrancher(2, rand.New(rand.NewSource(1)))
	v, ok := rb.Pick(s)
	require.True(t, ok)
	require.Equal(t, b, v)
}

func TestRandomBrancherEmptyPoolReturnsFalse(t *testing.T) {
	rb := newRandomBrancher(0, rand.New(rand.NewSource(1)))
	_, ok := rb.Pick(&Searcher{})
	require.False(t, ok)
}

func TestMapleBrancherCancelledComputesRewardAndReinserts(t *testing.T) {
	s := NewSearcher(DefaultConfig())
	a := s.NewVar()

	var idx int32
	mb := newMapleBrancher(1, 0.5, 0.06, 1e-6, &idx)
	mb.Grow(a)

	v, ok := mb.Pick(s)
	require.True(t, ok)
	require.Equal(t, a, v)
	require.False(t, mb.heap.contains(int(a)))

	mb.Bump(a)
	mb.Bump(a)
	idx = 4 // age = 4 - pickedAt(0) = 4
	mb.Cancelled(a, idx)

	require.True(t, mb.heap.contains(int(a)))
	require.Greater(t, mb.activity[a], 0.0)
}
