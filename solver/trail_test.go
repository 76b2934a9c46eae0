package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrailLevelsAndTruncate(t *testing.T) {
	var tr trail
	require.Equal(t, 0, tr.level())

	tr.push(Var(0).Pos())
	tr.newDecisionLevel()
	tr.push(Var(1).Pos())
	tr.push(Var(2).Pos())
	tr.newDecisionLevel()
	tr.push(Var(3).Pos())

	require.Equal(t, 2, tr.level())
	require.Equal(t, 1, tr.levelStart(1))
	require.Equal(t, 3, tr.levelStart(2))

	var undone []Lit
	tr.truncateToLevel(1, func(l Lit) { undone = append(undone, l) })

	require.Equal(t, 1, tr.level())
	require.Equal(t, []Lit{Var(3).Pos()}, undone)
	require.Equal(t, []Lit{Var(0).Pos(), Var(1).Pos(), Var(2).Pos()}, tr.lits)

	undone = nil
	tr.truncateToLevel(0, func(l Lit) { undone = append(undone, l) })
	require.Equal(t, 0, tr.level())
	require.Equal(t, []Lit{Var(2).Pos(), Var(1).Pos()}, undone)
	require.Equal(t, []Lit{Var(0).Pos()}, tr.lits)
}

func TestTrailTruncateToCurrentLevelIsNoop(t *testing.T) {
	var tr trail
	tr.push(Var(0).Pos())
	tr.newDecisionLevel()
	tr.push(Var(1).Pos())

	called := false
	tr.truncateToLevel(1, func(Lit) { called = true })
	require.False(t, called)
	require.Equal(t, 1, tr.level())
}
