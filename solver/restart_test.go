package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLubySequence(t *testing.T) {
	// First terms of the Luby sequence: 1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8
	want := []uint{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	for i, w := range want {
		require.Equal(t, w, luby(uint(i+1)), "term %d", i+1)
	}
}

func TestRestartNeverNeverFires(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RestartType = RestartNever
	r := newRestartController(cfg)
	for i := 0; i < 100000; i++ {
		r.onConflict(2, 10)
	}
	require.False(t, r.shouldRestart(10))
}

func TestRestartGeomFiresAfterFirstBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RestartType = RestartGeom
	cfg.RestartFirst = 5
	r := newRestartController(cfg)
	for i := 0; i < 4; i++ {
		r.onConflict(2, 10)
		require.False(t, r.shouldRestart(10))
	}
	r.onConflict(2, 10)
	require.True(t, r.shouldRestart(10))

	r.advance(cfg)
	require.Equal(t, 1, r.restarts)
	require.InDelta(t, 5*cfg.RestartInc, r.geomBound, 1e-9)
}

func TestRestartGlueNeedsFullWindowFirst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RestartType = RestartGlue
	r := newRestartController(cfg)
	for i := 0; i < glueShortWindow-1; i++ {
		r.onConflict(10, 10)
		require.False(t, r.shouldRestart(10))
	}
}
