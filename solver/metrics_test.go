package solver

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsNilRegistrySkipsMetrics(t *testing.T) {
	require.Nil(t, NewMetrics(nil, "x"))
}

func TestNilMetricsObserveIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() { m.observe(Stats{NbConflicts: 3}) })
}

func TestMetricsObserveSetsGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "satcore_test")
	require.NotNil(t, m)

	m.observe(Stats{NbConflicts: 5, NbRestarts: 2, NbTier0: 1})

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}
