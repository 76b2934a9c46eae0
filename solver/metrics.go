package solver

import "github.com/prometheus/client_golang/prometheus"

// Metrics optionally mirrors Stats as prometheus collectors, per
// SPEC_FULL.md 6. A nil *Metrics (the default: NewMetrics returns nil
// for a nil registry, and a Searcher has none until SetMetrics wires
// one) means metrics are skipped entirely; nothing
// in the core's hot path depends on it being present. Grounded on
// jinterlante1206-AleutianLocal's use of prometheus/client_golang.
//
// Every field is a Gauge, not a Counter: Stats itself is already the
// cumulative count, so observe() just Sets() the latest snapshot rather
// than tracking deltas.
type Metrics struct {
	conflicts      prometheus.Gauge
	restarts       prometheus.Gauge
	decisions      prometheus.Gauge
	propagations   prometheus.Gauge
	learned        prometheus.Gauge
	deleted        prometheus.Gauge
	tierPopulation *prometheus.GaugeVec
}

// NewMetrics registers Stats-mirroring collectors on reg. Pass a nil reg
// to skip metrics entirely.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		conflicts:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "conflicts_total"}),
		restarts:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "restarts_total"}),
		decisions:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "decisions_total"}),
		propagations: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "propagations_total"}),
		learned:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "learned_clauses_total"}),
		deleted:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "deleted_clauses_total"}),
		tierPopulation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "learnt_tier_population",
		}, []string{"tier"}),
	}
	reg.MustRegister(m.conflicts, m.restarts, m.decisions, m.propagations, m.learned, m.deleted, m.tierPopulation)
	return m
}

// observe pushes a Stats snapshot into the registered collectors. Called
// by the searcher loop at every restart and when Solve returns Sat.
func (m *Metrics) observe(st Stats) {
	if m == nil {
		return
	}
	m.conflicts.Set(float64(st.NbConflicts))
	m.restarts.Set(float64(st.NbRestarts))
	m.decisions.Set(float64(st.NbDecisions))
	m.propagations.Set(float64(st.NbPropagations))
	m.learned.Set(float64(st.NbLearned))
	m.deleted.Set(float64(st.NbDeleted))
	m.tierPopulation.WithLabelValues("0").Set(float64(st.NbTier0))
	m.tierPopulation.WithLabelValues("1").Set(float64(st.NbTier1))
	m.tierPopulation.WithLabelValues("2").Set(float64(st.NbTier2))
}
