package solver

// Stats is the running counter set the Searcher maintains throughout a
// solve() call, generalised from the teacher's solver.go:Stats from a
// single-DB counter set to the three-tier layout spec.md 4.9 requires.
type Stats struct {
	NbDecisions int64
	NbConflicts int64
	NbRestarts  int64
	NbPropagations int64

	NbUnitLearned   int64
	NbBinaryLearned int64
	NbLongLearned   int64

	NbLearned int64
	NbDeleted int64

	NbTier0 int
	NbTier1 int
	NbTier2 int

	NbCleanerRuns int64
	NbSyncSent    int64
	NbSyncRecv    int64
}
