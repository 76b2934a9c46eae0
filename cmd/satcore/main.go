// Command satcore is a thin CLI shell around the solver package: DIMACS
// CNF (+XOR) file loading, flag parsing, result/model printing. None of
// this is part of the core (spec.md 1 names the CLI as an external
// collaborator); it exists so the module ships a runnable program, the
// way both example solvers in the pack do.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/gavinp/cryptominisat/solver"
)

const (
	exitSat     = 10
	exitUnsat   = 20
	exitUnknown = 15
)

var (
	verbose      bool
	maxConflicts int64
	maxModels    int

	rootCmd = &cobra.Command{
		Use:   "satcore",
		Short: "A CDCL/XOR SAT solver",
	}

	solveCmd = &cobra.Command{
		Use:   "solve [file.cnf]",
		Short: "Solve a DIMACS CNF (+XOR) file",
		Args:  cobra.ExactArgs(1),
		Run:   runSolve,
	}

	countCmd = &cobra.Command{
		Use:   "count [file.cnf]",
		Short: "Count satisfying models, up to --models",
		Args:  cobra.ExactArgs(1),
		Run:   runCount,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print solve statistics")
	rootCmd.PersistentFlags().Int64Var(&maxConflicts, "max-conflicts", 0, "conflict budget (0 = unbounded)")
	countCmd.Flags().IntVar(&maxModels, "models", 0, "stop after this many models (0 = all)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(countCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadSearcher(path string) (*solver.Searcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	s, err := solver.ParseCNF(f, solver.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if verbose {
		s.Log = stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	} else {
		s.Log = logr.Discard()
	}
	return s, nil
}

func runSolve(cmd *cobra.Command, args []string) {
	s, err := loadSearcher(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	start := time.Now()
	status := s.Solve(nil, maxConflicts)
	elapsed := time.Since(start)

	if verbose {
		printStats(s, elapsed)
	}

	switch status {
	case solver.Sat:
		fmt.Println("SATISFIABLE")
		printModel(s)
		os.Exit(exitSat)
	case solver.Unsat:
		fmt.Println("UNSATISFIABLE")
		os.Exit(exitUnsat)
	default:
		fmt.Println("UNKNOWN")
		os.Exit(exitUnknown)
	}
}

// runCount enumerates models by blocking each one found with a fresh
// clause (the negation of the model just seen) and re-solving, a
// CLI-level technique since the core itself has no notion of
// enumeration (spec.md 1 scopes the core to single-shot solve).
func runCount(cmd *cobra.Command, args []string) {
	s, err := loadSearcher(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	start := time.Now()
	nb := 0
	for maxModels == 0 || nb < maxModels {
		status := s.Solve(nil, maxConflicts)
		if status != solver.Sat {
			break
		}
		nb++
		if verbose {
			fmt.Fprintf(os.Stderr, "c %d models found\n", nb)
		}
		s.AddClause(blockingClause(s.Model()))
	}
	if verbose {
		printStats(s, time.Since(start))
	}
	fmt.Println(nb)
}

func blockingClause(model []solver.LBool) []solver.Lit {
	lits := make([]solver.Lit, 0, len(model))
	for i, v := range model {
		lits = append(lits, solver.Var(i).SignedLit(v == solver.LTrue))
	}
	return lits
}

func printModel(s *solver.Searcher) {
	model := s.Model()
	for i, v := range model {
		sign := ""
		if v != solver.LTrue {
			sign = "-"
		}
		fmt.Printf("%s%d ", sign, i+1)
	}
	fmt.Println("0")
}

func printStats(s *solver.Searcher, elapsed time.Duration) {
	st := s.StatsSnapshot()
	fmt.Fprintf(os.Stderr, "c time taken:      %s\n", elapsed)
	fmt.Fprintf(os.Stderr, "c nb vars:         %d\n", s.NbVars())
	fmt.Fprintf(os.Stderr, "c nb decisions:    %d\n", st.NbDecisions)
	fmt.Fprintf(os.Stderr, "c nb conflicts:    %d\n", st.NbConflicts)
	fmt.Fprintf(os.Stderr, "c nb restarts:     %d\n", st.NbRestarts)
	fmt.Fprintf(os.Stderr, "c nb propagations: %d\n", st.NbPropagations)
	fmt.Fprintf(os.Stderr, "c nb learned:      %d (unit %d, binary %d, long %d)\n",
		st.NbLearned, st.NbUnitLearned, st.NbBinaryLearned, st.NbLongLearned)
	fmt.Fprintf(os.Stderr, "c nb deleted:      %d\n", st.NbDeleted)
}
