/*
Package solver implements a CDCL SAT solver with an XOR-clause
extension: two-watched-literal Boolean constraint propagation,
first-UIP conflict analysis with recursive and binary-clause
minimisation, a three-tier learnt-clause database, four interchangeable
branching heuristics (VSIDS, Maple/LRB, VMTF, random), six polarity
modes, five restart policies, and an optional multi-instance clause-
sharing mailbox.

Describing a problem

A Searcher starts out empty; variables and clauses are added
incrementally:

	s := solver.NewSearcher(solver.DefaultConfig())
	a := s.NewVar()
	b := s.NewVar()
	s.AddClause([]solver.Lit{a.Pos(), b.Neg()})
	s.AddXorClause([]solver.Var{a, b}, true) // a xor b == 1

A DIMACS CNF stream (with the "x <lits> 0" XOR extension) can be parsed
directly into a fresh Searcher:

	s, err := solver.ParseCNF(f, solver.DefaultConfig())

Solving a problem

	status := s.Solve(nil, 0) // no assumptions, no conflict budget
	switch status {
	case solver.Sat:
		m := s.Model()
	case solver.Unsat:
		// s.FinalConflict() is only meaningful when assumptions were given
	}
*/
package solver
