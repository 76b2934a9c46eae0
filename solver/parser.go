package solver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// This file implements the DIMACS CNF reader, extended with the "x
// <lits> 0" XOR-clause line spec.md 6 describes and the original
// solver's debug-library comment trace ("c Solver::solve()", "c
// Solver::newVar()"), gated behind Config.DebugLib. Grounded on the
// teacher's byte-level readInt/parseHeader reader, now filing directly
// into a Searcher instead of building an intermediate Problem value.

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r. 'b' is the last read byte: a space, a
// '-' or a digit. All spaces before the int value are ignored. Can
// return io.EOF.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, fmt.Errorf("could not read digit: %v", err)
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("cannot read int: %v", err)
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, fmt.Errorf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if isSpace(*b) {
			break
		}
	}
	res *= neg
	return res, err
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("cannot read header: %v", err)
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("invalid syntax %q in header", line)
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("nbvars not an int: %q", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, fmt.Errorf("nbClauses not an int: %q", fields[2])
	}
	return nbVars, nbClauses, nil
}

// readLits reads a 0-terminated sequence of DIMACS literals, validating
// each against nbVars. Returns io.EOF, with no error wrapping, only
// when EOF is hit before any literal was read -- i.e. trailing
// whitespace at the end of the file, which callers should tolerate
// rather than treat as a malformed clause.
func readLits(b *byte, r *bufio.Reader, nbVars int) ([]int, error) {
	vals := make([]int, 0, 4)
	for {
		val, err := readInt(b, r)
		if err == io.EOF {
			if len(vals) == 0 {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("unfinished clause while EOF found")
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse clause: %v", err)
		}
		if val == 0 {
			return vals, nil
		}
		if val > nbVars || -val > nbVars {
			return nil, fmt.Errorf("invalid literal %d for problem with %d vars only", val, nbVars)
		}
		vals = append(vals, val)
	}
}

// ParseCNF parses a DIMACS CNF stream, extended with "x <lits> 0" XOR
// clauses, into a freshly-built Searcher configured per cfg.
func ParseCNF(f io.Reader, cfg Config) (*Searcher, error) {
	r := bufio.NewReader(f)
	s := NewSearcher(cfg)

	b, err := r.ReadByte()
	for err == nil {
		switch {
		case b == 'c':
			line, _ := readDebugLibComment(r)
			if cfg.DebugLib {
				runDebugLibComment(s, line)
			}
		case b == 'p':
			nbVars, _, herr := parseHeader(r)
			if herr != nil {
				return nil, fmt.Errorf("cannot parse CNF header: %v", herr)
			}
			for i := 0; i < nbVars; i++ {
				s.NewVar()
			}
		case b == 'x':
			b = ' ' // the 'x' marker is consumed; the literals follow it
			vals, xerr := readLits(&b, r, s.NbVars())
			if xerr != nil {
				return nil, xerr
			}
			vars, rhs := xorLine(vals)
			s.AddXorClause(vars, rhs)
		default:
			vals, cerr := readLits(&b, r, s.NbVars())
			switch {
			case cerr == io.EOF:
				// Trailing whitespace with nothing left to read; the outer
				// loop's next ReadByte will see EOF too and stop cleanly.
			case cerr != nil:
				return nil, cerr
			default:
				lits := make([]Lit, len(vals))
				for i, v := range vals {
					lits[i] = IntToLit(v)
				}
				s.AddClause(lits)
			}
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, err
	}
	return s, nil
}

// xorLine converts a "x <lits> 0" line's literal values into the
// variable set and required parity AddXorClause expects: the sign of
// the first literal carries the RHS, exactly as xorClause.dimacs writes
// it back out.
func xorLine(vals []int) ([]Var, bool) {
	vars := make([]Var, len(vals))
	rhs := false
	for i, v := range vals {
		lit := IntToLit(v)
		vars[i] = lit.Var()
		if i == 0 && lit.Sign() {
			rhs = true
		}
	}
	return vars, rhs
}

// readDebugLibComment consumes a comment line and returns its content
// (without the leading "c" and surrounding whitespace).
func readDebugLibComment(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), err
}

// runDebugLibComment replays the original solver's debug-library trace
// comments when Config.DebugLib is set: "Solver::solve()" triggers an
// immediate unbounded solve, "Solver::newVar()" allocates one variable.
// Every other comment is ignored, matching the original format's
// "unrecognised trace lines are just comments" convention.
func runDebugLibComment(s *Searcher, line string) {
	switch {
	case strings.Contains(line, "Solver::solve()"):
		s.Solve(nil, 0)
	case strings.Contains(line, "Solver::newVar()"):
		s.NewVar()
	}
}
