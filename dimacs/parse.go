// Package dimacs parses the DIMACS CNF text format into the cnf package's
// clause model. It is one of the external collaborators the core solver
// spec calls out as out of scope for the clause database itself —
// grounded on cespare-saturday's dimacs.go, generalized from that
// package's raw []int clauses to cnf.Term/cnf.Literal.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/CurtisFenner/cnf-solver/cnf"
)

// Formula is a parsed DIMACS file: a sequence of clauses in the order
// they appeared, plus whatever the (optional) problem line declared.
type Formula struct {
	Clauses  []cnf.Clause
	NVars    int // 0 if no problem line was present
	NClauses int // 0 if no problem line was present
}

// Parse reads text in the DIMACS CNF format.
//
// Lines beginning with 'c' are comments and may appear anywhere, not just
// in the preamble. The header line `p cnf <nvars> <nclauses>` is
// optional; its counts are not validated against the clauses that
// follow. A clause body is whitespace-separated non-zero signed
// integers terminated by a literal `0`; a positive integer k denotes the
// literal on term "x"+k positive, a negative integer -k denotes it
// negative. Clause boundaries are the `0` tokens — multiple clauses may
// share a line, and one clause may span multiple lines. A trailing
// clause with no terminating 0 is still accepted.
func Parse(r io.Reader) (*Formula, error) {
	f := &Formula{}
	var current cnf.Clause
	haveProblemLine := false

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == 'c' {
			continue
		}
		if line == "%" {
			// Some CNF files attach a trailer after a line containing a
			// single '%'; everything past it is not part of the formula.
			break
		}
		if line[0] == 'p' {
			if len(f.Clauses) > 0 || len(current) > 0 {
				return nil, fmt.Errorf("dimacs: problem line appears after clause data")
			}
			if haveProblemLine {
				return nil, fmt.Errorf("dimacs: multiple problem lines")
			}
			nvars, nclauses, err := parseProblemLine(line)
			if err != nil {
				return nil, err
			}
			f.NVars, f.NClauses = nvars, nclauses
			haveProblemLine = true
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("dimacs: invalid literal %q: %w", field, err)
			}
			if n == 0 {
				f.Clauses = append(f.Clauses, current)
				current = nil
				continue
			}
			current = append(current, literalFor(n))
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 {
		f.Clauses = append(f.Clauses, current)
	}
	return f, nil
}

func parseProblemLine(line string) (nvars, nclauses int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
		return 0, 0, fmt.Errorf("dimacs: malformed problem line %q", line)
	}
	nvars, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, fmt.Errorf("dimacs: malformed variable count: %w", err)
	}
	nclauses, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, fmt.Errorf("dimacs: malformed clause count: %w", err)
	}
	return nvars, nclauses, nil
}

func literalFor(n int) cnf.Literal {
	positive := n > 0
	if n < 0 {
		n = -n
	}
	return cnf.Literal{Term: cnf.Term(fmt.Sprintf("x%d", n)), Positive: positive}
}
