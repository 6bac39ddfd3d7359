// Command cnfsolve reads a DIMACS CNF formula from standard input,
// decides satisfiability with the CDCL core in the sat package, and
// prints the result. It is the CLI front end §1 of the design scopes out
// of the core, specified instead as the input/output contract of §6.
//
// Grounded on cespare-saturday/cmd/saturday/saturday.go's flag handling
// and custom usage text, generalized to the richer flag set §6 requires:
// three mutually-exclusive show/hide pairs plus --stats and --trace.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	sat "github.com/CurtisFenner/cnf-solver"
	"github.com/CurtisFenner/cnf-solver/cnf"
	"github.com/CurtisFenner/cnf-solver/dimacs"
)

const usage = `cnfsolve: a DPLL/CDCL SAT solver.

Usage:

  cnfsolve [flags] < input.cnf

Reads a single DIMACS CNF formula from standard input and writes "SAT:
true" or "SAT: false" to standard output.

Flags (each pair is mutually exclusive):

  --show-cnf / --hide-cnf                           (default hide)
  --show-model / --hide-model                       (default show)
  --show-learned-clauses / --hide-learned-clauses   (default hide)
  --stats                                            print search stats to stderr
  --trace                                            print solver trace to stderr
  --help                                              print this message and exit
`

type flags struct {
	showCNF, hideCNF         bool
	showModel, hideModel     bool
	showLearned, hideLearned bool
	stats, trace, help       bool
}

var boolFlags = map[string]func(*flags){
	"show-cnf":             func(f *flags) { f.showCNF = true },
	"hide-cnf":             func(f *flags) { f.hideCNF = true },
	"show-model":           func(f *flags) { f.showModel = true },
	"hide-model":           func(f *flags) { f.hideModel = true },
	"show-learned-clauses": func(f *flags) { f.showLearned = true },
	"hide-learned-clauses": func(f *flags) { f.hideLearned = true },
	"stats":                func(f *flags) { f.stats = true },
	"trace":                func(f *flags) { f.trace = true },
	"help":                 func(f *flags) { f.help = true },
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	seen := make(map[string]bool)
	for _, arg := range args {
		name, ok := stripFlagPrefix(arg)
		if !ok {
			return nil, fmt.Errorf("unrecognized argument %q", arg)
		}
		set, known := boolFlags[name]
		if !known {
			return nil, fmt.Errorf("unknown flag %q", arg)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicated flag %q", arg)
		}
		seen[name] = true
		set(f)
	}
	switch {
	case f.showCNF && f.hideCNF:
		return nil, fmt.Errorf("--show-cnf and --hide-cnf are mutually exclusive")
	case f.showModel && f.hideModel:
		return nil, fmt.Errorf("--show-model and --hide-model are mutually exclusive")
	case f.showLearned && f.hideLearned:
		return nil, fmt.Errorf("--show-learned-clauses and --hide-learned-clauses are mutually exclusive")
	}
	return f, nil
}

func stripFlagPrefix(arg string) (string, bool) {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		return arg[2:], true
	case strings.HasPrefix(arg, "-") && len(arg) > 1:
		return arg[1:], true
	default:
		return "", false
	}
}

func main() {
	log.SetFlags(0)

	f, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stdout, err)
		fmt.Fprint(os.Stdout, usage)
		os.Exit(1)
	}
	if f.help {
		fmt.Fprint(os.Stdout, usage)
		os.Exit(0)
	}

	formula, err := dimacs.Parse(os.Stdin)
	if err != nil {
		log.Fatalf("reading DIMACS input: %s", err)
	}

	if f.showCNF {
		printCNF(os.Stdout, formula.Clauses)
	}

	db := sat.NewDatabase()
	for _, c := range formula.Clauses {
		db.AddClause(c)
	}

	solver := sat.NewSolver(db)
	if f.trace {
		solver.Trace = true
		solver.Tracer = sat.NewLogTracer(log.New(os.Stderr, "", 0))
	}

	result := solver.Solve()

	fmt.Printf("SAT: %v\n", result.Sat)
	if result.Sat && !f.hideModel {
		for _, t := range db.Terms() {
			fmt.Printf("\t%s\t=>\t%v\n", t, result.Model[t])
		}
	}

	if f.showLearned {
		printLearnedGrid(os.Stdout, db, len(formula.Clauses))
	}

	if f.stats {
		printStats(os.Stderr, result.Stats)
	}
}

func printCNF(w io.Writer, clauses []cnf.Clause) {
	for _, c := range clauses {
		var parts []string
		for _, lit := range c {
			n := termNumber(lit.Term)
			if !lit.Positive {
				n = -n
			}
			parts = append(parts, strconv.Itoa(n))
		}
		parts = append(parts, "0")
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
}

// gridWidth is the number of columns §6 specifies for the learned-clause
// pretty-printer: one column per term x1..x200.
const gridWidth = 200

func printLearnedGrid(w io.Writer, db *sat.Database, numOriginal int) {
	clauses := db.ClauseList()
	for i, c := range clauses {
		row := make([]byte, gridWidth)
		for j := range row {
			row[j] = ' '
		}
		for _, lit := range c {
			k := termNumber(lit.Term)
			if k < 1 || k > gridWidth {
				continue
			}
			if lit.Positive {
				row[k-1] = 'T'
			} else {
				row[k-1] = '~'
			}
		}
		fmt.Fprintln(w, string(row))
		if i == numOriginal-1 {
			fmt.Fprintln(w, strings.Repeat("-", gridWidth))
		}
	}
}

func termNumber(t cnf.Term) int {
	n, err := strconv.Atoi(strings.TrimPrefix(string(t), "x"))
	if err != nil {
		return 0
	}
	return n
}

func printStats(w io.Writer, s sat.Stats) {
	entries := map[string]int{
		"conflicts":       s.Conflicts,
		"decisions":       s.Decisions,
		"learned clauses": s.LearnedClauses,
		"max level":       s.MaxLevel,
		"propagations":    s.Propagations,
	}
	keys := make([]string, 0, len(entries))
	maxLen := 0
	for k := range entries {
		keys = append(keys, k)
		if len(k) > maxLen {
			maxLen = len(k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%*s %v\n", maxLen, k, entries[k])
	}
}
