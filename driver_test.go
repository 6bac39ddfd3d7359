package sat

import (
	"fmt"
	"testing"

	"github.com/CurtisFenner/cnf-solver/cnf"
	"github.com/google/go-cmp/cmp"
	testiface "github.com/mitchellh/go-testing-interface"
)

// testTracer sends trace output through the test logger, matching the
// teacher's own testTracer.
type testTracer struct{ t testiface.T }

func (tr testTracer) Printf(format string, v ...interface{}) { tr.t.Logf(format, v...) }

func newSolverForTest(t testiface.T, clauses []cnf.Clause) (*Database, *Solver) {
	db := NewDatabase()
	for _, c := range clauses {
		db.AddClause(c)
	}
	s := NewSolver(db)
	s.Trace = true
	s.Tracer = testTracer{t: t}
	return db, s
}

func assertClauseSatisfied(t *testing.T, model map[cnf.Term]bool, c cnf.Clause) {
	t.Helper()
	for _, l := range c {
		if model[l.Term] == l.Positive {
			return
		}
	}
	t.Fatalf("clause %s is not satisfied by model %v", c, model)
}

func TestSolve_table(t *testing.T) {
	cases := []struct {
		name    string
		clauses []cnf.Clause
		wantSat bool
	}{
		{
			name:    "empty formula",
			clauses: nil,
			wantSat: true,
		},
		{
			name:    "single unit clause",
			clauses: []cnf.Clause{{lit("x", true)}},
			wantSat: true,
		},
		{
			name:    "empty clause is unsat",
			clauses: []cnf.Clause{{}},
			wantSat: false,
		},
		{
			name:    "unit clause contradicting itself",
			clauses: []cnf.Clause{{lit("x", true)}, {lit("x", false)}},
			wantSat: false,
		},
		{
			name: "clauses a, not a",
			clauses: []cnf.Clause{
				{lit("a", true)},
				{lit("a", false)},
			},
			wantSat: false,
		},
		{
			name: "a or b, not b => sat a=true b=false",
			clauses: []cnf.Clause{
				{lit("a", true), lit("b", true)},
				{lit("b", false)},
			},
			wantSat: true,
		},
		{
			name: "all four 2-clauses over x,y is unsat",
			clauses: []cnf.Clause{
				{lit("x", true), lit("y", true)},
				{lit("x", true), lit("y", false)},
				{lit("x", false), lit("y", true)},
				{lit("x", false), lit("y", false)},
			},
			wantSat: false,
		},
		{
			name: "unit propagation alone detects unsat",
			clauses: []cnf.Clause{
				{lit("p", true)},
				{lit("q", true)},
				{lit("p", false), lit("q", false)},
			},
			wantSat: false,
		},
		{
			name: "chained unit propagation",
			clauses: []cnf.Clause{
				{lit("p", false)},
				{lit("p", true), lit("q", false)},
			},
			wantSat: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, s := newSolverForTest(t, tc.clauses)
			result := s.Solve()
			if result.Sat != tc.wantSat {
				t.Fatalf("Solve() sat = %v, want %v", result.Sat, tc.wantSat)
			}
			if result.Sat {
				for _, c := range tc.clauses {
					assertClauseSatisfied(t, result.Model, c)
				}
				for _, term := range db.Terms() {
					if _, ok := result.Model[term]; !ok {
						t.Errorf("model is missing term %q", term)
					}
				}
			}
		})
	}
}

func TestSolve_pigeonholePHP32(t *testing.T) {
	// 3 pigeons, 2 holes: pXY means pigeon X is in hole Y.
	var clauses []cnf.Clause
	pigeon := func(p int) cnf.Clause {
		return cnf.Clause{
			lit(cnf.Term(fmt.Sprintf("p%d0", p)), true),
			lit(cnf.Term(fmt.Sprintf("p%d1", p)), true),
		}
	}
	for p := 1; p <= 3; p++ {
		clauses = append(clauses, pigeon(p))
	}
	for hole := 0; hole < 2; hole++ {
		for p1 := 1; p1 <= 3; p1++ {
			for p2 := p1 + 1; p2 <= 3; p2++ {
				clauses = append(clauses, cnf.Clause{
					lit(cnf.Term(fmt.Sprintf("p%d%d", p1, hole)), false),
					lit(cnf.Term(fmt.Sprintf("p%d%d", p2, hole)), false),
				})
			}
		}
	}

	_, s := newSolverForTest(t, clauses)
	result := s.Solve()
	if result.Sat {
		t.Fatal("PHP(3,2) should be unsatisfiable")
	}
}

func TestSolve_random3SAT(t *testing.T) {
	// A small, hand-picked satisfiable 3-SAT instance (6 clauses over 5
	// variables), verified clause-by-clause rather than solved by inspection.
	clauses := []cnf.Clause{
		{lit("v1", true), lit("v2", false), lit("v3", true)},
		{lit("v1", false), lit("v2", true), lit("v4", false)},
		{lit("v2", false), lit("v3", false), lit("v5", true)},
		{lit("v3", true), lit("v4", true), lit("v5", false)},
		{lit("v1", true), lit("v4", false), lit("v5", true)},
		{lit("v1", false), lit("v2", false), lit("v5", false)},
	}
	_, s := newSolverForTest(t, clauses)
	result := s.Solve()
	if !result.Sat {
		t.Fatal("expected instance to be satisfiable")
	}
	for _, c := range clauses {
		assertClauseSatisfied(t, result.Model, c)
	}
}

func TestSolve_stackAndAssignmentUnwoundAfterReturn(t *testing.T) {
	db, s := newSolverForTest(t, []cnf.Clause{
		{lit("a", true), lit("b", true)},
		{lit("b", false)},
	})
	s.Solve()
	if len(s.trail.stack) != 0 {
		t.Fatalf("trail stack not unwound: %d entries remain", len(s.trail.stack))
	}
	if len(s.trail.impl) != 0 {
		t.Fatalf("implication graph not cleared: %d entries remain", len(s.trail.impl))
	}
	for _, term := range db.Terms() {
		if db.Value(term) != Unset {
			t.Fatalf("term %q still assigned after Solve returned", term)
		}
	}
}

func TestSolve_learnedClauseIsConsequence(t *testing.T) {
	// A formula over {a,b,c} whose every input clause is re-checked
	// against the model after solving; any clause learned along the way
	// must not have excluded the one remaining solution.
	clauses := []cnf.Clause{
		{lit("a", true), lit("b", true)},
		{lit("a", false), lit("c", true)},
		{lit("b", false), lit("c", true)},
		{lit("a", true), lit("b", false), lit("c", false)},
		{lit("a", false), lit("b", true), lit("c", false)},
	}
	db, s := newSolverForTest(t, clauses)
	result := s.Solve()
	if !result.Sat {
		t.Fatal("expected instance to be satisfiable")
	}
	for _, c := range clauses {
		assertClauseSatisfied(t, result.Model, c)
	}
	for _, c := range db.ClauseList() {
		assertClauseSatisfied(t, result.Model, c)
	}
}

func TestSolve_modelComparison(t *testing.T) {
	_, s := newSolverForTest(t, []cnf.Clause{
		{lit("a", true), lit("b", true)},
		{lit("b", false)},
	})
	result := s.Solve()
	want := map[cnf.Term]bool{"a": true, "b": false}
	if diff := cmp.Diff(want, result.Model); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}
