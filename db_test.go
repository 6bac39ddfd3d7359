package sat

import (
	"testing"

	"github.com/CurtisFenner/cnf-solver/cnf"
	"github.com/google/go-cmp/cmp"
)

func lit(t cnf.Term, pos bool) cnf.Literal { return cnf.Literal{Term: t, Positive: pos} }

func TestAddClause_emptyIsContradiction(t *testing.T) {
	db := NewDatabase()
	db.AddClause(cnf.Clause{})
	if !db.IsContradiction() {
		t.Fatal("empty clause did not classify as contradiction")
	}
}

func TestAddClause_unitClauseIsUnit(t *testing.T) {
	db := NewDatabase()
	db.AddClause(cnf.Clause{lit("x", true)})
	term, _, polarity, ok := db.AnyUnit()
	if !ok {
		t.Fatal("expected a unit clause")
	}
	if term != "x" || !polarity {
		t.Fatalf("AnyUnit() = (%q, %v), want (x, true)", term, polarity)
	}
}

func TestAssign_updatesBucketsAndCounters(t *testing.T) {
	db := NewDatabase()
	db.AddClause(cnf.Clause{lit("a", true), lit("b", true)})

	if db.IsSatisfied() {
		t.Fatal("formula should not be satisfied before any assignment")
	}

	db.Assign("a", True)
	if !db.IsSatisfied() {
		t.Fatal("formula should be satisfied once a is true")
	}

	db.Assign("a", Unset)
	if db.IsSatisfied() {
		t.Fatal("formula should not be satisfied after unassigning a")
	}
	term, _, polarity, ok := db.AnyUnit()
	if ok {
		t.Fatalf("expected no unit clause, got (%q, %v)", term, polarity)
	}
}

func TestAssign_directFlipIsDecomposed(t *testing.T) {
	db := NewDatabase()
	id := db.AddClause(cnf.Clause{lit("a", true), lit("b", false)})
	before := snapshotClause(db, id)

	db.Assign("a", True)
	db.Assign("a", Unset)

	after := snapshotClause(db, id)
	if diff := cmp.Diff(before, after, cmp.AllowUnexported(clauseSnapshot{})); diff != "" {
		t.Fatalf("round trip true->unset->(unchanged) differs from baseline (-want +got):\n%s", diff)
	}

	db.Assign("a", True)
	mid := snapshotClause(db, id)
	db.Assign("a", False) // direct flip, must be decomposed internally
	flipped := snapshotClause(db, id)
	if diff := cmp.Diff(mid, flipped, cmp.AllowUnexported(clauseSnapshot{})); diff == "" {
		t.Fatal("expected counters to change after a true->false flip")
	}

	db.Assign("a", Unset)
	db.Assign("a", True)
	final := snapshotClause(db, id)
	if diff := cmp.Diff(mid, final, cmp.AllowUnexported(clauseSnapshot{})); diff != "" {
		t.Fatalf("true->false->unset->true left different counters (-want +got):\n%s", diff)
	}
}

type clauseSnapshot struct {
	status     clauseStatus
	nSat, nYet int
}

func snapshotClause(db *Database, id int) clauseSnapshot {
	c := db.clauses[id]
	return clauseSnapshot{status: c.status, nSat: c.nSat, nYet: c.nYet}
}

func TestAddClause_duplicateClauseIsIndependent(t *testing.T) {
	db := NewDatabase()
	c := cnf.Clause{lit("a", true), lit("b", false)}
	id1 := db.AddClause(c)
	id2 := db.AddClause(c)
	if id1 == id2 {
		t.Fatal("expected two distinct clause ids")
	}
	if diff := cmp.Diff(db.ClauseLiterals(id1), db.ClauseLiterals(id2)); diff != "" {
		t.Fatalf("duplicate clauses hold different literals (-first +second):\n%s", diff)
	}
}

func TestAddClause_duplicateTermPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a clause with a repeated term")
		}
	}()
	db := NewDatabase()
	db.AddClause(cnf.Clause{lit("a", true), lit("a", false)})
}

func TestStructuralHeuristic_prefersNegativeWhenAtMostOnePositive(t *testing.T) {
	db := NewDatabase(WithHeuristic(NewStructuralHeuristic()))
	// One free positive literal, two free negative: the clause has <=1
	// free positive and >=1 free negative, so §4.3(a) picks a negative
	// literal, false.
	db.AddClause(cnf.Clause{lit("a", true), lit("b", false), lit("c", false)})

	term, polarity, ok := db.PickBranch()
	if !ok {
		t.Fatal("expected a branch candidate")
	}
	if polarity || (term != "b" && term != "c") {
		t.Fatalf("PickBranch() = (%q, %v), want (b or c, false): at most one free positive should pick a negative literal", term, polarity)
	}
}
