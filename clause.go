package sat

import "github.com/CurtisFenner/cnf-solver/packed"

// assignState is the tri-state value of an interned term: unassigned, or
// assigned true/false. It is distinct from the public Value type, which
// is what callers pass to Assign.
type assignState int8

const (
	unassigned assignState = iota
	assignedTrue
	assignedFalse
)

func (a assignState) String() string {
	switch a {
	case assignedTrue:
		return "true"
	case assignedFalse:
		return "false"
	default:
		return "unassigned"
	}
}

// Value is the tri-state value a caller may request for a term via
// Assign, or read back via Database.Value.
type Value int8

const (
	False Value = iota
	True
	Unset
)

func (v Value) String() string {
	switch v {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

func fromValue(v Value) assignState {
	switch v {
	case True:
		return assignedTrue
	case False:
		return assignedFalse
	default:
		return unassigned
	}
}

func boolToValue(b bool) Value {
	if b {
		return True
	}
	return False
}

// clauseStatus classifies a clause purely as a function of its live
// (nSat, nYet) counters (§3): satisfied if any literal holds, else
// contradiction if no literal is free, else unit if exactly one is free,
// else other.
type clauseStatus int8

const (
	statusSatisfied clauseStatus = iota
	statusContradiction
	statusUnit
	statusOther
	numStatuses
)

func deriveStatus(nSat, nYet int) clauseStatus {
	switch {
	case nSat > 0:
		return statusSatisfied
	case nYet == 0:
		return statusContradiction
	case nYet == 1:
		return statusUnit
	default:
		return statusOther
	}
}

// clauseLit is one literal of a clause as stored internally: packed.Lit
// itself (the teacher's own packed-literal encoding, §9 "Term
// identifiers"). litVar/litPositive read it back out; litPositive is
// !Sign() since Sign reports negation but clause bookkeeping throughout
// this file phrases things in terms of the polarity that satisfies the
// clause.
type clauseLit = packed.Lit

func newClauseLit(v packed.Var, positive bool) clauseLit {
	return packed.MkLit(v, !positive)
}

func litVar(l clauseLit) packed.Var { return l.Var() }

func litPositive(l clauseLit) bool { return !l.Sign() }

// clauseRecord is a clause's live bookkeeping: its literals and the two
// counters that determine its status (invariant S1).
type clauseRecord struct {
	id      int
	lits    []clauseLit
	nSat    int
	nYet    int
	status  clauseStatus
	learned bool
}

func literalSatisfied(v assignState, pos bool) bool {
	return (v == assignedTrue && pos) || (v == assignedFalse && !pos)
}
