package sat

import "github.com/CurtisFenner/cnf-solver/cnf"

// Stats are purely informational counters gathered during a Solve call.
// Their presence and types may grow over time; no caller should depend on
// the exact set.
type Stats struct {
	Decisions      int
	Propagations   int
	Conflicts      int
	LearnedClauses int
	MaxLevel       int
}

// Result is the outcome of a Solve call: either a satisfying model or
// UNSAT. There is no third outcome (§4.6); the library never signals
// UNSAT as an error.
type Result struct {
	Sat   bool
	Model map[cnf.Term]bool
	Stats Stats
}

// Solver drives DPLL/CDCL search over a Database (§4.5): propagate,
// branch, detect conflict, analyze and backtrack, until the database is
// satisfied or a conflict backtracks to level 0. A Solver is single-use:
// after Solve returns, its database's partial assignment is empty again
// (§5, §I3), but the database itself — and any clauses Solve learned —
// survive for a subsequent Solver built on the same Database.
type Solver struct {
	db    *Database
	trail *trail

	// Trace, if true, routes diagnostic lines through Tracer. Tracer must
	// be non-nil when Trace is true.
	Trace  bool
	Tracer Tracer
}

// NewSolver returns a Solver that will search db.
func NewSolver(db *Database) *Solver {
	return &Solver{db: db, trail: newTrail(), Tracer: NopTracer{}}
}

// Solve runs the search to completion. Per §5 there is no cancellation
// mechanism in the contract; the call returns only once SAT or UNSAT is
// decided.
func (s *Solver) Solve() Result {
	var stats Stats
	for {
		if s.db.IsSatisfied() {
			model := s.snapshot()
			s.trail.popAll(s.db)
			return Result{Sat: true, Model: model, Stats: stats}
		}

		if s.db.IsContradiction() {
			stats.Conflicts++
			if s.trail.level == 0 {
				// No decision to undo: the conflict follows from the
				// input alone (e.g. an empty clause).
				s.trail.popAll(s.db)
				return Result{Sat: false, Stats: stats}
			}
			learned := s.trail.analyzeConflict(s.db)
			s.trace("learned clause: %v", learned)

			b := s.trail.backtrackLevel(learned)
			if b == 0 {
				s.trail.popAll(s.db)
				return Result{Sat: false, Stats: stats}
			}

			s.trail.popToLevel(s.db, b)
			s.db.AddClause(learned)
			s.db.DecayHeuristic()
			stats.LearnedClauses++
			continue
		}

		if t, clauseID, polarity, ok := s.db.AnyUnit(); ok {
			s.trail.pushImplied(t, polarity, clauseID)
			s.db.Assign(t, boolToValue(polarity))
			stats.Propagations++
			continue
		}

		t, polarity, ok := s.db.PickBranch()
		if !ok {
			panic("sat: solver is stuck: not satisfied, not contradicted, no unit clause, and no free term")
		}
		s.trail.pushDecision(t, polarity)
		s.db.Assign(t, boolToValue(polarity))
		stats.Decisions++
		if s.trail.level > stats.MaxLevel {
			stats.MaxLevel = s.trail.level
		}
	}
}

// snapshot builds the model for a satisfied database. Terms that were
// never forced to a particular value by the clauses that mention them
// (e.g. they appear only in clauses satisfied through a different
// literal) are still part of the model, per the purpose statement that
// the solver reports "a satisfying truth assignment for all mentioned
// terms" — they are fixed to true arbitrarily, since the formula's
// satisfiability does not depend on their value.
func (s *Solver) snapshot() map[cnf.Term]bool {
	model := make(map[cnf.Term]bool)
	for _, t := range s.db.Terms() {
		switch s.db.Value(t) {
		case True:
			model[t] = true
		case False:
			model[t] = false
		default:
			model[t] = true
		}
	}
	return model
}

func (s *Solver) trace(format string, args ...interface{}) {
	if s.Trace && s.Tracer != nil {
		s.Tracer.Printf(format, args...)
	}
}
