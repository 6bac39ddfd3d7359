package sat

import "github.com/CurtisFenner/cnf-solver/cnf"

// analyzeConflict implements the rel_sat conflict-analysis procedure of
// §4.4. It requires db.IsContradiction() to hold, and returns a learned
// clause that (i) is entailed by the database, (ii) is currently
// falsified (so it will force backtracking), and (iii) mentions at most
// one literal assigned at the current decision level.
func (tr *trail) analyzeConflict(db *Database) cnf.Clause {
	contradictionID, ok := db.AnyContradiction()
	if !ok {
		panic("sat: analyzeConflict called without a contradiction")
	}
	conflicting := db.ClauseLiterals(contradictionID)

	top, ok := tr.top()
	if !ok {
		panic("sat: analyzeConflict called with an empty trail")
	}

	seen := make(map[cnf.Term]bool)
	var frontier []cnf.Term
	push := func(t cnf.Term) {
		if !seen[t] {
			seen[t] = true
			frontier = append(frontier, t)
		}
	}

	for _, lit := range conflicting {
		push(lit.Term)
	}

	// §9's open question: the top of the stack may itself carry no
	// antecedent (it is a decision, or the conflict arose immediately
	// after one). In that case its negation is emitted directly rather
	// than expanded through a nonexistent antecedent clause.
	if topRec := tr.impl[top.term]; topRec.antecedent != noAntecedent {
		for _, lit := range db.ClauseLiterals(topRec.antecedent) {
			if lit.Term != top.term {
				push(lit.Term)
			}
		}
	} else {
		push(top.term)
	}

	var learned cnf.Clause
	for len(frontier) > 0 {
		u := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		rec, ok := tr.impl[u]
		if !ok {
			panic("sat: conflict frontier contains an unassigned term")
		}
		if rec.level < tr.level || rec.antecedent == noAntecedent {
			learned = append(learned, cnf.Literal{Term: u, Positive: !db.valueOf(u)})
			continue
		}
		for _, lit := range db.ClauseLiterals(rec.antecedent) {
			if lit.Term != u {
				push(lit.Term)
			}
		}
	}
	return learned
}

// backtrackLevel is the highest decision level among the learned clause's
// terms (§4.4's "B"). A return of 0 means the formula is UNSAT.
func (tr *trail) backtrackLevel(learned cnf.Clause) int {
	b := 0
	for _, lit := range learned {
		if rec, ok := tr.impl[lit.Term]; ok && rec.level > b {
			b = rec.level
		}
	}
	return b
}
