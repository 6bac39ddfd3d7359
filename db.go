// Package sat implements an incremental CNF clause database and a
// DPLL/CDCL search driver over it: unit propagation, conflict-driven
// clause learning via rel_sat conflict analysis, and a replaceable
// decision heuristic.
package sat

import (
	"fmt"

	"github.com/CurtisFenner/cnf-solver/cnf"
	"github.com/CurtisFenner/cnf-solver/packed"
)

// termRef is one entry of a term's permanent reverse index (invariant
// S3): a clause that mentions the term, and the polarity it is mentioned
// with.
type termRef struct {
	clause int
	pos    bool
}

// termRecord is the permanent per-term bookkeeping: its external name,
// current value, and the reverse index of clauses mentioning it. Terms
// persist for the lifetime of the Database; only their value is reset
// between assignments.
type termRecord struct {
	name  cnf.Term
	value assignState
	refs  []termRef
}

// Heuristic selects the next term and polarity to branch on once unit
// propagation is exhausted (§4.3). It also observes every literal added
// to the database so that activity-based heuristics (VSIDS) can track
// scores.
type Heuristic interface {
	// observe is called once per literal of a newly added clause (input
	// or learned).
	observe(lits []clauseLit)
	// decay ages previously observed activity; called once per conflict.
	decay()
	// pick returns the variable and polarity to branch on. ok is false
	// when the heuristic finds no free variable to offer: for the VSIDS
	// heuristic only when every known variable is already assigned; the
	// structural heuristic also reports false when no clause is unit or
	// other, even if some variable is free.
	pick(db *Database) (v packed.Var, polarity bool, ok bool)
}

// Option configures a Database at construction time.
type Option func(*Database)

// WithHeuristic overrides the default VSIDS-like heuristic (§4.3(b)) with
// an alternative, such as NewStructuralHeuristic (§4.3(a)).
func WithHeuristic(h Heuristic) Option {
	return func(db *Database) { db.heuristic = h }
}

// Database is the incremental clause database of §4.1: it tracks, for
// every clause, whether it is currently satisfied, contradicted, unit, or
// otherwise unresolved as the partial assignment changes, and it is the
// single source of truth the search driver consults.
type Database struct {
	termIDs map[cnf.Term]packed.Var
	terms   []termRecord

	clauses []*clauseRecord
	buckets [numStatuses]bucket

	heuristic Heuristic
}

// NewDatabase returns an empty database. The default heuristic is the
// VSIDS-like priority scheme of §4.3(b); pass WithHeuristic to use the
// structural fallback instead.
func NewDatabase(opts ...Option) *Database {
	db := &Database{
		termIDs:   make(map[cnf.Term]packed.Var),
		heuristic: newVSIDS(),
	}
	for i := range db.buckets {
		db.buckets[i] = newBucket()
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *Database) internTerm(t cnf.Term) packed.Var {
	if t == "" {
		panic("sat: empty term")
	}
	if v, ok := db.termIDs[t]; ok {
		return v
	}
	v := packed.Var(len(db.terms))
	db.termIDs[t] = v
	db.terms = append(db.terms, termRecord{name: t, value: unassigned})
	return v
}

func (db *Database) mustTerm(t cnf.Term) packed.Var {
	v, ok := db.termIDs[t]
	if !ok {
		panic(fmt.Sprintf("sat: unknown term %q", t))
	}
	return v
}

// AddClause admits a new clause — original input or learned — into the
// database. literals must not repeat a term (a programming error per
// §4.6) and must not contain an empty term. An empty clause, or a clause
// every one of whose literals is already falsified, is immediately
// classified `contradiction` (invariant S4). AddClause returns the new
// clause's id, usable with ClauseLiterals.
func (db *Database) AddClause(literals cnf.Clause) int {
	seen := make(map[packed.Var]bool, len(literals))
	lits := make([]clauseLit, 0, len(literals))
	for _, l := range literals {
		if l.Term == "" {
			panic("sat: nil/empty term in clause")
		}
		v := db.internTerm(l.Term)
		if seen[v] {
			panic(fmt.Sprintf("sat: term %q repeated within one clause", l.Term))
		}
		seen[v] = true
		lits = append(lits, newClauseLit(v, l.Positive))
	}

	id := len(db.clauses)
	rec := &clauseRecord{id: id, lits: lits}
	db.clauses = append(db.clauses, rec)

	nSat, nYet := 0, 0
	for _, cl := range lits {
		switch db.terms[litVar(cl)].value {
		case unassigned:
			nYet++
		case assignedTrue:
			if litPositive(cl) {
				nSat++
			}
		case assignedFalse:
			if !litPositive(cl) {
				nSat++
			}
		}
	}
	rec.nSat, rec.nYet = nSat, nYet
	rec.status = deriveStatus(nSat, nYet)
	db.buckets[rec.status].add(id)

	for _, cl := range lits {
		db.terms[litVar(cl)].refs = append(db.terms[litVar(cl)].refs, termRef{clause: id, pos: litPositive(cl)})
	}

	db.heuristic.observe(lits)

	return id
}

// Assign sets term t to True, False, or (Unset) clears its assignment.
// The requested value must differ from t's current value. A direct
// true<->false flip is decomposed internally into an unassign followed by
// the new assign (§9 "decomposed flip"), so every counter update below is
// single-direction.
func (db *Database) Assign(t cnf.Term, value Value) {
	v := db.mustTerm(t)
	cur := db.terms[v].value
	next := fromValue(value)
	if cur == next {
		panic(fmt.Sprintf("sat: term %q is already %s", t, value))
	}
	if cur != unassigned && next != unassigned {
		db.setTermValue(v, unassigned)
		db.setTermValue(v, next)
		return
	}
	db.setTermValue(v, next)
}

func (db *Database) setTermValue(v packed.Var, next assignState) {
	rec := &db.terms[v]
	prev := rec.value
	rec.value = next
	for _, ref := range rec.refs {
		c := db.clauses[ref.clause]

		wasFree := prev == unassigned
		nowFree := next == unassigned
		if wasFree && !nowFree {
			c.nYet--
		} else if !wasFree && nowFree {
			c.nYet++
		}

		wasSat := !wasFree && literalSatisfied(prev, ref.pos)
		nowSat := !nowFree && literalSatisfied(next, ref.pos)
		if !wasSat && nowSat {
			c.nSat++
		} else if wasSat && !nowSat {
			c.nSat--
		}

		db.restatus(c)
	}
}

func (db *Database) restatus(c *clauseRecord) {
	next := deriveStatus(c.nSat, c.nYet)
	if next == c.status {
		return
	}
	db.buckets[c.status].remove(c.id)
	c.status = next
	db.buckets[next].add(c.id)
}

// IsSatisfied reports whether every clause is satisfied.
func (db *Database) IsSatisfied() bool {
	for s := clauseStatus(0); s < numStatuses; s++ {
		if s == statusSatisfied {
			continue
		}
		if !db.buckets[s].empty() {
			return false
		}
	}
	return true
}

// IsContradiction reports whether any clause is wholly falsified.
func (db *Database) IsContradiction() bool {
	return !db.buckets[statusContradiction].empty()
}

// AnyContradiction returns the id of some contradicted clause, or
// ok=false if there is none.
func (db *Database) AnyContradiction() (id int, ok bool) {
	return db.buckets[statusContradiction].any()
}

// AnyUnit returns a term, the id of a unit clause forcing it, and the
// polarity that satisfies that clause, or ok=false if no unit clause
// exists. Selection among multiple unit clauses is unspecified but
// deterministic for a given history (see bucket).
func (db *Database) AnyUnit() (t cnf.Term, clauseID int, polarity bool, ok bool) {
	id, found := db.buckets[statusUnit].any()
	if !found {
		return "", 0, false, false
	}
	c := db.clauses[id]
	for _, cl := range c.lits {
		if db.terms[litVar(cl)].value == unassigned {
			return db.terms[litVar(cl)].name, id, litPositive(cl), true
		}
	}
	panic(fmt.Sprintf("sat: clause %d is in the unit bucket but has no free literal", id))
}

// PickBranch returns a free term and the polarity to assign it, per the
// active Heuristic. ok is false when the heuristic offers no free term
// (see Heuristic.pick).
func (db *Database) PickBranch() (t cnf.Term, polarity bool, ok bool) {
	v, pol, ok := db.heuristic.pick(db)
	if !ok {
		return "", false, false
	}
	return db.terms[v].name, pol, true
}

// DecayHeuristic ages the active heuristic's activity scores; the search
// driver calls this once per conflict (§4.3(b)).
func (db *Database) DecayHeuristic() {
	db.heuristic.decay()
}

// Value reports t's current value, or Unset if it is free.
func (db *Database) Value(t cnf.Term) Value {
	switch db.terms[db.mustTerm(t)].value {
	case assignedTrue:
		return True
	case assignedFalse:
		return False
	default:
		return Unset
	}
}

// valueOf reports t's current boolean value; it panics if t is free,
// since conflict analysis only ever calls it on terms still on the trail.
func (db *Database) valueOf(t cnf.Term) bool {
	switch db.terms[db.mustTerm(t)].value {
	case assignedTrue:
		return true
	case assignedFalse:
		return false
	default:
		panic(fmt.Sprintf("sat: term %q is unassigned", t))
	}
}

// ClauseLiterals returns the literals of the clause with the given id, in
// their original insertion order.
func (db *Database) ClauseLiterals(id int) cnf.Clause {
	c := db.clauses[id]
	out := make(cnf.Clause, len(c.lits))
	for i, cl := range c.lits {
		out[i] = cnf.Literal{Term: db.terms[litVar(cl)].name, Positive: litPositive(cl)}
	}
	return out
}

// ClauseList returns a snapshot of every clause in insertion order,
// including learned clauses, for diagnostics.
func (db *Database) ClauseList() []cnf.Clause {
	out := make([]cnf.Clause, len(db.clauses))
	for i := range db.clauses {
		out[i] = db.ClauseLiterals(i)
	}
	return out
}

// Terms returns every known term in the order it was first mentioned.
func (db *Database) Terms() []cnf.Term {
	out := make([]cnf.Term, len(db.terms))
	for i, r := range db.terms {
		out[i] = r.name
	}
	return out
}
