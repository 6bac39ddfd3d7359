// Package cnf defines the value types shared across the solver: terms,
// literals, and clauses. It deliberately holds no solver state — that
// lives in the root sat package's Database — so the DIMACS parser, the
// CLI, and the solver core can all speak the same vocabulary without
// importing each other.
package cnf

import "strings"

// Term is an opaque identifier for a boolean variable. Two terms are
// equal iff their identifiers are equal; there is no declared arity, and
// the solver discovers the universe of terms from the clauses it is
// given.
type Term string

// Literal pairs a term with the polarity required to satisfy it: a
// literal is satisfied under an assignment A iff A(Term) == Positive.
type Literal struct {
	Term     Term
	Positive bool
}

// Negate returns the opposite-polarity literal over the same term.
func (l Literal) Negate() Literal {
	return Literal{Term: l.Term, Positive: !l.Positive}
}

func (l Literal) String() string {
	if l.Positive {
		return string(l.Term)
	}
	return "¬" + string(l.Term)
}

// Clause is a disjunction of literals, as passed to a Database's
// AddClause or returned from ClauseList. A term may appear at most once
// per clause: a repeated term, whether with the same or the opposite
// polarity, is a programming error and AddClause panics on it.
type Clause []Literal

func (c Clause) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return "(" + strings.Join(parts, " ∨ ") + ")"
}
