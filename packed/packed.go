// Package packed provides dense integer encodings for terms and literals.
//
// The clause database keys every term by a small integer handle instead of
// its string name once the term has been interned, which keeps per-literal
// bookkeeping (§9 of the design: "Term identifiers... interning terms to
// dense small integers enables vector-backed term indices and improves
// cache locality substantially") off the string-keyed map on every
// assignment flip. This mirrors the teacher's own split of a "packed"
// encoding package alongside its "cnf" value-type package.
package packed

import "fmt"

// Var is a dense, zero-based handle for an interned term.
type Var int32

// Lit is a packed literal: a Var together with its polarity, encoded so
// that negation is a single XOR and extracting the variable is a shift.
type Lit int32

// MkLit packs v and a polarity into a Lit. negative is true for the
// negated literal of v.
func MkLit(v Var, negative bool) Lit {
	l := Lit(v) << 1
	if negative {
		l |= 1
	}
	return l
}

// Var extracts the variable a literal refers to.
func (l Lit) Var() Var { return Var(l >> 1) }

// Sign reports whether l is the negated literal of its variable.
func (l Lit) Sign() bool { return l&1 != 0 }

// Negate returns the opposite-polarity literal of the same variable.
func (l Lit) Negate() Lit { return l ^ 1 }

func (l Lit) String() string {
	if l.Sign() {
		return fmt.Sprintf("-%d", l.Var())
	}
	return fmt.Sprintf("%d", l.Var())
}

// Clause is a packed clause: a flat slice of literals with no further
// structure. Higher layers (the sat package) attach live counters and
// bucket membership; packed.Clause is only the storage representation.
type Clause []Lit
