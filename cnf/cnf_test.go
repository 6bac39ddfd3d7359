package cnf

import "testing"

func TestLiteralNegate(t *testing.T) {
	l := Literal{Term: "x1", Positive: true}
	n := l.Negate()
	if n.Term != l.Term || n.Positive {
		t.Fatalf("Negate() = %+v, want term x1 negative", n)
	}
	if n.Negate() != l {
		t.Fatalf("double negate did not round-trip: got %+v, want %+v", n.Negate(), l)
	}
}

func TestClauseString(t *testing.T) {
	c := Clause{{Term: "a", Positive: true}, {Term: "b", Positive: false}}
	got := c.String()
	want := "(a ∨ ¬b)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
