package sat

import "testing"

func TestNewClause_Tautology(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()

	c, ok := NewClause(s, []Literal{PositiveLiteral(a), NegativeLiteral(a)}, false)
	if c != nil || !ok {
		t.Errorf("tautology: got (%v, %v), want (nil, true)", c, ok)
	}
}

func TestNewClause_DuplicateLiteralsCollapse(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()

	c, ok := NewClause(s, []Literal{PositiveLiteral(a), PositiveLiteral(a), PositiveLiteral(b)}, false)
	if !ok || c == nil {
		t.Fatalf("unexpected simplification result: (%v, %v)", c, ok)
	}
	if len(c.Literals()) != 2 {
		t.Errorf("Literals() = %v, want 2 distinct literals", c.Literals())
	}
}

func TestNewClause_UnitClauseEnqueues(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()

	c, ok := NewClause(s, []Literal{PositiveLiteral(a)}, false)
	if c != nil || !ok {
		t.Fatalf("unit clause: got (%v, %v), want (nil, true)", c, ok)
	}
	if s.VarValue(a) != True {
		t.Errorf("VarValue(a) = %v, want True", s.VarValue(a))
	}
}

func TestNewClause_EmptyClauseIsContradiction(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	if err := s.AddClause([]Literal{PositiveLiteral(a)}); err != nil {
		t.Fatal(err)
	}

	c, ok := NewClause(s, []Literal{NegativeLiteral(a)}, false)
	if c != nil || ok {
		t.Errorf("contradiction: got (%v, %v), want (nil, false)", c, ok)
	}
}

func TestClause_Locked(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()
	c := s.AddVariable()

	// A ternary clause so it is stored as a real Clause rather than folded
	// into the binary-implication lists.
	if err := s.AddClause([]Literal{PositiveLiteral(a), PositiveLiteral(b), PositiveLiteral(c)}); err != nil {
		t.Fatal(err)
	}

	cl := s.clauses[0]
	if cl.locked(s) {
		t.Errorf("locked() = true before any propagation")
	}

	s.assume(NegativeLiteral(b))
	s.assume(NegativeLiteral(c))
	if r, _ := s.Propagate(); !r.IsNone() {
		t.Fatalf("unexpected conflict during propagation")
	}
	if s.VarValue(a) != True {
		t.Fatalf("VarValue(a) = %v, want True", s.VarValue(a))
	}
	if !cl.locked(s) {
		t.Errorf("locked() = false after cl became a's reason")
	}
}

func TestClause_String(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	b := s.AddVariable()

	c := newClause([]Literal{PositiveLiteral(a), NegativeLiteral(b)}, false)
	if got, want := c.String(), "(1 ∨ -2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	empty := newClause(nil, false)
	if got, want := empty.String(), "()"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
