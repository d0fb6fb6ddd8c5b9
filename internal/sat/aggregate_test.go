package sat

import "testing"

// setupAggregate builds a 3-variable solver with a single aggregate
// requiring weight >= bound over (a:3, b:2, c:1).
func setupAggregate(bound uint64) (*Solver, int, int, int, *Aggregate) {
	s := NewDefaultSolver()
	a, b, c := s.AddVariable(), s.AddVariable(), s.AddVariable()
	agg := s.AddAggregate(
		[]Literal{PositiveLiteral(a), PositiveLiteral(b), PositiveLiteral(c)},
		[]uint64{3, 2, 1},
		bound,
	)
	return s, a, b, c, agg
}

func TestAggregate_SortsByWeightDescending(t *testing.T) {
	s := NewDefaultSolver()
	a, b, c := s.AddVariable(), s.AddVariable(), s.AddVariable()
	agg := s.AddAggregate(
		[]Literal{PositiveLiteral(a), PositiveLiteral(b), PositiveLiteral(c)},
		[]uint64{1, 3, 2},
		4,
	)
	want := []uint64{3, 2, 1}
	for i, w := range want {
		if agg.weights[i] != w {
			t.Errorf("weights[%d] = %d, want %d", i, agg.weights[i], w)
		}
	}
	if agg.total != 6 {
		t.Errorf("total = %d, want 6", agg.total)
	}
}

func TestAggregate_ConflictOnceSlackExhausted(t *testing.T) {
	s, a, b, c, _ := setupAggregate(5)

	// Force a false: only b and c (weight 2+1 = 3) remain, but bound needs
	// 5, so this is already a conflict, not a forced assignment; forcing b
	// false as well still conflicts.
	s.assume(NegativeLiteral(a))
	if r, _ := s.Propagate(); r.IsNone() {
		t.Fatalf("expected a conflict: with a false, at most weight 3 is reachable, short of bound 5")
	}
	s.assume(NegativeLiteral(b))
	r, _ := s.Propagate()
	if r.IsNone() {
		t.Fatalf("expected a conflict once the bound became unreachable")
	}
	_ = c
}

func TestAggregate_UnitPropagatesHighWeightLiteralsTrue(t *testing.T) {
	s, a, b, c, _ := setupAggregate(4)

	// With c forced false, the remaining slack (a+b - bound = 5-4 = 1) is
	// smaller than both a's and b's weights, so both must become true to
	// keep the bound reachable.
	s.assume(NegativeLiteral(c))
	r, _ := s.Propagate()
	if !r.IsNone() {
		t.Fatalf("unexpected conflict")
	}
	if s.VarValue(a) != True {
		t.Errorf("VarValue(a) = %v, want True (forced by slack)", s.VarValue(a))
	}
	if s.VarValue(b) != True {
		t.Errorf("VarValue(b) = %v, want True (forced by slack)", s.VarValue(b))
	}
}

func TestAggregate_SatisfiedStopsForcing(t *testing.T) {
	s, a, b, c, _ := setupAggregate(3)

	// a alone (weight 3) already meets the bound; b and c stay unforced.
	s.assume(PositiveLiteral(a))
	r, _ := s.Propagate()
	if !r.IsNone() {
		t.Fatalf("unexpected conflict")
	}
	if s.VarValue(b) != Unknown || s.VarValue(c) != Unknown {
		t.Errorf("aggregate over-propagated once already satisfied: b=%v c=%v", s.VarValue(b), s.VarValue(c))
	}
}

func TestAggregate_UnitPropagationForcesRemainingLiteral(t *testing.T) {
	// bound=3 over weights (2,2): once a is true, the remaining slack (1) is
	// smaller than b's weight (2), so b must also become true.
	s := NewDefaultSolver()
	a, b := s.AddVariable(), s.AddVariable()
	s.AddAggregate([]Literal{PositiveLiteral(a), PositiveLiteral(b)}, []uint64{2, 2}, 3)

	s.assume(PositiveLiteral(a))
	r, _ := s.Propagate()
	if !r.IsNone() {
		t.Fatalf("unexpected conflict")
	}
	if s.VarValue(b) != True {
		t.Errorf("VarValue(b) = %v, want True (forced by slack)", s.VarValue(b))
	}
}

func TestAggregate_UnreachableBoundIsConflict(t *testing.T) {
	// bound=3 over weights (2,2): forcing a false leaves at most weight 2
	// reachable, short of the bound.
	s := NewDefaultSolver()
	a, b := s.AddVariable(), s.AddVariable()
	s.AddAggregate([]Literal{PositiveLiteral(a), PositiveLiteral(b)}, []uint64{2, 2}, 3)

	s.assume(NegativeLiteral(a))
	r, _ := s.Propagate()
	if r.IsNone() {
		t.Fatalf("expected conflict: with a false, max reachable weight is 2 < bound 3")
	}
	_ = b
}
