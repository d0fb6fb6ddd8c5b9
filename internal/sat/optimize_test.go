package sat

import "testing"

func TestLevelCost_SumsTrueWeights(t *testing.T) {
	s := NewDefaultSolver()
	a, b, c := s.AddVariable(), s.AddVariable(), s.AddVariable()
	s.SetLevels(1)
	s.AddOptimizationLiteral(PositiveLiteral(a), 3, 0, false)
	s.AddOptimizationLiteral(PositiveLiteral(b), 5, 0, false)
	s.AddOptimizationLiteral(PositiveLiteral(c), 7, 0, false)

	if err := s.AddClause([]Literal{PositiveLiteral(a)}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddClause([]Literal{PositiveLiteral(b)}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddClause([]Literal{NegativeLiteral(c)}); err != nil {
		t.Fatal(err)
	}
	if r, _ := s.Propagate(); !r.IsNone() {
		t.Fatalf("unexpected conflict")
	}

	if got, want := s.LevelCost(0), uint64(8); got != want {
		t.Errorf("LevelCost(0) = %d, want %d", got, want)
	}
}

func TestLevelCost_SkipsAllButFirstAuxLiteral(t *testing.T) {
	s := NewDefaultSolver()
	a, b := s.AddVariable(), s.AddVariable()
	s.SetLevels(1)
	s.AddOptimizationLiteral(PositiveLiteral(a), 10, 0, true)
	s.AddOptimizationLiteral(PositiveLiteral(b), 20, 0, true)

	if err := s.AddClause([]Literal{PositiveLiteral(a)}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddClause([]Literal{PositiveLiteral(b)}); err != nil {
		t.Fatal(err)
	}
	if r, _ := s.Propagate(); !r.IsNone() {
		t.Fatalf("unexpected conflict")
	}

	if got, want := s.LevelCost(0), uint64(10); got != want {
		t.Errorf("LevelCost(0) = %d, want %d (only the first aux literal counts)", got, want)
	}
}

func TestSimplifyOptimizationLiterals_FoldsFixedTrueIntoPrecomputed(t *testing.T) {
	s := NewDefaultSolver()
	a, b := s.AddVariable(), s.AddVariable()
	s.SetLevels(1)
	s.AddOptimizationLiteral(PositiveLiteral(a), 4, 0, false)
	s.AddOptimizationLiteral(PositiveLiteral(b), 6, 0, false)

	if err := s.AddClause([]Literal{PositiveLiteral(a)}); err != nil {
		t.Fatal(err)
	}
	if r, _ := s.Propagate(); !r.IsNone() {
		t.Fatalf("unexpected conflict")
	}

	s.SimplifyOptimizationLiterals()

	if got, want := s.precomputedCost[0], uint64(4); got != want {
		t.Errorf("precomputedCost[0] = %d, want %d", got, want)
	}
	if len(s.optLits) != 1 {
		t.Errorf("len(optLits) = %d, want 1 (the fixed-true literal was folded away)", len(s.optLits))
	}
}

func TestSimplifyOptimizationLiterals_DropsFixedFalse(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	s.SetLevels(1)
	s.AddOptimizationLiteral(PositiveLiteral(a), 4, 0, false)

	if err := s.AddClause([]Literal{NegativeLiteral(a)}); err != nil {
		t.Fatal(err)
	}
	if r, _ := s.Propagate(); !r.IsNone() {
		t.Fatalf("unexpected conflict")
	}

	s.SimplifyOptimizationLiterals()

	if s.precomputedCost[0] != 0 {
		t.Errorf("precomputedCost[0] = %d, want 0", s.precomputedCost[0])
	}
	if len(s.optLits) != 0 {
		t.Errorf("len(optLits) = %d, want 0", len(s.optLits))
	}
}

func TestSaturatingAdd(t *testing.T) {
	if got, want := saturatingAdd(2, 3), uint64(5); got != want {
		t.Errorf("saturatingAdd(2,3) = %d, want %d", got, want)
	}
	max := ^uint64(0)
	if got := saturatingAdd(max, 1); got != max {
		t.Errorf("saturatingAdd(max,1) = %d, want %d (saturated)", got, max)
	}
	if got := saturatingAdd(max-2, 10); got != max {
		t.Errorf("saturatingAdd(max-2,10) = %d, want %d (saturated)", got, max)
	}
}

func TestBlockLevelBound_ForbidsExceedingBound(t *testing.T) {
	s := NewDefaultSolver()
	a, b, c := s.AddVariable(), s.AddVariable(), s.AddVariable()
	s.SetLevels(1)
	s.AddOptimizationLiteral(PositiveLiteral(a), 3, 0, false)
	s.AddOptimizationLiteral(PositiveLiteral(b), 3, 0, false)
	s.AddOptimizationLiteral(PositiveLiteral(c), 3, 0, false)

	// Forbid the level's cost from exceeding 6: all three cannot hold at once
	// (cost 9), though any two (cost 6) are still allowed.
	s.BlockLevelBound(0, 6)

	if err := s.AddClause([]Literal{PositiveLiteral(a)}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddClause([]Literal{PositiveLiteral(b)}); err != nil {
		t.Fatal(err)
	}
	if r, _ := s.Propagate(); !r.IsNone() {
		t.Fatalf("unexpected conflict with only two of three literals true (cost 6, within bound)")
	}
	// The aggregate has already forced c false to keep the complement weight
	// reachable: forcing c true on top of that is a root-level contradiction.
	if s.VarValue(c) != False {
		t.Fatalf("VarValue(c) = %v, want False (forced by the blocking aggregate)", s.VarValue(c))
	}
	if err := s.AddClause([]Literal{PositiveLiteral(c)}); err != nil {
		t.Fatal(err)
	}
	if !s.unsat {
		t.Fatalf("expected the solver to become permanently unsat after contradicting the forced value of c")
	}
}

func TestBlockLevelBound_NoOpWhenBoundCoversTotal(t *testing.T) {
	s := NewDefaultSolver()
	a := s.AddVariable()
	s.SetLevels(1)
	s.AddOptimizationLiteral(PositiveLiteral(a), 3, 0, false)

	before := len(s.aggregates)
	s.BlockLevelBound(0, 3)
	if len(s.aggregates) != before {
		t.Errorf("BlockLevelBound added an aggregate when bound >= total weight")
	}
}
