package dimacs

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gaste/wasp/internal/sat"
)

var testInstance = Instance{
	Variables: 3,
	Clauses: [][]int{
		{1, -2},
		{2, 3},
	},
	Comments: []string{"a small satisfiable instance"},
}

func TestParseFile(t *testing.T) {
	want := &testInstance

	got, err := ParseFile("testdata/test_instance.cnf")
	if err != nil {
		t.Fatalf("ParseFile(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseFile(): mismatch (+want, -got):\n%s", diff)
	}
}

func TestParseFile_NoFile(t *testing.T) {
	got, err := ParseFile("testdata/does_not_exist.cnf")
	if err == nil {
		t.Errorf("ParseFile(): want error, got none")
	}
	if got != nil {
		t.Errorf("ParseFile(): want nil instance, got %+v", got)
	}
}

func TestInstantiate(t *testing.T) {
	instance, err := ParseFile("testdata/test_instance.cnf")
	if err != nil {
		t.Fatalf("ParseFile(): %s", err)
	}

	s := sat.NewDefaultSolver()
	if err := Instantiate(s, instance); err != nil {
		t.Fatalf("Instantiate(): %s", err)
	}

	if s.NumVariables() != 3 {
		t.Errorf("NumVariables() = %d, want 3", s.NumVariables())
	}
	if outcome := s.Solve(); outcome != sat.Coherent {
		t.Errorf("Solve() = %v, want Coherent", outcome)
	}
}
