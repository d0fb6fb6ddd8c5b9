// Package parsers loads test fixtures directly into a solver: DIMACS CNF
// instances via LoadDIMACS, and the ".models" comparison format (a
// DIMACS-clause-shaped file where every "clause" line is actually one full
// model, positive/negative integers encoding a variable's truth value
// rather than a disjunction) via LoadModels.
package parsers

import (
	"fmt"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/gaste/wasp/internal/sat"
)

// SATSolver is the narrow surface LoadDIMACS needs, letting tests wire a
// solver without importing anything beyond this package.
type SATSolver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

// LoadDIMACS parses filename and adds its variables and clauses directly to
// solver.
func LoadDIMACS(filename string, solver SATSolver) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer file.Close()

	return dimacs.ReadBuilder(file, &instanceBuilder{solver: solver})
}

type instanceBuilder struct {
	solver SATSolver
}

func (b *instanceBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem")
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *instanceBuilder) Comment(_ string) error {
	return nil
}

func (b *instanceBuilder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddClause(clause)
}

// LoadModels returns every model recorded in filename.
func LoadModels(filename string) ([][]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer file.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(file, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

// modelBuilder implements dimacs.Builder, treating each "clause" line as one
// full model rather than a disjunction.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have problem lines")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
