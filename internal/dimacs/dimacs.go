// Package dimacs is the external-collaborator boundary for loading DIMACS
// CNF instances into the solver core: it owns file I/O and format parsing so
// internal/sat stays free of anything resembling an input format.
package dimacs

import (
	"fmt"
	"os"
	"strings"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/gaste/wasp/internal/sat"
)

// Instance is the parsed problem plus the bookkeeping the CLI reports
// before solving.
type Instance struct {
	Variables int
	Clauses   [][]int
	Comments  []string
}

// instanceBuilder implements github.com/rhartert/dimacs's Builder interface,
// the same pattern the internal model-file loader (parsers.go) uses.
type instanceBuilder struct {
	instance *Instance
}

func (b *instanceBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instances of type %q are not supported", problem)
	}
	b.instance.Variables = nVars
	b.instance.Clauses = make([][]int, 0, nClauses)
	return nil
}

func (b *instanceBuilder) Comment(c string) error {
	b.instance.Comments = append(b.instance.Comments, strings.TrimSpace(strings.TrimPrefix(c, "c")))
	return nil
}

func (b *instanceBuilder) Clause(tmpClause []int) error {
	b.instance.Clauses = append(b.instance.Clauses, append([]int(nil), tmpClause...))
	return nil
}

// ParseFile reads a DIMACS CNF file using the streaming reader/builder from
// github.com/rhartert/dimacs rather than a hand-rolled scanner.
func ParseFile(filename string) (*Instance, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	defer f.Close()

	instance := &Instance{}
	if err := extdimacs.ReadBuilder(f, &instanceBuilder{instance: instance}); err != nil {
		return nil, fmt.Errorf("dimacs: could not parse %q: %w", filename, err)
	}
	return instance, nil
}

// Instantiate adds the instance's variables and clauses to solver s, mapping
// DIMACS's 1-indexed, sign-encoded literals onto this package's 0-indexed
// Literal type (positive integer v -> variable v-1, sign selects polarity).
func Instantiate(s *sat.Solver, instance *Instance) error {
	for i := 0; i < instance.Variables; i++ {
		s.AddVariable()
	}
	for _, c := range instance.Clauses {
		clause := make([]sat.Literal, len(c))
		for i, v := range c {
			if v < 0 {
				clause[i] = sat.NegativeLiteral(-v - 1)
			} else {
				clause[i] = sat.PositiveLiteral(v - 1)
			}
		}
		if err := s.AddClause(clause); err != nil {
			return fmt.Errorf("dimacs: %w", err)
		}
	}
	return nil
}
