package sat

import "strings"

// clauseFlags packs the boolean metadata attached to a Clause into a single
// byte.
type clauseFlags uint8

const (
	flagLearnt clauseFlags = 1 << iota
	flagDeleted
	flagProtected
	flagLoopFormula
)

// Clause is an ordered list of literals plus the metadata the solver needs
// to watch, learn, and delete it. While a clause is active, literals[0] and
// literals[1] are its two watched literals; if the clause is the implicant
// of some variable, that variable's literal sits at position 0.
type Clause struct {
	literals []Literal
	activity float64
	lbd      uint32
	flags    clauseFlags

	// prevPos remembers where the last search for a new watch succeeded, so
	// re-watching resumes from there instead of rescanning from position 2
	// every time (adapted from the pooled variant of the clause type).
	prevPos int

	// position is this clause's index in its owning slice (Solver.clauses or
	// Solver.learnts), maintained by the solver so deletion is an O(1)
	// swap-remove instead of a linear search.
	position int
}

func newClause(literals []Literal, learnt bool) *Clause {
	c := &Clause{
		literals: append([]Literal(nil), literals...),
		prevPos:  2,
	}
	if learnt {
		c.flags |= flagLearnt
	}
	return c
}

// NewClause validates and, if necessary, constructs a clause to add to the
// solver. It performs tautology/duplicate/false-literal cleanup for
// original clauses; learnt clauses are assumed already minimized and are
// not checked.
// It returns (nil, true) when the clause was simplified away without being
// stored (e.g. it was a tautology, or unit and successfully enqueued), and
// (nil, false) when the clause is a root-level contradiction.
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := make(map[Literal]struct{}, size)
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // already satisfied at the root
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch len(tmpLiterals) {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(tmpLiterals[0], Reason{})
	default:
		c := newClause(tmpLiterals, learnt)

		if learnt {
			// Put the literal from the second-highest decision level at
			// position 1 so the two watches straddle the backjump target.
			maxLevel, wl := -1, 1
			for i := 1; i < len(c.literals); i++ {
				if lvl := s.level[c.literals[i].VarID()]; lvl > maxLevel {
					maxLevel, wl = lvl, i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]

			s.bumpClauseActivity(c)
			for _, l := range c.literals {
				s.bumpVarActivity(l.VarID())
			}
			c.lbd = s.computeLBD(c.literals)
		}

		s.watch(c, c.literals[0].Opposite(), c.literals[1])
		s.watch(c, c.literals[1].Opposite(), c.literals[0])
		return c, true
	}
}

func (c *Clause) isLearnt() bool      { return c.flags&flagLearnt != 0 }
func (c *Clause) isDeleted() bool     { return c.flags&flagDeleted != 0 }
func (c *Clause) isProtected() bool   { return c.flags&flagProtected != 0 }
func (c *Clause) isLoopFormula() bool { return c.flags&flagLoopFormula != 0 }
func (c *Clause) setProtected()       { c.flags |= flagProtected }
func (c *Clause) clearProtected()     { c.flags &^= flagProtected }
func (c *Clause) markLoopFormula()    { c.flags |= flagLoopFormula }

// Literals returns the clause's current literals. The returned slice must
// not be retained past the next mutation of the clause.
func (c *Clause) Literals() []Literal { return c.literals }

func (c *Clause) locked(s *Solver) bool {
	return len(c.literals) > 0 && s.reason[c.literals[0].VarID()].clauseOrNil() == c
}

// Remove detaches the clause from its two watch lists and marks it deleted.
// The caller is responsible for removing it from its owning slice.
func (c *Clause) Remove(s *Solver) {
	c.flags |= flagDeleted
	s.unwatch(c, c.literals[0].Opposite())
	s.unwatch(c, c.literals[1].Opposite())
	c.literals = nil
}

// Simplify drops literals that are false at the root level and reports
// whether the clause is now satisfied (and can be removed outright).
func (c *Clause) Simplify(s *Solver) bool {
	j := 0
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case True:
			return true
		case False:
			// discard
		default:
			c.literals[j] = l
			j++
		}
	}
	c.literals = c.literals[:j]
	return false
}

// Propagate is invoked when l has just become true (so l.Opposite() is
// false) and c watches l.Opposite(). It restores the two-watch invariant,
// possibly assigning c.literals[0], and returns false to report a conflict.
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], opp
	}

	if s.LitValue(c.literals[0]) == True {
		s.watch(c, l, c.literals[0])
		return true
	}

	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i := c.prevPos; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], opp
			s.watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}
	for i := 2; i < c.prevPos; i++ {
		if s.LitValue(c.literals[i]) != False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], opp
			s.watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	// All literals but literals[0] are false: literals[0] must become true.
	s.watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], clauseReason(c))
}

// explainConflict fills dst with the negations of every literal in c (used
// when c is itself the falsified constraint).
func (c *Clause) explainConflict(dst []Literal) []Literal {
	dst = dst[:0]
	for _, l := range c.literals {
		dst = append(dst, l.Opposite())
	}
	return dst
}

// explainAssign fills dst with the negations of every literal but the
// asserted one at position 0.
func (c *Clause) explainAssign(dst []Literal) []Literal {
	dst = dst[:0]
	for _, l := range c.literals[1:] {
		dst = append(dst, l.Opposite())
	}
	return dst
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteByte('(')
	for i, l := range c.literals {
		if i > 0 {
			sb.WriteString(" ∨ ")
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
