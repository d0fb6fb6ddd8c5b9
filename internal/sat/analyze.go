package sat

// analyze performs first-UIP conflict analysis. confl/conflLit describe the
// conflicting constraint exactly as returned by Propagate. It
// returns the learned clause (negated UIP at position 0, plus the negation
// of every seen literal from a lower level), the backjump level (0 if the
// clause is unit), and the clause's LBD.
func (s *Solver) analyze(confl Reason, conflLit Literal) ([]Literal, int, uint32) {
	nImplicationPoints := 0

	s.tmpLearnts = append(s.tmpLearnts[:0], NullLiteral) // reserved for the UIP
	nextIdx := len(s.trail) - 1
	s.seenVar.Clear()

	reason := confl
	l := NullLiteral // NullLiteral marks "explain the conflict itself"

	for {
		var expl []Literal
		if l == NullLiteral {
			expl = reason.explainConflict(s, conflLit, s.tmpReason)
		} else {
			expl = reason.explainAssign(s, l, s.tmpReason)
		}
		s.tmpReason = expl

		for _, q := range expl {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)

			if s.level[v] == s.decisionLevel() {
				nImplicationPoints++
				s.bumpVarActivity(v)
				continue
			}
			if s.level[v] > 0 {
				s.bumpVarActivity(v)
			}
			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
		}

		for {
			l = s.trail[nextIdx]
			nextIdx--
			v := l.VarID()
			reason = s.reason[v]
			if s.seenVar.Contains(v) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	s.tmpLearnts[0] = l.Opposite()

	learnt := append([]Literal(nil), s.tmpLearnts...)
	learnt = s.minimize(learnt)
	lbd := s.computeLBD(learnt)
	if len(learnt) > 1 && lbd <= 6 {
		learnt = s.minimizeBinaryResolution(learnt, lbd)
		lbd = s.computeLBD(learnt)
	}
	backtrackLevel := 0
	for _, q := range learnt[1:] {
		if lvl := s.level[q.VarID()]; lvl > backtrackLevel {
			backtrackLevel = lvl
		}
	}
	return learnt, backtrackLevel, lbd
}

// minimize removes a literal from the learned clause when every antecedent
// of its reason is already in the clause or fixed at level 0 (Minisat
// self-subsumption).
func (s *Solver) minimize(learnt []Literal) []Literal {
	if len(learnt) <= 1 {
		return learnt
	}

	inClause := s.seenVar // after analyze(): the vars of `learnt` plus the resolved current-level vars
	j := 1
	for i := 1; i < len(learnt); i++ {
		lit := learnt[i]
		if s.redundant(lit, inClause) {
			continue
		}
		learnt[j] = lit
		j++
	}
	return learnt[:j]
}

// redundant reports whether lit can be dropped from the learned clause
// because its reason's antecedents are all already accounted for.
func (s *Solver) redundant(lit Literal, inClause *ResetSet) bool {
	v := lit.VarID()
	r := s.reason[v]
	if r.IsNone() {
		return false // decision literal: never redundant
	}
	if s.level[v] == 0 {
		return true
	}

	antecedents := r.explainAssign(s, lit.Opposite(), make([]Literal, 0, 8))
	for _, a := range antecedents {
		av := a.VarID()
		if av == v {
			continue
		}
		if s.level[av] == 0 {
			continue
		}
		if inClause.Contains(av) {
			continue
		}
		return false
	}
	return true
}

// minimizeBinaryResolution drops learned literals that are resolvable away
// via a binary implication of the negated UIP, when the clause's LBD is
// already small (Glucose's binary-resolution minimization).
func (s *Solver) minimizeBinaryResolution(learnt []Literal, lbd uint32) []Literal {
	_ = lbd
	uip := learnt[0]

	toDrop := map[Literal]struct{}{}
	for _, m := range s.binImpl[uip.Opposite()] {
		toDrop[m.Opposite()] = struct{}{}
	}
	if len(toDrop) == 0 {
		return learnt
	}

	j := 1
	for i := 1; i < len(learnt); i++ {
		if _, drop := toDrop[learnt[i]]; drop {
			continue
		}
		learnt[j] = learnt[i]
		j++
	}
	return learnt[:j]
}

// computeLBD returns the number of distinct decision levels among the given
// literals. Levels at or below the current assumption level are folded
// together: LBD ignores assumption-level literals, since otherwise the
// number of active assumptions would skew clause-quality estimates.
func (s *Solver) computeLBD(literals []Literal) uint32 {
	seen := make(map[int]struct{}, len(literals))
	for _, l := range literals {
		lvl := s.level[l.VarID()]
		if lvl <= s.assumptionLevel {
			lvl = 0
		}
		seen[lvl] = struct{}{}
	}
	return uint32(len(seen))
}

// record appends a learned clause to the database and enqueues its UIP.
func (s *Solver) record(learnt []Literal, lbd uint32) *Clause {
	c, _ := NewClause(s, learnt, true)
	if c != nil {
		c.lbd = lbd
		if lbd <= 2 {
			c.setProtected()
		}
		c.position = len(s.learnts)
		s.learnts = append(s.learnts, c)
	}
	s.enqueue(learnt[0], clauseReason(c))
	return c
}
