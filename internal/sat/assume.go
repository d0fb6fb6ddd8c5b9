package sat

import "time"

// Outcome is the result of a solve invocation: COHERENT means a model was
// found, INCOHERENT means the problem (under any assumptions) is
// unsatisfiable, and Unknown means a budget was exhausted first.
type Outcome int8

const (
	OutcomeUnknown Outcome = iota
	Coherent
	Incoherent
)

func (o Outcome) String() string {
	switch o {
	case Coherent:
		return "COHERENT"
	case Incoherent:
		return "INCOHERENT"
	default:
		return "UNKNOWN"
	}
}

// Solve runs the main loop with no assumptions.
func (s *Solver) Solve() Outcome { return s.SolveAssuming(nil) }

// SolveAssuming runs the main state machine: drain propagation to a
// fixpoint, analyze and backjump on conflict (or report INCOHERENT if the
// conflict sits at or below the assumption level), otherwise check
// termination, consider restart/deletion, and pick the next literal
// (an assumption if any remain undefined, else the heuristic's choice).
func (s *Solver) SolveAssuming(assumptions []Literal) Outcome {
	if s.unsat {
		return Incoherent
	}

	if !s.started {
		s.started = true
		s.deletion.Init(s.NumConstraints())
	}

	s.startTime = time.Now()
	s.callConflicts, s.callRestarts = 0, 0
	s.assumptions = append(s.assumptions[:0], assumptions...)
	s.assumptionCursor = 0
	s.assumptionLevel = s.decisionLevel()

	for _, l := range s.assumptions {
		s.varFlags[l.VarID()] |= flagAssumption
	}
	defer func() {
		for _, l := range s.assumptions {
			s.varFlags[l.VarID()] &^= flagAssumption
		}
	}()

	for {
		confl, conflLit := s.Propagate()
		if !confl.IsNone() {
			s.TotalConflicts++
			s.callConflicts++

			if s.decisionLevel() <= s.assumptionLevel {
				s.conflReason, s.conflLit = confl, conflLit
				if len(s.assumptions) > 0 {
					s.unsatCore = s.extractUnsatCore()
				}
				return Incoherent
			}

			s.midBackjump = true
			learnt, backLevel, lbd := s.analyze(confl, conflLit)
			s.midBackjump = false
			if backLevel < s.assumptionLevel {
				backLevel = s.assumptionLevel
			}

			s.unrollTo(backLevel)
			s.record(learnt, lbd)
			s.decayVarActivity()
			s.decayClauseActivity()

			if s.restart.OnConflict(lbd, len(s.trail)) {
				s.doRestart()
			}
			if s.deletion.ShouldDelete(s) {
				s.deletion.Delete(s)
			}
			continue
		}

		if s.NumAssigns() == s.NumVariables() {
			// Every variable already has a value, so decide() below would
			// never run to catch a false assumption: check the remaining
			// ones directly before declaring the trail a model.
			for s.assumptionCursor < len(s.assumptions) {
				l := s.assumptions[s.assumptionCursor]
				s.assumptionCursor++
				if s.LitValue(l) == False {
					s.conflReason, s.conflLit = s.reason[l.VarID()], l
					s.unsatCore = s.extractUnsatCore()
					return Incoherent
				}
			}
			s.recordModel()
			return Coherent
		}

		if s.shouldStop() {
			return OutcomeUnknown
		}

		if conflicted, ok := s.decide(); !ok {
			s.conflReason, s.conflLit = conflicted, s.assumptions[s.assumptionCursor-1]
			s.unsatCore = s.extractUnsatCore()
			return Incoherent
		}
	}
}

// decide picks the next literal to assign: the next undefined assumption if
// any remain, else the heuristic's choice. If an assumption is found already
// false, it returns the reason that falsified it and ok=false so the caller
// can report INCOHERENT directly without going through conflict analysis.
func (s *Solver) decide() (Reason, bool) {
	for s.assumptionCursor < len(s.assumptions) {
		l := s.assumptions[s.assumptionCursor]
		s.assumptionCursor++

		switch s.LitValue(l) {
		case True:
			continue
		case False:
			return s.reason[l.VarID()], false
		default:
			s.assume(l)
			s.assumptionLevel = s.decisionLevel()
			return Reason{}, true
		}
	}

	l := s.order.Select()
	s.assume(l)
	return Reason{}, true
}

// doRestart backjumps to the assumption level (never lower: assumptions stay
// fixed for the whole call), imports any shared clauses when no assumptions
// are in play, and notifies the restart policy.
func (s *Solver) doRestart() {
	s.unrollTo(s.assumptionLevel)
	s.restart.OnRestart()
	s.deletion.OnRestart()
	s.TotalRestarts++
	s.callRestarts++
	if s.assumptionLevel == 0 {
		s.ImportShared()
	}
}

// recordModel snapshots the full assignment as a model, for blocking-clause
// model enumeration.
func (s *Solver) recordModel() {
	model := make([]bool, s.NumVariables())
	for v := 0; v < s.NumVariables(); v++ {
		model[v] = s.VarValue(v) == True
	}
	s.Models = append(s.Models, model)
}

// EnumerateModels calls SolveAssuming repeatedly, adding a blocking clause
// (the negation of the previous model, one literal per variable) after each
// COHERENT result, until INCOHERENT/UNKNOWN or maxModels models have been
// collected (maxModels <= 0 means unbounded). Blocking the full model rather
// than just its decision literals is what lets a decisionless (fully
// root-forced) model still shrink the search space by one point instead of
// being reported as the final answer.
func (s *Solver) EnumerateModels(assumptions []Literal, maxModels int) Outcome {
	for maxModels <= 0 || len(s.Models) < maxModels {
		outcome := s.SolveAssuming(assumptions)
		if outcome != Coherent {
			return outcome
		}
		if maxModels > 0 && len(s.Models) >= maxModels {
			return Coherent
		}

		model := s.Models[len(s.Models)-1]
		blocking := make([]Literal, len(model))
		for v, val := range model {
			if val {
				blocking[v] = NegativeLiteral(v)
			} else {
				blocking[v] = PositiveLiteral(v)
			}
		}
		s.unrollTo(0)
		s.AddClause(blocking)
		if s.unsat {
			return Incoherent
		}
	}
	return Coherent
}

// UnsatCore returns the assumption-literal subset computed by the last
// INCOHERENT SolveAssuming call.
func (s *Solver) UnsatCore() []Literal {
	return append([]Literal(nil), s.unsatCore...)
}

// extractUnsatCore walks the trail backward from the recorded conflict,
// expanding each seen variable's reason unless it is a root fact, and
// collecting every seen assumption decision literal along the way. The
// result is, by construction, a subset of the assumptions sufficient to
// explain INCOHERENT.
func (s *Solver) extractUnsatCore() []Literal {
	s.seenVar.Clear()
	scratch := make([]Literal, 0, 8)

	expl := s.conflReason.explainConflict(s, s.conflLit, scratch)
	for _, q := range expl {
		if v := q.VarID(); s.level[v] > 0 {
			s.seenVar.Add(v)
		}
	}

	var core []Literal
	for i := len(s.trail) - 1; i >= 0; i-- {
		l := s.trail[i]
		v := l.VarID()
		if !s.seenVar.Contains(v) {
			continue
		}
		r := s.reason[v]
		if r.IsNone() {
			if s.isAssumption(v) {
				core = append(core, l)
			}
			continue
		}
		ants := r.explainAssign(s, l, make([]Literal, 0, 8))
		for _, a := range ants {
			if av := a.VarID(); s.level[av] > 0 {
				s.seenVar.Add(av)
			}
		}
	}

	if s.conflLit != NullLiteral && s.isAssumption(s.conflLit.VarID()) {
		found := false
		for _, c := range core {
			if c == s.conflLit {
				found = true
				break
			}
		}
		if !found {
			core = append(core, s.conflLit)
		}
	}

	return core
}

// SolveMinimizingCore re-solves iteratively using only the current core's
// assumption literals until a fixpoint (the core size stops shrinking).
func (s *Solver) SolveMinimizingCore(assumptions []Literal) (Outcome, []Literal) {
	core := append([]Literal(nil), assumptions...)
	for {
		s.unrollTo(0)
		outcome := s.SolveAssuming(core)
		if outcome != Incoherent {
			return outcome, nil
		}
		next := s.UnsatCore()
		if len(next) >= len(core) {
			return Incoherent, core
		}
		core = next
	}
}
