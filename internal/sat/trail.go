package sat

// varFlags packs per-variable boolean metadata: frozen (kept by a future
// preprocessor), eliminated, assumption, and membership in a cyclic (SCC)
// component.
type varFlags uint8

const (
	flagFrozen varFlags = 1 << iota
	flagEliminated
	flagAssumption
	flagInCyclicComponent
)

// decisionLevel returns the current decision level: the number of choices
// (decisions or assumptions) made since the root.
func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// Assign records that literal l holds at the current decision level with
// the given reason (the zero Reason for a decision). It returns false if l
// is already assigned to the opposite value (a conflict); the caller is
// responsible for recording the conflicting literal/reason in that case.
// The propagation queue push that accompanies an assignment lives in
// enqueue, which is assign's only caller.
func (s *Solver) assign(l Literal, r Reason) bool {
	switch s.assigns[l] {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		s.assigns[l] = True
		s.assigns[l.Opposite()] = False
		s.level[v] = s.decisionLevel()
		s.reason[v] = r
		s.trail = append(s.trail, l)
		s.wakePostPropagators(l)
		return true
	}
}

// enqueue is assign plus the propagation-queue push; it is the entry point
// for every assignment, including decisions made through assume.
func (s *Solver) enqueue(l Literal, r Reason) bool {
	if !s.assign(l, r) {
		return false
	}
	s.propQueue.Push(l)
	return true
}

// hasNext reports whether next_to_propagate has more literals to yield.
func (s *Solver) hasNext() bool {
	return s.propQueue.Size() > 0
}

// nextToPropagate returns the next literal past the propagation cursor.
func (s *Solver) nextToPropagate() Literal {
	return s.propQueue.Pop()
}

// unrollLast un-assigns the most recently assigned variable without
// touching trailLim; unrollTo uses it to pop each level's assignments.
func (s *Solver) unrollLast() {
	l := s.trail[len(s.trail)-1]
	v := l.VarID()

	s.order.onUnroll(v)
	s.assigns[l] = Unknown
	s.assigns[l.Opposite()] = Unknown
	s.reason[v] = Reason{}
	s.level[v] = -1

	s.trail = s.trail[:len(s.trail)-1]
}

// unrollTo walks the trail back to the boundary recorded for level+1,
// un-assigning every variable above it and notifying the heuristic (phase
// saving happens inside order.onUnroll). It also pops the post-propagator
// insertion stack one level at a time, discarding only the work queued
// above each level rather than the whole pending list.
func (s *Solver) unrollTo(level int) {
	for s.decisionLevel() > level {
		boundary := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > boundary {
			s.unrollLast()
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]

		ppBoundary := s.postPropLevelLim[len(s.postPropLevelLim)-1]
		s.postPropLevelLim = s.postPropLevelLim[:len(s.postPropLevelLim)-1]
		s.rewindPostPropagatorsTo(ppBoundary)
	}
}

// assume pushes a new decision level and assigns l as a decision (or
// assumption) literal with no reason.
func (s *Solver) assume(l Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.postPropLevelLim = append(s.postPropLevelLim, len(s.postPropPending))
	return s.enqueue(l, Reason{})
}

func (s *Solver) isFrozen(v int) bool     { return s.varFlags[v]&flagFrozen != 0 }
func (s *Solver) isEliminated(v int) bool { return s.varFlags[v]&flagEliminated != 0 }
func (s *Solver) isAssumption(v int) bool { return s.varFlags[v]&flagAssumption != 0 }

func (s *Solver) setFrozen(v int)     { s.varFlags[v] |= flagFrozen }
func (s *Solver) setEliminated(v int) { s.varFlags[v] |= flagEliminated }

// DumpTrail renders the current trail as "variable_name (true|false)" lines,
// using names supplied by the caller (index i names variable i).
func (s *Solver) DumpTrail(names []string) []string {
	out := make([]string, 0, len(s.trail))
	for _, l := range s.trail {
		v := l.VarID()
		name := ""
		if v < len(names) {
			name = names[v]
		}
		state := "false"
		if l.IsPositive() {
			state = "true"
		}
		out = append(out, name+" "+state)
	}
	return out
}
