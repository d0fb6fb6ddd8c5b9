package sat

// Propagate drains the propagation queue to a fixpoint, running three
// phases in order for every literal: binary short propagation, unit
// propagation via watches, then (once the queue is empty) the
// post-propagator round. If the post-propagator round produces new
// assignments, propagation resumes; Propagate only returns once no phase
// has anything left to do, or one of them reports a conflict.
//
// The returned Reason is the zero value (IsNone) when no conflict occurred.
// When it is non-none, the accompanying Literal is the literal the
// conflicting reason applies to; it is NullLiteral for reasons (stored
// clauses, loop formulas, aggregates) that describe themselves completely.
func (s *Solver) Propagate() (Reason, Literal) {
	for {
		for s.hasNext() {
			l := s.nextToPropagate()

			if r, cl, ok := s.propagateBinary(l); !ok {
				s.propQueue.Clear()
				s.discardPendingPostPropagatorWork()
				return r, cl
			}
			if r, cl, ok := s.propagateWatches(l); !ok {
				s.propQueue.Clear()
				s.discardPendingPostPropagatorWork()
				return r, cl
			}
		}

		if len(s.postPropPending) == 0 {
			return Reason{}, NullLiteral
		}
		if r, cl, ok := s.runPostPropagators(); !ok {
			s.propQueue.Clear()
			return r, cl
		}
	}
}

// propagateBinary handles binary short propagation: for every literal m in
// the binary-implication list of l, a false m is a conflict and an
// undefined m is assigned true with an implicit binary reason.
func (s *Solver) propagateBinary(l Literal) (Reason, Literal, bool) {
	for _, m := range s.binImpl[l] {
		switch s.LitValue(m) {
		case False:
			return binaryReason(l), m, false
		case Unknown:
			s.enqueue(m, binaryReason(l))
		}
	}
	return Reason{}, NullLiteral, true
}

// propagateWatches gives every clause watching l a chance to find a new
// watch or, failing that, assign its first literal or report a conflict.
func (s *Solver) propagateWatches(l Literal) (Reason, Literal, bool) {
	s.tmpWatchers = append(s.tmpWatchers[:0], s.watchers[l]...)
	s.watchers[l] = s.watchers[l][:0]

	for i, w := range s.tmpWatchers {
		// Skip clauses whose cached other watch is already true: they
		// cannot need propagating and this avoids touching the clause.
		if s.LitValue(w.guard) == True {
			s.watchers[l] = append(s.watchers[l], w)
			continue
		}
		if w.clause.Propagate(s, l) {
			continue
		}
		s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
		return clauseReason(w.clause), NullLiteral, false
	}
	return Reason{}, NullLiteral, true
}
