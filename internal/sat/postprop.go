package sat

// PostPropagator is a constraint invoked after unit propagation reaches a
// fixpoint: pseudo-Boolean aggregates and unfounded-set checkers both
// implement it. A post-propagator declares interest in specific literals by
// registering itself via Solver.watchPostPropagator; whenever one of those
// literals becomes true it is queued and, once propagation to a fixpoint
// completes, invoked in insertion order.
type PostPropagator interface {
	// id returns the registry slot assigned by registerPostPropagator.
	id() int
	setID(int)

	// propagate runs one round: it may call s.enqueue for any literals it
	// now forces, and returns a non-none Reason plus the literal it
	// conflicts on if it detects a contradiction. NullLiteral is used as
	// the conflicting literal when the reason is self-describing (a stored
	// clause/loop formula).
	propagate(s *Solver) (Reason, Literal, bool)

	// reset discards any transient, this-round-only state when pending work
	// is thrown away by a backjump before it was invoked.
	reset()
}

// basePostPropagator gives PostPropagator implementations their id bookkeeping.
type basePostPropagator struct{ postPropID int }

func (b *basePostPropagator) id() int      { return b.postPropID }
func (b *basePostPropagator) setID(id int) { b.postPropID = id }

// registerPostPropagator adds p to the registry and returns its id.
func (s *Solver) registerPostPropagator(p PostPropagator) int {
	id := len(s.postProps)
	p.setID(id)
	s.postProps = append(s.postProps, p)
	s.postPropQueued = append(s.postPropQueued, false)
	return id
}

// watchPostPropagator registers p's interest in literal lit.
func (s *Solver) watchPostPropagator(lit Literal, p PostPropagator) {
	s.postPropByLit[lit] = append(s.postPropByLit[lit], p)
}

// queuePostPropagator enqueues p for its next propagate call, if it is not
// already queued.
func (s *Solver) queuePostPropagator(p PostPropagator) {
	id := p.id()
	if s.postPropQueued[id] {
		return
	}
	s.postPropQueued[id] = true
	s.postPropPending = append(s.postPropPending, id)
}

// wakePostPropagators is called from assign whenever literal l becomes true.
func (s *Solver) wakePostPropagators(l Literal) {
	for _, p := range s.postPropByLit[l] {
		s.queuePostPropagator(p)
	}
}

// runPostPropagators drains the pending queue, invoking each post-propagator
// in insertion order until the queue empties or one reports a conflict.
func (s *Solver) runPostPropagators() (Reason, Literal, bool) {
	for len(s.postPropPending) > 0 {
		id := s.postPropPending[0]
		s.postPropPending = s.postPropPending[1:]
		s.postPropQueued[id] = false

		r, cl, ok := s.postProps[id].propagate(s)
		if !ok {
			s.discardPendingPostPropagatorWork()
			return r, cl, false
		}
	}
	return Reason{}, NullLiteral, true
}

// discardPendingPostPropagatorWork resets and clears any post-propagators
// still queued, e.g. because a conflict was found before they ran. It is
// the boundary-0 case of rewindPostPropagatorsTo.
func (s *Solver) discardPendingPostPropagatorWork() {
	s.rewindPostPropagatorsTo(0)
}

// rewindPostPropagatorsTo discards the tail of the pending queue at or past
// boundary, the insertion-stack index recorded when the level being
// unrolled to was entered. Entries before boundary belong to an outer
// level and are left queued.
func (s *Solver) rewindPostPropagatorsTo(boundary int) {
	if boundary >= len(s.postPropPending) {
		return
	}
	for _, id := range s.postPropPending[boundary:] {
		s.postPropQueued[id] = false
		s.postProps[id].reset()
	}
	s.postPropPending = s.postPropPending[:boundary]
}
