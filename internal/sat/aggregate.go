package sat

import "sort"

// Aggregate is a pseudo-Boolean bound post-propagator: a weighted sum of
// literals that must reach at least bound. It recomputes its verdict from
// the live assignment on every invocation rather than maintaining a running
// counter across calls, so backjumping never needs to roll back internal
// aggregate state, only the pending post-propagator queue (postprop.go).
type Aggregate struct {
	basePostPropagator

	solver   *Solver
	literals []Literal
	weights  []uint64
	bound    uint64
	total    uint64
}

// AddAggregate registers a pseudo-Boolean constraint requiring the weighted
// sum of true literals to reach bound, and returns it so the caller can
// inspect it later; there is no way to remove it. It is queued so the next
// Propagate checks it against the current assignment. literals and weights
// must have equal length; the aggregate takes ownership of neither slice.
func (s *Solver) AddAggregate(literals []Literal, weights []uint64, bound uint64) *Aggregate {
	a := &Aggregate{
		solver:   s,
		literals: append([]Literal(nil), literals...),
		weights:  append([]uint64(nil), weights...),
		bound:    bound,
	}
	sort.Sort(byWeightDesc{a.literals, a.weights})
	for _, w := range a.weights {
		a.total += w
	}

	s.registerPostPropagator(a)
	for _, l := range a.literals {
		s.watchPostPropagator(l, a)
		s.watchPostPropagator(l.Opposite(), a)
	}
	s.aggregates = append(s.aggregates, a)
	s.queuePostPropagator(a)
	return a
}

type byWeightDesc struct {
	literals []Literal
	weights  []uint64
}

func (b byWeightDesc) Len() int      { return len(b.literals) }
func (b byWeightDesc) Swap(i, j int) {
	b.literals[i], b.literals[j] = b.literals[j], b.literals[i]
	b.weights[i], b.weights[j] = b.weights[j], b.weights[i]
}
func (b byWeightDesc) Less(i, j int) bool { return b.weights[i] > b.weights[j] }

// propagate implements the standard PB unit rule: once the slack (the
// weighted sum still reachable by unknown literals, above the bound) drops
// below an unknown literal's own weight, that literal must be forced true to
// have any chance of reaching the bound. If the bound is unreachable even
// with every unknown literal true, the aggregate itself is a conflict.
func (a *Aggregate) propagate(s *Solver) (Reason, Literal, bool) {
	var trueWeight, falseWeight uint64
	for i, l := range a.literals {
		switch s.LitValue(l) {
		case True:
			trueWeight += a.weights[i]
		case False:
			falseWeight += a.weights[i]
		}
	}

	if trueWeight >= a.bound {
		return Reason{}, NullLiteral, true
	}

	unknownWeight := a.total - trueWeight - falseWeight
	if trueWeight+unknownWeight < a.bound {
		return aggregateReason(a, -1, nil), NullLiteral, false
	}

	slack := trueWeight + unknownWeight - a.bound
	var witness []Literal
	for i, l := range a.literals {
		if s.LitValue(l) != Unknown {
			continue
		}
		if a.weights[i] > slack {
			if witness == nil {
				witness = a.falseWitness(s)
			}
			r := aggregateReason(a, i, witness)
			if !s.enqueue(l, r) {
				return r, NullLiteral, false
			}
		}
	}
	return Reason{}, NullLiteral, true
}

// falseWitness collects the negation of every currently false literal: the
// set that shrank the reachable weight enough to force something this
// round. Captured once per propagate call and shared by every literal
// forced in that call, since none of them can change another literal's
// truth value from false back to unknown.
func (a *Aggregate) falseWitness(s *Solver) []Literal {
	witness := make([]Literal, 0, len(a.literals))
	for _, l := range a.literals {
		if s.LitValue(l) == False {
			witness = append(witness, l.Opposite())
		}
	}
	return witness
}

// reset is a no-op: propagate always recomputes from the live assignment, so
// there is no transient state to discard when pending work is thrown away.
func (a *Aggregate) reset() {}

// explain justifies a literal this aggregate forced true: the witness set
// captured at the moment the force happened, i.e. every literal that was
// false then and so shrank the reachable weight below what was needed.
// Using the captured set rather than recomputing keeps this sound even if
// other literals of the aggregate have since changed value during conflict
// analysis, which would otherwise let an antecedent that comes after
// assigned on the trail slip into the explanation. This is sound but not
// minimal.
func (a *Aggregate) explain(witness []Literal, dst []Literal) []Literal {
	return append(dst[:0], witness...)
}

// explainConflict justifies the aggregate's own falsity: every literal
// currently false, negated (so the returned literals are the ones that are
// true and jointly make the bound unreachable).
func (a *Aggregate) explainConflict(s *Solver, dst []Literal) []Literal {
	dst = dst[:0]
	for _, l := range a.literals {
		if s.LitValue(l) == False {
			dst = append(dst, l.Opposite())
		}
	}
	return dst
}
