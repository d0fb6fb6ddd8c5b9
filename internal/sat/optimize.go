package sat

// OptimizationLiteral is a soft literal contributing weight to its
// priority level's cost whenever it holds. Levels are lexicographic: level
// 0 dominates every later level. The first auxiliary literal encountered
// per level during cost computation counts its weight normally; every
// later auxiliary literal in that level is skipped, since auxiliary
// literals within a level are mutually exclusive by construction and
// counting more than one would double-count the same underlying choice.
type OptimizationLiteral struct {
	literal Literal
	weight  uint64
	level   int
	isAux   bool
	removed bool
}

// AddOptimizationLiteral registers a soft literal.
func (s *Solver) AddOptimizationLiteral(literal Literal, weight uint64, level int, isAux bool) *OptimizationLiteral {
	l := &OptimizationLiteral{literal: literal, weight: weight, level: level, isAux: isAux}
	s.optLits = append(s.optLits, l)
	return l
}

// SetLevels sizes the per-level cost vectors before any optimization
// literal is added.
func (s *Solver) SetLevels(n int) {
	s.numLevels = n
	s.precomputedCost = make([]uint64, n)
	s.levelWeighted = make([]bool, n)
}

// SetLevelWeighted records whether level is a weighted or unweighted
// optimization dimension. The flag is only stored: LevelCost and
// BlockLevelBound always sum the literals' weights.
func (s *Solver) SetLevelWeighted(level int, weighted bool) {
	s.levelWeighted[level] = weighted
}

// SimplifyOptimizationLiterals removes optimization literals already fixed
// true or false at level 0, folding a fixed-true literal's weight into
// precomputed_cost so later cost computation does not need to re-examine
// it. It must only be called at decision level 0.
func (s *Solver) SimplifyOptimizationLiterals() {
	kept := s.optLits[:0]
	for _, l := range s.optLits {
		if l.removed {
			continue
		}
		if s.LitValue(l.literal) == True {
			s.precomputedCost[l.level] += l.weight
			l.removed = true
			continue
		}
		if s.LitValue(l.literal) == False {
			l.removed = true
			continue
		}
		kept = append(kept, l)
	}
	s.optLits = kept
}

// InjectPreferredChoices forwards to the heuristic's preferred-choice queue,
// letting an optimization algorithm bias the search toward candidate
// solutions it wants tried first.
func (s *Solver) InjectPreferredChoices(lits []Literal) {
	s.order.InjectPreferred(lits)
}

// FlushPreferredChoices discards any injected preferred choices not yet
// consumed by a decision. An optimization driver calls this when a
// previously injected candidate is no longer worth steering toward, e.g.
// after tightening a bound that rules it out.
func (s *Solver) FlushPreferredChoices() {
	s.order.FlushPreferred()
}

// LevelCost computes the current model's cost at level as
// precomputed_cost[level] + Σ weight_i · [lit_i is true], skipping every
// auxiliary literal in the level after the first one encountered.
func (s *Solver) LevelCost(level int) uint64 {
	cost := s.precomputedCost[level]
	sawAux := false
	for _, l := range s.optLits {
		if l.removed || l.level != level {
			continue
		}
		if l.isAux {
			if sawAux {
				continue
			}
			sawAux = true
		}
		if s.LitValue(l.literal) == True {
			cost = saturatingAdd(cost, l.weight)
		}
	}
	return cost
}

// saturatingAdd returns a+b, clamped to ^uint64(0) on overflow: cost sums
// saturate at 2^64-1 rather than wrapping.
func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

// BlockLevelBound adds a bound-tightening constraint on the optimization
// literals at level: an aggregate over their complements that forces the
// weights of the level's true literals to sum to at most bound.
func (s *Solver) BlockLevelBound(level int, bound uint64) {
	var literals []Literal
	var weights []uint64
	var total uint64
	sawAux := false
	for _, l := range s.optLits {
		if l.removed || l.level != level {
			continue
		}
		if l.isAux {
			if sawAux {
				continue
			}
			sawAux = true
		}
		literals = append(literals, l.literal.Opposite())
		weights = append(weights, l.weight)
		total += l.weight
	}
	if total == 0 || bound >= total {
		return
	}
	// Require the complements to sum to at least (total - bound), i.e. the
	// true literals of the level sum to at most bound.
	s.AddAggregate(literals, weights, total-bound)
}
