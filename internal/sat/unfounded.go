package sat

// SupportRule is one clause-like justification for a head atom becoming
// true: head holds if every literal in body holds. supportsFor[head] is the
// set of rules that can support that atom (WASP's Solver.h calls the
// per-atom analogue "support"; here it is data, not a live watch).
type SupportRule struct {
	head int
	body []Literal
}

// dependencyGraph is the positive-dependency graph over atoms used to find
// head-cycle components (WASP's DependencyGraph/computeStrongConnectedComponents):
// an edge head -> bodyVar exists whenever bodyVar occurs positively in a
// rule supporting head.
type dependencyGraph struct {
	edges map[int][]int
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{edges: map[int][]int{}}
}

func (g *dependencyGraph) addEdge(head, bodyVar int) {
	g.edges[head] = append(g.edges[head], bodyVar)
}

// tarjanState carries the bookkeeping for one run of Tarjan's algorithm.
type tarjanState struct {
	graph   *dependencyGraph
	index   map[int]int
	lowlink map[int]int
	onStack map[int]bool
	stack   []int
	counter int
	sccs    [][]int
}

// stronglyConnectedComponents runs Tarjan's algorithm over vars (the full
// variable id range) restricted to g's edges, returning every SCC including
// singletons.
func (g *dependencyGraph) stronglyConnectedComponents(vars []int) [][]int {
	st := &tarjanState{graph: g, index: map[int]int{}, lowlink: map[int]int{}, onStack: map[int]bool{}}
	for _, v := range vars {
		if _, ok := st.index[v]; !ok {
			st.strongConnect(v)
		}
	}
	return st.sccs
}

func (st *tarjanState) strongConnect(v int) {
	st.index[v] = st.counter
	st.lowlink[v] = st.counter
	st.counter++
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for _, w := range st.graph.edges[v] {
		if _, ok := st.index[w]; !ok {
			st.strongConnect(w)
			if st.lowlink[w] < st.lowlink[v] {
				st.lowlink[v] = st.lowlink[w]
			}
		} else if st.onStack[w] {
			if st.index[w] < st.lowlink[v] {
				st.lowlink[v] = st.index[w]
			}
		}
	}

	if st.lowlink[v] == st.index[v] {
		var scc []int
		for {
			n := len(st.stack) - 1
			w := st.stack[n]
			st.stack = st.stack[:n]
			st.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		st.sccs = append(st.sccs, scc)
	}
}

// Component is a strongly connected subset of the positive-dependency
// graph. Components of size 1 with no self-loop are not cyclic and get no
// UnfoundedChecker.
type Component struct {
	id   int
	vars []int
}

// AddSupportRule registers a rule justifying head becoming true and records
// an edge in the dependency graph for every positively-occurring body atom,
// so FinalizeDependencyGraph can find the head-cycle components it belongs
// to. It must be called before FinalizeDependencyGraph.
func (s *Solver) AddSupportRule(head int, body []Literal) {
	s.supportsFor[head] = append(s.supportsFor[head], &SupportRule{head: head, body: append([]Literal(nil), body...)})
	if s.depGraph == nil {
		s.depGraph = newDependencyGraph()
	}
	for _, l := range body {
		if l.IsPositive() {
			s.depGraph.addEdge(head, l.VarID())
		}
	}
}

// FinalizeDependencyGraph computes the strongly connected components of the
// positive-dependency graph (WASP's computeStrongConnectedComponents) and
// registers an UnfoundedChecker post-propagator for every head-cycle
// component: an SCC with more than one member, or a single atom with a
// direct self-loop. A program with no such component is "tight" and pays no
// unfounded-set-checking overhead at all.
func (s *Solver) FinalizeDependencyGraph() {
	if s.depGraph == nil {
		return
	}
	vars := make([]int, s.NumVariables())
	for v := range vars {
		vars[v] = v
	}
	sccs := s.depGraph.stronglyConnectedComponents(vars)

	for _, scc := range sccs {
		cyclic := len(scc) > 1
		if !cyclic && len(scc) == 1 {
			v := scc[0]
			for _, u := range s.depGraph.edges[v] {
				if u == v {
					cyclic = true
					break
				}
			}
		}
		if !cyclic {
			continue
		}

		c := &Component{id: len(s.components), vars: scc}
		s.components = append(s.components, c)
		for _, v := range scc {
			s.varFlags[v] |= flagInCyclicComponent
		}

		checker := &UnfoundedChecker{solver: s, component: c}
		s.uCheckers = append(s.uCheckers, checker)
		s.registerPostPropagator(checker)
		for _, v := range scc {
			s.watchPostPropagator(PositiveLiteral(v), checker)
			for _, rule := range s.supportsFor[v] {
				for _, l := range rule.body {
					s.watchPostPropagator(l, checker)
				}
			}
		}
	}
}

// UnfoundedChecker is the post-propagator for one head-cycle component:
// after every propagation fixpoint it checks whether any true atom in the
// component has lost all support and, if so, learns a loop formula
// excluding the discovered unfounded set.
type UnfoundedChecker struct {
	basePostPropagator

	solver    *Solver
	component *Component
}

func (u *UnfoundedChecker) reset() {}

// propagate computes the greatest unfounded set within the component: start
// from every currently-true member atom and repeatedly discharge one whose
// support rule is fully satisfied without depending on another still-candidate
// member. What remains, if anything, is genuinely unfounded and yields a
// conflict via a freshly learned loop formula (WASP calls this pathway
// unfounded-set checking for a head-cycle component).
func (u *UnfoundedChecker) propagate(s *Solver) (Reason, Literal, bool) {
	inComponent := make(map[int]bool, len(u.component.vars))
	for _, v := range u.component.vars {
		inComponent[v] = true
	}

	candidates := map[int]bool{}
	for _, v := range u.component.vars {
		if s.VarValue(v) == True {
			candidates[v] = true
		}
	}
	if len(candidates) == 0 {
		return Reason{}, NullLiteral, true
	}

	for {
		discharged := -1
		for v := range candidates {
			if ruleGivesSupport(s, s.supportsFor[v], candidates, inComponent) {
				discharged = v
				break
			}
		}
		if discharged < 0 {
			break
		}
		delete(candidates, discharged)
	}

	if len(candidates) == 0 {
		return Reason{}, NullLiteral, true
	}

	unfounded := make([]int, 0, len(candidates))
	for v := range candidates {
		unfounded = append(unfounded, v)
	}

	var conflict Reason
	for _, v := range unfounded {
		c := u.loopFormula(s, v, candidates, inComponent)
		if c == nil {
			continue
		}
		c.position = len(s.learnts)
		s.learnts = append(s.learnts, c)
		conflict = clauseReason(c)
	}
	if conflict.IsNone() {
		return Reason{}, NullLiteral, true
	}
	return conflict, NullLiteral, false
}

// ruleGivesSupport reports whether any rule for v is fully true and does not
// rely on a component atom still in candidates (i.e. it is external, or
// relies only on already-discharged component atoms).
func ruleGivesSupport(s *Solver, rules []*SupportRule, candidates map[int]bool, inComponent map[int]bool) bool {
	for _, r := range rules {
		ok := true
		for _, l := range r.body {
			if s.LitValue(l) != True {
				ok = false
				break
			}
			if l.IsPositive() && inComponent[l.VarID()] && candidates[l.VarID()] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// loopFormula builds the clause (¬v ∨ blockers...) where blockers is the
// negation of every component-internal body literal that made every rule
// for v inapplicable as external support. Since all of those literals are
// currently true and v is currently true, this clause is false right now:
// exactly the conflict the post-propagator reports.
func (u *UnfoundedChecker) loopFormula(s *Solver, v int, candidates map[int]bool, inComponent map[int]bool) *Clause {
	seen := map[Literal]bool{}
	lits := []Literal{PositiveLiteral(v).Opposite()}
	for _, r := range s.supportsFor[v] {
		for _, l := range r.body {
			if l.IsPositive() && inComponent[l.VarID()] && candidates[l.VarID()] {
				neg := l.Opposite()
				if !seen[neg] {
					seen[neg] = true
					lits = append(lits, neg)
				}
			}
		}
	}
	if len(lits) == 1 {
		return nil
	}
	c, _ := NewClause(s, lits, true)
	c.markLoopFormula()
	return c
}
