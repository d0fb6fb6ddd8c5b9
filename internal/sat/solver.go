package sat

import (
	"fmt"
	"log"
	"time"
)

// watcher is an entry in a literal's watched-clauses list. guard is the
// clause's other watched literal; if
// it is already true the clause cannot possibly need propagating, so
// Solver.Propagate can skip loading it entirely (an optimization, not part
// of the correctness invariants).
type watcher struct {
	clause *Clause
	guard  Literal
}

// Options configures a Solver. The zero value is not usable; start from
// DefaultOptions or GlucoseOptions.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64
	PhaseSaving   bool

	// Heuristic selects the decision/restart/deletion trio. The two variants
	// share the RestartPolicy and DeletionPolicy contracts (restart.go,
	// deletion.go) so the
	// loop itself never branches on the choice.
	Heuristic HeuristicKind

	MaxConflicts int64 // <0 = unbounded
	MaxRestarts  int64 // <0 = unbounded
	Timeout      time.Duration

	// Exchange, if non-nil, is the clause-import channel this solver reads
	// from at restart points; the solver does not publish its own learned
	// clauses to it.
	Exchange *ClauseExchange
}

type HeuristicKind uint8

const (
	MinisatHeuristic HeuristicKind = iota
	GlucoseHeuristic
)

var DefaultOptions = Options{
	ClauseDecay:   0.999,
	VariableDecay: 0.95,
	MaxConflicts:  -1,
	MaxRestarts:   -1,
	Timeout:       -1,
	Heuristic:     MinisatHeuristic,
}

var GlucoseOptions = Options{
	ClauseDecay:   0.999,
	VariableDecay: 0.8,
	PhaseSaving:   true,
	MaxConflicts:  -1,
	MaxRestarts:   -1,
	Timeout:       -1,
	Heuristic:     GlucoseHeuristic,
}

// Solver is the CDCL kernel: trail, two-watched-literal propagation,
// first-UIP learning, a pluggable heuristic/restart/deletion trio, a
// post-propagator framework for aggregates and unfounded-set checking, and
// the assumption/optimization machinery layered on top of it.
type Solver struct {
	// Clause database. clauses owns original (input) clauses, learnts owns
	// derived ones; both are addressed by the small position handles the
	// clauses themselves cache.
	clauses     []*Clause
	learnts     []*Clause
	clauseInc   float64
	clauseDecay float64

	// Decision heuristic.
	activities  []float64
	varInc      float64
	varDecay    float64
	order       *VarOrder
	phaseSaving bool
	heuristic   HeuristicKind

	// Propagation and watchers.
	watchers  [][]watcher
	binImpl   [][]Literal // binImpl[l]: literals implied true whenever l is true
	propQueue *Queue[Literal]

	// Post-propagator framework. postPropLevelLim mirrors trailLim: it
	// records, at each decision level, the pending-queue length at the time
	// of the decision, so a backjump can pop exactly what was queued above
	// the target level (an explicit per-level insertion stack) instead of a
	// global added-flag scan.
	postProps       []PostPropagator
	postPropByLit   [][]PostPropagator // per-literal interest list
	postPropPending []int              // IDs queued for this fixpoint round, in insertion order
	postPropQueued  []bool
	postPropLevelLim []int

	// Assignment state.
	assigns  []LBool
	trail    []Literal
	trailLim []int
	reason   []Reason
	level    []int
	varFlags []varFlags

	// Whether the problem has reached a root-level conflict.
	unsat bool

	// started is set on the first Solve/SolveAssuming call, so the deletion
	// policy's threshold is seeded exactly once.
	started bool

	// Restart/deletion policy (share one contract).
	restart  RestartPolicy
	deletion DeletionPolicy

	// Search statistics.
	TotalConflicts  int64
	TotalRestarts   int64
	TotalIterations int64
	startTime       time.Time

	// Stop conditions: time is checked before restarts, before conflicts.
	// There is no budget on the number of decisions.
	// callConflicts/callRestarts reset at the top of every Solve/SolveAssuming
	// call, since the three budgets are per-call, not lifetime.
	maxConflicts  int64
	maxRestarts   int64
	timeout       time.Duration
	callConflicts int64
	callRestarts  int64

	// Models found by Solve when enumerating (each call appends at most one).
	Models [][]bool

	// Reusable scratch buffers.
	seenVar     *ResetSet
	tmpWatchers []watcher
	tmpLearnts  []Literal
	tmpReason   []Literal

	// Assumptions and unsat core.
	assumptions      []Literal
	assumptionCursor int
	assumptionLevel  int
	conflLit         Literal
	conflReason      Reason
	unsatCore        []Literal

	// Optimization.
	optLits         []*OptimizationLiteral
	numLevels       int
	precomputedCost []uint64
	levelWeighted   []bool

	// Cyclic-component / unfounded-set subsystem.
	depGraph    *dependencyGraph
	components  []*Component
	uCheckers   []*UnfoundedChecker
	supportsFor [][]*SupportRule // supportsFor[v]: rules whose head is variable v

	// Aggregates registered with the solver.
	aggregates []*Aggregate

	// Clause sharing.
	exchange *ClauseExchange

	// midBackjump guards the window between conflict analysis and backjump
	// during which AddVariableRuntime would observe a heuristic and
	// per-literal structure mid-mutation, so it is rejected here.
	midBackjump bool
}

// NewSolver returns a solver configured with the given options.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		clauseDecay:  opts.ClauseDecay,
		varDecay:     opts.VariableDecay,
		clauseInc:    1,
		varInc:       1,
		propQueue:    NewQueue[Literal](128),
		maxConflicts: opts.MaxConflicts,
		maxRestarts:  opts.MaxRestarts,
		timeout:      opts.Timeout,
		seenVar:      &ResetSet{},
		phaseSaving:  opts.PhaseSaving,
		heuristic:    opts.Heuristic,
		exchange:     opts.Exchange,
		conflLit:     NullLiteral,
	}
	s.order = NewVarOrder(s)
	if opts.Heuristic == GlucoseHeuristic {
		s.restart = NewGlucoseRestart()
		s.deletion = NewGlucoseDeletion()
	} else {
		s.restart = NewMinisatRestart()
		s.deletion = NewMinisatDeletion()
	}
	return s
}

// NewDefaultSolver returns a solver using DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

func (s *Solver) shouldStop() bool {
	// Budget precedence: time > restarts > conflicts (no decision budget).
	if s.timeout >= 0 && s.timeout <= time.Since(s.startTime) {
		return true
	}
	if s.maxRestarts >= 0 && s.maxRestarts <= s.callRestarts {
		return true
	}
	if s.maxConflicts >= 0 && s.maxConflicts <= s.callConflicts {
		return true
	}
	return false
}

func (s *Solver) NumVariables() int     { return len(s.assigns) / 2 }
func (s *Solver) NumAssigns() int       { return len(s.trail) }
func (s *Solver) NumConstraints() int   { return len(s.clauses) }
func (s *Solver) NumLearnts() int       { return len(s.learnts) }
func (s *Solver) VarValue(v int) LBool  { return s.assigns[PositiveLiteral(v)] }
func (s *Solver) LitValue(l Literal) LBool {
	return s.assigns[l]
}

// AddVariable appends a fresh variable and returns its id. It may only be
// called before the first Solve (see AddVariableRuntime for the post-start
// variant).
func (s *Solver) AddVariable() int {
	return s.addVariable()
}

func (s *Solver) addVariable() int {
	index := s.NumVariables()
	s.watchers = append(s.watchers, nil, nil)
	s.binImpl = append(s.binImpl, nil, nil)
	s.postPropByLit = append(s.postPropByLit, nil, nil)
	s.reason = append(s.reason, Reason{})
	s.level = append(s.level, -1)
	s.varFlags = append(s.varFlags, 0)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.activities = append(s.activities, 0)
	s.seenVar.Expand()
	s.supportsFor = append(s.supportsFor, nil)
	s.order.onNewVar()
	return index
}

// AddVariableRuntime grows the heuristic and per-literal structures for a
// variable introduced after search has begun. It is rejected while a
// conflict is being analyzed but not yet backjumped past.
func (s *Solver) AddVariableRuntime() (int, error) {
	if s.midBackjump {
		return 0, fmt.Errorf("sat: AddVariableRuntime called between conflict analysis and backjump")
	}
	return s.addVariable(), nil
}

// watch registers clause c to be woken when literal `on` becomes true,
// caching `guard` (the clause's other watched literal) alongside it.
func (s *Solver) watch(c *Clause, on Literal, guard Literal) {
	s.watchers[on] = append(s.watchers[on], watcher{clause: c, guard: guard})
}

// unwatch removes clause c from the watch list of literal `on`.
func (s *Solver) unwatch(c *Clause, on Literal) {
	list := s.watchers[on]
	j := 0
	for i := range list {
		if list[i].clause != c {
			list[j] = list[i]
			j++
		}
	}
	s.watchers[on] = list[:j]
}

// AddClause accepts a (possibly mutated in place) clause, performs
// tautology/duplicate/false-literal cleanup, and dispatches it as a unit
// fact, a binary clause (specially stored in binImpl), or a long clause
// (attach two watches, append to clauses). It returns an error only for
// malformed input (out-of-range variable ids) or when called above the root
// level; a trivial root-level
// contradiction is reported by making the solver permanently unsat, not by
// an error return.
func (s *Solver) AddClause(literals []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause called above the root level")
	}
	for _, l := range literals {
		if l.VarID() < 0 || l.VarID() >= s.NumVariables() {
			return fmt.Errorf("sat: literal %v refers to an unknown variable", l)
		}
	}

	if len(literals) == 2 {
		if s.addBinaryClause(literals[0], literals[1]) {
			return nil
		}
		s.unsat = true
		return nil
	}

	c, ok := NewClause(s, literals, false)
	if c != nil {
		c.position = len(s.clauses)
		s.clauses = append(s.clauses, c)
	}
	if !ok {
		s.unsat = true
	}
	return nil
}

// addBinaryClause dispatches (a ∨ b) into the binary-implication lists
// (¬a ⇒ b and ¬b ⇒ a) rather than allocating a Clause. It returns false on
// a root-level contradiction.
func (s *Solver) addBinaryClause(a, b Literal) bool {
	if a == b.Opposite() {
		return true // tautology
	}
	va, vb := s.LitValue(a), s.LitValue(b)
	if va == True || vb == True {
		return true
	}
	if va == False && vb == False {
		return false
	}
	if va == False {
		return s.enqueue(b, Reason{})
	}
	if vb == False {
		return s.enqueue(a, Reason{})
	}
	s.binImpl[a.Opposite()] = append(s.binImpl[a.Opposite()], b)
	s.binImpl[b.Opposite()] = append(s.binImpl[b.Opposite()], a)
	return true
}

// AddLearnedClause appends a clause directly to the learnt database and
// attaches its watches, without the tautology/duplicate checks AddClause
// performs (the caller is expected to have already deduplicated it, as
// conflict analysis and clause import both do). preferBinary stores
// two-literal clauses in the binary-implication lists instead of as a full
// Clause, matching AddClause's dispatch. The solver is marked unsat by an
// empty clause, by a unit clause whose literal is already false, and (with
// preferBinary) by a two-literal clause whose literals are both false; a
// longer clause is stored without checking its literals' current values.
func (s *Solver) AddLearnedClause(literals []Literal, preferBinary bool) *Clause {
	if preferBinary && len(literals) == 2 {
		if !s.addBinaryClause(literals[0], literals[1]) {
			s.unsat = true
		}
		return nil
	}
	c, ok := NewClause(s, literals, true)
	if c != nil {
		c.position = len(s.learnts)
		s.learnts = append(s.learnts, c)
	} else if !ok {
		s.unsat = true
	}
	return c
}

func (s *Solver) removeClauseAt(clauses []*Clause, pos int) []*Clause {
	last := len(clauses) - 1
	clauses[pos] = clauses[last]
	clauses[pos].position = pos
	clauses = clauses[:last]
	return clauses
}

// Simplify simplifies the clause database according to root-level
// assignments, removing satisfied clauses. It must only be called at
// decision level 0 with an empty propagation queue.
func (s *Solver) Simplify() bool {
	if s.decisionLevel() != 0 {
		log.Fatalf("sat: Simplify called above the root level")
	}
	if s.hasNext() {
		log.Fatalf("sat: Simplify called with a non-empty propagation queue")
	}
	if s.unsat {
		return false
	}
	if r, _ := s.Propagate(); !r.IsNone() {
		s.unsat = true
		return false
	}

	s.simplifyInPlace(&s.learnts)
	s.simplifyInPlace(&s.clauses)
	return true
}

func (s *Solver) simplifyInPlace(clauses *[]*Clause) {
	list := *clauses
	j := 0
	for i := 0; i < len(list); i++ {
		if list[i].Simplify(s) {
			list[i].Remove(s)
			continue
		}
		list[i].position = j
		list[j] = list[i]
		j++
	}
	*clauses = list[:j]
}

func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		s.clauseInc *= 1e-100
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
	}
}

func (s *Solver) decayClauseActivity() { s.clauseInc *= s.clauseDecay }

func (s *Solver) bumpVarActivity(v int) {
	s.activities[v] += s.varInc
	if s.activities[v] > 1e100 {
		s.varInc *= 1e-100
		for i := range s.activities {
			s.activities[i] *= 1e-100
		}
	}
	s.order.update(v)
}

func (s *Solver) decayVarActivity() { s.varInc /= s.varDecay }
