package sat

// ClauseExchange is the explicit message channel through which solvers
// share learned clauses, replacing a global shared queue with a value
// each solver is handed at construction (Options.Exchange).
// It is safe for concurrent use by multiple publishers and importers.
type ClauseExchange struct {
	ch chan []Literal
}

// NewClauseExchange returns a ClauseExchange buffering up to capacity
// clauses before Publish starts dropping them; a full buffer means nobody is
// importing, and losing a shareable clause is harmless (it can be relearned).
func NewClauseExchange(capacity int) *ClauseExchange {
	return &ClauseExchange{ch: make(chan []Literal, capacity)}
}

// Publish offers a clause for import by other solvers sharing this
// exchange. It never blocks: if the buffer is full, the clause is dropped.
func (e *ClauseExchange) Publish(literals []Literal) {
	if e == nil {
		return
	}
	clone := append([]Literal(nil), literals...)
	select {
	case e.ch <- clone:
	default:
	}
}

// tryImport returns one previously published clause, or (nil, false) if
// none is available. It never blocks.
func (e *ClauseExchange) tryImport() ([]Literal, bool) {
	if e == nil {
		return nil, false
	}
	select {
	case c := <-e.ch:
		return c, true
	default:
		return nil, false
	}
}

// ImportShared drains every clause currently queued on the solver's
// exchange and adds each one that survives root-level subsumption checking.
// It must only be called at decision level 0, and is a natural fit for the
// restart point the design notes call out.
func (s *Solver) ImportShared() {
	if s.exchange == nil {
		return
	}
	for {
		literals, ok := s.exchange.tryImport()
		if !ok {
			return
		}
		if s.subsumedAtRoot(literals) {
			continue
		}
		s.AddLearnedClause(literals, true)
	}
}

// subsumedAtRoot reports whether literals is already satisfied (one literal
// true at level 0) or reduces to nothing useful (every literal false at
// level 0), either of which makes importing it pointless.
func (s *Solver) subsumedAtRoot(literals []Literal) bool {
	falseCount := 0
	for _, l := range literals {
		switch s.LitValue(l) {
		case True:
			return true
		case False:
			falseCount++
		}
	}
	return falseCount == len(literals)
}
