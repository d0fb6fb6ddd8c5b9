package sat

import (
	"github.com/rhartert/yagh"
)

// VarOrder is the Minisat-style VSIDS decision heuristic: a max-heap keyed
// on activity, phase saving, and a preferred-choice queue the optimization
// driver can inject into. Glucose mode reuses the same type; besides the
// restart/deletion policy, GlucoseOptions only changes the variable decay
// and turns phase saving on.
type VarOrder struct {
	solver      *Solver
	phase       []LBool
	phaseSaving bool
	heap        *yagh.IntMap[float64]
	preferred   []Literal
}

// NewVarOrder returns an order with no variables; onNewVar grows it as the
// solver's variable count grows, so it can be constructed before or after
// AddVariable calls.
func NewVarOrder(s *Solver) *VarOrder {
	return &VarOrder{
		solver:      s,
		phaseSaving: s.phaseSaving,
		heap:        yagh.New[float64](0),
	}
}

func (vo *VarOrder) onNewVar() {
	v := vo.solver.NumVariables() - 1
	vo.phase = append(vo.phase, Unknown)
	vo.heap.GrowBy(1)
	vo.heap.Put(v, -vo.solver.activities[v])
}

// update refreshes v's position in the heap after its activity changed.
func (vo *VarOrder) update(v int) {
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -vo.solver.activities[v])
	}
}

// onUnroll re-inserts v into the heap (if absent) and records its phase for
// phase saving, if enabled.
func (vo *VarOrder) onUnroll(v int) {
	if vo.phaseSaving {
		vo.phase[v] = vo.solver.VarValue(v)
	}
	if !vo.heap.Contains(v) {
		vo.heap.Put(v, -vo.solver.activities[v])
	}
}

// InjectPreferred pushes literals the optimization driver wants tried first,
// most preferred last (they are consumed LIFO so the most recent call wins).
func (vo *VarOrder) InjectPreferred(lits []Literal) {
	vo.preferred = append(vo.preferred, lits...)
}

// FlushPreferred discards any preferred choices not yet consumed.
func (vo *VarOrder) FlushPreferred() {
	vo.preferred = vo.preferred[:0]
}

// Select returns the next decision literal: the most recently injected
// still-undefined preferred literal if any remain, otherwise the top
// undefined variable from the activity heap with its saved (or default
// negative) phase.
func (vo *VarOrder) Select() Literal {
	for len(vo.preferred) > 0 {
		l := vo.preferred[len(vo.preferred)-1]
		vo.preferred = vo.preferred[:len(vo.preferred)-1]
		if vo.solver.VarValue(l.VarID()) == Unknown {
			return l
		}
	}

	for {
		next, ok := vo.heap.Pop()
		if !ok {
			panic("sat: decision requested with no undefined variables")
		}
		if vo.solver.VarValue(next.Elem) != Unknown {
			continue
		}
		switch vo.phase[next.Elem] {
		case True:
			return vo.solver.PositiveLiteral(next.Elem)
		default:
			return vo.solver.NegativeLiteral(next.Elem)
		}
	}
}

func (s *Solver) PositiveLiteral(v int) Literal { return PositiveLiteral(v) }
func (s *Solver) NegativeLiteral(v int) Literal { return NegativeLiteral(v) }
