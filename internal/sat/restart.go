package sat

// RestartPolicy and DeletionPolicy (deletion.go) together form the
// search-manager: two independent implementations of the same interface
// rather than a Glucose/Minisat branch sprinkled through the main loop.
// The choice is fixed for the lifetime of a Solve call.
type RestartPolicy interface {
	// OnConflict records a conflict's LBD and the trail size at the time it
	// occurred, and reports whether the solver should restart now.
	OnConflict(lbd uint32, trailSize int) bool
	// OnRestart notifies the policy that a restart has just happened.
	OnRestart()
}

// MinisatRestart is the geometric/Luby sequence-driven policy: a restart
// occurs once the number of conflicts since the last restart reaches
// restartFirst * luby(restartInc, restartCount).
type MinisatRestart struct {
	conflictsSinceRestart int64
	restartCount          int64
	restartFirst          float64
	restartInc            float64
}

func NewMinisatRestart() *MinisatRestart {
	return &MinisatRestart{restartFirst: 100, restartInc: 2}
}

func (r *MinisatRestart) OnConflict(lbd uint32, trailSize int) bool {
	_ = lbd
	_ = trailSize
	r.conflictsSinceRestart++
	threshold := r.restartFirst * luby(r.restartInc, r.restartCount)
	return float64(r.conflictsSinceRestart) >= threshold
}

func (r *MinisatRestart) OnRestart() {
	r.conflictsSinceRestart = 0
	r.restartCount++
}

// luby returns y raised to the exponent of the x-th (0-indexed) element of
// the Luby sequence, the standard restart schedule; for y = 2 it yields
// 1 1 2 1 1 2 4 1 1 2 1 1 2 4 8 ...
func luby(y float64, x int64) float64 {
	size, seq := int64(1), int64(0)
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	pow := 1.0
	for i := int64(0); i < seq; i++ {
		pow *= y
	}
	return pow
}

// queueWindow is a bounded moving-average window used by GlucoseRestart for
// both the recent-LBD queue and the recent-trail-size queue, the same
// recency-averaging trick as a Glucose-style solver's restart heuristic.
type queueWindow struct {
	values   []int
	capacity int
	ptr      int
	full     bool

	totalCount int64
	totalSum   int64
	recentSum  int64
}

func newQueueWindow(capacity int) *queueWindow {
	return &queueWindow{values: make([]int, capacity), capacity: capacity}
}

func (q *queueWindow) add(v int) {
	q.totalCount++
	q.totalSum += int64(v)

	if q.full {
		q.recentSum -= int64(q.values[q.ptr])
	}
	q.values[q.ptr] = v
	q.recentSum += int64(v)
	q.ptr++
	if q.ptr == q.capacity {
		q.ptr = 0
		q.full = true
	}
}

func (q *queueWindow) size() int {
	if q.full {
		return q.capacity
	}
	return q.ptr
}

func (q *queueWindow) recentAvg() float64 {
	n := q.size()
	if n == 0 {
		return 0
	}
	return float64(q.recentSum) / float64(n)
}

func (q *queueWindow) globalAvg() float64 {
	if q.totalCount == 0 {
		return 0
	}
	return float64(q.totalSum) / float64(q.totalCount)
}

func (q *queueWindow) clear() {
	q.ptr, q.full, q.recentSum = 0, false, 0
}

// GlucoseRestart is the LBD-queue policy: a bounded window of recent LBDs
// (size ~50) and of recent trail sizes (size ~5000). It restarts when
// the recent-LBD average times K exceeds the global LBD average, unless the
// trail has grown unusually long relative to its own window, in which case
// the restart is postponed (a "block").
type GlucoseRestart struct {
	lbds   *queueWindow
	trails *queueWindow

	minConflictsBeforeRestart int64
	k                         float64
	blockFactor               float64
	conflictsSinceRestart     int64
}

func NewGlucoseRestart() *GlucoseRestart {
	return &GlucoseRestart{
		lbds:                      newQueueWindow(50),
		trails:                    newQueueWindow(5000),
		minConflictsBeforeRestart: 50,
		k:                         0.8,
		blockFactor:               1.4,
	}
}

func (r *GlucoseRestart) OnConflict(lbd uint32, trailSize int) bool {
	r.lbds.add(int(lbd))
	r.trails.add(trailSize)
	r.conflictsSinceRestart++

	if r.trails.size() == r.trails.capacity && float64(trailSize) > r.blockFactor*r.trails.recentAvg() {
		// Trail is unusually long: force a block of restarts by clearing
		// the LBD window instead of restarting now.
		r.lbds.clear()
		return false
	}

	if r.conflictsSinceRestart < r.minConflictsBeforeRestart || r.lbds.size() < r.lbds.capacity {
		return false
	}
	return r.lbds.recentAvg()*r.k > r.lbds.globalAvg()
}

func (r *GlucoseRestart) OnRestart() {
	r.lbds.clear()
	r.conflictsSinceRestart = 0
}
