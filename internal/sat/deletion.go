package sat

import "sort"

// DeletionPolicy is the learned-clause database reduction contract, paired
// with RestartPolicy to form the search-manager. Init is called once
// the initial clause set is known, OnRestart on every restart to grow the
// threshold, and ShouldDelete/Delete are consulted after every conflict.
type DeletionPolicy interface {
	Init(numConstraints int)
	OnRestart()
	ShouldDelete(s *Solver) bool
	Delete(s *Solver)
}

// MinisatDeletion triggers a reduction once the number of learned clauses in
// excess of the trail size reaches a threshold that grows by 5% on every
// restart, and keeps the more active half.
type MinisatDeletion struct {
	maxLearned float64
}

func NewMinisatDeletion() *MinisatDeletion {
	return &MinisatDeletion{}
}

func (d *MinisatDeletion) Init(numConstraints int) {
	d.maxLearned = float64(numConstraints) / 3
	if d.maxLearned < 100 {
		d.maxLearned = 100
	}
}

func (d *MinisatDeletion) OnRestart() {
	d.maxLearned += d.maxLearned / 20
}

func (d *MinisatDeletion) ShouldDelete(s *Solver) bool {
	return float64(len(s.learnts)-s.NumAssigns()) >= d.maxLearned
}

func (d *MinisatDeletion) Delete(s *Solver) {
	learnts := s.learnts
	sort.Slice(learnts, func(i, j int) bool {
		if learnts[i].isProtected() != learnts[j].isProtected() {
			return learnts[i].isProtected()
		}
		return learnts[i].activity > learnts[j].activity
	})

	keep := len(learnts) / 2
	s.reduceLearntsTo(keep)
}

// GlucoseDeletion triggers a reduction once the learned-clause count reaches
// a threshold that grows by a fixed increment on every restart, and keeps
// the low-LBD half: locked clauses and clauses with LBD <= 2 are always
// protected regardless of where the cut falls.
type GlucoseDeletion struct {
	threshold   float64
	base        float64
	increment   float64
	currRestart int
}

func NewGlucoseDeletion() *GlucoseDeletion {
	return &GlucoseDeletion{base: 2000, increment: 300}
}

func (d *GlucoseDeletion) Init(numConstraints int) {
	d.threshold = d.base
	_ = numConstraints
}

func (d *GlucoseDeletion) OnRestart() {
	d.currRestart++
	d.threshold = d.base + float64(d.currRestart)*d.increment
}

func (d *GlucoseDeletion) ShouldDelete(s *Solver) bool {
	return float64(len(s.learnts)) >= d.threshold
}

func (d *GlucoseDeletion) Delete(s *Solver) {
	learnts := s.learnts
	sort.Slice(learnts, func(i, j int) bool {
		if learnts[i].isProtected() != learnts[j].isProtected() {
			return learnts[i].isProtected()
		}
		if learnts[i].lbd != learnts[j].lbd {
			return learnts[i].lbd < learnts[j].lbd
		}
		return learnts[i].activity > learnts[j].activity
	})

	keep := len(learnts) / 2
	for _, c := range learnts[keep:] {
		if c.lbd <= 2 {
			keep++
		}
	}
	s.reduceLearntsTo(keep)
}

// reduceLearntsTo removes every non-locked clause at or past index keep from
// s.learnts (already sorted best-first by the caller), rebuilding the slice
// and its position indices.
func (s *Solver) reduceLearntsTo(keep int) {
	kept := s.learnts[:0:0]
	for i, c := range s.learnts {
		if i < keep || c.locked(s) {
			kept = append(kept, c)
			continue
		}
		c.Remove(s)
	}
	for i, c := range kept {
		c.position = i
	}
	s.learnts = kept
}
