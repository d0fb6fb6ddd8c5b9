package sat

import "testing"

func TestLuby(t *testing.T) {
	// Standard Luby sequence, 0-indexed: 1 1 2 1 1 2 4 1 1 2 1 1 2 4 8 ...
	want := []float64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	for x, w := range want {
		if got := luby(2, int64(x)); got != w {
			t.Errorf("luby(2, %d) = %v, want %v", x, got, w)
		}
	}
}

func TestLuby_Scaled(t *testing.T) {
	if got, want := 100*luby(2, 0), 100.0; got != want {
		t.Errorf("100*luby(2, 0) = %v, want %v", got, want)
	}
	if got, want := 100*luby(2, 6), 400.0; got != want {
		t.Errorf("100*luby(2, 6) = %v, want %v", got, want)
	}
}

func TestMinisatRestart_TriggersAtThreshold(t *testing.T) {
	r := NewMinisatRestart()
	// restartFirst=100, restartInc=2: luby(2,0)=1, so threshold is 100.
	for i := 0; i < 99; i++ {
		if r.OnConflict(0, 0) {
			t.Fatalf("OnConflict restarted early at conflict %d", i)
		}
	}
	if !r.OnConflict(0, 0) {
		t.Errorf("OnConflict did not restart at the 100th conflict")
	}
}

func TestMinisatRestart_OnRestartResetsCounter(t *testing.T) {
	r := NewMinisatRestart()
	for i := 0; i < 100; i++ {
		r.OnConflict(0, 0)
	}
	r.OnRestart()
	if r.conflictsSinceRestart != 0 {
		t.Errorf("conflictsSinceRestart = %d after OnRestart, want 0", r.conflictsSinceRestart)
	}
	if r.restartCount != 1 {
		t.Errorf("restartCount = %d after one OnRestart, want 1", r.restartCount)
	}
}

func TestQueueWindow(t *testing.T) {
	q := newQueueWindow(3)

	if q.size() != 0 || q.recentAvg() != 0 || q.globalAvg() != 0 {
		t.Fatalf("fresh window not empty")
	}

	q.add(1)
	q.add(2)
	if q.size() != 2 {
		t.Errorf("size() = %d, want 2", q.size())
	}
	if got, want := q.recentAvg(), 1.5; got != want {
		t.Errorf("recentAvg() = %v, want %v", got, want)
	}

	q.add(3)
	q.add(9) // evicts the first 1, window now holds {2,3,9}
	if q.size() != 3 {
		t.Errorf("size() = %d, want 3 once full", q.size())
	}
	if got, want := q.recentAvg(), 14.0/3.0; got != want {
		t.Errorf("recentAvg() = %v, want %v", got, want)
	}
	if got, want := q.globalAvg(), (1.0+2.0+3.0+9.0)/4.0; got != want {
		t.Errorf("globalAvg() = %v, want %v", got, want)
	}

	q.clear()
	if q.size() != 0 {
		t.Errorf("size() = %d after clear, want 0", q.size())
	}
	if q.globalAvg() == 0 {
		t.Errorf("clear() must not reset the global average")
	}
}

func TestGlucoseRestart_RestartsWhenRecentLBDWorsens(t *testing.T) {
	r := NewGlucoseRestart()

	// Seed the global average with a long run of good (low) LBDs.
	for i := 0; i < 200; i++ {
		r.OnConflict(2, 1000)
	}
	r.OnRestart()

	// A sustained run of much worse LBDs should eventually trigger a
	// restart: the recent-average window fills with bad values while the
	// global average, weighted by the long good run, stays low.
	restarted := false
	for i := 0; i < 60; i++ {
		if r.OnConflict(50, 1000) {
			restarted = true
			break
		}
	}
	if !restarted {
		t.Errorf("GlucoseRestart never restarted despite a sustained high-LBD run")
	}
}
