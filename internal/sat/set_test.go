package sat

import "testing"

func TestResetSet(t *testing.T) {
	rs := &ResetSet{}
	for i := 0; i < 4; i++ {
		rs.Expand()
	}

	if rs.Contains(0) {
		t.Errorf("Contains(0) = true before any Add")
	}

	rs.Add(1)
	rs.Add(2)

	if !rs.Contains(1) || !rs.Contains(2) {
		t.Errorf("Contains: added elements not found")
	}
	if rs.Contains(0) || rs.Contains(3) {
		t.Errorf("Contains: unadded elements found")
	}

	rs.Clear()

	for i := 0; i < 4; i++ {
		if rs.Contains(i) {
			t.Errorf("Contains(%d) = true after Clear", i)
		}
	}

	rs.Add(0)
	if !rs.Contains(0) {
		t.Errorf("Contains(0) = false after re-Add following Clear")
	}
}

func TestResetSet_TimestampOverflow(t *testing.T) {
	rs := &ResetSet{current: ^uint32(0)}
	rs.Expand()

	rs.Clear()
	if rs.current != 1 {
		t.Errorf("current after overflow = %d, want 1", rs.current)
	}
	if rs.Contains(0) {
		t.Errorf("Contains(0) = true right after overflow reset")
	}

	rs.Add(0)
	if !rs.Contains(0) {
		t.Errorf("Contains(0) = false after Add following overflow reset")
	}
}
