package sat

// ResetSet is a set of small integers (variable ids) that can be cleared in
// O(1) by bumping a generation timestamp instead of zeroing the backing
// array. It backs the "seen" set used by conflict analysis.
type ResetSet struct {
	addedAt []uint32
	current uint32
}

// Contains reports whether v was added since the last Clear.
func (rs *ResetSet) Contains(v int) bool {
	return v < len(rs.addedAt) && rs.addedAt[v] == rs.current
}

// Add marks v as a member of the set.
func (rs *ResetSet) Add(v int) {
	rs.addedAt[v] = rs.current
}

// Clear empties the set without touching the backing array in the common
// case.
func (rs *ResetSet) Clear() {
	rs.current++
	if rs.current == 0 { // wrapped around
		rs.current = 1
		for i := range rs.addedAt {
			rs.addedAt[i] = 0
		}
	}
}

// Expand grows the set's capacity by one slot (called from AddVariable).
// Generations start at 1, so a zeroed slot means "never added".
func (rs *ResetSet) Expand() {
	if rs.current == 0 {
		rs.current = 1
	}
	rs.addedAt = append(rs.addedAt, 0)
}
