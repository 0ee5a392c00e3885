package state

import "sort"

// SortedByCreation returns the notes ordered by creation time, ascending or
// descending. A missing creation time sorts as the earliest possible value.
// Equal keys fall back to id order so the result is deterministic, and for
// distinct keys the ascending order is the exact reversal of the descending
// one.
func (c *Collection) SortedByCreation(ascending bool) []*Note {
	notes := c.Notes()
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := sortKey(notes[i]), sortKey(notes[j])
		if a != b {
			if ascending {
				return a < b
			}
			return a > b
		}
		if ascending {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].ID > notes[j].ID
	})
	return notes
}

func sortKey(n *Note) int64 {
	if n.CreatedAt.IsZero() {
		return 0
	}
	return n.CreatedAt.UnixMilli()
}
