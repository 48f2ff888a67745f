// Package record holds value objects shared by the record store and the search layer.
package record

import "sort"

// IDSet is a set of record identifiers.
type IDSet map[int64]struct{}

// NewIDSet creates a set from ids.
func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s IDSet) Add(id int64) { s[id] = struct{}{} }

// Has reports whether id is in the set.
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids.
func (s IDSet) Len() int { return len(s) }

// Intersect keeps only ids present in other.
func (s IDSet) Intersect(other IDSet) {
	for id := range s {
		if !other.Has(id) {
			delete(s, id)
		}
	}
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
