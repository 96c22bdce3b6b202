// Package sparse provides a sparse set of uint32 values with O(1) insert,
// membership test and clear, used by the dfa package to accumulate NFA
// state ids while running subset construction without reallocating a map
// per compound state.
package sparse

import "github.com/theblackbeans/nuts/internal/conv"

// Set is a sparse set over the range [0, capacity). It maintains a sparse
// index array for O(1) membership testing and a dense array for O(1)
// iteration and O(1) Clear.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// NewSet creates a Set that can hold values in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. Insert is a no-op if value is already
// present or out of range.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	idx := conv.IntToUint32(len(s.dense))
	s.dense = append(s.dense, value)
	s.sparse[value] = idx
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= conv.IntToUint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < conv.IntToUint32(len(s.dense)) && s.dense[idx] == value
}

// Clear empties the set in O(1) time; the backing arrays are reused.
func (s *Set) Clear() { s.dense = s.dense[:0] }

// Len returns the number of elements currently in the set.
func (s *Set) Len() int { return len(s.dense) }

// Values returns the set's members in insertion order. The returned slice
// aliases the set's internal storage and is only valid until the next
// mutation.
func (s *Set) Values() []uint32 { return s.dense }
