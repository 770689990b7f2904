// Package slot implements a dense handle arena. Handles are small integers;
// a removed handle leaves a hole that the next Insert fills before the arena
// grows, lowest hole first.
package slot

import "github.com/bits-and-blooms/bitset"

// Map stores values under dense integer handles.
type Map[T any] struct {
	items    []T
	occupied bitset.BitSet
	count    int
}

// Insert stores v in the lowest vacated slot, or appends a new one.
func (m *Map[T]) Insert(v T) int {
	if m.count < len(m.items) {
		if id, ok := m.occupied.NextClear(0); ok && int(id) < len(m.items) {
			m.items[id] = v
			m.occupied.Set(id)
			m.count++
			return int(id)
		}
	}
	m.items = append(m.items, v)
	id := len(m.items) - 1
	m.occupied.Set(uint(id))
	m.count++
	return id
}

// Get returns the value stored under id.
func (m *Map[T]) Get(id int) (T, bool) {
	var zero T
	if id < 0 || id >= len(m.items) || !m.occupied.Test(uint(id)) {
		return zero, false
	}
	return m.items[id], true
}

// Remove vacates id. It reports false when id was not occupied.
func (m *Map[T]) Remove(id int) bool {
	if id < 0 || id >= len(m.items) || !m.occupied.Test(uint(id)) {
		return false
	}
	var zero T
	m.items[id] = zero
	m.occupied.Clear(uint(id))
	m.count--
	return true
}

// Len returns the slot array length, holes included.
func (m *Map[T]) Len() int { return len(m.items) }

// Count returns the number of occupied slots.
func (m *Map[T]) Count() int { return m.count }

// Range calls fn for every occupied slot in ascending id order until fn returns false.
func (m *Map[T]) Range(fn func(id int, v T) bool) {
	for i, item := range m.items {
		if !m.occupied.Test(uint(i)) {
			continue
		}
		if !fn(i, item) {
			return
		}
	}
}
