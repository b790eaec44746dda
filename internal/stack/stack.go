// Package stack provides a LIFO stack with constant-time membership checks.
package stack

// KeyedStack is a stack of values, each pushed under a key.
// A key may be pushed more than once; it stays a member until its last
// occurrence is popped.
type KeyedStack[K comparable, V any] struct {
	entries []entry[K, V]
	counts  map[K]int
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an empty stack.
func New[K comparable, V any]() *KeyedStack[K, V] {
	return &KeyedStack[K, V]{counts: make(map[K]int)}
}

// Push adds value to the top of the stack under key.
func (s *KeyedStack[K, V]) Push(key K, value V) {
	s.entries = append(s.entries, entry[K, V]{key: key, value: value})
	s.counts[key]++
}

// Pop removes and returns the top value.
func (s *KeyedStack[K, V]) Pop() (V, bool) {
	if len(s.entries) == 0 {
		var zero V
		return zero, false
	}

	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]

	if s.counts[top.key]--; s.counts[top.key] <= 0 {
		delete(s.counts, top.key)
	}

	return top.value, true
}

// Peek returns the value depth positions below the top; Peek(0) is the top.
func (s *KeyedStack[K, V]) Peek(depth int) (V, bool) {
	i := len(s.entries) - 1 - depth
	if depth < 0 || i < 0 {
		var zero V
		return zero, false
	}
	return s.entries[i].value, true
}

// Has reports whether key is on the stack.
func (s *KeyedStack[K, V]) Has(key K) bool {
	return s.counts[key] > 0
}

// Len returns the number of entries.
func (s *KeyedStack[K, V]) Len() int {
	return len(s.entries)
}

// Values returns the values bottom to top.
func (s *KeyedStack[K, V]) Values() []V {
	out := make([]V, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.value
	}
	return out
}
