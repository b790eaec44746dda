package registry

import "sync"

// Registry maps a key to an ordered list of values.
// Lookups that miss fall through to the parent registry; writes always
// target the registry they are called on.
type Registry[K comparable, V any] struct {
	mu     sync.RWMutex
	parent *Registry[K, V]
	values map[K][]V
}

// New creates a registry chained to parent. parent may be nil.
func New[K comparable, V any](parent *Registry[K, V]) *Registry[K, V] {
	return &Registry[K, V]{
		parent: parent,
		values: make(map[K][]V),
	}
}

// Parent returns the registry this one falls through to, or nil.
func (r *Registry[K, V]) Parent() *Registry[K, V] {
	return r.parent
}

// Set appends value to the values registered for key
func (r *Registry[K, V]) Set(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = append(r.values[key], value)
}

// Get returns the most recently registered value for key.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	values := r.values[key]
	r.mu.RUnlock()

	if len(values) > 0 {
		return values[len(values)-1], true
	}

	if r.parent != nil {
		return r.parent.Get(key)
	}

	var zero V
	return zero, false
}

// GetAll returns every value registered for key in registration order.
// A registry that holds values for key shadows its parent entirely.
func (r *Registry[K, V]) GetAll(key K) ([]V, bool) {
	r.mu.RLock()
	values := r.values[key]
	r.mu.RUnlock()

	if len(values) > 0 {
		// Copy to avoid external mutations
		out := make([]V, len(values))
		copy(out, values)
		return out, true
	}

	if r.parent != nil {
		return r.parent.GetAll(key)
	}

	return nil, false
}

// Has reports whether key has a value here or in any parent.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	_, ok := r.values[key]
	r.mu.RUnlock()

	if ok {
		return true
	}

	return r.parent != nil && r.parent.Has(key)
}

// Delete removes every value registered for key on this registry only.
func (r *Registry[K, V]) Delete(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
}

// Clear removes every entry on this registry only.
func (r *Registry[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[K][]V)
}

// Len returns the number of keys held by this registry, excluding parents.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Range calls fn for every value held by this registry, excluding parents.
// fn must not modify the registry.
func (r *Registry[K, V]) Range(fn func(key K, value V)) {
	r.mu.RLock()
	snapshot := make(map[K][]V, len(r.values))
	for k, v := range r.values {
		snapshot[k] = v
	}
	r.mu.RUnlock()

	for key, values := range snapshot {
		for _, value := range values {
			fn(key, value)
		}
	}
}
