package wise

import (
	"sync"
)

// instanceCache provides thread-safe storage of instance references keyed by
// provider identity
type instanceCache struct {
	instances map[Provider]*InstanceRef
	mu        sync.RWMutex
}

// newInstanceCache creates a new instance cache
func newInstanceCache() *instanceCache {
	return &instanceCache{
		instances: make(map[Provider]*InstanceRef),
	}
}

// get retrieves an instance reference from the cache
func (c *instanceCache) get(key Provider) (*InstanceRef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ref, ok := c.instances[key]
	return ref, ok
}

// set stores an instance reference in the cache
func (c *instanceCache) set(key Provider, ref *InstanceRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[key] = ref
}

// setIfAbsent stores ref unless key already has a reference.
// It reports whether ref was stored.
func (c *instanceCache) setIfAbsent(key Provider, ref *InstanceRef) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.instances[key]; ok {
		return false
	}
	c.instances[key] = ref
	return true
}

// delete removes an instance reference from the cache
func (c *instanceCache) delete(key Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.instances, key)
}

// len returns the number of cached references
func (c *instanceCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.instances)
}
