package wise

import (
	"sync"

	"github.com/google/uuid"

	"github.com/junioryono/wise/internal/stack"
)

// Frame is an entry on a resolution stack: a provider being instantiated and
// the scope it was resolved to.
type Frame struct {
	Provider Provider

	// Scope is never ScopeInherited.
	Scope Scope

	// Name is the display name of the token being resolved.
	Name string
}

// Resolution is the state of one root resolve call: the stack of providers
// being instantiated, the resolution-scoped instances and the dependent
// back-references recorded by InjectBy.
//
// A Resolution is created when resolution starts outside any live
// injection context and is dropped when that call returns.
type Resolution struct {
	id string

	mu    sync.Mutex
	stack *stack.KeyedStack[Provider, Frame]

	instances  *instanceCache
	dependents *instanceCache
}

func newResolution() *Resolution {
	return &Resolution{
		id:         uuid.NewString(),
		stack:      stack.New[Provider, Frame](),
		instances:  newInstanceCache(),
		dependents: newInstanceCache(),
	}
}

// ID returns the unique identifier of the resolution.
func (r *Resolution) ID() string {
	return r.id
}

// Depth returns the number of providers currently being instantiated.
func (r *Resolution) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.Len()
}

func (r *Resolution) push(frame Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stack.Push(frame.Provider, frame)
}

func (r *Resolution) pop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stack.Pop()
}

// peek returns the frame depth positions below the top of the stack.
func (r *Resolution) peek(depth int) (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.Peek(depth)
}

func (r *Resolution) has(p Provider) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.Has(p)
}

// path returns the names of the frames from the bottom of the stack,
// followed by name.
func (r *Resolution) path(name string) []string {
	r.mu.Lock()
	frames := r.stack.Values()
	r.mu.Unlock()

	path := make([]string, 0, len(frames)+1)
	for _, frame := range frames {
		path = append(path, frame.Name)
	}
	return append(path, name)
}
