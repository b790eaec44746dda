package wise

import "sync"

// InstanceRef holds a single produced value.
type InstanceRef struct {
	Current any
}

// RegistrationOptions are the resolution options of a registration.
type RegistrationOptions struct {
	// Scope is the declared scope; zero means the container default.
	Scope Scope
}

// RegisterOption configures a registration made with RegisterProvider.
type RegisterOption interface {
	applyRegisterOption(*RegistrationOptions)
}

// Registration binds a provider to a token together with its options and
// its container-scoped cache slot.
type Registration struct {
	Provider Provider
	Options  RegistrationOptions

	// mu guards instance. It is never held while a constructor runs.
	mu       sync.Mutex
	instance *InstanceRef
}

func newRegistration(provider Provider, options RegistrationOptions) *Registration {
	return &Registration{
		Provider: provider,
		Options:  options,
	}
}

// Instance returns the cached container-scoped instance, if any.
func (r *Registration) Instance() (*InstanceRef, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instance, r.instance != nil
}

func (r *Registration) clearInstance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instance = nil
}

// loadOrBuild returns the cached instance or builds and caches a new one.
// The slot is only locked to read and to store, so an instance under
// construction reads as not cached. When two builds race, the first one
// stored wins and both callers get it.
func (r *Registration) loadOrBuild(build func() (any, error)) (any, error) {
	if ref, ok := r.Instance(); ok {
		return ref.Current, nil
	}

	instance, err := build()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.instance == nil {
		r.instance = &InstanceRef{Current: instance}
	}
	return r.instance.Current, nil
}
