package wise

import (
	"context"
	"fmt"
	"reflect"
)

// Inject resolves the first registered token through the container that is
// constructing the caller. ctx must be the context passed to the running
// constructor or factory; anywhere else Inject fails with a ContextError.
//
//	func NewService(ctx context.Context) (*Service, error) {
//	    db, err := wise.Inject[*Database](ctx, DatabaseClass)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &Service{db: db}, nil
//	}
func Inject[T any](ctx context.Context, tokens ...Token) (T, error) {
	ic := injectionFromContext(ctx)
	if ic == nil {
		var zero T
		return zero, ContextError{Call: "Inject"}
	}

	instance, err := ic.container.Resolve(ctx, tokens...)
	if err != nil {
		var zero T
		return zero, err
	}

	return cast[T](instance, "Inject")
}

// InjectBy is like Inject, but first records owner as the caller's dependent.
// If the requested graph cycles back to the caller's provider, the cyclic
// side receives owner instead of failing with a CircularDependencyError.
//
//	func NewWizard(ctx context.Context) (*Wizard, error) {
//	    w := &Wizard{}
//	    wand, err := wise.InjectBy[*Wand](ctx, w, WandClass) // WandClass may Inject WizardClass
//	    ...
//	}
//
// owner is handed out before its constructor returns; the cyclic side must
// not depend on fields that are assigned afterwards.
func InjectBy[T any](ctx context.Context, owner any, tokens ...Token) (T, error) {
	var zero T

	ic := injectionFromContext(ctx)
	if ic == nil {
		return zero, ContextError{Call: "InjectBy"}
	}

	frame, ok := ic.resolution.peek(0)
	if !ok {
		return zero, InvariantError{Detail: "InjectBy called with an empty resolution stack"}
	}

	ic.resolution.dependents.set(frame.Provider, &InstanceRef{Current: owner})
	defer ic.resolution.dependents.delete(frame.Provider)

	instance, err := ic.container.Resolve(ctx, tokens...)
	if err != nil {
		return zero, err
	}

	return cast[T](instance, "InjectBy")
}

// InjectAll resolves every registration of the first registered token
// through the container that is constructing the caller.
func InjectAll[T any](ctx context.Context, tokens ...Token) ([]T, error) {
	ic := injectionFromContext(ctx)
	if ic == nil {
		return nil, ContextError{Call: "InjectAll"}
	}

	instances, err := ic.container.ResolveAll(ctx, tokens...)
	if err != nil {
		return nil, err
	}

	return castAll[T](instances, "InjectAll")
}

// InjectorToken resolves to an Injector bound to the requester's context.
var InjectorToken = NewType[*Injector]("Injector")

var injectorProvider = &FactoryProvider{
	Factory: func(ctx context.Context) (any, error) {
		return newInjector(ctx)
	},
}

// Injector lets code reach back into the graph after its constructor has
// returned. It replays the context of whoever requested it: the same
// container and resolution, the requester's frame (so inherited scopes
// resolve against the requester) and its dependent record.
//
//	func NewPool(ctx context.Context) (*Pool, error) {
//	    injector, err := wise.Inject[*wise.Injector](ctx, wise.InjectorToken)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &Pool{newConn: func() (*Conn, error) {
//	        return wise.InjectFrom[*Conn](injector, ConnClass)
//	    }}, nil
//	}
type Injector struct {
	container  *Container
	resolution *Resolution
	frame      *Frame
	dependent  *InstanceRef
}

func newInjector(ctx context.Context) (*Injector, error) {
	ic := injectionFromContext(ctx)
	if ic == nil {
		return nil, ContextError{Call: "Injector"}
	}

	injector := &Injector{
		container:  ic.container,
		resolution: ic.resolution,
	}

	// Frame 0 is the injector's own; frame 1 is the requester.
	if frame, ok := ic.resolution.peek(1); ok {
		injector.frame = &frame
		if ref, ok := ic.resolution.dependents.get(frame.Provider); ok {
			injector.dependent = ref
		}
	}

	return injector, nil
}

// Container returns the container the injector resolves through.
func (i *Injector) Container() *Container {
	return i.container
}

// Inject resolves tokens in the captured context.
func (i *Injector) Inject(tokens ...Token) (any, error) {
	var instance any
	err := i.Run(context.Background(), func(ctx context.Context) error {
		var err error
		instance, err = i.container.Resolve(ctx, tokens...)
		return err
	})
	return instance, err
}

// InjectAll resolves every registration of tokens in the captured context.
func (i *Injector) InjectAll(tokens ...Token) ([]any, error) {
	var instances []any
	err := i.Run(context.Background(), func(ctx context.Context) error {
		var err error
		instances, err = i.container.ResolveAll(ctx, tokens...)
		return err
	})
	return instances, err
}

// Run calls fn with a context derived from ctx that carries the captured
// injection context, so fn may use Inject, InjectBy and InjectAll.
// The context stops being usable for injection once fn returns.
func (i *Injector) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	resolution := i.resolution

	if i.frame != nil && !resolution.has(i.frame.Provider) {
		resolution.push(*i.frame)
		defer resolution.pop()
	}

	if i.frame != nil && i.dependent != nil {
		if resolution.dependents.setIfAbsent(i.frame.Provider, i.dependent) {
			defer resolution.dependents.delete(i.frame.Provider)
		}
	}

	ic := &injectionContext{container: i.container, resolution: resolution}
	defer ic.closed.Store(true)

	return fn(contextWithInjection(ctx, ic))
}

// InjectFrom is the typed form of Injector.Inject.
func InjectFrom[T any](injector *Injector, tokens ...Token) (T, error) {
	instance, err := injector.Inject(tokens...)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](instance, "Injector.Inject")
}

// InjectAllFrom is the typed form of Injector.InjectAll.
func InjectAllFrom[T any](injector *Injector, tokens ...Token) ([]T, error) {
	instances, err := injector.InjectAll(tokens...)
	if err != nil {
		return nil, err
	}
	return castAll[T](instances, "Injector.InjectAll")
}

// cast asserts instance to T. A nil instance yields the zero T.
func cast[T any](instance any, call string) (T, error) {
	var zero T
	if instance == nil {
		return zero, nil
	}

	result, ok := instance.(T)
	if !ok {
		return zero, TypeMismatchError{
			Expected: reflect.TypeFor[T](),
			Actual:   reflect.TypeOf(instance),
			Context:  call,
		}
	}

	return result, nil
}

func castAll[T any](instances []any, call string) ([]T, error) {
	results := make([]T, 0, len(instances))
	for i, instance := range instances {
		result, err := cast[T](instance, fmt.Sprintf("%s item %d", call, i))
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
