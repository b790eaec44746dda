package wise

import (
	"context"
	"fmt"
	"reflect"
)

// Constructible is a token that knows how to build its own value.
// A container can resolve a constructible token without a registration,
// either by auto-registering it or by constructing it ad hoc.
//
// Constructible is implemented by *Class only.
type Constructible interface {
	Token

	// Metadata returns the class's declared registration metadata.
	Metadata() *Metadata

	construct(ctx context.Context) (any, error)
}

// Metadata is the registration record declared for a class.
// It is populated once, when the class is created, and only read afterwards.
type Metadata struct {
	// Scope is the declared scope, or zero when the class declares none.
	Scope Scope

	// AutoRegister overrides the container's auto-registration policy
	// when non-nil.
	AutoRegister *bool

	// Tokens are alias tokens the class is registered under, in addition to
	// the class itself.
	Tokens []Token

	// Provider is the class's provider. Every registration of the class
	// shares it, so the class has a single identity during a resolution.
	Provider *ClassProvider
}

// Class is a constructible token for values of type T.
//
// The constructor receives a context carrying the active injection context
// and may request its own dependencies with Inject, InjectBy and InjectAll:
//
//	var WizardClass = wise.NewClass(func(ctx context.Context) (*Wizard, error) {
//	    w := &Wizard{}
//	    wand, err := wise.InjectBy[*Wand](ctx, w, WandClass)
//	    if err != nil {
//	        return nil, err
//	    }
//	    w.Wand = wand
//	    return w, nil
//	}, wise.Scoped(wise.ScopeContainer))
type Class[T any] struct {
	name        string
	constructor func(ctx context.Context) (T, error)
	metadata    *Metadata
}

// NewClass creates a class from its constructor and options.
// It panics if construct is nil.
func NewClass[T any](construct func(ctx context.Context) (T, error), opts ...ClassOption) *Class[T] {
	if construct == nil {
		panic(InvariantError{Detail: "class constructor cannot be nil"})
	}

	options := &classOptions{metadata: &Metadata{}}
	for _, opt := range opts {
		if opt != nil {
			opt.applyClassOption(options)
		}
	}

	class := &Class[T]{
		name:        options.name,
		constructor: construct,
		metadata:    options.metadata,
	}
	if class.name == "" {
		class.name = typeName(reflect.TypeFor[T]())
	}
	class.metadata.Provider = &ClassProvider{Class: class}

	return class
}

// Name returns the class's display name.
func (c *Class[T]) Name() string {
	return c.name
}

// String returns a representation including the value type.
func (c *Class[T]) String() string {
	return fmt.Sprintf("Class[%s](%s)", typeName(reflect.TypeFor[T]()), c.name)
}

// Metadata returns the class's declared registration metadata.
func (c *Class[T]) Metadata() *Metadata {
	return c.metadata
}

func (c *Class[T]) construct(ctx context.Context) (any, error) {
	return c.constructor(ctx)
}

func (c *Class[T]) token() {}

// ClassOption configures the metadata of a class.
type ClassOption interface {
	applyClassOption(*classOptions)
}

type classOptions struct {
	name     string
	metadata *Metadata
}

type classOptionFunc func(*classOptions)

func (f classOptionFunc) applyClassOption(opts *classOptions) {
	f(opts)
}

// Named overrides a class's display name, which defaults to the name of its
// value type.
func Named(name string) ClassOption {
	return classOptionFunc(func(opts *classOptions) {
		opts.name = name
	})
}

// AutoRegister controls whether resolving the unregistered class registers it
// first. It takes precedence over the container's WithAutoRegister policy.
func AutoRegister(enable bool) ClassOption {
	return classOptionFunc(func(opts *classOptions) {
		opts.metadata.AutoRegister = &enable
	})
}

// As adds alias tokens. Registering the class registers it under each alias
// as well as under the class itself.
func As(tokens ...Token) ClassOption {
	return classOptionFunc(func(opts *classOptions) {
		opts.metadata.Tokens = append(opts.metadata.Tokens, tokens...)
	})
}

// ScopeOption declares a scope for a class or for a single registration.
type ScopeOption interface {
	ClassOption
	RegisterOption
}

type scopeOption Scope

func (o scopeOption) applyClassOption(opts *classOptions) {
	opts.metadata.Scope = Scope(o)
}

func (o scopeOption) applyRegisterOption(opts *RegistrationOptions) {
	opts.Scope = Scope(o)
}

// Scoped declares scope. Used on a class it becomes the class's declared
// scope; used on RegisterProvider it overrides whatever the provider's class
// declares.
func Scoped(scope Scope) ScopeOption {
	return scopeOption(scope)
}
