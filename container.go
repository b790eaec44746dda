package wise

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/junioryono/wise/internal/registry"
)

// ContainerToken resolves to the container performing the resolution.
var ContainerToken = NewType[*Container]("Container")

// Container holds registrations and builds instances from them.
//
// Every public method dispatches through a method table that middlewares
// may wrap; see ApplyMiddlewares.
type Container struct {
	id       string
	parent   *Container
	registry *registry.Registry[Token, *Registration]

	// baseLogger is the configured logger; logger adds the container id.
	baseLogger *zap.Logger
	logger     *zap.Logger

	defaultScope Scope
	autoRegister bool

	methods methods
}

// NewContainer creates a container.
//
//	c := wise.NewContainer(wise.WithAutoRegister(true))
//	c.Register(DatabaseClass)
//
//	db, err := wise.Resolve[*Database](ctx, c, DatabaseClass)
func NewContainer(opts ...ContainerOption) *Container {
	options := defaultContainerOptions()
	for _, opt := range opts {
		if opt != nil {
			opt.applyContainerOption(options)
		}
	}

	var parentRegistry *registry.Registry[Token, *Registration]
	if options.parent != nil {
		parentRegistry = options.parent.registry
	}

	c := &Container{
		id:           uuid.NewString(),
		parent:       options.parent,
		registry:     registry.New(parentRegistry),
		baseLogger:   options.logger,
		defaultScope: options.defaultScope,
		autoRegister: options.autoRegister,
	}
	c.logger = c.baseLogger.With(zap.String("container", c.id))

	c.methods = methods{
		resolve:          c.resolve,
		resolveAll:       c.resolveAll,
		register:         c.register,
		registerProvider: c.registerProvider,
		unregister:       c.unregister,
		isRegistered:     c.isRegistered,
		getCached:        c.getCached,
		clearCache:       c.clearCache,
		resetRegistry:    c.resetRegistry,
		createChild:      c.createChild,
	}

	c.registerBuiltins()

	return c
}

// ID returns the unique identifier of the container.
func (c *Container) ID() string {
	return c.id
}

// Parent returns the container this one was created from, or nil.
func (c *Container) Parent() *Container {
	return c.parent
}

// DefaultScope returns the scope used when a registration declares none.
func (c *Container) DefaultScope() Scope {
	return c.defaultScope
}

// AutoRegister reports whether unregistered classes are registered on first
// resolution.
func (c *Container) AutoRegister() bool {
	return c.autoRegister
}

// Register registers class under itself and every alias declared with As,
// using its declared scope.
// It panics if class is nil.
func (c *Container) Register(class Constructible) *Container {
	return c.methods.register(class)
}

// RegisterProvider registers provider under token.
//
// When provider is a *ClassProvider, the class's own provider and declared
// scope are used; opts override the declared scope.
// It panics if token is nil or provider is malformed.
func (c *Container) RegisterProvider(token Token, provider Provider, opts ...RegisterOption) *Container {
	return c.methods.registerProvider(token, provider, opts...)
}

// Unregister removes every registration of token from this container.
func (c *Container) Unregister(token Token) *Container {
	return c.methods.unregister(token)
}

// IsRegistered reports whether token is registered on this container or a parent.
func (c *Container) IsRegistered(token Token) bool {
	return c.methods.isRegistered(token)
}

// Resolve returns an instance for the first registered token.
//
// Tokens are tried in order. The first registered token is instantiated
// according to its scope. A constructible token reached before any
// registered one is auto-registered or constructed ad hoc. When ctx carries
// a live injection context of this container, the request joins that
// resolution.
func (c *Container) Resolve(ctx context.Context, tokens ...Token) (any, error) {
	return c.methods.resolve(ctx, tokens...)
}

// ResolveAll returns an instance for every registration of the first
// registered token, in registration order. Nil instances are dropped.
func (c *Container) ResolveAll(ctx context.Context, tokens ...Token) ([]any, error) {
	return c.methods.resolveAll(ctx, tokens...)
}

// GetCached returns the cached container-scoped instance of token without
// constructing one. An instance that is still being constructed is not
// cached yet.
func (c *Container) GetCached(token Token) (any, bool) {
	return c.methods.getCached(token)
}

// ClearCache drops every cached container-scoped instance held by this
// container's registrations.
func (c *Container) ClearCache() {
	c.methods.clearCache()
}

// ResetRegistry removes every registration from this container.
func (c *Container) ResetRegistry() {
	c.methods.resetRegistry()
}

// CreateChild returns a container chained to this one that inherits its
// default scope, auto-registration policy and logger.
func (c *Container) CreateChild() *Container {
	return c.methods.createChild()
}

func (c *Container) registerBuiltins() {
	c.registry.Set(ContainerToken, newRegistration(UseValue(c), RegistrationOptions{}))
	c.registry.Set(InjectorToken, newRegistration(injectorProvider, RegistrationOptions{Scope: ScopeTransient}))
}

func (c *Container) register(class Constructible) *Container {
	if class == nil {
		panic(InvariantError{Detail: "cannot register a nil class"})
	}

	metadata := class.Metadata()
	options := RegistrationOptions{Scope: metadata.Scope}

	tokens := append([]Token{class}, metadata.Tokens...)
	for _, token := range tokens {
		c.registry.Set(token, newRegistration(metadata.Provider, options))
	}

	c.logger.Debug("registered class",
		zap.String("class", class.Name()),
		zap.Strings("tokens", tokenNames(tokens)),
		zap.Stringer("scope", options.Scope),
	)

	return c
}

func (c *Container) registerProvider(token Token, provider Provider, opts ...RegisterOption) *Container {
	if token == nil {
		panic(InvariantError{Detail: "cannot register a nil token"})
	}

	options := RegistrationOptions{}
	if mustClassifyProvider(provider) == classKind {
		metadata := provider.(*ClassProvider).Class.Metadata()
		provider = metadata.Provider
		options.Scope = metadata.Scope
	}

	for _, opt := range opts {
		if opt != nil {
			opt.applyRegisterOption(&options)
		}
	}

	c.registry.Set(token, newRegistration(provider, options))

	c.logger.Debug("registered provider",
		zap.String("token", token.Name()),
		zap.String("provider", fmt.Sprintf("%T", provider)),
		zap.Stringer("scope", options.Scope),
	)

	return c
}

func (c *Container) unregister(token Token) *Container {
	c.registry.Delete(token)
	return c
}

func (c *Container) isRegistered(token Token) bool {
	return c.registry.Has(token)
}

func (c *Container) resolve(ctx context.Context, tokens ...Token) (any, error) {
	for _, token := range tokens {
		if token == nil {
			continue
		}

		if registration, ok := c.registry.Get(token); ok {
			return c.createInstance(ctx, token, registration)
		}

		if class, ok := token.(Constructible); ok {
			if c.shouldAutoRegister(class) {
				c.logger.Debug("auto-registering class", zap.String("class", class.Name()))
				c.Register(class)
				return c.Resolve(ctx, class)
			}
			return c.construct(ctx, class)
		}
	}

	return nil, UnregisteredTokenError{Tokens: tokenNames(tokens)}
}

func (c *Container) resolveAll(ctx context.Context, tokens ...Token) ([]any, error) {
	for _, token := range tokens {
		if token == nil {
			continue
		}

		if registrations, ok := c.registry.GetAll(token); ok {
			instances := make([]any, 0, len(registrations))
			for _, registration := range registrations {
				instance, err := c.createInstance(ctx, token, registration)
				if err != nil {
					return nil, err
				}
				if !isNil(instance) {
					instances = append(instances, instance)
				}
			}
			return instances, nil
		}

		if class, ok := token.(Constructible); ok {
			var (
				instance any
				err      error
			)
			if c.shouldAutoRegister(class) {
				c.logger.Debug("auto-registering class", zap.String("class", class.Name()))
				c.Register(class)
				instance, err = c.Resolve(ctx, class)
			} else {
				instance, err = c.construct(ctx, class)
			}
			if err != nil {
				return nil, err
			}
			if isNil(instance) {
				return []any{}, nil
			}
			return []any{instance}, nil
		}
	}

	return nil, UnregisteredTokenError{Tokens: tokenNames(tokens)}
}

func (c *Container) getCached(token Token) (any, bool) {
	registration, ok := c.registry.Get(token)
	if !ok {
		return nil, false
	}

	ref, ok := registration.Instance()
	if !ok {
		return nil, false
	}

	return ref.Current, true
}

func (c *Container) clearCache() {
	c.registry.Range(func(_ Token, registration *Registration) {
		registration.clearInstance()
	})
	c.logger.Debug("cleared instance cache")
}

func (c *Container) resetRegistry() {
	c.registry.Clear()
	c.registerBuiltins()
	c.logger.Debug("reset registry")
}

func (c *Container) createChild() *Container {
	return NewContainer(
		WithParent(c),
		WithDefaultScope(c.defaultScope),
		WithAutoRegister(c.autoRegister),
		WithLogger(c.baseLogger),
	)
}

// shouldAutoRegister applies the class's own policy before the container's.
func (c *Container) shouldAutoRegister(class Constructible) bool {
	if enable := class.Metadata().AutoRegister; enable != nil {
		return *enable
	}
	return c.autoRegister
}

// construct builds an unregistered class. Its scope is resolved up front
// because a container-scoped instance has no registration to be cached on.
func (c *Container) construct(ctx context.Context, class Constructible) (any, error) {
	metadata := class.Metadata()

	var resolution *Resolution
	if ic := injectionFromContext(ctx); ic != nil && ic.container == c {
		resolution = ic.resolution
	}

	scope := c.resolveScope(resolution, metadata.Scope)
	if scope == ScopeContainer {
		return nil, InvalidScopeError{Token: class.Name(), Scope: scope}
	}

	registration := newRegistration(metadata.Provider, RegistrationOptions{Scope: scope})
	return c.getScopedInstance(ctx, class.Name(), registration, class.construct)
}

func (c *Container) createInstance(ctx context.Context, token Token, registration *Registration) (any, error) {
	kind, err := classifyProvider(registration.Provider)
	if err != nil {
		return nil, err
	}

	switch kind {
	case classKind:
		class := registration.Provider.(*ClassProvider).Class
		return c.getScopedInstance(ctx, class.Name(), registration, class.construct)
	case factoryKind:
		factory := registration.Provider.(*FactoryProvider).Factory
		return c.getScopedInstance(ctx, token.Name(), registration, factory)
	case valueKind:
		return registration.Provider.(*ValueProvider).Value, nil
	}

	return nil, InvariantError{Detail: fmt.Sprintf("unhandled provider kind %d", kind)}
}

// getScopedInstance joins the live resolution of this container, or opens a
// new one when ctx carries none.
//
// Cycle detection covers one resolution. A constructor that resolves through
// another container (a child, say) starts a new resolution there, so a cycle
// back into the constructor's own provider recurses without bound.
func (c *Container) getScopedInstance(
	ctx context.Context,
	name string,
	registration *Registration,
	build func(ctx context.Context) (any, error),
) (any, error) {
	if ic := injectionFromContext(ctx); ic != nil && ic.container == c {
		return c.scopedInstance(ctx, ic.resolution, name, registration, build)
	}

	resolution := newResolution()
	c.logger.Debug("resolution started",
		zap.String("resolution", resolution.ID()),
		zap.String("token", name),
	)

	return c.scopedInstance(ctx, resolution, name, registration, build)
}

func (c *Container) scopedInstance(
	ctx context.Context,
	resolution *Resolution,
	name string,
	registration *Registration,
	build func(ctx context.Context) (any, error),
) (any, error) {
	provider := registration.Provider

	if resolution.has(provider) {
		if ref, ok := resolution.dependents.get(provider); ok {
			return ref.Current, nil
		}
		return nil, CircularDependencyError{Path: resolution.path(name)}
	}

	scope := c.resolveScope(resolution, registration.Options.Scope)

	resolution.push(Frame{Provider: provider, Scope: scope, Name: name})
	defer resolution.pop()

	instantiate := func() (any, error) {
		return c.instantiate(ctx, resolution, name, build)
	}

	switch scope {
	case ScopeContainer:
		return registration.loadOrBuild(instantiate)

	case ScopeResolution:
		if ref, ok := resolution.instances.get(provider); ok {
			return ref.Current, nil
		}
		instance, err := instantiate()
		if err != nil {
			return nil, err
		}
		resolution.instances.set(provider, &InstanceRef{Current: instance})
		return instance, nil

	case ScopeTransient:
		return instantiate()
	}

	return nil, InvariantError{Detail: fmt.Sprintf("%s resolved to unexpected scope %s", name, scope)}
}

// instantiate runs build with a fresh injection context that is closed as
// soon as build returns.
func (c *Container) instantiate(
	ctx context.Context,
	resolution *Resolution,
	name string,
	build func(ctx context.Context) (any, error),
) (instance any, err error) {
	ic := &injectionContext{container: c, resolution: resolution}
	defer ic.closed.Store(true)

	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = ConstructorPanicError{Token: name, Panic: r, Stack: debug.Stack()}
		}
	}()

	instance, err = build(contextWithInjection(ctx, ic))
	if err != nil {
		return nil, ResolutionError{Token: name, Cause: err}
	}

	return instance, nil
}

// resolveScope turns an unspecified or inherited scope into a concrete one.
// Inherited adopts the scope of the frame on top of resolution's stack, or
// Transient when nothing is being constructed.
func (c *Container) resolveScope(resolution *Resolution, scope Scope) Scope {
	if scope == 0 {
		scope = c.defaultScope
	}

	if scope != ScopeInherited {
		return scope
	}

	if resolution != nil {
		if frame, ok := resolution.peek(0); ok {
			return frame.Scope
		}
	}

	return ScopeTransient
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}

	return false
}
