package wise

import "context"

// Signatures of the container methods a middleware can wrap.
type (
	ResolveFunc          func(ctx context.Context, tokens ...Token) (any, error)
	ResolveAllFunc       func(ctx context.Context, tokens ...Token) ([]any, error)
	RegisterFunc         func(class Constructible) *Container
	RegisterProviderFunc func(token Token, provider Provider, opts ...RegisterOption) *Container
	UnregisterFunc       func(token Token) *Container
	IsRegisteredFunc     func(token Token) bool
	GetCachedFunc        func(token Token) (any, bool)
	ClearCacheFunc       func()
	ResetRegistryFunc    func()
	CreateChildFunc      func() *Container
)

// methods is the container's method table.
type methods struct {
	resolve          ResolveFunc
	resolveAll       ResolveAllFunc
	register         RegisterFunc
	registerProvider RegisterProviderFunc
	unregister       UnregisterFunc
	isRegistered     IsRegisteredFunc
	getCached        GetCachedFunc
	clearCache       ClearCacheFunc
	resetRegistry    ResetRegistryFunc
	createChild      CreateChildFunc
}

// Middleware extends a container by wrapping its methods through composer.
//
//	func logResolve(_ *wise.Container, composer *wise.Composer) {
//	    composer.UseResolve(func(next wise.ResolveFunc) wise.ResolveFunc {
//	        return func(ctx context.Context, tokens ...wise.Token) (any, error) {
//	            log.Println("resolve", tokens)
//	            return next(ctx, tokens...)
//	        }
//	    })
//	}
type Middleware func(c *Container, composer *Composer)

// Composer replaces container methods with wrapped versions. Each wrap
// receives the implementation installed before it.
type Composer struct {
	container *Container
}

// UseResolve wraps Resolve.
func (m *Composer) UseResolve(wrap func(next ResolveFunc) ResolveFunc) *Composer {
	m.container.methods.resolve = wrap(m.container.methods.resolve)
	return m
}

// UseResolveAll wraps ResolveAll.
func (m *Composer) UseResolveAll(wrap func(next ResolveAllFunc) ResolveAllFunc) *Composer {
	m.container.methods.resolveAll = wrap(m.container.methods.resolveAll)
	return m
}

// UseRegister wraps Register.
func (m *Composer) UseRegister(wrap func(next RegisterFunc) RegisterFunc) *Composer {
	m.container.methods.register = wrap(m.container.methods.register)
	return m
}

// UseRegisterProvider wraps RegisterProvider.
func (m *Composer) UseRegisterProvider(wrap func(next RegisterProviderFunc) RegisterProviderFunc) *Composer {
	m.container.methods.registerProvider = wrap(m.container.methods.registerProvider)
	return m
}

// UseUnregister wraps Unregister.
func (m *Composer) UseUnregister(wrap func(next UnregisterFunc) UnregisterFunc) *Composer {
	m.container.methods.unregister = wrap(m.container.methods.unregister)
	return m
}

// UseIsRegistered wraps IsRegistered.
func (m *Composer) UseIsRegistered(wrap func(next IsRegisteredFunc) IsRegisteredFunc) *Composer {
	m.container.methods.isRegistered = wrap(m.container.methods.isRegistered)
	return m
}

// UseGetCached wraps GetCached.
func (m *Composer) UseGetCached(wrap func(next GetCachedFunc) GetCachedFunc) *Composer {
	m.container.methods.getCached = wrap(m.container.methods.getCached)
	return m
}

// UseClearCache wraps ClearCache.
func (m *Composer) UseClearCache(wrap func(next ClearCacheFunc) ClearCacheFunc) *Composer {
	m.container.methods.clearCache = wrap(m.container.methods.clearCache)
	return m
}

// UseResetRegistry wraps ResetRegistry.
func (m *Composer) UseResetRegistry(wrap func(next ResetRegistryFunc) ResetRegistryFunc) *Composer {
	m.container.methods.resetRegistry = wrap(m.container.methods.resetRegistry)
	return m
}

// UseCreateChild wraps CreateChild.
func (m *Composer) UseCreateChild(wrap func(next CreateChildFunc) CreateChildFunc) *Composer {
	m.container.methods.createChild = wrap(m.container.methods.createChild)
	return m
}

// ApplyMiddlewares applies middlewares to c in order and returns c.
//
// Middlewares are applied in order but execute in reverse: with [A, B],
// a call enters B, then A, then the original method, and returns through
// A before B. Applied middlewares cannot be removed.
func ApplyMiddlewares(c *Container, middlewares ...Middleware) *Container {
	composer := &Composer{container: c}
	for _, middleware := range middlewares {
		if middleware != nil {
			middleware(c, composer)
		}
	}
	return c
}
