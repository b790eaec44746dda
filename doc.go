// Package wise provides a dependency injection container whose constructors
// request their own dependencies from the context they are called with.
//
// # Overview
//
// A constructor never receives its dependencies as arguments. It receives a
// context.Context that carries the active injection context and asks for
// what it needs:
//
//	var LoggerClass = wise.NewClass(func(ctx context.Context) (*Logger, error) {
//	    return &Logger{}, nil
//	}, wise.Scoped(wise.ScopeContainer))
//
//	var ServiceClass = wise.NewClass(func(ctx context.Context) (*Service, error) {
//	    logger, err := wise.Inject[*Logger](ctx, LoggerClass)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &Service{logger: logger}, nil
//	})
//
//	c := wise.NewContainer()
//	c.Register(LoggerClass)
//
//	svc, err := wise.Resolve[*Service](context.Background(), c, ServiceClass)
//
// # Tokens and Providers
//
// A Token identifies a requested value. NewType creates an opaque token;
// NewClass creates a class, which is a token that can also construct
// itself. Tokens compare by identity only.
//
// A Provider tells the container how to produce the value for a token:
// UseClass instantiates a class, UseFactory invokes a function and UseValue
// returns a fixed value.
//
// # Scopes
//
//   - ScopeTransient: a new instance for every request
//   - ScopeResolution: one instance per root Resolve call
//   - ScopeContainer: one instance per container, until ClearCache
//   - ScopeInherited: the scope of whoever requested it (the default)
//
// A dependency declared Inherited takes its requester's lifetime: a
// container-scoped service gets it cached alongside itself, a transient one
// gets a fresh instance.
//
// # Injection Context
//
// The injection context exists only while a constructor runs. Passing its
// ctx to a goroutine or keeping it for later and then calling Inject fails
// with a ContextError. To reach back into the graph later, resolve an
// Injector through InjectorToken; it replays the context in which it was
// obtained.
//
// # Circular Dependencies
//
// A cycle fails with a CircularDependencyError unless the side that closes
// it marked itself as the dependent with InjectBy, in which case the cyclic
// side receives that (not yet fully constructed) instance:
//
//	var WizardToken = wise.NewType[*Wizard]("Wizard")
//
//	var WandClass = wise.NewClass(func(ctx context.Context) (*Wand, error) {
//	    owner, err := wise.Inject[*Wizard](ctx, WizardToken)
//	    return &Wand{Owner: owner}, err
//	})
//
//	var WizardClass = wise.NewClass(func(ctx context.Context) (*Wizard, error) {
//	    w := &Wizard{}
//	    wand, err := wise.InjectBy[*Wand](ctx, w, WandClass)
//	    w.Wand = wand
//	    return w, err
//	}, wise.As(WizardToken))
//
// Package-level classes cannot refer to each other directly (Go rejects the
// initialization cycle), so one side of a cycle names the other by token.
//
// # Middleware
//
// ApplyMiddlewares wraps container methods in onion layers. The middlewares
// sub-package provides logging, metrics, tracing and a ResolveAll variant
// that tolerates unregistered tokens.
package wise
