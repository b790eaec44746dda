package wise

import (
	"go.uber.org/zap"
)

// ContainerOption configures a container created with NewContainer.
type ContainerOption interface {
	applyContainerOption(*containerOptions)
}

// containerOptions holds container configuration.
type containerOptions struct {
	parent       *Container
	defaultScope Scope
	autoRegister bool
	logger       *zap.Logger
}

func defaultContainerOptions() *containerOptions {
	return &containerOptions{
		defaultScope: ScopeInherited,
		logger:       zap.NewNop(),
	}
}

// containerOptionFunc adapts a function to ContainerOption.
type containerOptionFunc func(*containerOptions)

func (f containerOptionFunc) applyContainerOption(opts *containerOptions) {
	f(opts)
}

// WithParent chains the container's registry to parent: tokens not
// registered on the container are looked up on parent.
func WithParent(parent *Container) ContainerOption {
	return containerOptionFunc(func(opts *containerOptions) {
		opts.parent = parent
	})
}

// WithDefaultScope sets the scope used by registrations and classes that do
// not declare one. The default is ScopeInherited. Invalid scopes are ignored.
func WithDefaultScope(scope Scope) ContainerOption {
	return containerOptionFunc(func(opts *containerOptions) {
		if scope.IsValid() {
			opts.defaultScope = scope
		}
	})
}

// WithAutoRegister makes resolving an unregistered class register it first.
// A class's own AutoRegister option takes precedence.
func WithAutoRegister(enable bool) ContainerOption {
	return containerOptionFunc(func(opts *containerOptions) {
		opts.autoRegister = enable
	})
}

// WithLogger sets the logger used for debug diagnostics.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) ContainerOption {
	return containerOptionFunc(func(opts *containerOptions) {
		if logger == nil {
			logger = zap.NewNop()
		}
		opts.logger = logger
	})
}

// WithConfig applies a decoded Config.
func WithConfig(cfg Config) ContainerOption {
	return containerOptionFunc(func(opts *containerOptions) {
		if cfg.DefaultScope.IsValid() {
			opts.defaultScope = cfg.DefaultScope
		}
		opts.autoRegister = cfg.AutoRegister
	})
}
