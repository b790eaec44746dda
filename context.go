package wise

import (
	"context"
	"sync/atomic"
)

// injectionContext is the ambient record visible to a constructor while it
// runs: the container that is building it and the in-flight resolution.
//
// One record is created per instantiation and closed when the constructor
// returns, so a ctx that escapes the constructor cannot reach back into
// the graph.
type injectionContext struct {
	container  *Container
	resolution *Resolution
	closed     atomic.Bool
}

// injectionContextKey is the key for storing the injection context in a context.
type injectionContextKey struct{}

// contextWithInjection returns a context carrying ic.
func contextWithInjection(ctx context.Context, ic *injectionContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, injectionContextKey{}, ic)
}

// injectionFromContext returns the live injection context in ctx, or nil.
func injectionFromContext(ctx context.Context) *injectionContext {
	if ctx == nil {
		return nil
	}

	ic, ok := ctx.Value(injectionContextKey{}).(*injectionContext)
	if !ok || ic == nil || ic.closed.Load() {
		return nil
	}

	return ic
}

// InContext reports whether ctx carries a live injection context, that is,
// whether Inject may be called with it.
func InContext(ctx context.Context) bool {
	return injectionFromContext(ctx) != nil
}

// ResolutionFromContext returns the resolution in flight for ctx.
func ResolutionFromContext(ctx context.Context) (*Resolution, error) {
	ic := injectionFromContext(ctx)
	if ic == nil {
		return nil, ContextError{Call: "ResolutionFromContext"}
	}
	return ic.resolution, nil
}
