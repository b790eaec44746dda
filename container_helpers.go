package wise

import (
	"context"
	"fmt"
)

// Resolve is a generic helper that resolves tokens from c as type T.
func Resolve[T any](ctx context.Context, c *Container, tokens ...Token) (T, error) {
	instance, err := c.Resolve(ctx, tokens...)
	if err != nil {
		var zero T
		return zero, err
	}

	return cast[T](instance, "Resolve")
}

// ResolveAll is a generic helper that resolves every registration of tokens
// from c as []T.
func ResolveAll[T any](ctx context.Context, c *Container, tokens ...Token) ([]T, error) {
	instances, err := c.ResolveAll(ctx, tokens...)
	if err != nil {
		return nil, err
	}

	return castAll[T](instances, "ResolveAll")
}

// MustResolve resolves tokens and panics on error.
func MustResolve[T any](ctx context.Context, c *Container, tokens ...Token) T {
	result, err := Resolve[T](ctx, c, tokens...)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %v: %v", tokenNames(tokens), err))
	}
	return result
}

// ResolveToken resolves a typed token without restating its type.
func ResolveToken[T any](ctx context.Context, c *Container, token *Type[T]) (T, error) {
	return Resolve[T](ctx, c, token)
}

// ResolveClass resolves a class without restating its type.
func ResolveClass[T any](ctx context.Context, c *Container, class *Class[T]) (T, error) {
	return Resolve[T](ctx, c, class)
}
