// Package middlewares provides ready-made wise middlewares.
//
//	c := wise.ApplyMiddlewares(wise.NewContainer(),
//	    middlewares.ResolveAllSafe,
//	    middlewares.Logging(logger),
//	)
package middlewares

import (
	"context"

	"github.com/junioryono/wise"
)

// ResolveAllSafe makes ResolveAll return an empty slice instead of an
// UnregisteredTokenError when none of the requested tokens is registered.
//
// Only the requested tokens are tolerated: an unregistered dependency of a
// constructor still fails the call.
func ResolveAllSafe(_ *wise.Container, composer *wise.Composer) {
	composer.UseResolveAll(func(next wise.ResolveAllFunc) wise.ResolveAllFunc {
		return func(ctx context.Context, tokens ...wise.Token) ([]any, error) {
			instances, err := next(ctx, tokens...)
			if _, ok := err.(wise.UnregisteredTokenError); ok {
				return []any{}, nil
			}
			return instances, err
		}
	})
}

func tokenNames(tokens []wise.Token) []string {
	names := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token != nil {
			names = append(names, token.Name())
		}
	}
	return names
}
