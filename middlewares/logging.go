package middlewares

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/junioryono/wise"
)

// Logging logs every Resolve, ResolveAll, Register and RegisterProvider call
// at debug level. Nested resolutions made by constructors are logged too,
// since Inject goes through the container's Resolve.
func Logging(logger *zap.Logger) wise.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *wise.Container, composer *wise.Composer) {
		log := logger.With(zap.String("container", c.ID()))

		composer.
			UseResolve(func(next wise.ResolveFunc) wise.ResolveFunc {
				return func(ctx context.Context, tokens ...wise.Token) (any, error) {
					start := time.Now()
					instance, err := next(ctx, tokens...)
					logCall(log, "resolve", tokens, time.Since(start), err)
					return instance, err
				}
			}).
			UseResolveAll(func(next wise.ResolveAllFunc) wise.ResolveAllFunc {
				return func(ctx context.Context, tokens ...wise.Token) ([]any, error) {
					start := time.Now()
					instances, err := next(ctx, tokens...)
					logCall(log, "resolve all", tokens, time.Since(start), err, zap.Int("count", len(instances)))
					return instances, err
				}
			}).
			UseRegister(func(next wise.RegisterFunc) wise.RegisterFunc {
				return func(class wise.Constructible) *wise.Container {
					if class != nil {
						log.Debug("register", zap.String("class", class.Name()))
					}
					return next(class)
				}
			}).
			UseRegisterProvider(func(next wise.RegisterProviderFunc) wise.RegisterProviderFunc {
				return func(token wise.Token, provider wise.Provider, opts ...wise.RegisterOption) *wise.Container {
					if token != nil {
						log.Debug("register provider",
							zap.String("token", token.Name()),
							zap.String("provider", fmt.Sprintf("%T", provider)),
						)
					}
					return next(token, provider, opts...)
				}
			})
	}
}

func logCall(log *zap.Logger, msg string, tokens []wise.Token, elapsed time.Duration, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.Strings("tokens", tokenNames(tokens)),
		zap.Duration("duration", elapsed),
	)

	if err != nil {
		log.Debug(msg+" failed", append(fields, zap.Error(err))...)
		return
	}
	log.Debug(msg, fields...)
}
