package middlewares

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/junioryono/wise"
)

const instrumentationName = "github.com/junioryono/wise/middlewares"

// Tracing starts a span for every Resolve and ResolveAll call. Constructors
// receive the span's context, so nested resolutions become child spans.
// A nil tp uses the global provider.
func Tracing(tp trace.TracerProvider) wise.Middleware {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(instrumentationName)

	return func(c *wise.Container, composer *wise.Composer) {
		containerID := attribute.String("wise.container", c.ID())

		composer.
			UseResolve(func(next wise.ResolveFunc) wise.ResolveFunc {
				return func(ctx context.Context, tokens ...wise.Token) (any, error) {
					ctx, span := tracer.Start(ctx, "wise.Resolve", trace.WithAttributes(
						containerID,
						attribute.StringSlice("wise.tokens", tokenNames(tokens)),
					))
					defer span.End()

					instance, err := next(ctx, tokens...)
					recordError(span, err)
					return instance, err
				}
			}).
			UseResolveAll(func(next wise.ResolveAllFunc) wise.ResolveAllFunc {
				return func(ctx context.Context, tokens ...wise.Token) ([]any, error) {
					ctx, span := tracer.Start(ctx, "wise.ResolveAll", trace.WithAttributes(
						containerID,
						attribute.StringSlice("wise.tokens", tokenNames(tokens)),
					))
					defer span.End()

					instances, err := next(ctx, tokens...)
					span.SetAttributes(attribute.Int("wise.count", len(instances)))
					recordError(span, err)
					return instances, err
				}
			})
	}
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
