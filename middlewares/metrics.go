package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/junioryono/wise"
)

// Outcome label values of wise_resolutions_total.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeCircular = "circular"
	OutcomeError    = "error"
)

type resolutionMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Metrics counts and times Resolve and ResolveAll calls:
//
//	wise_resolutions_total{method, outcome}
//	wise_resolution_duration_seconds{method}
//
// The collectors are registered with reg; several containers may share one
// registry. A nil reg uses prometheus.DefaultRegisterer.
func Metrics(reg prometheus.Registerer) wise.Middleware {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := newResolutionMetrics(reg)

	return func(_ *wise.Container, composer *wise.Composer) {
		composer.
			UseResolve(func(next wise.ResolveFunc) wise.ResolveFunc {
				return func(ctx context.Context, tokens ...wise.Token) (any, error) {
					start := time.Now()
					instance, err := next(ctx, tokens...)
					m.observe("Resolve", start, err)
					return instance, err
				}
			}).
			UseResolveAll(func(next wise.ResolveAllFunc) wise.ResolveAllFunc {
				return func(ctx context.Context, tokens ...wise.Token) ([]any, error) {
					start := time.Now()
					instances, err := next(ctx, tokens...)
					m.observe("ResolveAll", start, err)
					return instances, err
				}
			})
	}
}

func newResolutionMetrics(reg prometheus.Registerer) *resolutionMetrics {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wise_resolutions_total",
		Help: "Number of container resolutions by method and outcome.",
	}, []string{"method", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wise_resolution_duration_seconds",
		Help:    "Duration of container resolutions.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"method"})

	return &resolutionMetrics{
		total:    register(reg, total),
		duration: register(reg, duration),
	}
}

// register registers c with reg, or returns the collector already
// registered under the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *resolutionMetrics) observe(method string, start time.Time, err error) {
	m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	m.total.WithLabelValues(method, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case wise.IsNotFound(err):
		return OutcomeNotFound
	case wise.IsCircular(err):
		return OutcomeCircular
	default:
		return OutcomeError
	}
}
