package wise

import (
	"context"
	"fmt"
)

// Provider describes how to produce the value for a token.
// It is exactly one of *ClassProvider, *FactoryProvider or *ValueProvider.
//
// Providers compare by identity; the resolution stack and the
// resolution-scoped cache are keyed by provider.
type Provider interface {
	provider()
}

// ClassProvider instantiates a class.
type ClassProvider struct {
	Class Constructible
}

// FactoryProvider invokes a factory function. The context passed to the
// factory carries the active injection context.
type FactoryProvider struct {
	Factory func(ctx context.Context) (any, error)
}

// ValueProvider returns a fixed value. Values bypass the scope machinery:
// they are never cached and never pushed on the resolution stack.
type ValueProvider struct {
	Value any
}

func (*ClassProvider) provider()   {}
func (*FactoryProvider) provider() {}
func (*ValueProvider) provider()   {}

// UseClass returns a provider that instantiates class.
// Registering it with RegisterProvider uses the class's own provider and
// declared scope instead.
func UseClass(class Constructible) *ClassProvider {
	return &ClassProvider{Class: class}
}

// UseFactory returns a provider that invokes factory.
func UseFactory[T any](factory func(ctx context.Context) (T, error)) *FactoryProvider {
	if factory == nil {
		return &FactoryProvider{}
	}

	return &FactoryProvider{
		Factory: func(ctx context.Context) (any, error) {
			return factory(ctx)
		},
	}
}

// UseValue returns a provider that always yields value.
func UseValue(value any) *ValueProvider {
	return &ValueProvider{Value: value}
}

type providerKind int

const (
	classKind providerKind = iota + 1
	factoryKind
	valueKind
)

// classifyProvider reports which variant p is. A provider that is nil or
// missing its recipe is a construction defect.
func classifyProvider(p Provider) (providerKind, error) {
	switch p := p.(type) {
	case *ClassProvider:
		if p != nil && p.Class != nil {
			return classKind, nil
		}
	case *FactoryProvider:
		if p != nil && p.Factory != nil {
			return factoryKind, nil
		}
	case *ValueProvider:
		if p != nil {
			return valueKind, nil
		}
	}

	return 0, InvariantError{Detail: fmt.Sprintf("impossible provider %T", p)}
}

// mustClassifyProvider panics on an impossible provider.
func mustClassifyProvider(p Provider) providerKind {
	kind, err := classifyProvider(p)
	if err != nil {
		panic(err)
	}
	return kind
}
