package wise

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	sentinelErrors := []struct {
		err     error
		message string
	}{
		{ErrInjectOutsideContext, "called outside of an injection context"},
		{ErrUnregisteredToken, "unregistered token"},
		{ErrCircularDependency, "circular dependency detected"},
		{ErrInvalidScope, "invalid scope"},
		{ErrInvariantViolation, "invariant violation"},
		{ErrTypeMismatch, "type mismatch"},
		{ErrConstructorPanic, "constructor panicked"},
	}

	for _, tt := range sentinelErrors {
		t.Run(tt.message, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestTypedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "ContextError",
			err:      ContextError{Call: "Inject"},
			sentinel: ErrInjectOutsideContext,
			message:  "Inject() can only be used within an injection context",
		},
		{
			name:     "UnregisteredTokenError",
			err:      UnregisteredTokenError{Tokens: []string{"A", "B"}},
			sentinel: ErrUnregisteredToken,
			message:  "unregistered token A, B",
		},
		{
			name:     "InvalidScopeError",
			err:      InvalidScopeError{Token: "Cache", Scope: ScopeContainer},
			sentinel: ErrInvalidScope,
			message:  "unregistered token Cache cannot be resolved in container scope",
		},
		{
			name:     "ScopeError",
			err:      ScopeError{Value: "forever"},
			sentinel: ErrInvalidScope,
			message:  "invalid scope: forever",
		},
		{
			name:     "InvariantError",
			err:      InvariantError{Detail: "impossible provider <nil>"},
			sentinel: ErrInvariantViolation,
			message:  "invariant violation: impossible provider <nil>",
		},
		{
			name: "TypeMismatchError",
			err: TypeMismatchError{
				Expected: reflect.TypeFor[string](),
				Actual:   reflect.TypeFor[*int](),
				Context:  "Inject",
			},
			sentinel: ErrTypeMismatch,
			message:  "Inject: expected string, got *int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.message)
			assert.ErrorIs(t, tt.err, tt.sentinel)

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestCircularDependencyError(t *testing.T) {
	err := CircularDependencyError{Path: []string{"Wizard", "Wand", "Wizard"}}

	want := "circular dependency detected:\n\n" +
		"    Wizard\n" +
		"      ↓\n" +
		"    Wand\n" +
		"      ↓\n" +
		"    Wizard (cycle)\n" +
		"\nTo resolve this:\n" +
		"  • Request the cyclic token with InjectBy so the other side receives this instance\n" +
		"  • Restructure to remove the circular relationship\n"

	assert.Equal(t, want, err.Error())
	assert.True(t, IsCircular(err))
	assert.False(t, IsNotFound(err))
}

func TestResolutionError(t *testing.T) {
	cause := UnregisteredTokenError{Tokens: []string{"Database"}}
	err := ResolutionError{Token: "Service", Cause: cause}

	assert.Equal(t, "unable to resolve Service: unregistered token Database", err.Error())
	assert.True(t, IsNotFound(err))

	var unregistered UnregisteredTokenError
	require.True(t, errors.As(err, &unregistered))
	assert.Equal(t, []string{"Database"}, unregistered.Tokens)
}

func TestConstructorPanicError(t *testing.T) {
	err := ConstructorPanicError{Token: "Service", Panic: "boom", Stack: []byte("goroutine 1")}

	assert.Contains(t, err.Error(), "constructor of Service panicked: boom")
	assert.Contains(t, err.Error(), "Stack trace:\ngoroutine 1")
	assert.ErrorIs(t, err, ErrConstructorPanic)

	bare := ConstructorPanicError{Token: "Service", Panic: 1}
	assert.Equal(t, "constructor of Service panicked: 1\n", bare.Error())
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsContextError(ContextError{Call: "Inject"}))
	assert.False(t, IsContextError(errors.New("other")))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", UnregisteredTokenError{})))
	assert.False(t, IsCircular(nil))
}
