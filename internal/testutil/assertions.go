package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/wise"
)

// AssertResolvable checks if tokens can be resolved from c as T
func AssertResolvable[T any](t *testing.T, c *wise.Container, tokens ...wise.Token) T {
	t.Helper()
	instance, err := wise.Resolve[T](context.Background(), c, tokens...)
	require.NoError(t, err, "failed to resolve %T", *new(T))
	require.NotNil(t, instance, "resolved instance is nil")
	return instance
}

// AssertNotFound checks if resolving tokens fails with an unregistered token error
func AssertNotFound(t *testing.T, c *wise.Container, tokens ...wise.Token) {
	t.Helper()
	_, err := c.Resolve(context.Background(), tokens...)
	assert.Error(t, err)
	assert.True(t, wise.IsNotFound(err), "expected unregistered token error, got: %v", err)
}

// AssertSameInstance verifies that two resolutions of tokens produce the same instance
func AssertSameInstance(t *testing.T, c *wise.Container, tokens ...wise.Token) {
	t.Helper()
	first, second := resolveTwice(t, c, tokens)
	assert.Same(t, first, second)
}

// AssertDifferentInstances verifies that two resolutions of tokens produce different instances
func AssertDifferentInstances(t *testing.T, c *wise.Container, tokens ...wise.Token) {
	t.Helper()
	first, second := resolveTwice(t, c, tokens)
	assert.NotSame(t, first, second)
}

func resolveTwice(t *testing.T, c *wise.Container, tokens []wise.Token) (any, any) {
	t.Helper()
	ctx := context.Background()

	first, err := c.Resolve(ctx, tokens...)
	require.NoError(t, err)
	second, err := c.Resolve(ctx, tokens...)
	require.NoError(t, err)

	return first, second
}

// AssertErrorType checks if an error is of a specific type
func AssertErrorType[T error](t *testing.T, err error, msgAndArgs ...any) T {
	t.Helper()
	var target T
	assert.ErrorAs(t, err, &target, msgAndArgs...)
	return target
}

// AssertCircularDependency checks if an error is a circular dependency error
// and returns its path
func AssertCircularDependency(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	assert.True(t, wise.IsCircular(err), "expected circular dependency error, got: %v", err)
	return AssertErrorType[wise.CircularDependencyError](t, err).Path
}

// AssertContextError checks if an error reports a call made outside an injection context
func AssertContextError(t *testing.T, err error, call string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, wise.IsContextError(err), "expected context error, got: %v", err)
	assert.Equal(t, call, AssertErrorType[wise.ContextError](t, err).Call)
}

// AssertPanicsWithError checks if a function panics with specific error
func AssertPanicsWithError(t *testing.T, expectedError error, f func(), msgAndArgs ...any) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			assert.Fail(t, "function did not panic", msgAndArgs...)
			return
		}

		err, ok := r.(error)
		if !ok {
			assert.Fail(t, "panic value is not an error", "%v", r)
			return
		}

		assert.ErrorIs(t, err, expectedError, msgAndArgs...)
	}()
	f()
}
