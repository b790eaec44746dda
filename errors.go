package wise

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Typed errors below wrap these; match them with errors.Is.

var (
	// ErrInjectOutsideContext is wrapped by ContextError.
	ErrInjectOutsideContext = errors.New("called outside of an injection context")

	// ErrUnregisteredToken is wrapped by UnregisteredTokenError.
	ErrUnregisteredToken = errors.New("unregistered token")

	// ErrCircularDependency is wrapped by CircularDependencyError.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrInvalidScope is wrapped by InvalidScopeError and ScopeError.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrInvariantViolation is wrapped by InvariantError.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrTypeMismatch is wrapped by TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrConstructorPanic is wrapped by ConstructorPanicError.
	ErrConstructorPanic = errors.New("constructor panicked")
)

var (
	_ error = ContextError{}
	_ error = UnregisteredTokenError{}
	_ error = CircularDependencyError{}
	_ error = InvalidScopeError{}
	_ error = ScopeError{}
	_ error = InvariantError{}
	_ error = TypeMismatchError{}
	_ error = ResolutionError{}
	_ error = ConstructorPanicError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// ContextError indicates that a call requiring a live injection context was
// made without one, for example from a goroutine started by a constructor.
type ContextError struct {
	// Call is the name of the function that failed, such as "Inject".
	Call string
}

func (e ContextError) Error() string {
	return fmt.Sprintf("%s() can only be used within an injection context", e.Call)
}

func (e ContextError) Unwrap() error {
	return ErrInjectOutsideContext
}

// UnregisteredTokenError indicates that none of the requested tokens is
// registered and none is constructible.
type UnregisteredTokenError struct {
	Tokens []string
}

func (e UnregisteredTokenError) Error() string {
	return fmt.Sprintf("unregistered token %s", strings.Join(e.Tokens, ", "))
}

func (e UnregisteredTokenError) Unwrap() error {
	return ErrUnregisteredToken
}

// CircularDependencyError indicates a cycle in which no side recorded itself
// as a dependent with InjectBy.
type CircularDependencyError struct {
	// Path lists the tokens from the root request to the repeated token.
	Path []string
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected:\n\n")

	for i, name := range e.Path {
		b.WriteString(fmt.Sprintf("    %s", name))
		if i == len(e.Path)-1 {
			b.WriteString(" (cycle)")
		}
		b.WriteString("\n")
		if i < len(e.Path)-1 {
			b.WriteString("      ↓\n")
		}
	}

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Request the cyclic token with InjectBy so the other side receives this instance\n")
	b.WriteString("  • Restructure to remove the circular relationship\n")

	return b.String()
}

func (e CircularDependencyError) Unwrap() error {
	return ErrCircularDependency
}

// InvalidScopeError indicates that an unregistered class resolved to a scope
// that cannot be honoured without a registration.
type InvalidScopeError struct {
	Token string
	Scope Scope
}

func (e InvalidScopeError) Error() string {
	return fmt.Sprintf("unregistered token %s cannot be resolved in %s scope", e.Token, strings.ToLower(e.Scope.String()))
}

func (e InvalidScopeError) Unwrap() error {
	return ErrInvalidScope
}

// ScopeError indicates an invalid scope value, for example when decoding
// configuration.
type ScopeError struct {
	Value any
}

func (e ScopeError) Error() string {
	return fmt.Sprintf("invalid scope: %v", e.Value)
}

func (e ScopeError) Unwrap() error {
	return ErrInvalidScope
}

// InvariantError indicates a defect in a registration or in the engine
// itself rather than a misuse by the caller.
type InvariantError struct {
	Detail string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Detail)
}

func (e InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

// TypeMismatchError indicates a resolved value does not have the requested type.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, typeName(e.Expected), typeName(e.Actual))
}

func (e TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// ResolutionError wraps an error returned by a constructor or factory.
type ResolutionError struct {
	Token string
	Cause error
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("unable to resolve %s: %v", e.Token, e.Cause)
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError indicates a constructor or factory panicked.
// It captures the panic value and stack trace for debugging.
type ConstructorPanicError struct {
	Token string
	Panic any
	Stack []byte
}

func (e ConstructorPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("constructor of %s panicked: %v\n", e.Token, e.Panic))

	if len(e.Stack) > 0 {
		b.WriteString("\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

func (e ConstructorPanicError) Unwrap() error {
	return ErrConstructorPanic
}

// IsNotFound reports whether err is caused by unregistered tokens.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnregisteredToken)
}

// IsCircular reports whether err is caused by a circular dependency.
func IsCircular(err error) bool {
	return errors.Is(err, ErrCircularDependency)
}

// IsContextError reports whether err is caused by a missing injection context.
func IsContextError(err error) bool {
	return errors.Is(err, ErrInjectOutsideContext)
}
