package wise

import (
	"fmt"
	"reflect"
)

// Token identifies a value that can be requested from a container.
//
// Tokens compare by identity: two tokens created with the same name are
// distinct. Token is implemented by *Type and *Class only.
type Token interface {
	// Name returns the display name used in diagnostics.
	Name() string

	token()
}

// Type is an opaque token for values of type T.
//
//	var Clock = wise.NewType[Clock]("Clock")
//
//	c.RegisterProvider(Clock, wise.UseValue(systemClock{}))
type Type[T any] struct {
	name string
}

// NewType creates a new token. name is used for diagnostics only.
func NewType[T any](name string) *Type[T] {
	return &Type[T]{name: name}
}

// Name returns the token's display name.
func (t *Type[T]) Name() string {
	return t.name
}

// String returns a representation including the value type.
func (t *Type[T]) String() string {
	return fmt.Sprintf("Type[%s](%s)", typeName(reflect.TypeFor[T]()), t.name)
}

func (t *Type[T]) token() {}

// tokenNames returns the display names of tokens in order.
func tokenNames(tokens []Token) []string {
	names := make([]string, len(tokens))
	for i, token := range tokens {
		if token == nil {
			names[i] = "<nil>"
			continue
		}
		names[i] = token.Name()
	}
	return names
}

// typeName formats t without its package path.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeName(t.Elem())
	case reflect.Slice:
		return "[]" + typeName(t.Elem())
	}

	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
