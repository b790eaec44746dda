package wise

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scope specifies the lifetime of an instance produced by a registration.
// The zero value means "unspecified" and resolves to the container's
// default scope.
type Scope int

const (
	// ScopeInherited adopts the scope of the instance that requested it.
	// A root request (nothing is being constructed) resolves to ScopeTransient.
	ScopeInherited Scope = iota + 1

	// ScopeTransient creates a new instance every time it is requested.
	ScopeTransient

	// ScopeResolution shares one instance across a single root Resolve call.
	// Every nested request made while that call is in flight gets the same
	// instance; the next root call gets a new one.
	ScopeResolution

	// ScopeContainer caches one instance for the lifetime of the container,
	// until ClearCache is called.
	ScopeContainer
)

// String returns the string representation of the Scope.
func (s Scope) String() string {
	switch s {
	case ScopeInherited:
		return "Inherited"
	case ScopeTransient:
		return "Transient"
	case ScopeResolution:
		return "Resolution"
	case ScopeContainer:
		return "Container"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid checks if the scope is one of the declared scopes.
func (s Scope) IsValid() bool {
	return s >= ScopeInherited && s <= ScopeContainer
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, ScopeError{Value: int(s)}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "inherited":
		*s = ScopeInherited
	case "transient":
		*s = ScopeTransient
	case "resolution":
		*s = ScopeResolution
	case "container":
		*s = ScopeContainer
	default:
		return ScopeError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Scope) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(text))
}

// MarshalYAML implements yaml.Marshaler.
func (s Scope) MarshalYAML() (any, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scope) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(text))
}
