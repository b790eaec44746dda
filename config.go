package wise

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the serializable form of a container's policy.
//
//	default_scope: resolution
//	auto_register: true
type Config struct {
	// DefaultScope is used by registrations that declare no scope.
	// Zero keeps the container default (Inherited).
	DefaultScope Scope `yaml:"default_scope,omitempty" json:"default_scope,omitempty"`

	// AutoRegister registers unregistered classes on first resolution.
	AutoRegister bool `yaml:"auto_register" json:"auto_register"`
}

// LoadConfig decodes a YAML (or JSON) document into a Config.
func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode container config: %w", err)
	}
	return cfg, nil
}

// Config returns the container's policy in serializable form.
func (c *Container) Config() Config {
	return Config{
		DefaultScope: c.defaultScope,
		AutoRegister: c.autoRegister,
	}
}
