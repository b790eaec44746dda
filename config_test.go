package wise_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/wise"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    wise.Config
		wantErr bool
	}{
		{
			name:  "yaml",
			input: "default_scope: resolution\nauto_register: true\n",
			want:  wise.Config{DefaultScope: wise.ScopeResolution, AutoRegister: true},
		},
		{
			name:  "json",
			input: `{"default_scope": "Container"}`,
			want:  wise.Config{DefaultScope: wise.ScopeContainer},
		},
		{
			name:  "empty",
			input: "",
			want:  wise.Config{},
		},
		{
			name:    "invalid scope",
			input:   "default_scope: eternal\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   "default_scope: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wise.LoadConfig([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to decode container config")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithConfig(t *testing.T) {
	ctx := context.Background()

	cfg, err := wise.LoadConfig([]byte("default_scope: container\nauto_register: true\n"))
	require.NoError(t, err)

	c := wise.NewContainer(wise.WithConfig(cfg))
	assert.Equal(t, wise.ScopeContainer, c.DefaultScope())
	assert.True(t, c.AutoRegister())
	assert.Equal(t, cfg, c.Config())

	counter := wise.NewClass(newCounter)
	first := wise.MustResolve[*Counter](ctx, c, counter)
	second := wise.MustResolve[*Counter](ctx, c, counter)
	assert.Same(t, first, second, "auto-registered under the configured default scope")

	t.Run("zero scope keeps the default", func(t *testing.T) {
		c := wise.NewContainer(wise.WithConfig(wise.Config{}))
		assert.Equal(t, wise.ScopeInherited, c.DefaultScope())
	})

	t.Run("invalid default scope is ignored", func(t *testing.T) {
		c := wise.NewContainer(wise.WithDefaultScope(wise.Scope(99)))
		assert.Equal(t, wise.ScopeInherited, c.DefaultScope())
	})
}
