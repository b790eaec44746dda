package wise_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/junioryono/wise"
)

func TestTokens(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		a := wise.NewType[int]("Same")
		b := wise.NewType[int]("Same")

		c := wise.NewContainer()
		c.RegisterProvider(a, wise.UseValue(1))

		assert.True(t, c.IsRegistered(a))
		assert.False(t, c.IsRegistered(b), "tokens with equal names are distinct")
	})

	t.Run("type names", func(t *testing.T) {
		token := wise.NewType[Clock]("Clock")
		assert.Equal(t, "Clock", token.Name())
		assert.Equal(t, "Type[Clock](Clock)", token.String())
	})

	t.Run("class names", func(t *testing.T) {
		class := wise.NewClass(newCounter)
		assert.Equal(t, "*Counter", class.Name())
		assert.Equal(t, "Class[*Counter](*Counter)", class.String())

		named := wise.NewClass(newCounter, wise.Named("counter"))
		assert.Equal(t, "counter", named.Name())

		slice := wise.NewClass(func(context.Context) ([]*Decoration, error) { return nil, nil })
		assert.Equal(t, "[]*Decoration", slice.Name())
	})

	t.Run("class metadata", func(t *testing.T) {
		alias := wise.NewType[*Counter]("Alias")
		class := wise.NewClass(newCounter, wise.Scoped(wise.ScopeResolution), wise.AutoRegister(true), wise.As(alias))

		metadata := class.Metadata()
		assert.Equal(t, wise.ScopeResolution, metadata.Scope)
		if assert.NotNil(t, metadata.AutoRegister) {
			assert.True(t, *metadata.AutoRegister)
		}
		assert.Equal(t, []wise.Token{alias}, metadata.Tokens)
		assert.Same(t, class, metadata.Provider.Class)
	})

	t.Run("undeclared metadata", func(t *testing.T) {
		metadata := wise.NewClass(newCounter).Metadata()
		assert.Equal(t, wise.Scope(0), metadata.Scope)
		assert.Nil(t, metadata.AutoRegister)
		assert.Empty(t, metadata.Tokens)
	})
}
