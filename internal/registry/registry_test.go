package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/wise/internal/registry"
)

type key struct{ name string }

func TestRegistry_SetGet(t *testing.T) {
	r := registry.New[*key, string](nil)
	k := &key{"a"}

	_, ok := r.Get(k)
	assert.False(t, ok)
	assert.False(t, r.Has(k))

	r.Set(k, "first")
	r.Set(k, "second")

	v, ok := r.Get(k)
	require.True(t, ok)
	assert.Equal(t, "second", v, "Get returns the most recent value")

	all, ok := r.GetAll(k)
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, all)
}

func TestRegistry_IdentityKeys(t *testing.T) {
	r := registry.New[*key, int](nil)
	a := &key{"same"}
	b := &key{"same"}

	r.Set(a, 1)

	assert.True(t, r.Has(a))
	assert.False(t, r.Has(b), "structurally equal keys are distinct")
}

func TestRegistry_GetAllReturnsCopy(t *testing.T) {
	r := registry.New[*key, int](nil)
	k := &key{"a"}
	r.Set(k, 1)

	all, _ := r.GetAll(k)
	all[0] = 42

	v, _ := r.Get(k)
	assert.Equal(t, 1, v)
}

func TestRegistry_Parent(t *testing.T) {
	parent := registry.New[*key, string](nil)
	child := registry.New(parent)
	k := &key{"a"}

	parent.Set(k, "parent")

	t.Run("lookup misses fall through", func(t *testing.T) {
		v, ok := child.Get(k)
		require.True(t, ok)
		assert.Equal(t, "parent", v)
		assert.True(t, child.Has(k))
		assert.Same(t, parent, child.Parent())
	})

	t.Run("writes target the child", func(t *testing.T) {
		child.Set(k, "child")

		v, _ := child.Get(k)
		assert.Equal(t, "child", v)

		v, _ = parent.Get(k)
		assert.Equal(t, "parent", v)

		all, _ := child.GetAll(k)
		assert.Equal(t, []string{"child"}, all, "child entries shadow the parent")
	})

	t.Run("delete only affects the child", func(t *testing.T) {
		child.Delete(k)

		v, ok := child.Get(k)
		require.True(t, ok)
		assert.Equal(t, "parent", v)
	})
}

func TestRegistry_ClearAndRange(t *testing.T) {
	r := registry.New[*key, int](nil)
	a, b := &key{"a"}, &key{"b"}
	r.Set(a, 1)
	r.Set(a, 2)
	r.Set(b, 3)

	assert.Equal(t, 2, r.Len())

	sum := 0
	r.Range(func(_ *key, v int) { sum += v })
	assert.Equal(t, 6, sum)

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Has(a))
}
