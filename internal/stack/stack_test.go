package stack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/wise/internal/stack"
)

func TestKeyedStack(t *testing.T) {
	s := stack.New[string, int]()

	_, ok := s.Peek(0)
	assert.False(t, ok)
	_, ok = s.Pop()
	assert.False(t, ok)

	s.Push("a", 1)
	s.Push("b", 2)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.True(t, s.Has("b"))
	assert.False(t, s.Has("c"))

	top, ok := s.Peek(0)
	require.True(t, ok)
	assert.Equal(t, 2, top)

	below, ok := s.Peek(1)
	require.True(t, ok)
	assert.Equal(t, 1, below)

	_, ok = s.Peek(2)
	assert.False(t, ok)
	_, ok = s.Peek(-1)
	assert.False(t, ok)

	assert.Equal(t, []int{1, 2}, s.Values())

	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.False(t, s.Has("b"))
	assert.True(t, s.Has("a"))
}

func TestKeyedStack_DuplicateKeys(t *testing.T) {
	s := stack.New[string, int]()
	s.Push("a", 1)
	s.Push("a", 2)

	s.Pop()
	assert.True(t, s.Has("a"), "key stays a member until its last entry is popped")

	s.Pop()
	assert.False(t, s.Has("a"))
}
