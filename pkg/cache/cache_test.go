package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](4)

	c.Set("foo", 42)
	val, ok := c.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = c.Get("bar")
	assert.False(t, ok)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	// touch a so b becomes the oldest
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, c.Keys())
}

func TestCache_ZeroSizeDisabled(t *testing.T) {
	c := New[string, int](0)
	c.Set("a", 1)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Keys())
	c.Delete("a")
	c.Clear()
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[string, string](4)
	calls := 0
	fn := func() (string, error) {
		calls++
		return "rendered", nil
	}

	v, err := c.GetOrSet("k", fn)
	require.NoError(t, err)
	assert.Equal(t, "rendered", v)

	v, err = c.GetOrSet("k", fn)
	require.NoError(t, err)
	assert.Equal(t, "rendered", v)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = c.GetOrSet("bad", func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	_, ok := c.Get("bad")
	assert.False(t, ok, "errors are not cached")
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int](50)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(n, n*2)
			_, _ = c.Get(n)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
