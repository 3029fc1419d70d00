package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_InsertAndRetrieve(t *testing.T) {
	c := NewCache(3)
	assert.Equal(t, 3, c.GetBudget())

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Insert(key, "value-"+key, 1))
	}
	assert.Equal(t, 3, c.GetWeight())

	for _, key := range []string{"a", "b", "c"} {
		actual, ok := c.Retrieve(key)
		require.True(t, ok)
		assert.Equal(t, "value-"+key, actual)
	}

	_, ok := c.Retrieve("d")
	assert.False(t, ok)
}

func TestCache_DuplicateRejected(t *testing.T) {
	c := NewCache(10)
	require.NoError(t, c.Insert("a", 1, 1))
	assert.Equal(t, ErrKeyExists, c.Insert("a", 2, 1))

	actual, ok := c.Retrieve("a")
	require.True(t, ok)
	assert.Equal(t, 1, actual)
	assert.Equal(t, 1, c.GetWeight())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(3)
	c.SetVerbose(true)

	require.NoError(t, c.Insert("a", 1, 1))
	require.NoError(t, c.Insert("b", 2, 1))
	require.NoError(t, c.Insert("c", 3, 1))

	// Touching a makes b the least recently used entry
	_, ok := c.Retrieve("a")
	require.True(t, ok)

	require.NoError(t, c.Insert("d", 4, 1))
	assert.Equal(t, 3, c.GetWeight())

	_, ok = c.Retrieve("b")
	assert.False(t, ok)
	for _, key := range []string{"a", "c", "d"} {
		_, ok = c.Retrieve(key)
		assert.True(t, ok, key)
	}

	// A heavy entry evicts as many entries as needed
	require.NoError(t, c.Insert("e", 5, 3))
	assert.Equal(t, 3, c.GetWeight())
	_, ok = c.Retrieve("e")
	assert.True(t, ok)
	_, ok = c.Retrieve("d")
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(10)
	require.NoError(t, c.Insert("a", 1, 4))
	c.Clear()

	assert.Equal(t, 0, c.GetWeight())
	_, ok := c.Retrieve("a")
	assert.False(t, ok)
	require.NoError(t, c.Insert("a", 1, 4))
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache(50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j)
				_ = c.Insert(key, j, 1)
				c.Retrieve(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.GetWeight())
}
