package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingCache(t *testing.T) {
	c := NewEmbeddingCache(10)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}

func TestEmbeddingCache_SetGet(t *testing.T) {
	c := NewEmbeddingCache(10)

	c.Set("h1", []float32{1, 2, 3})

	v, ok := c.Get("h1")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, v)
	assert.True(t, c.Has("h1"))
	assert.False(t, c.Has("h2"))
}

func TestEmbeddingCache_FIFOEviction(t *testing.T) {
	c := NewEmbeddingCache(2)

	c.Set("h1", []float32{1})
	c.Set("h2", []float32{2})
	c.Set("h3", []float32{3})

	// Oldest-inserted entry goes first.
	assert.False(t, c.Has("h1"))
	assert.True(t, c.Has("h2"))
	assert.True(t, c.Has("h3"))
	assert.Equal(t, 2, c.Len())
}

func TestEmbeddingCache_OverwriteKeepsPosition(t *testing.T) {
	c := NewEmbeddingCache(2)

	c.Set("h1", []float32{1})
	c.Set("h2", []float32{2})
	c.Set("h1", []float32{9})
	c.Set("h3", []float32{3})

	// h1 was inserted first; overwriting did not refresh its position.
	assert.False(t, c.Has("h1"))
	v, ok := c.Get("h3")
	require.True(t, ok)
	assert.Equal(t, []float32{3}, v)
}

func TestEmbeddingCache_Entries(t *testing.T) {
	c := NewEmbeddingCache(10)
	c.Set("h1", []float32{1})
	c.Set("h2", []float32{2})
	c.Set("h3", []float32{3})

	entries := c.Entries(2)
	require.Len(t, entries, 2)
	assert.Equal(t, "h1", entries[0].Hash)
	assert.Equal(t, "h2", entries[1].Hash)

	all := c.Entries(0)
	assert.Len(t, all, 3)
}

func TestEmbeddingCache_Clear(t *testing.T) {
	c := NewEmbeddingCache(10)
	c.Set("h1", []float32{1})

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has("h1"))
}
