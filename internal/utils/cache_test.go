package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCache(t *testing.T) {
	c, err := NewPageCache(2, time.Minute)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 1, c.Get("a"))

	c.Set("c", 3) // evicts the least recently used "b"
	assert.Nil(t, c.Get("b"))
	assert.Equal(t, 3, c.Get("c"))

	c.Delete("a")
	assert.Nil(t, c.Get("a"))

	c.Purge()
	assert.Nil(t, c.Get("c"))
}

func TestPageCache_Expiry(t *testing.T) {
	c, err := NewPageCache(10, time.Millisecond)
	require.NoError(t, err)
	c.Set("a", 1)
	time.Sleep(5 * time.Millisecond)
	assert.Nil(t, c.Get("a"))

	disabled, err := NewPageCache(10, 0)
	require.NoError(t, err)
	disabled.Set("a", 1)
	assert.Nil(t, disabled.Get("a"))
}
