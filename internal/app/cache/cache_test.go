package cache

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A nil *Cache must behave like a cache that never hits; the services use
// it unconditionally.
func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache

	var dest map[string]string
	hit, err := c.GetJSON(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.SetJSON(context.Background(), "key", map[string]string{"a": "b"}))
	assert.NoError(t, c.Invalidate(context.Background(), "key"))
	assert.NoError(t, c.Close())
}

func TestNewFromEnvWithoutAddr(t *testing.T) {
	original := os.Getenv("REDIS_ADDR")
	defer os.Setenv("REDIS_ADDR", original)
	os.Unsetenv("REDIS_ADDR")

	c, err := NewFromEnv(context.Background())
	require.NoError(t, err)
	assert.Nil(t, c)
}
