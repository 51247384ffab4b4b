package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaultUsesConfiguredTTL(t *testing.T) {
	c := New(20 * time.Millisecond)

	c.SetDefault("sql:prompt", "SELECT 1")

	got, found := c.Get("sql:prompt")
	require.True(t, found)
	assert.Equal(t, "SELECT 1", got)

	time.Sleep(50 * time.Millisecond)

	_, found = c.Get("sql:prompt")
	assert.False(t, found)
}

func TestNewFallsBackOnNonPositiveTTL(t *testing.T) {
	c := New(0)

	c.SetDefault("key", "value")
	_, found := c.Get("key")
	assert.True(t, found)
}

func TestSetHonorsExplicitExpiration(t *testing.T) {
	c := New(10 * time.Millisecond)

	// An explicit expiration overrides the configured default.
	c.Set("key", "value", time.Minute)
	time.Sleep(30 * time.Millisecond)

	got, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, "value", got)
}
