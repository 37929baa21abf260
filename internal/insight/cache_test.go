package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_PutGet(t *testing.T) {
	c, err := NewCache(4, time.Minute)
	require.NoError(t, err)

	in := &ProjectInsight{HealthScore: 80}
	c.Put("p1", in)

	got, ok := c.Get("p1")
	require.True(t, ok)
	assert.Equal(t, in, got)

	_, ok = c.Get("p2")
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	c, err := NewCache(4, time.Minute)
	require.NoError(t, err)

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Put("p1", &ProjectInsight{HealthScore: 80})

	_, ok := c.Get("p1")
	assert.True(t, ok)

	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok = c.Get("p1")
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	c, err := NewCache(4, time.Minute)
	require.NoError(t, err)

	c.Put("p1", &ProjectInsight{HealthScore: 80})
	c.Invalidate("p1")

	_, ok := c.Get("p1")
	assert.False(t, ok)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewCache(2, time.Minute)
	require.NoError(t, err)

	c.Put("p1", &ProjectInsight{HealthScore: 10})
	c.Put("p2", &ProjectInsight{HealthScore: 20})
	c.Put("p3", &ProjectInsight{HealthScore: 30})

	_, ok := c.Get("p1")
	assert.False(t, ok)
	_, ok = c.Get("p3")
	assert.True(t, ok)
}

func TestCache_NilCacheIsDisabled(t *testing.T) {
	var c *Cache

	c.Put("p1", &ProjectInsight{})
	_, ok := c.Get("p1")
	assert.False(t, ok)
	c.Invalidate("p1")
}
