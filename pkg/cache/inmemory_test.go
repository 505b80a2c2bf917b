package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFromCache(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("AAPL_quote", 189.5, time.Minute)
	c.Set("AAPL_info", "Technology", time.Minute)

	got, ok := GetFromCache[float64](c, "AAPL_quote")
	assert.True(t, ok)
	assert.Equal(t, 189.5, got)

	_, ok = GetFromCache[float64](c, "AAPL_info")
	assert.False(t, ok, "type mismatch must be a miss")

	_, ok = GetFromCache[float64](c, "MSFT_quote")
	assert.False(t, ok)
}

func TestNewCache_IsNotShared(t *testing.T) {
	a := NewCache(time.Minute, time.Minute)
	b := NewCache(time.Minute, time.Minute)
	a.Set("k", 1, time.Minute)

	_, ok := b.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, a.ItemCount())
}

func TestRemember(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := Remember(c, "key", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = Remember(c, "key", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = Remember(c, "other", time.Minute, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get("other")
	assert.False(t, ok, "errors must not be cached")
}
