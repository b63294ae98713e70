package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Label string `msgpack:"label"`
	Count int    `msgpack:"count"`
}

func TestKey(t *testing.T) {
	assert.Equal(t, "match1#2", Key("match1", 2))
}

func TestPutGetRoundTrip(t *testing.T) {
	cache := NewCache(time.Minute)

	require.NoError(t, cache.Put("k", &snapshot{Label: "draft", Count: 3}))

	var got snapshot
	ok, err := cache.Get("k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "draft", got.Label)
	assert.Equal(t, 3, got.Count)
}

func TestGetMissingKey(t *testing.T) {
	cache := NewCache(time.Minute)

	var got snapshot
	ok, err := cache.Get("missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiredEntryIsPurgedOnRead(t *testing.T) {
	cache := NewCache(time.Minute)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return at }

	require.NoError(t, cache.Put("k", &snapshot{Label: "draft"}))

	// Still live exactly at the expiry instant.
	at = at.Add(time.Minute)
	var got snapshot
	ok, err := cache.Get("k", &got)
	require.NoError(t, err)
	assert.True(t, ok)

	at = at.Add(time.Second)
	ok, err = cache.Get("k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	// The expired entry is gone even if the clock rolls back.
	at = at.Add(-time.Hour)
	ok, err = cache.Get("k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutRefreshesExpiry(t *testing.T) {
	cache := NewCache(time.Minute)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return at }

	require.NoError(t, cache.Put("k", &snapshot{Label: "first"}))
	at = at.Add(50 * time.Second)
	require.NoError(t, cache.Put("k", &snapshot{Label: "second"}))

	at = at.Add(50 * time.Second)
	var got snapshot
	ok, err := cache.Get("k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got.Label)
}

func TestDelete(t *testing.T) {
	cache := NewCache(time.Minute)

	require.NoError(t, cache.Put("k", &snapshot{}))
	cache.Delete("k")

	var got snapshot
	ok, err := cache.Get("k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
