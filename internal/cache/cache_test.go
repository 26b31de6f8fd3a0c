package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundtrip(t *testing.T) {
	c := New(true)

	etag := c.Set("preview:pokemon:20", []byte(`[{"id":1}]`), time.Minute)
	require.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("preview:pokemon:20")
	require.True(t, ok)
	assert.Equal(t, []byte(`[{"id":1}]`), data)
	assert.Equal(t, etag, gotETag)
}

func TestGetMissAndExpiry(t *testing.T) {
	c := New(true)

	_, _, ok := c.Get("absent")
	assert.False(t, ok)

	c.Set("short", []byte("x"), -time.Second)
	_, _, ok = c.Get("short")
	assert.False(t, ok)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)

	etag := c.Set("key", []byte("data"), time.Minute)
	assert.NotEmpty(t, etag, "ETag is still computed for response headers")

	_, _, ok := c.Get("key")
	assert.False(t, ok)
}

func TestComputeETagIsStable(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	b := ComputeETag([]byte("payload"))
	other := ComputeETag([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Contains(t, a, `W/"`)
}

func TestCheckETagMatch(t *testing.T) {
	assert.False(t, CheckETagMatch("", `W/"x"`))
	assert.True(t, CheckETagMatch("*", `W/"x"`))
	assert.True(t, CheckETagMatch(`W/"x"`, `W/"x"`))
	assert.False(t, CheckETagMatch(`W/"y"`, `W/"x"`))
}
