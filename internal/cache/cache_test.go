package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/testutil"
	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func TestKey(t *testing.T) {
	a := Key("<div>", "html", "cfg")
	assert.Equal(t, a, Key("<div>", "html", "cfg"))
	assert.NotEqual(t, a, Key("<div>", "vue", "cfg"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Contains(t, a, "leapmark:v1:")
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)

	_, ok := c.Get("leapmark:v1:abc")
	assert.False(t, ok)

	require.NoError(t, c.Set("leapmark:v1:abc", []byte("payload"), 0))
	got, ok := c.Get("leapmark:v1:abc")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)

	// a second instance sees the same entry
	got, ok = NewDiskCache(dir, time.Hour).Get("leapmark:v1:abc")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, c.Delete("leapmark:v1:abc"))
	require.NoError(t, c.Delete("leapmark:v1:abc"), "deleting a missing key")
	_, ok = c.Get("leapmark:v1:abc")
	assert.False(t, ok)

	require.NoError(t, c.Set("x", []byte("1"), 0))
	require.NoError(t, c.Clear())
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestDiskCache_ExpiredAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	require.NoError(t, c.Set("old", []byte("v"), time.Nanosecond))
	time.Sleep(time.Millisecond)
	_, ok := c.Get("old")
	assert.False(t, ok)
	_, err := os.Stat(c.path("old"))
	assert.True(t, os.IsNotExist(err), "expired entry is removed")

	require.NoError(t, os.WriteFile(c.path("bad"), []byte{0xc1}, 0o600))
	_, ok = c.Get("bad")
	assert.False(t, ok)
}

func TestLayeredCache_Promotes(t *testing.T) {
	dir := t.TempDir()
	first := NewLayeredCache(time.Minute, dir, time.Hour)
	require.NoError(t, first.Set("k", []byte("v"), 0))

	second := NewLayeredCache(time.Minute, dir, time.Hour)
	got, ok := second.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	mem, ok := second.memory.(*MemoryCache)
	require.True(t, ok)
	assert.Equal(t, 1, mem.Len(), "disk hit promoted to memory")

	require.NoError(t, second.Delete("k"))
	_, ok = second.Get("k")
	assert.False(t, ok)
}

func TestResultCache(t *testing.T) {
	rc := NewResultCache(NewMemoryCache(time.Minute, time.Minute), 0, testutil.NewTestLogger(t))
	results := []lint.Result{
		{Rule: "attr-duplication", Severity: core.SeverityError, Message: "The attribute name is duplicated", Line: 1, Col: 26, Raw: "data-Attr"},
		{Rule: "attr-value-quotes", Severity: core.SeverityWarning, Message: "Attribute value is must quote on double", Line: 2, Col: 3, Raw: "a=b"},
	}

	_, ok := rc.Get("k")
	assert.False(t, ok)

	rc.Put("k", results)
	got, ok := rc.Get("k")
	require.True(t, ok)
	assert.Equal(t, results, got)

	// an empty result list is a hit, not a miss
	rc.Put("clean", nil)
	got, ok = rc.Get("clean")
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestResultCache_Corrupt(t *testing.T) {
	store := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, store.Set("k", []byte("not msgpack results"), 0))

	rc := NewResultCache(store, 0, nil)
	_, ok := rc.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "corrupt entry dropped")
}

func TestResultCache_Nil(t *testing.T) {
	var rc *ResultCache
	rc.Put("k", nil)
	_, ok := rc.Get("k")
	assert.False(t, ok)
}
