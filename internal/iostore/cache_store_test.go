package iostore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCacheStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(logCacheTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

func TestCacheStoreRoundTrip(t *testing.T) {
	store := newTestCacheStore(t)

	now := time.Now().Unix()
	err := store.Set("key1", []byte(`[{"hash":"abc"}]`), 1, now)
	require.NoError(t, err)

	value, version, ts, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"hash":"abc"}]`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, now, ts)
}

func TestCacheStoreOverwrite(t *testing.T) {
	store := newTestCacheStore(t)

	require.NoError(t, store.Set("key1", []byte("old"), 1, 100))
	require.NoError(t, store.Set("key1", []byte("new"), 2, 200))

	value, version, ts, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

func TestCacheStoreMissingKey(t *testing.T) {
	store := newTestCacheStore(t)

	_, _, _, err := store.Get("nonexistent")
	assert.Error(t, err)
}

func TestCacheStoreStatus(t *testing.T) {
	store := newTestCacheStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)

	require.NoError(t, store.Set("key1", []byte("v"), 1, 100))
	require.NoError(t, store.Set("key2", []byte("v"), 1, 200))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(200, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(100, 0), status.OldestEntryTime)
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore(logCacheTable, schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Set is a no-op and Get always misses
	require.NoError(t, store.Set("key1", []byte("v"), 1, 100))
	_, _, _, err = store.Get("key1")
	assert.Error(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewCacheStore("bad name; DROP", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

func TestCacheStoreRejectsUnknownBackend(t *testing.T) {
	_, err := NewCacheStore(logCacheTable, schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
