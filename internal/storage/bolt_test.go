package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStoreRoundTrip(t *testing.T) {
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "labhouse.db"))
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.Load(KeyRooms)
	require.NoError(t, err)
	assert.False(t, found)

	doc := []byte(`[{"id":"lab-comp","name":"Computer Lab"}]`)
	require.NoError(t, store.Save(KeyRooms, doc))

	got, found, err := store.Load(KeyRooms)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc, got)
}

func TestBoltStoreOverwrite(t *testing.T) {
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "labhouse.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(KeyRequests, []byte(`[]`)))
	require.NoError(t, store.Save(KeyRequests, []byte(`[{"id":"req-1"}]`)))

	got, found, err := store.Load(KeyRequests)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"req-1"}]`, string(got))
}

func TestBoltStoreKeysAreIndependent(t *testing.T) {
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "labhouse.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(KeyRooms, []byte(`[]`)))

	_, found, err := store.Load(KeyRequests)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBoltStoreReopenKeepsDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labhouse.db")

	store, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(KeyRooms, []byte(`["persisted"]`)))
	require.NoError(t, store.Close())

	reopened, err := NewBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Load(KeyRooms)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`["persisted"]`), got)
}
