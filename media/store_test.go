package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLocalStorage_PutGetRoundtrip(t *testing.T) {
	store := newTestStore(t)
	key := NewObjectKey("fam-1", "2024-03-15", "photo.png")
	data := []byte("not really a png but the store does not care")

	require.NoError(t, store.Put(key, data, "image/png"))

	obj, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, data, obj.Data)
	assert.Equal(t, int64(len(data)), obj.Size)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.NotEmpty(t, obj.ETag)
}

func TestLocalStorage_ETagStable(t *testing.T) {
	store := newTestStore(t)
	data := []byte("identical bytes")

	k1 := NewObjectKey("fam-1", "2024-03-15", "a.jpg")
	k2 := NewObjectKey("fam-1", "2024-03-15", "b.jpg")
	require.NoError(t, store.Put(k1, data, "image/jpeg"))
	require.NoError(t, store.Put(k2, data, "image/jpeg"))

	o1a, err := store.Get(k1)
	require.NoError(t, err)
	o1b, err := store.Get(k1)
	require.NoError(t, err)
	o2, err := store.Get(k2)
	require.NoError(t, err)

	// repeated reads of an unmodified object return the same token,
	// and identical bytes fingerprint identically
	assert.Equal(t, o1a.ETag, o1b.ETag)
	assert.Equal(t, o1a.ETag, o2.ETag)
}

func TestLocalStorage_GetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(NewObjectKey("fam-1", "2024-03-15", "ghost.jpg"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_Delete(t *testing.T) {
	store := newTestStore(t)
	key := NewObjectKey("fam-1", "2024-03-15", "photo.jpg")
	require.NoError(t, store.Put(key, []byte("x"), "image/jpeg"))

	require.NoError(t, store.Delete(key))
	_, err := store.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting a missing object is not an error
	assert.NoError(t, store.Delete(key))
}

func TestLocalStorage_PutOverwrites(t *testing.T) {
	store := newTestStore(t)
	key := NewObjectKey("fam-1", "2024-03-15", "photo.jpg")
	require.NoError(t, store.Put(key, []byte("first"), "image/jpeg"))
	require.NoError(t, store.Put(key, []byte("second"), "image/jpeg"))

	obj, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), obj.Data)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store := newTestStore(t)
	evil := ObjectKey{FamilyID: "..", DayBucket: "..", RandomID: "passwd", Ext: "txt"}

	assert.Error(t, store.Put(evil, []byte("nope"), "text/plain"))
	_, err := store.Get(evil)
	assert.Error(t, err)
}

func TestLocalStorage_ListScopedToFamily(t *testing.T) {
	store := newTestStore(t)

	k1 := NewObjectKey("fam-1", "2024-03-15", "a.jpg")
	k2 := NewObjectKey("fam-1", "2024-03-16", "b.jpg")
	k3 := NewObjectKey("fam-2", "2024-03-15", "c.jpg")
	for _, k := range []ObjectKey{k1, k2, k3} {
		require.NoError(t, store.Put(k, []byte("x"), "image/jpeg"))
	}

	keys, err := store.List("fam-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{k1.String(), k2.String()}, keys)

	keys, err = store.List("fam-without-media")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
