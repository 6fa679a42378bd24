package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCreateAndRead(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Create("things", "a", record{Name: "first", Count: 1}))

	var got record
	require.NoError(t, store.Read("things", "a", &got))
	assert.Equal(t, record{Name: "first", Count: 1}, got)
}

func TestCreateExisting(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Create("things", "a", record{Name: "first"}))
	err := store.Create("things", "a", record{Name: "second"})
	assert.ErrorIs(t, err, ErrExists)
}

func TestReadMissing(t *testing.T) {
	store := newTestStore(t)

	var got record
	err := store.Read("things", "nope", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Create("things", "a", record{Name: "first", Count: 1}))
	require.NoError(t, store.Update("things", "a", record{Name: "second", Count: 2}))

	var got record
	require.NoError(t, store.Read("things", "a", &got))
	assert.Equal(t, record{Name: "second", Count: 2}, got)
}

func TestUpdateMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.Update("things", "nope", record{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertCreatesThenMerges(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Upsert("things", "a", map[string]any{"name": "first", "count": 1}))

	// A later upsert merges over existing fields instead of replacing the
	// whole document.
	require.NoError(t, store.Upsert("things", "a", map[string]any{"name": "second"}))

	var got record
	require.NoError(t, store.Read("things", "a", &got))
	assert.Equal(t, "second", got.Name)
	assert.Equal(t, 1, got.Count)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Create("things", "a", record{Name: "first"}))
	require.NoError(t, store.Delete("things", "a"))

	var got record
	assert.ErrorIs(t, store.Read("things", "a", &got), ErrNotFound)
	assert.ErrorIs(t, store.Delete("things", "a"), ErrNotFound)
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	keys, err := store.List("things")
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.Create("things", "a", record{}))
	require.NoError(t, store.Create("things", "b", record{}))

	keys, err = store.List("things")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}
