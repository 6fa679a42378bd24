package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jabney/pizza-api/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCreateToken(t *testing.T) {
	store := newTestStore(t)

	token, err := CreateToken(store, "a@b.com", time.Hour)
	require.NoError(t, err)
	assert.Len(t, token.ID, 32)
	assert.Equal(t, "a@b.com", token.UserID)
	assert.True(t, token.Verify())

	loaded, err := LoadToken(store, token.ID)
	require.NoError(t, err)
	assert.Equal(t, token, loaded)
}

func TestVerify(t *testing.T) {
	now := time.Now().UnixMilli()

	expired := Token{ID: "x", Expires: now - 1}
	assert.False(t, expired.Verify())

	valid := Token{ID: "y", Expires: now + 1000}
	assert.True(t, valid.Verify())
}

func TestExtendRevivesExpiredToken(t *testing.T) {
	token := Token{ID: "x", Expires: time.Now().UnixMilli() - 1}
	require.False(t, token.Verify())

	token.Extend(time.Hour)
	assert.True(t, token.Verify())
}

func TestVerifyTokenID(t *testing.T) {
	store := newTestStore(t)

	_, ok := VerifyTokenID(store, "missing")
	assert.False(t, ok)

	expired := &Token{ID: randomString(32), UserID: "a@b.com", Expires: time.Now().UnixMilli() - 1}
	require.NoError(t, expired.Save(store))
	_, ok = VerifyTokenID(store, expired.ID)
	assert.False(t, ok)

	token, err := CreateToken(store, "a@b.com", time.Hour)
	require.NoError(t, err)
	got, ok := VerifyTokenID(store, token.ID)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", got.UserID)
}

func TestListTokens(t *testing.T) {
	store := newTestStore(t)

	a, err := CreateToken(store, "a@b.com", time.Hour)
	require.NoError(t, err)
	b, err := CreateToken(store, "b@c.com", time.Hour)
	require.NoError(t, err)

	ids, err := ListTokens(store)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}
