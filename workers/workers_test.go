package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jabney/pizza-api/logs"
	"github.com/jabney/pizza-api/models"
	"github.com/jabney/pizza-api/storage"
)

func newTestWorkers(t *testing.T) (*Workers, *storage.Store) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	appLogs, err := logs.New(t.TempDir())
	require.NoError(t, err)
	return New(store, appLogs), store
}

func TestRemoveExpiredTokens(t *testing.T) {
	w, store := newTestWorkers(t)

	valid, err := models.CreateToken(store, "a@b.com", time.Hour)
	require.NoError(t, err)

	expired := &models.Token{ID: "expiredexpiredexpiredexpiredexpi", UserID: "b@c.com", Expires: time.Now().UnixMilli() - 1}
	require.NoError(t, expired.Save(store))

	w.RemoveExpiredTokens()

	ids, err := models.ListTokens(store)
	require.NoError(t, err)
	assert.Equal(t, []string{valid.ID}, ids)
}

func TestRemoveExpiredTokensEmptyStore(t *testing.T) {
	w, store := newTestWorkers(t)

	w.RemoveExpiredTokens()

	ids, err := models.ListTokens(store)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
