package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	user := NewUser("a@b.com")
	user.SetPassword("pw1234567890", "secret")

	assert.NotEqual(t, "pw1234567890", user.Password)
	assert.True(t, user.VerifyPassword("pw1234567890", "secret"))
	assert.False(t, user.VerifyPassword("wrong", "secret"))
	assert.False(t, user.VerifyPassword("pw1234567890", "other-secret"))
	assert.False(t, user.VerifyPassword("", "secret"))
}

func TestPublicStripsPassword(t *testing.T) {
	user := NewUser("a@b.com")
	user.SetPassword("pw1234567890", "secret")

	public := user.Public()
	assert.Empty(t, public.Password)
	assert.NotEmpty(t, user.Password)
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)

	user := NewUser("a@b.com")
	user.FirstName = "Big"
	user.LastName = "Bear"
	user.SetPassword("pw1234567890", "secret")
	require.NoError(t, user.Save(store))

	loaded := NewUser("a@b.com")
	require.NoError(t, loaded.Load(store))
	assert.Equal(t, user, loaded)
}
