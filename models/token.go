package models

import (
	"crypto/rand"
	"time"

	"github.com/jabney/pizza-api/storage"
)

const (
	tokenCollection = "tokens"
	tokenIDLength   = 32

	tokenCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Token is a bearer auth token: an opaque random id bound to a user, valid
// until its expiry passes.
type Token struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Expires int64  `json:"expires"` // epoch ms
}

// CreateToken generates and persists a fresh token for a user.
func CreateToken(store *storage.Store, userID string, ttl time.Duration) (*Token, error) {
	token := &Token{
		ID:      randomString(tokenIDLength),
		UserID:  userID,
		Expires: time.Now().Add(ttl).UnixMilli(),
	}
	if err := token.Save(store); err != nil {
		return nil, err
	}
	return token, nil
}

// LoadToken reads a token by id.
func LoadToken(store *storage.Store, id string) (*Token, error) {
	var token Token
	if err := store.Read(tokenCollection, id, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// ListTokens returns the ids of every stored token.
func ListTokens(store *storage.Store) ([]string, error) {
	return store.List(tokenCollection)
}

func (t *Token) Save(store *storage.Store) error {
	return store.Upsert(tokenCollection, t.ID, t)
}

func (t *Token) Delete(store *storage.Store) error {
	return store.Delete(tokenCollection, t.ID)
}

// Extend resets the expiry to now + d, preserving the id. The caller must
// persist the token explicitly.
func (t *Token) Extend(d time.Duration) {
	t.Expires = time.Now().Add(d).UnixMilli()
}

// Verify reports whether the token is still valid. It is a pure predicate
// and touches neither the clock source nor storage beyond reading now().
func (t *Token) Verify() bool {
	return t.Expires > time.Now().UnixMilli()
}

// VerifyTokenID loads a token by id and checks it, returning the token on
// success. It reports false on any failure: callers cannot (and must not)
// distinguish a missing token from an expired one.
func VerifyTokenID(store *storage.Store, id string) (*Token, bool) {
	token, err := LoadToken(store, id)
	if err != nil {
		return nil, false
	}
	if !token.Verify() {
		return nil, false
	}
	return token, true
}

func randomString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = tokenCharset[int(b)%len(tokenCharset)]
	}
	return string(buf)
}
