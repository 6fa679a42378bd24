package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/jabney/pizza-api/storage"
)

const userCollection = "users"

// Address is a user's delivery address.
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// User is an account record, keyed by email. The Password field only ever
// holds the HMAC digest; plaintext goes through SetPassword at the write
// boundary and is never stored on the struct.
type User struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Address   *Address `json:"address,omitempty"`
	Password  string   `json:"password,omitempty"`
}

func NewUser(email string) *User {
	return &User{Email: email}
}

func (u *User) Load(store *storage.Store) error {
	return store.Read(userCollection, u.Email, u)
}

func (u *User) Save(store *storage.Store) error {
	return store.Upsert(userCollection, u.Email, u)
}

func (u *User) Delete(store *storage.Store) error {
	return store.Delete(userCollection, u.Email)
}

// SetPassword hashes plain under secret and stores the digest.
func (u *User) SetPassword(plain, secret string) {
	u.Password = HashPassword(plain, secret)
}

// VerifyPassword reports whether plain matches the stored digest.
func (u *User) VerifyPassword(plain, secret string) bool {
	if plain == "" || u.Password == "" {
		return false
	}
	return hmac.Equal([]byte(HashPassword(plain, secret)), []byte(u.Password))
}

// Public returns a copy of the user safe for API responses: the password
// digest is stripped.
func (u User) Public() User {
	u.Password = ""
	return u
}

// HashPassword returns the hex HMAC-SHA256 digest of plain under secret.
func HashPassword(plain, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(plain))
	return hex.EncodeToString(mac.Sum(nil))
}
