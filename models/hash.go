package models

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
)

// HashItem returns a deterministic content hash for a cart item: the item is
// serialized with stable field order, digested with sha256, and encoded as
// unpadded url-safe base64. Structurally identical items always hash to the
// same value, which is what makes remove-by-id idempotent — cart items have
// no surrogate key.
//
// Addition lists are expected to already be in canonical order; Cart.AddItem
// sorts them at insertion time.
func HashItem(item CartItem) string {
	buf, err := json.Marshal(item)
	if err != nil {
		// CartItem contains only marshalable fields.
		panic(err)
	}
	sum := sha256.Sum256(buf)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
