// Package menu holds the shop's read-only reference data: every orderable
// item with its per-size price table.
package menu

import (
	"errors"

	"github.com/jabney/pizza-api/storage"
)

// Collection is the storage collection menu items are seeded into.
const Collection = "menu"

// ItemSize names a priced size of a menu item.
type ItemSize string

const (
	SizeSmall   ItemSize = "small"
	SizeMedium  ItemSize = "medium"
	SizeLarge   ItemSize = "large"
	SizeXLarge  ItemSize = "x-large"
	SizeRegular ItemSize = "regular"
)

// Sizes lists every valid item size, for request validation.
var Sizes = []string{
	string(SizeSmall),
	string(SizeMedium),
	string(SizeLarge),
	string(SizeXLarge),
	string(SizeRegular),
}

// ItemType categorizes menu items.
type ItemType string

const (
	TypePizza    ItemType = "pizza"
	TypeTopping  ItemType = "topping"
	TypeSalad    ItemType = "salad"
	TypeDressing ItemType = "dressing"
	TypeBeverage ItemType = "beverage"
)

// Item is one orderable menu entry. The price map must contain an entry for
// every size a cart item referencing it (or its parent, for additions) may
// specify; a missing entry is a data-integrity error.
type Item struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Type  ItemType             `json:"type"`
	Desc  string               `json:"desc,omitempty"`
	Price map[ItemSize]float64 `json:"price"`
}

// Seed replaces the menu collection with the built-in menu.
func Seed(store *storage.Store) error {
	keys, err := store.List(Collection)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := store.Delete(Collection, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	for _, item := range Items {
		if err := store.Create(Collection, item.ID, item); err != nil && !errors.Is(err, storage.ErrExists) {
			return err
		}
	}
	return nil
}
