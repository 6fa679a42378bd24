package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jabney/pizza-api/menu"
)

func TestHashItemDeterministic(t *testing.T) {
	item := CartItem{
		ID:   "cheese-pizza",
		Size: menu.SizeMedium,
		Add:  []CartItem{{ID: "pepperoni-topping"}},
	}

	assert.Equal(t, HashItem(item), HashItem(item))
}

func TestHashItemDistinguishesContent(t *testing.T) {
	a := CartItem{ID: "cheese-pizza", Size: menu.SizeMedium}
	b := CartItem{ID: "cheese-pizza", Size: menu.SizeLarge}

	assert.NotEqual(t, HashItem(a), HashItem(b))
}

func TestAddItemCanonicalizesAdditionOrder(t *testing.T) {
	// Two carts receive the same item with additions in opposite order; the
	// stored items must hash identically.
	a := NewCart("a@b.com")
	a.AddItem(CartItem{ID: "cheese-pizza", Size: menu.SizeMedium, Add: []CartItem{
		{ID: "pepperoni-topping"},
		{ID: "mushroom-topping"},
	}})

	b := NewCart("b@c.com")
	b.AddItem(CartItem{ID: "cheese-pizza", Size: menu.SizeMedium, Add: []CartItem{
		{ID: "mushroom-topping"},
		{ID: "pepperoni-topping"},
	}})

	assert.Equal(t, HashItem(a.Items[0]), HashItem(b.Items[0]))
}
