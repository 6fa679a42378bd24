package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jabney/pizza-api/menu"
	"github.com/jabney/pizza-api/storage"
)

func newMenuStore(t *testing.T) *storage.Store {
	t.Helper()
	store := newTestStore(t)
	require.NoError(t, menu.Seed(store))
	return store
}

func TestSummarizePricesWholeTree(t *testing.T) {
	store := newMenuStore(t)

	cart := NewCart("a@b.com")
	cart.AddItem(CartItem{ID: "cheese-pizza", Size: menu.SizeMedium, Add: []CartItem{
		{ID: "pepperoni-topping"},
	}})

	summary, err := cart.Summarize(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, summary, 1)

	assert.Equal(t, "Cheese Pizza (a.k.a The Commando)", summary[0].Name)
	assert.Equal(t, 11.99, summary[0].Price)
	require.Len(t, summary[0].Add, 1)
	assert.Equal(t, "Pepperoni", summary[0].Add[0].Name)
	assert.Equal(t, 1.00, summary[0].Add[0].Price)

	assert.Equal(t, 12.99, Total(summary))
}

func TestAdditionsPricedAtParentSize(t *testing.T) {
	store := newMenuStore(t)

	cart := NewCart("a@b.com")
	cart.AddItem(CartItem{ID: "cheese-pizza", Size: menu.SizeLarge, Add: []CartItem{
		{ID: "pepperoni-topping"},
	}})

	summary, err := cart.Summarize(context.Background(), store)
	require.NoError(t, err)

	// Pepperoni on a large pizza costs the large price, not a default.
	assert.Equal(t, 1.50, summary[0].Add[0].Price)
	assert.Equal(t, 15.49, Total(summary))
}

func TestSummarizeFailsOnMissingMenuItem(t *testing.T) {
	store := newMenuStore(t)

	cart := NewCart("a@b.com")
	cart.AddItem(CartItem{ID: "deep-dish", Size: menu.SizeMedium})

	_, err := cart.Summarize(context.Background(), store)
	assert.Error(t, err)
}

func TestSummarizeFailsOnUnpricedSize(t *testing.T) {
	store := newMenuStore(t)

	// Beverages only have a regular price.
	cart := NewCart("a@b.com")
	cart.AddItem(CartItem{ID: "cola", Size: menu.SizeLarge})

	_, err := cart.Summarize(context.Background(), store)
	assert.Error(t, err)
}

func TestTotalEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
}

func TestRemoveItemByHash(t *testing.T) {
	cart := NewCart("a@b.com")
	pizza := CartItem{ID: "cheese-pizza", Size: menu.SizeMedium}
	salad := CartItem{ID: "garden-salad", Size: menu.SizeRegular}
	cart.AddItem(pizza)
	cart.AddItem(salad)

	cart.RemoveItem(HashItem(pizza))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "garden-salad", cart.Items[0].ID)
}

func TestRemoveUnknownHashIsNoop(t *testing.T) {
	cart := NewCart("a@b.com")
	cart.AddItem(CartItem{ID: "cheese-pizza", Size: menu.SizeMedium})

	cart.RemoveItem("nope")

	assert.Len(t, cart.Items, 1)
}

func TestRemoveSubItem(t *testing.T) {
	cart := NewCart("a@b.com")
	cart.AddItem(CartItem{ID: "cheese-pizza", Size: menu.SizeMedium, Add: []CartItem{
		{ID: "pepperoni-topping"},
		{ID: "mushroom-topping"},
	}})

	parent := HashItem(cart.Items[0])
	child := HashItem(CartItem{ID: "pepperoni-topping"})
	cart.RemoveItem(parent + ":" + child)

	require.Len(t, cart.Items, 1)
	require.Len(t, cart.Items[0].Add, 1)
	assert.Equal(t, "mushroom-topping", cart.Items[0].Add[0].ID)
}

func TestClear(t *testing.T) {
	cart := NewCart("a@b.com")
	cart.AddItem(CartItem{ID: "cheese-pizza", Size: menu.SizeMedium})
	cart.Clear()

	assert.Empty(t, cart.Items)
}

func TestCartRoundTrip(t *testing.T) {
	store := newTestStore(t)

	cart := NewCart("a@b.com")
	cart.AddItem(CartItem{ID: "cheese-pizza", Size: menu.SizeMedium, Add: []CartItem{
		{ID: "pepperoni-topping"},
	}})
	require.NoError(t, cart.Save(store))

	loaded := NewCart("a@b.com")
	require.NoError(t, loaded.Load(store))
	assert.Equal(t, cart.Items, loaded.Items)
}
