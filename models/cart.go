package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jabney/pizza-api/menu"
	"github.com/jabney/pizza-api/storage"
)

const cartCollection = "cart"

// CartItem is one node of a cart's item tree. Top-level items carry a size;
// additions inherit their parent's size and may not nest further.
type CartItem struct {
	ID   string        `json:"id"`
	Size menu.ItemSize `json:"size,omitempty"`
	Add  []CartItem    `json:"add,omitempty"`
}

// SummaryItem is the priced, display-ready projection of a cart item. It is
// derived fresh on every read and never persisted.
type SummaryItem struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Size  menu.ItemSize `json:"size,omitempty"`
	Price float64       `json:"price"`
	Add   []SummaryItem `json:"add,omitempty"`
}

// Cart owns a user's item tree. Each user has exactly one cart, keyed by
// their email in storage.
type Cart struct {
	ID    string
	Items []CartItem
}

type cartData struct {
	Items []CartItem `json:"items"`
}

func NewCart(id string) *Cart {
	return &Cart{ID: id, Items: []CartItem{}}
}

func (c *Cart) Load(store *storage.Store) error {
	var data cartData
	if err := store.Read(cartCollection, c.ID, &data); err != nil {
		return err
	}
	c.Items = data.Items
	return nil
}

func (c *Cart) Save(store *storage.Store) error {
	return store.Upsert(cartCollection, c.ID, cartData{Items: c.Items})
}

func (c *Cart) Delete(store *storage.Store) error {
	return store.Delete(cartCollection, c.ID)
}

// AddItem appends an item to the cart. Additions are sorted into canonical
// order here, at insertion time, so the persisted document already hashes
// deterministically no matter what order the client sent them in.
func (c *Cart) AddItem(item CartItem) {
	if len(item.Add) > 0 {
		sort.SliceStable(item.Add, func(i, j int) bool {
			return item.Add[i].ID < item.Add[j].ID
		})
	}
	c.Items = append(c.Items, item)
}

// RemoveItem removes the item whose content hash matches id. A composite id
// of the form "parentHash:childHash" removes an addition from within a
// specific top-level item. Unknown hashes are a no-op.
func (c *Cart) RemoveItem(id string) {
	var parts []string
	for _, p := range strings.Split(id, ":") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	switch len(parts) {
	case 0:
		return
	case 1:
		c.Items = removeByHash(c.Items, parts[0])
	default:
		c.removeSubItem(parts[0], parts[1])
	}
}

// Clear empties the cart in place.
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
}

// Summarize prices the cart's item tree against the menu, producing a
// summary forest that mirrors the cart tree shape 1:1. A cart item whose
// menu reference no longer exists fails the whole operation: a priced cart
// with an invisible missing line item would be a correctness bug.
func (c *Cart) Summarize(ctx context.Context, store *storage.Store) ([]SummaryItem, error) {
	return summarizeItems(ctx, store, c.Items, nil)
}

// Total sums every node's price across the summary forest and rounds the
// result to 2 decimal places. Only the final total is rounded; intermediate
// sums carry exact decimals so drift cannot accumulate across additions.
func Total(items []SummaryItem) float64 {
	total, _ := sumItems(items).Round(2).Float64()
	return total
}

func sumItems(items []SummaryItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price)).Add(sumItems(item.Add))
	}
	return sum
}

// summarizeItems fans out over sibling items concurrently; each parent joins
// its children before its own node is considered complete.
func summarizeItems(ctx context.Context, store *storage.Store, items []CartItem, parent *CartItem) ([]SummaryItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	summaries := make([]SummaryItem, len(items))
	g, ctx := errgroup.WithContext(ctx)

	for i := range items {
		i := i
		g.Go(func() error {
			item := items[i]
			summary, err := summarizeItem(store, item, parent)
			if err != nil {
				return err
			}
			if len(item.Add) > 0 {
				subs, err := summarizeItems(ctx, store, item.Add, &item)
				if err != nil {
					return err
				}
				summary.Add = subs
			}
			summaries[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func summarizeItem(store *storage.Store, item CartItem, parent *CartItem) (SummaryItem, error) {
	var menuItem menu.Item
	if err := store.Read(menu.Collection, item.ID, &menuItem); err != nil {
		return SummaryItem{}, fmt.Errorf("summarize item %q: %w", item.ID, err)
	}

	// Additions are priced at the parent's size: extra cheese costs more on
	// a large pizza than a small one, and the addition node carries no size
	// of its own.
	size := item.Size
	if parent != nil {
		size = parent.Size
	}

	price, ok := menuItem.Price[size]
	if !ok {
		return SummaryItem{}, fmt.Errorf("menu item %q has no price for size %q", item.ID, size)
	}

	return SummaryItem{
		ID:    HashItem(item),
		Name:  menuItem.Name,
		Size:  item.Size,
		Price: price,
	}, nil
}

func removeByHash(items []CartItem, hash string) []CartItem {
	for i, item := range items {
		if HashItem(item) == hash {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

func (c *Cart) removeSubItem(parentHash, childHash string) {
	for i := range c.Items {
		if HashItem(c.Items[i]) == parentHash {
			c.Items[i].Add = removeByHash(c.Items[i].Add, childHash)
			return
		}
	}
}
