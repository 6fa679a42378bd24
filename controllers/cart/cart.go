package cartControllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jabney/pizza-api/menu"
	"github.com/jabney/pizza-api/middleware"
	"github.com/jabney/pizza-api/models"
	"github.com/jabney/pizza-api/storage"
	"github.com/jabney/pizza-api/validator"
)

// POST /cart
func AddItems(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		_ = c.ShouldBindJSON(&payload)

		v := validator.New(validator.Data{Payload: payload})
		v.Check(
			validator.Field("items").From(validator.Payload).
				IsArray("must include an items array").
				IsLength(1, -1, "items cannot be empty"),
		)

		errorList := v.Errors()
		errorList = append(errorList, validateCartItems(v.Slice("items"), 0)...)
		if len(errorList) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errorList})
			return
		}

		items, err := decodeItems(v.Slice("items"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed cart items"})
			return
		}

		cart, err := loadCart(store, middleware.CurrentUserID(c))
		if err != nil {
			logrus.WithError(err).Error("cart load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading resource"})
			return
		}

		for _, item := range items {
			cart.AddItem(item)
		}

		if err := cart.Save(store); err != nil {
			logrus.WithError(err).Error("cart save failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving cart"})
			return
		}

		respondWithCart(c, store, cart)
	}
}

// GET /cart
func GetCart(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := loadCart(store, middleware.CurrentUserID(c))
		if err != nil {
			logrus.WithError(err).Error("cart load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading resource"})
			return
		}

		respondWithCart(c, store, cart)
	}
}

// DELETE /cart?id=<hash> — an absent id clears the whole cart.
func RemoveItem(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := validator.New(validator.Data{Query: c.Request.URL.Query()})
		v.Check(
			validator.Field("id").From(validator.Query).
				Optional().IsString("id must be a string").Trim(),
		)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		cart := models.NewCart(middleware.CurrentUserID(c))
		if err := cart.Load(store); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no items in cart"})
				return
			}
			logrus.WithError(err).Error("cart load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading resource"})
			return
		}

		if id := v.String("id"); id == "" {
			cart.Clear()
		} else {
			cart.RemoveItem(id)
		}

		if err := cart.Save(store); err != nil {
			logrus.WithError(err).Error("cart save failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving cart"})
			return
		}

		respondWithCart(c, store, cart)
	}
}

// validateCartItems checks the raw items array element by element, using a
// fresh validator per level and merging the error lists. Additions may not
// carry additions of their own, and only top-level items declare a size.
func validateCartItems(items []any, depth int) []validator.Error {
	if items == nil {
		return nil
	}

	v := validator.New(validator.Data{})
	var nested []validator.Error

	v.Check(
		validator.Field("depth").Value(depth).
			IsInRange(0, 1, "add items cannot have add items"),
	)

	for _, raw := range items {
		item, _ := raw.(map[string]any)

		v.Check(validator.Field("item.id").Value(item["id"]).
			IsString("item id must be a string"))

		// Additions inherit their parent's size.
		if depth == 0 {
			v.Check(validator.Field("item.size").Value(item["size"]).
				IsString("item size must be a string").
				IsIn(menu.Sizes, "item size is not a valid size"))
		}

		v.Check(validator.Field("item.add").Value(item["add"]).
			Optional().IsArray("item add must be an array"))

		if add, ok := item["add"].([]any); ok {
			nested = append(nested, validateCartItems(add, depth+1)...)
		}
	}

	return append(nested, v.Errors()...)
}

func decodeItems(raw []any) ([]models.CartItem, error) {
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if err := json.Unmarshal(buf, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// loadCart reads the user's cart, treating a missing record as an empty
// cart: carts are created lazily on first add.
func loadCart(store *storage.Store, userID string) (*models.Cart, error) {
	cart := models.NewCart(userID)
	if err := cart.Load(store); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return cart, nil
}

func respondWithCart(c *gin.Context, store *storage.Store, cart *models.Cart) {
	summary, err := cart.Summarize(c.Request.Context(), store)
	if err != nil {
		logrus.WithError(err).Error("cart summarize failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error processing cart"})
		return
	}
	if summary == nil {
		summary = []models.SummaryItem{}
	}

	c.JSON(http.StatusOK, gin.H{"cart": gin.H{
		"total": models.Total(summary),
		"items": summary,
	}})
}
