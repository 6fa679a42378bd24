package menuControllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jabney/pizza-api/menu"
	"github.com/jabney/pizza-api/storage"
)

// GET /menu
func Get(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		keys, err := store.List(menu.Collection)
		if err != nil {
			logrus.WithError(err).Error("menu list failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading menu"})
			return
		}

		grouped := map[menu.ItemType][]menu.Item{}
		for _, key := range keys {
			var item menu.Item
			if err := store.Read(menu.Collection, key, &item); err != nil {
				logrus.WithError(err).WithField("item", key).Error("menu read failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading menu"})
				return
			}
			grouped[item.Type] = append(grouped[item.Type], item)
		}
		for _, items := range grouped {
			sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		}

		c.JSON(http.StatusOK, gin.H{"menu": grouped})
	}
}
