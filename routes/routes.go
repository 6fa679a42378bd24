package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jabney/pizza-api/config"
	cartControllers "github.com/jabney/pizza-api/controllers/cart"
	menuControllers "github.com/jabney/pizza-api/controllers/menu"
	orderControllers "github.com/jabney/pizza-api/controllers/order"
	tokenControllers "github.com/jabney/pizza-api/controllers/token"
	userControllers "github.com/jabney/pizza-api/controllers/user"
	"github.com/jabney/pizza-api/middleware"
	"github.com/jabney/pizza-api/services"
	"github.com/jabney/pizza-api/storage"
)

// Deps bundles the shared collaborators the route handlers close over.
type Deps struct {
	Store   *storage.Store
	Config  *config.Config
	Charger services.Charger
	Mailer  services.Mailer
}

// SetupRoutes registers every endpoint on the engine.
func SetupRoutes(r *gin.Engine, deps Deps) {
	r.Any("/ping", pingHandler)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	r.GET("/menu", menuControllers.Get(deps.Store))

	tokenGroup := r.Group("/tokens")
	{
		tokenGroup.POST("", tokenControllers.Create(deps.Store, deps.Config))
		tokenGroup.GET("", tokenControllers.Get(deps.Store))
		tokenGroup.PUT("", tokenControllers.Extend(deps.Store, deps.Config))
		tokenGroup.DELETE("", tokenControllers.Delete(deps.Store))
	}

	// Account creation is the one user operation that cannot require a token.
	r.POST("/users", userControllers.Create(deps.Store, deps.Config))

	authed := r.Group("")
	authed.Use(middleware.RequireToken(deps.Store))
	{
		authed.GET("/users", userControllers.Get(deps.Store))
		authed.PUT("/users", userControllers.Update(deps.Store, deps.Config))
		authed.DELETE("/users", userControllers.Delete(deps.Store))

		cartGroup := authed.Group("/cart")
		{
			cartGroup.POST("", cartControllers.AddItems(deps.Store))
			cartGroup.GET("", cartControllers.GetCart(deps.Store))
			cartGroup.DELETE("", cartControllers.RemoveItem(deps.Store))
		}

		authed.POST("/order", orderControllers.Create(deps.Store, deps.Charger, deps.Mailer))
	}
}

// pingHandler echoes the request back, for connectivity checks.
func pingHandler(c *gin.Context) {
	var payload map[string]any
	_ = c.ShouldBindJSON(&payload)
	if payload == nil {
		payload = map[string]any{}
	}
	c.JSON(http.StatusOK, gin.H{
		"headers": c.Request.Header,
		"payload": payload,
	})
}
