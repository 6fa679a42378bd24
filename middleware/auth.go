package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jabney/pizza-api/models"
	"github.com/jabney/pizza-api/storage"
	"github.com/jabney/pizza-api/validator"
)

// RequireToken gates protected routes. It validates the token header's
// shape, then loads and verifies the token. Missing, unknown, and expired
// tokens all produce the same 403 so callers can't probe which ids exist.
func RequireToken(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := validator.New(validator.Data{Headers: c.Request.Header})
		v.Check(
			validator.Field("token").From(validator.Headers).
				IsString("token must be a string").Trim().
				IsLength(32, 32, "invalid token format"),
		)
		if !v.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		token, ok := models.VerifyTokenID(store, v.String("token"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}

		c.Set("userId", token.UserID)
		c.Set("tokenId", token.ID)
		c.Next()
	}
}

// CurrentUserID returns the user id set by RequireToken.
func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get("userId"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CurrentTokenID returns the token id set by RequireToken.
func CurrentTokenID(c *gin.Context) string {
	if v, ok := c.Get("tokenId"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
