package tokenControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jabney/pizza-api/config"
	"github.com/jabney/pizza-api/models"
	"github.com/jabney/pizza-api/storage"
	"github.com/jabney/pizza-api/validator"
)

// POST /tokens
func Create(store *storage.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		_ = c.ShouldBindJSON(&payload)

		v := validator.New(validator.Data{Payload: payload})
		v.Check(
			validator.Field("email").From(validator.Payload).
				IsString("email must be a string").Trim(),
			validator.Field("password").From(validator.Payload).
				IsString("password must be a string").Trim(),
		)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		// One message for every credential failure, so responses don't leak
		// whether the account exists.
		const commonFailure = "authorization failure"

		user := models.NewUser(v.String("email"))
		if err := user.Load(store); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": commonFailure})
			return
		}
		if !user.VerifyPassword(v.String("password"), cfg.HashingSecret) {
			c.JSON(http.StatusBadRequest, gin.H{"error": commonFailure})
			return
		}

		token, err := models.CreateToken(store, user.Email, cfg.TokenTTL)
		if err != nil {
			logrus.WithError(err).Error("token creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token creation error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// GET /tokens?token=<id>
func Get(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := validator.New(validator.Data{Query: c.Request.URL.Query()})
		v.Check(
			validator.Field("token").From(validator.Query).
				IsString("token must be a string").Trim().
				IsLength(32, 32, "invalid token format"),
		)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		token, err := models.LoadToken(store, v.String("token"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// PUT /tokens
func Extend(store *storage.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		_ = c.ShouldBindJSON(&payload)

		v := validator.New(validator.Data{Payload: payload})
		v.Check(
			validator.Field("token").From(validator.Payload).
				IsString("token must be a string").Trim().
				IsLength(32, 32, "invalid token format"),
			validator.Field("extend").From(validator.Payload).
				IsBoolean("extend must be a boolean").
				IsTrue("extend must be true"),
		)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		token, err := models.LoadToken(store, v.String("token"))
		if err != nil {
			// A bad id and an expired token must not be distinguishable from
			// each other in any way that aids guessing; a missing token is
			// an authorization failure here, not a 404.
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}

		if !token.Verify() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is expired"})
			return
		}

		token.Extend(cfg.TokenTTL)
		if err := token.Save(store); err != nil {
			logrus.WithError(err).Error("token extension failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error extending token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "token extended"})
	}
}

// DELETE /tokens?token=<id>
func Delete(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := validator.New(validator.Data{Query: c.Request.URL.Query()})
		v.Check(
			validator.Field("token").From(validator.Query).
				IsString("token must be a string").Trim().
				IsLength(32, 32, "invalid token format"),
		)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		token := models.Token{ID: v.String("token")}
		if err := token.Delete(store); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logrus.WithError(err).Error("token deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "token deleted"})
	}
}
