package userControllers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jabney/pizza-api/config"
	"github.com/jabney/pizza-api/middleware"
	"github.com/jabney/pizza-api/models"
	"github.com/jabney/pizza-api/storage"
	"github.com/jabney/pizza-api/validator"
)

const minPasswordLength = 10

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// POST /users
func Create(store *storage.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		_ = c.ShouldBindJSON(&payload)

		v := validator.New(validator.Data{Payload: payload})
		v.Check(
			validator.Field("email").From(validator.Payload).
				IsString("email must be a string").Trim().
				Matches(emailRe, "email must be a valid email address"),
			validator.Field("firstName").From(validator.Payload).
				IsString("firstName must be a string").Trim().
				IsLength(1, -1, "firstName must not be empty"),
			validator.Field("lastName").From(validator.Payload).
				IsString("lastName must be a string").Trim().
				IsLength(1, -1, "lastName must not be empty"),
			validator.Field("password").From(validator.Payload).
				IsString("password must be a string").
				IsLength(minPasswordLength, -1, "password must be at least 10 characters"),
			validator.Field("address").From(validator.Payload).Optional().
				IsObject("address must be an object"),
		)
		checkAddress(v)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		user := models.NewUser(v.String("email"))
		if err := user.Load(store); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			logrus.WithError(err).Error("user load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading resource"})
			return
		}

		user.FirstName = v.String("firstName")
		user.LastName = v.String("lastName")
		user.Address = addressFromPayload(v.Object("address"))
		user.SetPassword(v.String("password"), cfg.HashingSecret)

		if err := user.Save(store); err != nil {
			logrus.WithError(err).Error("user save failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
			return
		}

		// Every user gets an empty cart up front.
		cart := models.NewCart(user.Email)
		if err := cart.Save(store); err != nil {
			logrus.WithError(err).Error("cart create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user.Public()})
	}
}

// GET /users?email=...
func Get(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := validator.New(validator.Data{Query: c.Request.URL.Query()})
		v.Check(
			validator.Field("email").From(validator.Query).
				IsString("email must be a string").Trim().
				Matches(emailRe, "email must be a valid email address"),
		)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		email := v.String("email")
		if email != middleware.CurrentUserID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}

		user := models.NewUser(email)
		if err := user.Load(store); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user.Public()})
	}
}

// PUT /users
func Update(store *storage.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		_ = c.ShouldBindJSON(&payload)

		v := validator.New(validator.Data{Payload: payload})
		v.Check(
			validator.Field("email").From(validator.Payload).Optional().
				IsString("email must be a string").Trim().
				Matches(emailRe, "email must be a valid email address"),
			validator.Field("firstName").From(validator.Payload).Optional().
				IsString("firstName must be a string").Trim().
				IsLength(1, -1, "firstName must not be empty"),
			validator.Field("lastName").From(validator.Payload).Optional().
				IsString("lastName must be a string").Trim().
				IsLength(1, -1, "lastName must not be empty"),
			validator.Field("password").From(validator.Payload).Optional().
				IsString("password must be a string").
				IsLength(minPasswordLength, -1, "password must be at least 10 characters"),
			validator.Field("address").From(validator.Payload).Optional().
				IsObject("address must be an object"),
		)
		checkAddress(v)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		values := v.Values()
		if len(values) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no update fields specified"})
			return
		}

		user := models.NewUser(middleware.CurrentUserID(c))
		if err := user.Load(store); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		if _, ok := values["firstName"]; ok {
			user.FirstName = v.String("firstName")
		}
		if _, ok := values["lastName"]; ok {
			user.LastName = v.String("lastName")
		}
		if _, ok := values["address"]; ok {
			user.Address = addressFromPayload(v.Object("address"))
		}
		if _, ok := values["password"]; ok {
			user.SetPassword(v.String("password"), cfg.HashingSecret)
		}

		newEmail, changingEmail := values["email"].(string)
		if changingEmail && newEmail != user.Email {
			if err := moveUser(store, c, user, newEmail); err != nil {
				logrus.WithError(err).Error("user move failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating user"})
				return
			}
		} else if err := user.Save(store); err != nil {
			logrus.WithError(err).Error("user save failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user.Public()})
	}
}

// DELETE /users?email=...
func Delete(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := validator.New(validator.Data{Query: c.Request.URL.Query()})
		v.Check(
			validator.Field("email").From(validator.Query).
				IsString("email must be a string").Trim().
				Matches(emailRe, "email must be a valid email address"),
		)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		email := v.String("email")
		if email != middleware.CurrentUserID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}

		// Dependent records go first, best effort.
		cart := models.NewCart(email)
		if err := cart.Delete(store); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logrus.WithError(err).Warn("cart delete failed")
		}
		if token, err := models.LoadToken(store, middleware.CurrentTokenID(c)); err == nil {
			if err := token.Delete(store); err != nil && !errors.Is(err, storage.ErrNotFound) {
				logrus.WithError(err).Warn("token delete failed")
			}
		}

		user := models.NewUser(email)
		if err := user.Delete(store); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			logrus.WithError(err).Error("user delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
	}
}

// checkAddress validates the address sub-fields when an address object was
// supplied and survived its own checks.
func checkAddress(v *validator.Validator) {
	address := v.Object("address")
	if address == nil {
		return
	}
	v.Check(
		validator.Field("address.line1").Value(address["line1"]).
			IsString("address.line1 must be a string").Trim().
			IsLength(1, -1, "address.line1 must not be empty"),
		validator.Field("address.line2").Value(address["line2"]).Optional().
			IsString("address.line2 must be a string").Trim(),
		validator.Field("address.city").Value(address["city"]).
			IsString("address.city must be a string").Trim().
			IsLength(1, -1, "address.city must not be empty"),
		validator.Field("address.state").Value(address["state"]).
			IsString("address.state must be a string").Trim().
			IsLength(1, -1, "address.state must not be empty"),
		validator.Field("address.zip").Value(address["zip"]).
			IsString("address.zip must be a string").Trim().
			IsLength(1, -1, "address.zip must not be empty"),
	)
}

func addressFromPayload(m map[string]any) *models.Address {
	if m == nil {
		return nil
	}
	line1, _ := m["line1"].(string)
	line2, _ := m["line2"].(string)
	city, _ := m["city"].(string)
	state, _ := m["state"].(string)
	zip, _ := m["zip"].(string)
	return &models.Address{Line1: line1, Line2: line2, City: city, State: state, Zip: zip}
}

// moveUser re-keys a user and their cart under a new email, points the
// current token at the new key, then removes the old records. Order matters:
// the new records are written before the old ones are deleted so a crash
// mid-move never loses the account.
func moveUser(store *storage.Store, c *gin.Context, user *models.User, newEmail string) error {
	oldEmail := user.Email

	cart := models.NewCart(oldEmail)
	if err := cart.Load(store); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	user.Email = newEmail
	if err := user.Save(store); err != nil {
		user.Email = oldEmail
		return err
	}

	newCart := models.NewCart(newEmail)
	newCart.Items = cart.Items
	if err := newCart.Save(store); err != nil {
		return err
	}

	if token, err := models.LoadToken(store, middleware.CurrentTokenID(c)); err == nil {
		token.UserID = newEmail
		if err := token.Save(store); err != nil {
			return err
		}
	}

	oldCart := models.NewCart(oldEmail)
	if err := oldCart.Delete(store); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logrus.WithError(err).Warn("stale cart delete failed")
	}
	oldUser := models.NewUser(oldEmail)
	if err := oldUser.Delete(store); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logrus.WithError(err).Warn("stale user delete failed")
	}
	return nil
}
