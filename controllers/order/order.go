package orderControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jabney/pizza-api/middleware"
	"github.com/jabney/pizza-api/models"
	"github.com/jabney/pizza-api/services"
	"github.com/jabney/pizza-api/storage"
	"github.com/jabney/pizza-api/validator"
)

// POST /order
func Create(store *storage.Store, charger services.Charger, mailer services.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		_ = c.ShouldBindJSON(&payload)

		v := validator.New(validator.Data{Payload: payload})
		v.Check(
			validator.Field("ccinfo").From(validator.Payload).
				IsObject("ccinfo must be an object"),
		)

		ccinfo := v.Object("ccinfo")
		v.Check(
			validator.Field("number").Value(ccinfo["number"]).
				IsNumber("ccinfo.number must be a number"),
			validator.Field("exp_month").Value(ccinfo["exp_month"]).
				IsNumber("ccinfo.exp_month must be a number").
				IsInRange(1, 12, "ccinfo.exp_month must be a valid month"),
			validator.Field("exp_year").Value(ccinfo["exp_year"]).
				IsNumber("ccinfo.exp_year must be a number").
				IsInRange(2018, 2040, "ccinfo.exp_year must be a valid year"),
			validator.Field("cvc").Value(ccinfo["cvc"]).
				IsNumber("ccinfo.cvc must be a number").
				IsInRange(1, 999, "ccinfo.cvc must be a valid cvc"),
		)
		if !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": v.Errors()})
			return
		}

		card := cardFromPayload(ccinfo)
		userID := middleware.CurrentUserID(c)

		cart := models.NewCart(userID)
		if err := cart.Load(store); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
				return
			}
			logrus.WithError(err).Error("cart load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading resource"})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		summary, err := cart.Summarize(c.Request.Context(), store)
		if err != nil {
			logrus.WithError(err).Error("cart summarize failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error processing cart"})
			return
		}
		total := models.Total(summary)

		user := models.NewUser(userID)
		if err := user.Load(store); err != nil {
			logrus.WithError(err).Error("user load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading user"})
			return
		}

		ref := uuid.NewString()
		description := fmt.Sprintf("Order %s for %s", ref, userID)

		if _, err := charger.Charge(c.Request.Context(), total, userID, description, card); err != nil {
			var paymentErr *services.PaymentError
			if errors.As(err, &paymentErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": paymentErr.Message})
				return
			}
			logrus.WithError(err).Error("charge failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error processing payment"})
			return
		}

		// The charge has succeeded; a mail failure must not fail the order.
		receipt := buildReceipt(summary, total, user, card)
		if _, err := mailer.Send(c.Request.Context(), userID, "Your order is on its way!", receipt); err != nil {
			logrus.WithError(err).WithField("user", userID).Error("receipt email failed")
		}

		c.JSON(http.StatusOK, gin.H{"message": "order successful"})
	}
}

func cardFromPayload(ccinfo map[string]any) services.CardInfo {
	number, _ := ccinfo["number"].(float64)
	expMonth, _ := ccinfo["exp_month"].(float64)
	expYear, _ := ccinfo["exp_year"].(float64)
	cvc, _ := ccinfo["cvc"].(float64)

	return services.CardInfo{
		Number:   int64(number),
		ExpMonth: int(expMonth),
		ExpYear:  int(expYear),
		CVC:      int(cvc),
	}
}
