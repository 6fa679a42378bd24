// Package services holds the HTTP clients for the external payment and mail
// gateways.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PaymentError carries the gateway's own failure code and message. The
// message is assumed safe for display to the client.
type PaymentError struct {
	Code    string
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("stripe: %s (%s)", e.Message, e.Code)
}

// CardInfo is the card data collected at checkout.
type CardInfo struct {
	Number   int64 `json:"number"`
	ExpMonth int   `json:"exp_month"`
	ExpYear  int   `json:"exp_year"`
	CVC      int   `json:"cvc"`
}

// Charger charges a card for an order.
type Charger interface {
	Charge(ctx context.Context, amountUSD float64, email, description string, card CardInfo) (chargeID string, err error)
}

// StripeService charges cards through the Stripe API: tokenize the card,
// then charge the token.
type StripeService struct {
	key     string
	baseURL string
	client  *http.Client
}

func NewStripe(key, baseURL string) *StripeService {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeService{
		key:     key,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Charge charges the card for the given USD amount. Gateway rejections come
// back as *PaymentError.
func (s *StripeService) Charge(ctx context.Context, amountUSD float64, email, description string, card CardInfo) (string, error) {
	cardToken, err := s.cardToken(ctx, card)
	if err != nil {
		return "", err
	}
	return s.charge(ctx, amountUSD, cardToken, description)
}

func (s *StripeService) cardToken(ctx context.Context, card CardInfo) (string, error) {
	form := url.Values{}
	form.Set("card[number]", strconv.FormatInt(card.Number, 10))
	form.Set("card[exp_month]", strconv.Itoa(card.ExpMonth))
	form.Set("card[exp_year]", strconv.Itoa(card.ExpYear))
	form.Set("card[cvc]", strconv.Itoa(card.CVC))

	var out struct {
		ID string `json:"id"`
	}
	if err := s.post(ctx, "/v1/tokens", form, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (s *StripeService) charge(ctx context.Context, amountUSD float64, cardToken, description string) (string, error) {
	form := url.Values{}
	// Stripe wants integer cents.
	form.Set("amount", strconv.Itoa(int(math.Round(amountUSD*100))))
	form.Set("currency", "usd")
	form.Set("source", cardToken)
	form.Set("description", description)

	var out struct {
		ID string `json:"id"`
	}
	if err := s.post(ctx, "/v1/charges", form, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (s *StripeService) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.key, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("stripe: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stripe: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var failure struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &failure); err != nil || failure.Error.Message == "" {
			return &PaymentError{Code: strconv.Itoa(resp.StatusCode), Message: "payment failed"}
		}
		return &PaymentError{Code: failure.Error.Code, Message: failure.Error.Message}
	}

	return json.Unmarshal(body, out)
}
