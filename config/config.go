package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// StripeConfig holds the payment gateway settings.
type StripeConfig struct {
	Key     string
	BaseURL string
}

// MailgunConfig holds the mail gateway settings.
type MailgunConfig struct {
	Domain  string
	Key     string
	BaseURL string
}

type Config struct {
	Env           string
	Port          string
	DataDir       string
	LogsDir       string
	HashingSecret string
	TokenTTL      time.Duration
	Stripe        StripeConfig
	Mailgun       MailgunConfig
}

// Load reads configuration from the environment, with a .env file as a
// fallback source for local development.
func Load() *Config {
	_ = godotenv.Load()

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}

	return &Config{
		Env:           getEnv("ENV", "staging"),
		Port:          getEnv("PORT", "3000"),
		DataDir:       getEnv("DATA_DIR", ".data"),
		LogsDir:       getEnv("LOGS_DIR", ".logs"),
		HashingSecret: getEnv("HASHING_SECRET", "changeme"),
		TokenTTL:      time.Duration(ttlHours) * time.Hour,
		Stripe: StripeConfig{
			Key:     os.Getenv("STRIPE_KEY"),
			BaseURL: getEnv("STRIPE_URL", "https://api.stripe.com"),
		},
		Mailgun: MailgunConfig{
			Domain:  os.Getenv("MAILGUN_DOMAIN"),
			Key:     os.Getenv("MAILGUN_KEY"),
			BaseURL: getEnv("MAILGUN_URL", "https://api.mailgun.net"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
