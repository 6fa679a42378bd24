package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jabney/pizza-api/config"
	"github.com/jabney/pizza-api/logs"
	"github.com/jabney/pizza-api/menu"
	"github.com/jabney/pizza-api/routes"
	"github.com/jabney/pizza-api/services"
	"github.com/jabney/pizza-api/storage"
	"github.com/jabney/pizza-api/workers"
)

func main() {
	logrus.Info("✅ Starting application...")

	cfg := config.Load()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		logrus.Fatalf("❌ Storage init failed: %v", err)
	}
	appLogs, err := logs.New(cfg.LogsDir)
	if err != nil {
		logrus.Fatalf("❌ Logs init failed: %v", err)
	}

	if err := menu.Seed(store); err != nil {
		logrus.Fatalf("❌ Menu seed failed: %v", err)
	}

	// Background token reaper and log rotation
	w := workers.New(store, appLogs)
	if err := w.Start(); err != nil {
		logrus.Fatalf("❌ Workers failed to start: %v", err)
	}
	defer w.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Store:   store,
		Config:  cfg,
		Charger: services.NewStripe(cfg.Stripe.Key, cfg.Stripe.BaseURL),
		Mailer:  services.NewMailgun(cfg.Mailgun.Domain, cfg.Mailgun.Key, cfg.Mailgun.BaseURL),
	})

	logrus.Infof("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("❌ Failed to start server: %v", err)
	}
}
