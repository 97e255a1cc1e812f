package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/albaz/internal/config"
	"github.com/example/albaz/internal/routes"
	"github.com/example/albaz/internal/services"
	"github.com/example/albaz/internal/storage"
	"github.com/example/albaz/internal/store"
)

func main() {
	cfg := config.Load()
	engine := storage.Open(cfg.DatabaseURL)

	dataStore := store.New(store.Options{
		Engine:         engine,
		Mailer:         services.NewEmailService(),
		Snapshot:       store.NewSnapshot(cfg.SessionFile, cfg.SessionSecret, cfg.SessionTTL),
		CheckoutDelay:  cfg.CheckoutDelay,
		WhatsAppNumber: cfg.WhatsAppNumber,
	})
	dataStore.Load(context.Background())
	defer dataStore.Wait()

	app := fiber.New(fiber.Config{
		AppName: "Albaz Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, dataStore, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
