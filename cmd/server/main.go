package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bandmate/internal/adapters/http/middleware"
	"bandmate/internal/adapters/http/routes"
	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/config"
	"bandmate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// @title Bandmate API
// @version 1.0
// @description Rehearsal scheduling for bands: accounts, bands, rehearsals, RSVPs and resources.

// @contact.name API Support
// @contact.email support@bandmate.app

// @license.name MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	response.ExposeInternal = cfg.IsDev()

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("failed to auto migrate: %v", err)
	}
	log.Println("database migration completed")

	// Seed the initial admin account when configured
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("warning: seeding failed: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Bandmate API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes; wiring also builds the cron service
	cronService := routes.Setup(app, cfg)
	cronService.Start()
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	log.Println("server stopped gracefully")
}
