package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"loye-backend/internal/adapters/http/middleware"
	"loye-backend/internal/adapters/http/routes"
	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/config"
	"loye-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "loye-backend/docs" // Swagger docs
)

// @title Loye API
// @version 1.0
// @description Rental property management API: onboarding, properties, rent payments and payouts.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@loye.ci

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.loye.ci
// @BasePath /api
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default data
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start rent reminder scan (08:30 daily)
	reminderService := services.NewReminderService(
		repositories.NewPropertyRepository(db),
		repositories.NewPaymentRepository(db),
		repositories.NewReminderRepository(db),
		repositories.NewUserRepository(db),
		services.NewNotificationService(),
	)
	reminderService.Start()
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Loye API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
