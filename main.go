// File: /main.go
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"rct-connect-api/config"
	"rct-connect-api/database"
	"rct-connect-api/jobs"
	"rct-connect-api/middleware"
	"rct-connect-api/routes"
	"rct-connect-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	// Middleware
	router.Use(routes.SetupCORS())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ValidateJSON())
	router.Use(middleware.RateLimit(120, 30))
	router.Use(middleware.ErrorHandler())

	// Email service
	emailService := services.NewEmailService(cfg)

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Background jobs
	cleanupJob := jobs.NewNotificationCleanupJob(db, 6*time.Hour, 30*24*time.Hour)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Start server
	log.Printf("Starting RCT Connect API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
