package main

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-analytics-api/internal/config"
	"github.com/yukikurage/task-analytics-api/internal/database"
	"github.com/yukikurage/task-analytics-api/internal/handlers"
	"github.com/yukikurage/task-analytics-api/internal/logging"
	"github.com/yukikurage/task-analytics-api/internal/repository"
	"github.com/yukikurage/task-analytics-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := logging.Init(cfg)
	if err != nil {
		logging.Logger.Fatalf("Failed to initialize logger: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		logging.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	taskRepo := repository.NewTaskRepository(database.GetDB())
	userRepo := repository.NewUserRepository(database.GetDB())

	taskService := services.NewTaskService(taskRepo, userRepo)
	userService := services.NewUserService(userRepo)
	analyticsService := services.NewAnalyticsService(taskRepo, userRepo)

	// Initialize handlers
	r := handlers.NewRouter(
		cfg.JWTSecret,
		handlers.NewTaskHandler(taskService),
		handlers.NewUserHandler(userService),
		handlers.NewAnalyticsHandler(analyticsService),
	)

	// Start server
	logging.Logger.WithField("port", cfg.Port).Info("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}
