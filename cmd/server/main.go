package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wolfeagle1193/tukki-api-sub000/config"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/controller"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/repository"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/service"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/db"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/middleware"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/router"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/scheduler"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/storage"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting TUKKI Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs the token blacklist; the API degrades gracefully without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	entityRepo := repository.NewEntityRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	likeRepo := repository.NewLikeRepository(db.GetDB())
	commentRepo := repository.NewCommentRepository(db.GetDB())
	auditRepo := repository.NewAuditRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, &cfg.JWT)
	entityService := service.NewEntityService(entityRepo)
	engagementService := service.NewEngagementService(
		entityRepo,
		reviewRepo,
		favoriteRepo,
		likeRepo,
		commentRepo,
		userRepo,
	)

	// Initialize S3 storage for presigned uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	entityController := controller.NewEntityController(entityService)
	engagementController := controller.NewEngagementController(engagementService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the nightly aggregate audit
	auditScheduler := scheduler.NewEngagementAuditScheduler(auditRepo)
	if err := auditScheduler.Start(); err != nil {
		logger.Error("Failed to start engagement audit scheduler", err)
	}
	defer auditScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		entityController,
		engagementController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
