package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beautique/beautique-backend/config"
	"github.com/beautique/beautique-backend/internal/app/controller"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/internal/app/service"
	"github.com/beautique/beautique-backend/internal/db"
	"github.com/beautique/beautique-backend/internal/middleware"
	"github.com/beautique/beautique-backend/internal/router"
	"github.com/beautique/beautique-backend/internal/scheduler"
	"github.com/beautique/beautique-backend/internal/storage"
	"github.com/beautique/beautique-backend/internal/ws"
	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/beautique/beautique-backend/pkg/redis"
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

	logger.Info("Starting Beautique Backend Server", map[string]interface{}{
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

	// Redis is optional; without it logout falls back to token expiry
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token blacklist disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	adminRepo := repository.NewAdminRepository(db.GetDB())

	// Websocket hub feeds order events to the admin dashboard
	hub := ws.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(adminRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, hub, cfg.Orders.IDPrefix)
	analyticsService := service.NewAnalyticsService(orderRepo)
	exportService := service.NewExportService(orderRepo)

	// Bootstrap admin account
	if cfg.Admin.Password != "" {
		if err := authService.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Error("Failed to ensure admin account", err, map[string]interface{}{
				"username": cfg.Admin.Username,
			})
		}
	} else {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap", nil)
	}

	// S3 storage for product image uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	orderController := controller.NewOrderController(orderService, exportService)
	analyticsController := controller.NewAnalyticsController(analyticsService)
	uploadController := controller.NewUploadController(s3Storage)
	dashboardController := controller.NewDashboardController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Stale payment sweep
	staleOrderScheduler := scheduler.NewStaleOrderScheduler(
		orderService,
		cfg.Orders.StaleSweepCron,
		cfg.Orders.StalePaymentDays,
	)
	if err := staleOrderScheduler.Start(); err != nil {
		logger.Error("Failed to start stale order scheduler", err)
	}
	defer staleOrderScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		orderController,
		analyticsController,
		uploadController,
		dashboardController,
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
