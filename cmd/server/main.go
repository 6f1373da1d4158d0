package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dalil-mashhad/dalil-backend/config"
	"github.com/dalil-mashhad/dalil-backend/internal/app/controller"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	"github.com/dalil-mashhad/dalil-backend/internal/db"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/dalil-mashhad/dalil-backend/internal/router"
	"github.com/dalil-mashhad/dalil-backend/internal/scheduler"
	"github.com/dalil-mashhad/dalil-backend/internal/storage"
	ws "github.com/dalil-mashhad/dalil-backend/internal/websocket"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	redispkg "github.com/dalil-mashhad/dalil-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Dalil Mashhad backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"db_driver":   cfg.Database.Driver,
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

	// Migrations also seed attraction categories and the first SUPER_ADMIN
	if err := db.Migrate(&cfg.Admin); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	gormDB := db.GetDB()

	// Logout revocation needs Redis; without it logout only clears the cookie.
	var blacklist service.TokenBlacklist
	if cfg.Redis.Enabled {
		client, err := redispkg.Connect(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer client.Close()
		blacklist = redispkg.NewTokenBlacklist(client)
	} else {
		logger.Warn("Redis disabled, logged-out tokens stay valid until they expire")
	}

	var imageStorage storage.ImageStorage
	if cfg.S3.Bucket != "" && cfg.S3.AccessKeyID != "" {
		imageStorage = storage.NewS3Storage(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, cfg.S3.BaseURL)
	} else {
		logger.Warn("S3 credentials missing, image uploads disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	attractionCategoryRepo := repository.NewAttractionCategoryRepository(gormDB)
	doctorRepo := repository.NewDoctorRepository(gormDB)
	attractionRepo := repository.NewAttractionRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)
	subjectRepo := repository.NewSubjectRepository(gormDB)
	analyticsRepo := repository.NewAnalyticsRepository(gormDB)

	// Review events for the admin live stream
	hub := ws.NewHub()
	go hub.Run(ctx)

	// Initialize services
	analyticsService := service.NewAnalyticsService(analyticsRepo, doctorRepo, categoryRepo, attractionRepo, attractionCategoryRepo, reviewRepo)
	authService := service.NewAuthService(userRepo, blacklist, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	userService := service.NewUserService(userRepo)
	doctorService := service.NewDoctorService(doctorRepo, categoryRepo, subjectRepo, reviewRepo, analyticsService)
	attractionService := service.NewAttractionService(attractionRepo, attractionCategoryRepo, subjectRepo, reviewRepo, analyticsService)
	categoryService := service.NewCategoryService(categoryRepo, attractionCategoryRepo)
	reviewService := service.NewReviewService(gormDB, reviewRepo, subjectRepo, analyticsService, hub)
	engagementService := service.NewEngagementService(gormDB, likeRepo, subjectRepo)
	reconcileService := service.NewReconcileService(gormDB, subjectRepo, reviewRepo, likeRepo)

	// Nightly repair of cached ratings and like counters
	reconcileScheduler := scheduler.NewReconcileScheduler(cfg.Scheduler.ReconcileSpec, reconcileService)
	if err := reconcileScheduler.Start(); err != nil {
		logger.Fatal("Failed to start reconcile scheduler", err)
	}
	defer reconcileScheduler.Stop()

	// Setup router
	r := router.NewRouter(router.Controllers{
		Auth:       controller.NewAuthController(authService, cfg.Session, cfg.JWT.TokenExpiry),
		User:       controller.NewUserController(userService),
		Doctor:     controller.NewDoctorController(doctorService),
		Attraction: controller.NewAttractionController(attractionService),
		Category:   controller.NewCategoryController(categoryService),
		Review:     controller.NewReviewController(reviewService),
		Engagement: controller.NewEngagementController(engagementService),
		Analytics:  controller.NewAnalyticsController(analyticsService),
		Upload:     controller.NewUploadController(imageStorage),
		Feed:       controller.NewFeedController(doctorService, attractionService, cfg.Feed),
		Live:       controller.NewLiveController(hub, cfg.CORS.AllowedOrigins),
	}, middleware.NewAuthMiddleware(authService, cfg.Session.CookieName), cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// Shutdown does not wait for hijacked connections; stopping the hub closes them.
	stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
