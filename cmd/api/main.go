package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vericv-backend/config"
	_ "vericv-backend/docs" // Important for Swagger
	v1 "vericv-backend/internal/delivery/http/v1"
	"vericv-backend/internal/repository/postgres"
	"vericv-backend/internal/usecase"
	"vericv-backend/pkg/auth"
	"vericv-backend/pkg/database"
	"vericv-backend/pkg/logger"
	"vericv-backend/pkg/redis"
	"vericv-backend/pkg/security"
	"vericv-backend/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
)

// @title           VeriCV API
// @version         1.0
// @description     CV management and a searchable directory of verified profiles.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting vericv backend", "port", cfg.Port, "env", cfg.Environment)
	secLogger := security.InitSecurityLogger("vericv-backend", cfg.Environment)
	defer secLogger.Sync()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	var redisCheck func(ctx context.Context) error
	if err := redis.Initialize(context.Background(), redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	} else {
		redisClient = redis.Client()
		redisCheck = redis.HealthCheck
		defer redis.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	cvRepo := postgres.NewCVRepository(dbPool)
	educationRepo := postgres.NewEducationRepository(dbPool)
	experienceRepo := postgres.NewExperienceRepository(dbPool)
	directoryRepo := postgres.NewDirectoryRepository(dbPool)

	// 6. Setup UseCases
	validate := validation.New()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	loginTracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLogger)

	authUC := usecase.NewAuthUsecase(userRepo, tokens, loginTracker, secLogger, validate)
	cvUC := usecase.NewCVUsecase(cvRepo, educationRepo, experienceRepo, userRepo, validate, secLogger)
	directoryUC := usecase.NewDirectoryUsecase(directoryRepo, userRepo, cvRepo, educationRepo, experienceRepo, validate)
	verificationUC := usecase.NewVerificationUsecase(userRepo, cvRepo, educationRepo, experienceRepo, directoryUC, secLogger)
	healthUC := usecase.NewHealthUsecase(dbPool, redisCheck)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		CVUC:           cvUC,
		DirectoryUC:    directoryUC,
		VerificationUC: verificationUC,
		HealthUC:       healthUC,
		Tokens:         tokens,
		Redis:          redisClient,
		Config:         cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
