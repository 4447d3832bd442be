package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"

	"github.com/cleankili/backend/internal/api/handlers"
	"github.com/cleankili/backend/internal/api/router"
	"github.com/cleankili/backend/internal/auth"
	"github.com/cleankili/backend/internal/config"
	"github.com/cleankili/backend/internal/guard"
	"github.com/cleankili/backend/internal/logging"
	"github.com/cleankili/backend/internal/middleware"
	"github.com/cleankili/backend/internal/notify"
	"github.com/cleankili/backend/internal/otp"
	"github.com/cleankili/backend/internal/storage"
	"github.com/cleankili/backend/internal/summary"
)

const version = "1.0.0"

func main() {
	// Load configuration; a missing JWT secret aborts startup here.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Server.LogLevel, cfg.Server.LogFormat)

	// Initialize storage
	dsn := storage.BuildDSN(cfg.Database)
	store, err := storage.NewPostgresStorage(dsn)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Bootstrap the first verified super admin on a fresh deployment.
	seedCtx := context.Background()
	if err := auth.SeedFirstSuperAdmin(seedCtx, store, logger,
		cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminPhone); err != nil {
		logger.Fatalf("Failed to seed first super admin: %v", err)
	}

	// OTP codes live in redis when configured, in process memory otherwise.
	var codeStore otp.CodeStore
	if cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		codeStore = otp.NewRedisStore(client)
	} else {
		codeStore = otp.NewMemoryStore()
	}
	otpService := otp.NewService(codeStore, cfg.OTP.TTL)

	// Auth core
	codec, err := auth.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TTL)
	if err != nil {
		logger.Fatalf("Failed to initialize token codec: %v", err)
	}
	authenticator := auth.NewAuthenticator(store)
	adminGuard := guard.NewGuard(codec, store)

	notifier := notify.NewLogNotifier(logger)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "CleanKili Backend",
	})

	// Middleware
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	// Initialize handlers and middleware
	authHandler := handlers.NewAuthHandler(authenticator, codec, otpService, store, logger)
	reportHandler := handlers.NewReportHandler(store, logger)
	adminHandler := handlers.NewAdminHandler(store, otpService, notifier, logger)
	healthHandler := handlers.NewHealthHandler(store, version)
	authMiddleware := middleware.NewAuthMiddleware(adminGuard)

	// Initialize router
	apiRouter := router.NewRouter(
		app,
		authHandler,
		reportHandler,
		adminHandler,
		healthHandler,
		authMiddleware,
	)
	apiRouter.SetupRoutes()

	// Daily summary scheduler
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := summary.NewScheduler(summary.NewCompiler(store), notifier, logger, cfg.Summary.Hour)
	go scheduler.Run(ctx)

	// Start server
	logger.Infof("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
