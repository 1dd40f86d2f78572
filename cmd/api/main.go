// @title Saathi API
// @version 1.0
// @description Learning platform API: AI chat, notes, roadmaps, quizzes, document tools, calculator and user library.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "saathi/cmd/api/docs"
	"saathi/internal/adapter"
	"saathi/internal/adapter/llm"
	"saathi/internal/cache"
	"saathi/internal/config"
	"saathi/internal/database"
	"saathi/internal/extract"
	"saathi/internal/handler"
	"saathi/internal/jobs"
	"saathi/internal/logger"
	"saathi/internal/middleware"
	"saathi/internal/repository"
	"saathi/internal/scrape"
	"saathi/internal/service"
	"saathi/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Text generation. A missing API key leaves the AI endpoints answering 503.
	generator, err := llm.New(ctx, cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		appLogger.Warn("LLM provider not configured, AI endpoints are disabled", zap.String("provider", cfg.LLM.Provider))
	case err != nil:
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	default:
		appLogger.Info("LLM client initialized", zap.String("provider", cfg.LLM.Provider))
	}

	// Connect to databases
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	mongoClient, mongoDB, err := database.NewMongoDatabase(ctx, cfg.Mongo)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Warn("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	if err := repository.EnsureMaterialIndexes(ctx, mongoDB); err != nil {
		appLogger.Warn("Failed to ensure material indexes", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	sessionRepository := repository.NewSQLXSessionRepository(db)
	attemptRepository := repository.NewSQLXQuizAttemptRepository(db)
	materialRepository := repository.NewMongoMaterialRepository(mongoDB)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	photoStore := storage.NewPhotoStore(cfg.Uploads)
	generationCache := service.NewResultCacheService(cacheAdapter, "generator", cfg.CacheTTLs.Generation)
	pageCache := service.NewResultCacheService(cacheAdapter, "pages", cfg.CacheTTLs.URLExtract)

	contentService := service.NewContentService(extract.NewExtractor(), scrape.NewScraper(cfg.Scrape), pageCache, materialRepository)
	generatorService := service.NewGeneratorService(generator, cfg.LLM.QuizModel(), generationCache, contentService, materialRepository, attemptRepository)
	calculatorService := service.NewCalculatorService(cacheAdapter, cfg.CacheTTLs.CalculatorHistory)
	userService := service.NewUserService(userRepository, attemptRepository, materialRepository, photoStore)

	authService, err := service.NewAuthService(userRepository, sessionRepository, txManager, cfg.JWT, cfg.GoogleOAuth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Scheduled jobs
	scheduler := jobs.NewScheduler()
	if err := scheduler.AddSessionPurge(cfg.Jobs.SessionPurgeSpec, authService); err != nil {
		appLogger.Fatal("Failed to schedule session purge", zap.Error(err))
	}
	scheduler.Start()

	// Initialize handlers
	validator := middleware.NewValidationMiddleware()
	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, validator),
		Generator:  handler.NewGeneratorHandler(generatorService, contentService, validator),
		Content:    handler.NewContentHandler(contentService, validator),
		Calculator: handler.NewCalculatorHandler(calculatorService, validator),
		User:       handler.NewUserHandler(userService, validator),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"oracle": db.PingContext,
			"mongo": func(ctx context.Context) error {
				return mongoClient.Ping(ctx, nil)
			},
			"redis": cacheAdapter.Ping,
		}),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Use(cfg.Uploads.PublicPrefix, filesystem.New(filesystem.Config{
		Root: afero.NewHttpFs(photoStore.Fs()),
	}))

	llmLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Window,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please slow down")
		},
	})
	handler.RegisterRoutes(app, handlers, authService, validator, llmLimiter)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}
