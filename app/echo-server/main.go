package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"customerAgent/app/echo-server/router"
	"customerAgent/business/customer"
	"customerAgent/business/recommendation"
	"customerAgent/internal/middleware"
	psqlRepo "customerAgent/internal/repository/postgres"
	redisRepo "customerAgent/internal/repository/redis"
	"customerAgent/internal/rest"
	"customerAgent/pkg/config"
	"customerAgent/pkg/database"
	redisdb "customerAgent/pkg/database/redis"
	"customerAgent/pkg/logger"
	"customerAgent/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Customer Agent", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := psqlRepo.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	// Init repo
	customerRepo := psqlRepo.NewCustomerRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)

	if cfg.Recommendation.SeedCatalog {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := productRepo.EnsureCatalog(ctx)
		cancel()
		if err != nil {
			logger.Fatal("Failed to seed product catalog", "error", err)
		}
	}

	var (
		recoRepo    recommendation.RecommendationRepository
		redisClient *goredis.Client
	)

	switch cfg.Recommendation.StoreBackend {
	case config.StoreBackendRedis:
		redisClient, err = redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		recoRepo = redisRepo.NewRecommendationRepository(redisClient)
		logger.Info("Recommendation store: redis")
	default:
		recoRepo = psqlRepo.NewRecommendationRepository(db)
		logger.Info("Recommendation store: postgres")
	}

	recoCfg, err := scoringConfig(cfg)
	if err != nil {
		logger.Fatal("Failed to load scoring config", "error", err)
	}

	// Init service
	engine, err := recommendation.NewEngine(customerRepo, productRepo, recoRepo, recoCfg)
	if err != nil {
		logger.Fatal("Failed to init recommendation engine", "error", err)
	}
	customerService := customer.NewCustomerService(customerRepo, engine)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(engine)
	customerHandler := rest.NewCustomerHandler(customerService)

	metrics.Init()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: strings.Split(cfg.Server.CORSOrigins, ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.HeaderRequestID},
	}))

	// Setup routes
	root := e.Group("")
	router.SetupOpsRoutes(root)
	router.SetupRecommendationRoutes(root, recommendationHandler)
	router.SetupCustomerRoutes(root, customerHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}

// scoringConfig layers the optional scoring file over the engine defaults,
// then applies the RECO_* values that were set explicitly.
func scoringConfig(cfg *config.Config) (recommendation.Config, error) {
	recoCfg := recommendation.DefaultConfig()

	if path := cfg.Recommendation.ScoringFile; path != "" {
		loaded, err := recommendation.LoadConfigFile(path, recoCfg)
		if err != nil {
			return recoCfg, err
		}
		recoCfg = loaded
		logger.Info("Scoring config loaded", "path", path)
	}

	if cfg.Recommendation.Seed != 0 {
		recoCfg.Seed = cfg.Recommendation.Seed
	}
	if cfg.Recommendation.FreshnessFromEnv {
		recoCfg.FreshnessWindow = time.Duration(cfg.Recommendation.FreshnessHours) * time.Hour
	}
	if cfg.Recommendation.RetentionFromEnv {
		recoCfg.RetentionCap = cfg.Recommendation.RetentionCap
	}

	return recoCfg, recoCfg.Validate()
}
