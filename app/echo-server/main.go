package main

import (
	"context"
	"fmt"
	"log"
	"myTerpMarket/app/echo-server/router"
	"myTerpMarket/business/catalog"
	"myTerpMarket/business/recommend"
	"myTerpMarket/business/searchlog"
	userService "myTerpMarket/business/user"
	"myTerpMarket/business/vibemap"
	"myTerpMarket/internal/middleware"
	"myTerpMarket/internal/repository/airec"
	psqlRepo "myTerpMarket/internal/repository/postgres"
	redisRepo "myTerpMarket/internal/repository/redis"
	"myTerpMarket/internal/rest"
	"myTerpMarket/pkg/config"
	"myTerpMarket/pkg/database"
	redisdb "myTerpMarket/pkg/database/redis"
	"myTerpMarket/pkg/logger"
	"myTerpMarket/pkg/metrics"
	"myTerpMarket/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyTerpMarket", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis is optional, only used to cache AI recommender responses
	var redisClient *goredis.Client
	if cfg.Redis.RedisHost != "" {
		redisClient, err = redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, AI responses will not be cached", "error", err)
			redisClient = nil
		} else {
			logger.Info("Redis connected successfully")
		}
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	variantRepo := psqlRepo.NewVariantRepository(db)
	vibeMappingRepo := psqlRepo.NewVibeMappingRepository(db)
	searchLogRepo := psqlRepo.NewSearchLogRepository(db)

	// External AI recommender, disabled when no base URL is configured
	var recommender recommend.ExternalRecommender
	if cfg.AIRec.BaseURL != "" {
		var cache airec.ResponseCache
		if redisClient != nil {
			cache = redisRepo.NewAIResponseCache(redisClient, cfg.AIRec.CacheTTL)
		}
		recommender = airec.NewAIRecRepository(airec.Config{
			BaseURL:           cfg.AIRec.BaseURL,
			BasicAuthUsername: cfg.AIRec.BasicAuthUsername,
			BasicAuthPassword: cfg.AIRec.BasicAuthPassword,
			Timeout:           cfg.AIRec.Timeout,
		}, cache)
		logger.Info("External recommender enabled", "base_url", cfg.AIRec.BaseURL)
	} else {
		logger.Info("External recommender disabled, scoring locally")
	}

	// Init service
	userService := userService.NewUserService(userRepo, validate)
	catalogService := catalog.NewCatalogService(productRepo, variantRepo)
	vibeMapService := vibemap.NewVibeMapService(vibeMappingRepo)
	searchLogService := searchlog.NewSearchLogService(searchLogRepo)

	// Vibe table is loaded once at startup; admin edits take effect on restart
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	parser := vibeMapService.BuildParser(startupCtx)
	startupCancel()

	engine := recommend.NewEngine(parser, recommender, searchLogService)

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	productHandler := rest.NewProductHandler(catalogService)
	recommendHandler := rest.NewRecommendHandler(catalogService, engine)
	vibeMapHandler := rest.NewVibeMapHandler(vibeMapService)
	searchLogHandler := rest.NewSearchLogHandler(searchLogService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupRecommendRoutes(api, recommendHandler, authRequired)
	router.SetupVibeMapRoutes(api, vibeMapHandler, authRequired, adminOnly)
	router.SetupSearchLogRoutes(api, searchLogHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

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

	if redisClient != nil {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Redis shutdown error", "error", err)
		}
	}

	logger.Info("Server stopped")
}
