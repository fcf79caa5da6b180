package main

import (
	"context"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bazaarlane/retail-ops/internal/fraud"
	"github.com/bazaarlane/retail-ops/internal/notifications"
	"github.com/bazaarlane/retail-ops/internal/orders"
	"github.com/bazaarlane/retail-ops/internal/reorder"
	"github.com/bazaarlane/retail-ops/pkg/common"
	"github.com/bazaarlane/retail-ops/pkg/config"
	"github.com/bazaarlane/retail-ops/pkg/database"
	"github.com/bazaarlane/retail-ops/pkg/logger"
	"github.com/bazaarlane/retail-ops/pkg/middleware"
	"github.com/bazaarlane/retail-ops/pkg/redis"
	"github.com/bazaarlane/retail-ops/pkg/validation"
)

const serviceVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load("retail-ops")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	// Register custom request validators
	if err := validation.RegisterCustomValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	// Apply schema migrations
	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to PostgreSQL
	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)
	logger.Info("Connected to PostgreSQL database")

	// Connect to Redis
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	// Connect to NATS when enabled
	var publisher fraud.EventPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err := notifications.NewPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("Connected to NATS")
	}

	// Wire services and handlers
	orderService := orders.NewService(orders.NewRepository(pool))
	orderHandler := orders.NewHandler(orderService)

	fraudService := fraud.NewService(
		fraud.NewRepository(pool),
		publisher,
		redisClient,
		cfg.Fraud.RecentOrderWindow,
		cfg.Fraud.WindowCacheTTL,
	)
	fraudHandler := fraud.NewHandler(fraudService)

	reorderService := reorder.NewService(reorder.NewRepository(pool))
	reorderHandler := reorder.NewHandler(reorderService)

	// Set up Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.CorrelationIDHeader}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no auth required)
	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, serviceVersion, map[string]func() error{
		"postgres": func() error { return pool.Ping(context.Background()) },
		"redis":    func() error { return redisClient.Ping(context.Background()).Err() },
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret)
	api := router.Group("/api/v1")
	{
		orderHandler.RegisterRoutes(api, authRequired)
		fraudHandler.RegisterRoutes(api, authRequired)
		reorderHandler.RegisterRoutes(api)
	}

	// Start server
	addr := ":" + cfg.Server.Port
	logger.Info("Retail ops service starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
