package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/rs/zerolog"

	"retailpulse/internal/analytics"
	"retailpulse/internal/caching"
	"retailpulse/internal/common"
	"retailpulse/internal/config"
	"retailpulse/internal/handlers"
	"retailpulse/internal/jobs"
	"retailpulse/internal/jobs/background"
	"retailpulse/internal/middleware"
	"retailpulse/internal/repositories"
	"retailpulse/internal/services"
	"retailpulse/pkg/database"
	"retailpulse/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New(logger.Config{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = random.String(32) // config only allows an empty secret in development
		log.Warn().Msg("JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DB.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// Create repositories
	productRepo := repositories.NewProductRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	salesRepo := repositories.NewSalesRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	lessonRepo := repositories.NewLessonRepo(pool)

	// Metrics cache: redis by default, the metrics_cache table otherwise
	var (
		metricsCache analytics.MetricsCache
		invalidator  services.MetricsInvalidator
		limiter      services.RateLimiter
		cachePinger  handlers.Pinger
	)
	switch cfg.Cache.Backend {
	case "postgres":
		repo := repositories.NewMetricsCacheRepo(pool)
		metricsCache, invalidator = repo, repo
	default:
		cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		metricsCache, invalidator, limiter, cachePinger = cacheSvc, cacheSvc, cacheSvc, cacheSvc
	}
	log.Info().Str("backend", cfg.Cache.Backend).Dur("max_age", cfg.Cache.MaxAge).Msg("metrics cache configured")

	// Create services
	analyticsSvc := analytics.NewAnalyticsService(salesRepo, productRepo, inventoryRepo, metricsCache, log)
	authSvc := services.NewAuthService(userRepo, limiter, cfg.JWT.Secret, cfg.JWT.Expiration, log)
	productSvc := services.NewProductService(productRepo, invalidator, log)
	inventorySvc := services.NewInventoryService(inventoryRepo, productRepo, invalidator, log)
	salesSvc := services.NewSalesService(salesRepo, productRepo, invalidator, log)
	lessonSvc := services.NewLessonService(lessonRepo)

	refreshSvc := jobs.NewAnalyticsRefreshService(analyticsSvc, log)
	stockAlertSvc := jobs.NewStockAlertService(productRepo, inventoryRepo, salesRepo, log)

	var archiver handlers.SnapshotArchiver
	if cfg.Minio.Endpoint != "" {
		minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize MinIO service")
		}
		archiver = services.NewReportArchiver(minioSvc, analyticsSvc, cfg.Minio.Bucket, log)
	} else {
		log.Info().Msg("MINIO_ENDPOINT not set, snapshot archiving disabled")
	}

	var (
		scheduler *background.JobScheduler
		jobStatus handlers.JobStatusProvider
	)
	if cfg.Jobs.Enabled {
		scheduler, err = background.NewJobScheduler(background.Config{
			MetricsRefreshInterval: cfg.Jobs.MetricsRefreshInterval,
			LowStockScanInterval:   cfg.Jobs.LowStockScanInterval,
			SnapshotInterval:       cfg.Jobs.SnapshotInterval,
		}, refreshSvc.ScheduledAnalyticsRefresh, stockAlertSvc.ScheduledLowStockScan, archiver, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create scheduler")
		}
		scheduler.Start()
		jobStatus = scheduler
	}

	e := newServer(serverDeps{
		log:         log,
		jwtSecret:   cfg.JWT.Secret,
		health:      handlers.NewHealthHandlers(pool, cachePinger, version),
		auth:        handlers.NewAuthHandlers(authSvc),
		products:    handlers.NewProductHandlers(productSvc),
		inventory:   handlers.NewInventoryHandlers(inventorySvc),
		sales:       handlers.NewSalesHandlers(salesSvc),
		lessons:     handlers.NewLessonHandlers(lessonSvc),
		analytics:   handlers.NewAnalyticsHandlers(analyticsSvc, cfg.Cache.MaxAge),
		retailMaths: handlers.NewRetailMathsHandlers(),
		jobs:        handlers.NewJobHandlers(refreshSvc, stockAlertSvc, archiver, jobStatus),
	})

	go func() {
		log.Info().Str("version", version).Str("addr", cfg.App.Addr()).Msg("retailpulse server starting")
		if err := e.Start(cfg.App.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if scheduler != nil {
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("scheduler shutdown")
		}
	}
}

type serverDeps struct {
	log         zerolog.Logger
	jwtSecret   string
	health      *handlers.HealthHandlers
	auth        *handlers.AuthHandlers
	products    *handlers.ProductHandlers
	inventory   *handlers.InventoryHandlers
	sales       *handlers.SalesHandlers
	lessons     *handlers.LessonHandlers
	analytics   *handlers.AnalyticsHandlers
	retailMaths *handlers.RetailMathsHandlers
	jobs        *handlers.JobHandlers
}

func newServer(d serverDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = common.NewRequestValidator()

	// Global middleware
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.ContextLogger(d.log))
	e.Use(middleware.RequestLogger(d.log))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", d.health.HealthCheck)
	e.GET("/health/ready", d.health.ReadinessCheck)

	api := e.Group("/api")

	// Authentication routes (no JWT required for register/login)
	auth := api.Group("/auth")
	auth.POST("/register", d.auth.Register)
	auth.POST("/login", d.auth.Login)

	// Protected routes
	protected := api.Group("", middleware.JWTMiddleware(d.jwtSecret), middleware.RequireUser)

	protected.GET("/auth/me", d.auth.Me)

	protected.GET("/products", d.products.ListProducts)
	protected.POST("/products", d.products.CreateProduct)
	protected.GET("/products/:id", d.products.GetProduct)
	protected.PUT("/products/:id", d.products.UpdateProduct)

	protected.GET("/inventory", d.inventory.ListEntries)
	protected.POST("/inventory", d.inventory.CreateEntry)
	protected.GET("/inventory/product/:productId", d.inventory.ListByProduct)

	protected.GET("/sales", d.sales.ListSales)
	protected.POST("/sales", d.sales.CreateSale)

	protected.GET("/analytics/dashboard", d.analytics.Dashboard)
	protected.GET("/analytics/analysis", d.analytics.Analysis)
	protected.GET("/ai/insights", d.analytics.Insights)

	protected.POST("/retail-maths/pricing", d.retailMaths.Pricing)
	protected.POST("/retail-maths/price", d.retailMaths.Price)
	protected.POST("/retail-maths/break-even", d.retailMaths.BreakEven)
	protected.POST("/retail-maths/reorder", d.retailMaths.Reorder)
	protected.POST("/retail-maths/turnover", d.retailMaths.Turnover)

	// /lessons/progress is registered before /lessons/:id
	protected.GET("/lessons", d.lessons.ListLessons)
	protected.GET("/lessons/progress", d.lessons.ListProgress)
	protected.GET("/lessons/:id", d.lessons.GetLesson)
	protected.PUT("/lessons/:id/progress", d.lessons.UpdateProgress)

	protected.GET("/jobs/status", d.jobs.Status)
	protected.GET("/jobs/low-stock", d.jobs.LowStock)
	protected.POST("/jobs/metrics-refresh", d.jobs.RefreshMetrics)
	protected.POST("/jobs/snapshot", d.jobs.ArchiveSnapshot)

	return e
}
