package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/techBikashRepo/jobbee-api/internal/geocode"
	"github.com/techBikashRepo/jobbee-api/internal/handler"
	"github.com/techBikashRepo/jobbee-api/internal/middleware"
	"github.com/techBikashRepo/jobbee-api/internal/model"
	"github.com/techBikashRepo/jobbee-api/internal/storage"
	"github.com/techBikashRepo/jobbee-api/internal/sweeper"
	"github.com/techBikashRepo/jobbee-api/pkg/config"
	"github.com/techBikashRepo/jobbee-api/pkg/database"
	"github.com/techBikashRepo/jobbee-api/pkg/jwtutil"
	"github.com/techBikashRepo/jobbee-api/pkg/logger"
	"github.com/techBikashRepo/jobbee-api/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("jobbee-api")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting job board service...", cfg.LogConfig()...)

	// Initialize database
	if _, err := database.InitDB(&cfg.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(&model.User{}, &model.Job{}, &model.Applicant{}); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.EnsureIndexes(); err != nil {
		log.Fatal("Failed to create indexes", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)

	// Resume storage and geocoder
	resumeStore, err := storage.New(&cfg.Storage, &cfg.Upload)
	if err != nil {
		log.Fatal("Failed to initialize resume storage", zap.Error(err))
	}
	geocoder := geocode.NewClient(&cfg.Geocoder)
	handler.Init(geocoder, resumeStore, cfg)

	// Maintenance cron
	sw := sweeper.New(cfg.Sweeper.Spec, log)
	if err := sw.Start(); err != nil {
		log.Fatal("Failed to start sweeper", zap.Error(err))
	}
	defer sw.Stop()

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(cfg.Server.IsProduction())

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	api := e.Group("/api/v1")

	// Registration and login, rate limited when redis is configured
	auth := api.Group("")
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		auth.Use(middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RedisClient: rdb,
			Limit:       cfg.RateLimit.Limit,
			Window:      cfg.RateLimit.Window,
		}))
		log.Info("Rate limiter enabled", zap.String("redis", cfg.Redis.Addr))
	}
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/password/forgot", handler.ForgotPassword)
	auth.PUT("/password/reset/:token", handler.ResetPassword)

	// Job routes
	api.GET("/jobs", handler.ListJobs)
	api.GET("/jobs/:zipcode/:distance", handler.JobsInRadius)
	api.GET("/job/:id/:slug", handler.GetJobByIDAndSlug)
	api.GET("/stats/:topic", handler.JobStats)

	api.POST("/job/new", handler.CreateJob,
		middleware.AuthMiddleware, middleware.RequireRoles(model.RoleEmployer, model.RoleAdmin))
	api.PUT("/job/:id", handler.UpdateJob,
		middleware.AuthMiddleware, middleware.RequireRoles(model.RoleEmployer, model.RoleAdmin))
	api.DELETE("/job/:id", handler.DeleteJob,
		middleware.AuthMiddleware, middleware.RequireRoles(model.RoleEmployer, model.RoleAdmin))
	api.PUT("/job/:id/apply", handler.ApplyToJob,
		middleware.AuthMiddleware, middleware.RequireRoles(model.RoleUser))

	// Authenticated self-service routes
	me := api.Group("", middleware.AuthMiddleware)
	me.GET("/me", handler.GetProfile)
	me.PUT("/me/update", handler.UpdateProfile)
	me.PUT("/password/update", handler.UpdatePassword)
	me.DELETE("/me/delete", handler.DeleteAccount)
	me.GET("/jobs/applied", handler.AppliedJobs)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
