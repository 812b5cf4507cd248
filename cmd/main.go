package main

import (
	"car-service/internal/handler"
	"car-service/internal/middleware"
	"car-service/pkg/config"
	"car-service/pkg/database"
	"car-service/pkg/jwtutil"
	"car-service/pkg/logger"
	"car-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting car listing service...", zap.String("environment", cfg.Server.Env))

	// Initialize database; the server must not start listening if the
	// store is unavailable
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connected and migrated", zap.String("path", cfg.Database.Path))

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Service endpoints - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	carHandler := handler.NewCarHandler(db)
	userHandler := handler.NewUserHandler(db)

	// Car listing routes. Only get-by-id and single create sit behind
	// the auth middleware; list, delete and bulk insert are open.
	cars := e.Group("/cars")
	cars.GET("", carHandler.ListCars)
	cars.GET("/:id", carHandler.GetCar, middleware.AuthMiddleware)
	cars.POST("", carHandler.CreateCar, middleware.AuthMiddleware)
	cars.POST("/bulk", carHandler.BulkCreateCars)
	cars.DELETE("/:id", carHandler.DeleteCar)

	// User account routes
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
