package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/franciscosanchezn/pizza-restaurant-api/docs" // Import generated docs
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/config"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/controllers"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/database"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/middleware"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/models"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// @title Pizza Restaurants API
// @version 1.0
// @description Restaurants, pizzas and the prices at which restaurants offer them
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()
	applyLogLevel(configuration.LogLevel)

	// Initialize database connection
	db := setupDatabase(configuration)
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	// Initialize services and controllers
	catalogService := services.NewCatalogService(db)
	if configuration.SeedDatabase {
		seedDatabase(db, catalogService)
	}
	restaurantController := controllers.NewRestaurantController(catalogService)

	// Initialize Gin router
	router := setupRouter(routerDeps{
		db:             db,
		restaurants:    restaurantController,
		registerer:     prometheus.DefaultRegisterer,
		gatherer:       prometheus.DefaultGatherer,
		metricsEnabled: configuration.MetricsEnabled,
	})

	// Start the server
	if err := runServer(configuration.Addr(), router); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
	log.Info("Server stopped")
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// applyLogLevel overrides the environment derived level when LOG_LEVEL is set
func applyLogLevel(level string) {
	if level == "" {
		return
	}
	parsed, err := log.ParseLevel(level)
	checkPanicErr(err)
	log.SetLevel(parsed)
}

// loadConfig loads the application configuration
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return conf
}

// setupDatabase opens the database and migrates the catalog schema
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.Database)
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// seedDatabase seeds the database with the sample catalog if it has no pizzas yet
func seedDatabase(db *gorm.DB, catalogService services.CatalogService) {
	var count int64
	checkPanicErr(db.Model(&models.Pizza{}).Count(&count).Error)
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return
	}

	log.Info("Database is empty, seeding initial data")
	_, err := services.Seed(context.Background(), catalogService, services.DefaultSampleCatalog())
	checkPanicErr(err)
}

type routerDeps struct {
	db             *gorm.DB
	restaurants    controllers.RestaurantController
	registerer     prometheus.Registerer
	gatherer       prometheus.Gatherer
	metricsEnabled bool
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter(deps routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log.StandardLogger()))

	if deps.metricsEnabled {
		metrics := middleware.NewMetrics(deps.registerer)
		router.Use(metrics.Middleware())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{})))
	}

	setupRoutes(router, deps)
	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine, deps routerDeps) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler(deps.db))

	// Catalog routes
	controllers.RegisterRoutes(router, deps.restaurants)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "pizza-restaurant-api",
		})
	}
}

// runServer serves until SIGINT or SIGTERM, then drains in-flight requests
func runServer(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
