package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-api/cache"
	"bookstore-api/controllers"
	"bookstore-api/database"
	"bookstore-api/kafka"
	"bookstore-api/metrics"
	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/repository"
	"bookstore-api/routes"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Database ---
	db, err := database.ConnectPostgres(cfg.Postgres, logger,
		&models.User{},
		&models.Genre{},
		&models.Book{},
		&models.CartItem{},
		&models.Order{},
	)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Redis book cache (non-fatal) ---
	var bookCache services.BookListCache
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis connection failed, book cache disabled", zap.Error(err))
		} else {
			bookCache = cache.NewBookCache(redisClient, 5*time.Minute, logger)
		}
	}

	// --- Kafka order events (non-fatal) ---
	var producer kafka.ProducerAPI
	if len(cfg.KafkaBrokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	// --- Dependency injection ---
	store := repository.NewGormStore(db)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(store, tokenService, logger)
	catalogService := services.NewCatalogService(store, bookCache, logger)
	cartService := services.NewCartService(store, logger)
	checkoutService := services.NewCheckoutService(store, producer, bookCache, logger)
	orderService := services.NewOrderService(store, logger)

	authController := controllers.NewAuthController(authService)
	bookController := controllers.NewBookController(catalogService)
	genreController := controllers.NewGenreController(catalogService)
	cartController := controllers.NewCartController(cartService, checkoutService)
	orderController := controllers.NewOrderController(orderService)

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.HTTPMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RequestTimeout(30 * time.Second))
	r.Use(middleware.ResolveIdentity(tokenService))

	routes.RegisterAuthRoutes(r, authController)
	routes.RegisterCatalogRoutes(r, bookController, genreController)
	routes.RegisterCartRoutes(r, cartController)
	routes.RegisterOrderRoutes(r, orderController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "bookstore-api"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Bookstore API started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := database.Close(db); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	log.Println("Bookstore API stopped gracefully")
}
