package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/config"
	"github.com/rentiva/discovery-service/internal/analytics"
	"github.com/rentiva/discovery-service/internal/cache"
	"github.com/rentiva/discovery-service/internal/db"
	"github.com/rentiva/discovery-service/internal/logger"
	"github.com/rentiva/discovery-service/internal/server"

	catH "github.com/rentiva/discovery-service/internal/category/handler"
	catRepoPkg "github.com/rentiva/discovery-service/internal/category/repository"
	catUCPkg "github.com/rentiva/discovery-service/internal/category/usecase"

	prodH "github.com/rentiva/discovery-service/internal/product/handler"
	prodRepoPkg "github.com/rentiva/discovery-service/internal/product/repository"
	prodUCPkg "github.com/rentiva/discovery-service/internal/product/usecase"

	searchH "github.com/rentiva/discovery-service/internal/search/handler"
	searchRepoPkg "github.com/rentiva/discovery-service/internal/search/repository"
	searchUCPkg "github.com/rentiva/discovery-service/internal/search/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger, err := logger.New(cfg.Logger, cfg.Server.AppEnv)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer appLogger.Sync()

	// 3. Connect to Database
	pg, err := db.NewPostgres(cfg.Postgres)
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer pg.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		appLogger.Warn("Could not connect to Redis, search cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		defer redisClient.Close()
	}
	cancelPing()

	// 5. Initialize Kafka Producer
	producer := analytics.NewProducer(&cfg.Kafka, appLogger)
	defer producer.Close()
	appLogger.Info("Connected to Kafka Producer",
		zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize Repositories
	searchRepo := searchRepoPkg.NewPGRepository(pg)
	catRepo := catRepoPkg.NewPGRepository(pg)
	prodRepo := prodRepoPkg.NewPGRepository(pg)

	// 7. Initialize UseCases
	var searchCache *cache.SearchCache
	var resultCache searchUCPkg.ResultCache
	if redisClient != nil {
		searchCache = cache.NewSearchCache(
			redisClient, time.Duration(cfg.Search.CacheTTLSeconds)*time.Second, appLogger)
		resultCache = searchCache
	}
	searchUC := searchUCPkg.NewSearchUseCase(searchRepo, resultCache, producer, cfg.Search, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, appLogger)

	// 8. Initialize Handlers and Router
	router := server.NewRouter(server.Deps{
		Search:     searchH.NewSearchHandler(searchUC, appLogger),
		Categories: catH.NewCategoryHandler(catUC, appLogger),
		Products:   prodH.NewProductHandler(prodUC, appLogger),
		DB:         pg,
		Redis:      redisClient,
		Cache:      searchCache,
		Logger:     appLogger,
	})

	// 9. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.Search.QueryTimeoutSec+5) * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error during shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
