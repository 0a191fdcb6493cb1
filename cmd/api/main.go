package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger is not configured yet
		bootstrap, _ := logger.New(false, "")
		bootstrap.Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logger.New(config.IsProduction(), cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	logger.SetDefault(log)
	defer logger.Sync()

	log.Info("configuration loaded",
		zap.String("env", string(config.GetEnvironment())),
		zap.String("dbDriver", cfg.DBDriver),
	)

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	limiterCfg := middleware.RateLimitConfig{Limit: cfg.RateLimit, Window: cfg.RateLimitWindow}
	var limiter middleware.Limiter = middleware.NewLocalLimiter(limiterCfg)
	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(cfg, log)
		if err != nil {
			// Continue with the in-process limiter if Redis is not available
			log.Warn("redis unavailable, falling back to local rate limiting", zap.Error(err))
		} else {
			defer redisClient.Close()
			limiter = middleware.NewRedisLimiter(redisClient, limiterCfg)
		}
	}

	srv := server.New(cfg, db, limiter, log)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("server error", zap.Error(err))
			return
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
		return
	}
	log.Info("server stopped")
}
