package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ashurbayy/lifechip/config"
	"github.com/ashurbayy/lifechip/internal/api"
	"github.com/ashurbayy/lifechip/internal/database"
	"github.com/ashurbayy/lifechip/internal/logging"
	"github.com/ashurbayy/lifechip/internal/server"
	"github.com/ashurbayy/lifechip/internal/session"
	"github.com/ashurbayy/lifechip/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Store selection: relational when a database is configured, otherwise
	// the in-memory store.
	var st store.Store
	if cfg.DatabaseConfigured() {
		db, err := database.New(cfg, logger)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		st = store.NewGormStore(db)
	} else {
		st = store.NewMemStore()
		logger.Warn("running with in-memory store; data is lost on restart")
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	sessions.StartPruning(cfg.SessionPruneInterval)
	defer sessions.Stop()

	var redisClient *redis.Client
	if cfg.RedisConfigured() {
		redisClient, err = database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			redisClient = nil
		}
	}

	engine := api.SetupRouter(cfg, st, sessions, redisClient, logger)
	srv := server.New(cfg, engine, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
