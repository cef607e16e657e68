package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trendscout/internal/clients/genai"
	"trendscout/internal/clients/trendapi"
	"trendscout/internal/common/config"
	"trendscout/internal/common/database"
	"trendscout/internal/common/logger"
	"trendscout/internal/pipeline"
	"trendscout/internal/pipeline/scoring"
	"trendscout/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a config file; defaults to the standard search paths")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting trendscout server...")

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	// Optional upstream-query cache. The pipeline works without it, so a
	// missing or unreachable redis only costs extra upstream round-trips.
	var redisClient *database.RedisClient
	if cfg.Redis.Address != "" {
		redisClient, err = database.NewRedis(cfg.Redis)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if pingErr := redisClient.Ping(pingCtx); pingErr != nil {
				zapLog.Warn("redis unreachable, running without cache", zap.Error(pingErr))
				redisClient = nil
			}
			cancel()
		}
		if redisClient != nil {
			defer redisClient.Close()
		}
	}

	trends := trendapi.New(cfg.Trends, redisCache(redisClient), log)

	// The scoring collaborator is optional; without it every run uses the
	// heuristic strategy.
	heuristic := scoring.NewHeuristic(nil)
	var strategy scoring.Strategy = heuristic
	if cfg.GenAI.Enabled() {
		genaiClient, err := genai.New(cfg.GenAI, log)
		if err != nil {
			zapLog.Fatal("genai client init failed", zap.Error(err))
		}
		strategy = scoring.NewAssisted(genaiClient, heuristic, log)
	}
	zapLog.Info("scoring strategy selected", zap.String("strategy", strategy.Name()))

	svc := pipeline.New(trends, strategy, log)
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: server.New(svc, log).Routes(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}

func redisCache(c *database.RedisClient) *redis.Client {
	if c == nil {
		return nil
	}
	return c.GetClient()
}
