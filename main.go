package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpo/jpo/backend/item-service/internal/config"
	"github.com/jpo/jpo/backend/item-service/internal/cursor"
	"github.com/jpo/jpo/backend/item-service/internal/database"
	editrepo "github.com/jpo/jpo/backend/item-service/internal/edit/repository"
	editservice "github.com/jpo/jpo/backend/item-service/internal/edit/service"
	itemrepo "github.com/jpo/jpo/backend/item-service/internal/item/repository"
	itemservice "github.com/jpo/jpo/backend/item-service/internal/item/service"
	"github.com/jpo/jpo/backend/item-service/internal/models"
	"github.com/jpo/jpo/backend/item-service/internal/server"
	"github.com/jpo/jpo/backend/item-service/pkg/logger"
	"github.com/jpo/jpo/backend/item-service/pkg/metrics"
	"github.com/jpo/jpo/backend/item-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	connectAttempts = 5
	shutdownTimeout = 30 * time.Second
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL is read before config so config errors are logged at the right level
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetFormat(cfg.Log.Format)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	strategy, err := cursor.ParseStrategy(cfg.Cursor.Strategy)
	if err != nil {
		logger.Fatalf("invalid cursor configuration: %v", err)
	}
	if strategy == cursor.StrategyLegacy {
		logger.Warnf("cursor strategy %q can hand the same page to concurrent readers", strategy)
	}

	store := database.NewStore(models.DatabaseName)
	items := itemservice.New(cursor.NewMongoAllocator(store, strategy), itemrepo.NewMongoRepo(store))
	edits := editservice.New(editrepo.NewMongoRepo(store), nil)

	checks := map[string]func() bool{"mongodb": store.Ready}

	var limiter gin.HandlerFunc
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiter = middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
			checks["redis"] = func() bool { return rdb.Ping(context.Background()).Err() == nil }
		} else {
			limiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
		logger.Infof("rate limiter enabled: rps=%v burst=%d redis=%v", cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.UseRedis && rdb != nil)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := server.NewRouter(server.Options{
		Items:       items,
		Edits:       edits,
		Ready:       store.Ready,
		Checks:      checks,
		RateLimiter: limiter,
		StartTime:   startTime,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the listener comes up first; data routes answer 503 until the store is attached
	connectDone := make(chan struct{})
	go func() {
		defer close(connectDone)
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, connectAttempts, time.Second)
		if ctx.Err() != nil {
			// shutting down: whatever the outcome, nobody will use this client
			if client != nil {
				_ = client.Disconnect(context.Background())
			}
			return
		}
		if err != nil {
			logger.Fatalf("%v", err)
		}
		store.Attach(client)
		logger.Infof("connected to MongoDB database %s", models.DatabaseName)
	}()

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting item service on %s (env=%s, cursor=%s)", addr, cfg.Server.Environment, strategy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	// Attach must not race with Close
	<-connectDone
	if err := store.Close(shutdownCtx); err != nil {
		logger.Errorf("mongo disconnect: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
