package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ligasur/arena-console/api/swagger"
	"github.com/ligasur/arena-console/internal/handler"
	"github.com/ligasur/arena-console/internal/platform"
	"github.com/ligasur/arena-console/internal/repository"
	"github.com/ligasur/arena-console/internal/service"
	"github.com/ligasur/arena-console/pkg/cache"
	"github.com/ligasur/arena-console/pkg/config"
	"github.com/ligasur/arena-console/pkg/database"
	"github.com/ligasur/arena-console/pkg/logger"
	corsmiddleware "github.com/ligasur/arena-console/pkg/middleware/cors"
	reqidmiddleware "github.com/ligasur/arena-console/pkg/middleware/requestid"
)

// @title Arena Console API
// @version 0.1.0
// @description Admin console backend for the multi-institution sports event platform
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	client := platform.NewClient(cfg.Platform, logr)
	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
			cfg.Cache.Enabled = false
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, logr, cfg.Cache)

	var journalRepo *repository.JournalRepository
	if cfg.Journal.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Warn("database unavailable, journal disabled", zap.Error(err))
			cfg.Journal.Enabled = false
		} else {
			journalRepo = repository.NewJournalRepository(db)
		}
	}
	journal := service.NewJournalService(journalRepo, logr, cfg.Journal.Enabled)

	refresh := service.NewRefreshService(client, cacheSvc, cfg.Refresh, logr)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	refresh.Start(ctx)
	defer refresh.Stop()

	validate := validator.New()
	svcs := handler.Services{
		Tokens:      service.NewTokenService(cfg.JWT),
		Audit:       service.NewAuditService(client, cacheSvc, refresh, journal, metrics, validate, logr),
		Review:      service.NewReviewService(client, logr),
		Schedule:    service.NewScheduleService(client, cacheSvc, refresh, journal, metrics, logr),
		Performance: service.NewPerformanceService(client, journal, metrics, logr),
		Journal:     journal,
		Export:      service.NewExportService(client, logr, cfg.Exports.Enabled),
		Metrics:     metrics,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, svcs)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
