package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/grunt24/grading-api/api/swagger"
	"github.com/grunt24/grading-api/internal/handler"
	"github.com/grunt24/grading-api/internal/repository"
	"github.com/grunt24/grading-api/internal/service"
	"github.com/grunt24/grading-api/pkg/cache"
	"github.com/grunt24/grading-api/pkg/config"
	"github.com/grunt24/grading-api/pkg/database"
	"github.com/grunt24/grading-api/pkg/logger"
)

// @title Grading API
// @version 1.0.0
// @description Midterm, finals and course grade calculation
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck
	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("schema setup failed", zap.Error(err))
	}

	redisClient := connectCache(ctx, cfg, logr)
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := validator.New()

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Grading.CacheTTL, logr, cfg.Grading.CacheEnabled && redisClient != nil)
	gradeConfigSvc := service.NewGradeConfigService(service.GradeConfigServiceParams{
		Repo:      repository.NewGradeConfigRepository(db),
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
		CacheTTL:  cfg.Grading.CacheTTL,
	})
	calculationSvc := service.NewGradeCalculationService(service.GradeCalculationServiceParams{
		Config:       gradeConfigSvc,
		Export:       service.NewExportService(cfg.Export.Title, logr),
		Metrics:      metrics,
		Validator:    validate,
		Logger:       logr,
		MaxBatchSize: cfg.Grading.MaxBatchSize,
	})

	router := newRouter(routerDeps{
		cfg:         cfg,
		logger:      logr,
		metrics:     metrics,
		gradeConfig: handler.NewGradeConfigHandler(gradeConfigSvc),
		calculation: handler.NewGradeCalculationHandler(calculationSvc),
		ops:         handler.NewMetricsHandler(metrics, readinessChecks(db, cacheRepo)),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// connectCache returns nil when caching is disabled or Redis is unreachable.
func connectCache(ctx context.Context, cfg *config.Config, logr *zap.Logger) *redis.Client {
	if !cfg.Grading.CacheEnabled {
		return nil
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, grade configuration cache disabled", zap.Error(err))
		return nil
	}
	return client
}

func readinessChecks(db *sqlx.DB, cacheRepo *repository.CacheRepository) map[string]handler.ReadinessCheck {
	return map[string]handler.ReadinessCheck{
		"database": db.PingContext,
		"cache":    cacheRepo.Ping,
	}
}
