package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/grunt24/grading-api/internal/handler"
	"github.com/grunt24/grading-api/internal/middleware"
	"github.com/grunt24/grading-api/internal/service"
	"github.com/grunt24/grading-api/pkg/config"
	"github.com/grunt24/grading-api/pkg/logger"
	corsmiddleware "github.com/grunt24/grading-api/pkg/middleware/cors"
	reqidmiddleware "github.com/grunt24/grading-api/pkg/middleware/requestid"
)

type routerDeps struct {
	cfg         *config.Config
	logger      *zap.Logger
	metrics     *service.MetricsService
	gradeConfig *handler.GradeConfigHandler
	calculation *handler.GradeCalculationHandler
	ops         *handler.MetricsHandler
}

func newRouter(deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.logger))
	r.Use(corsmiddleware.New(deps.cfg.CORS.AllowedOrigins))
	if deps.cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(deps.metrics, "/metrics", "/health", "/ready"))
	}

	r.GET("/health", deps.ops.Health)
	r.GET("/ready", deps.ops.Ready)
	if deps.cfg.Metrics.Enabled {
		r.GET("/metrics", deps.ops.Prometheus)
	}

	if deps.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	if deps.cfg.Metrics.Enabled {
		api.GET("/metrics/summary", deps.ops.Summary)
	}

	grading := api.Group("/grade-calculation")
	grading.GET("/grade-percentage", deps.gradeConfig.GetPercentage)
	grading.PUT("/grade-percentage", deps.gradeConfig.UpdatePercentage)
	grading.GET("/equivalents", deps.gradeConfig.ListEquivalents)
	grading.PUT("/equivalents", deps.gradeConfig.ReplaceEquivalents)
	grading.POST("/midterm", deps.calculation.Midterm)
	grading.POST("/finals", deps.calculation.Finals)
	grading.POST("/course", deps.calculation.Course)
	grading.POST("/export", deps.calculation.Export)

	return r
}
