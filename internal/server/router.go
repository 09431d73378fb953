// Package server exposes the analysis pipeline and the stored student
// views over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/alexanderramin/nuclea/internal/logger"
	"github.com/alexanderramin/nuclea/internal/metrics"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Analysis       service.AnalysisService
	Profiles       service.ProfileService
	Metrics        *metrics.Manager
	Logger         *logger.Logger
	CORSOrigins    []string
	AnalyzeTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(cfg.Logger))
	r.Use(metricsMiddleware(cfg.Metrics))
	r.Use(corsMiddleware(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if cfg.Analysis != nil {
			analyze := NewAnalyzeHandler(cfg.Analysis, cfg.AnalyzeTimeout, cfg.Metrics, cfg.Logger)
			api.POST("/analyze", analyze.Analyze)
		}

		if cfg.Profiles != nil && cfg.Analysis != nil {
			students := NewStudentHandler(cfg.Profiles, cfg.Analysis)
			api.GET("/students/:id/profile", students.Profile)
			api.GET("/students/:id/works", students.Works)
			api.GET("/works/:id/analysis", students.Analysis)
		}
	}

	return r
}
