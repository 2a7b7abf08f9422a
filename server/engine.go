package server

import (
	"fmt"

	"file-aggregator/config"
	"file-aggregator/handlers"
	"file-aggregator/logging"
	"file-aggregator/metrics"
	"file-aggregator/middleware"

	"github.com/gin-gonic/gin"
)

const (
	EndPointHealth  = "/health"
	EndPointMetrics = "/metrics"
)

// NewEngine returns a gin engine with the middleware chain shared by every
// service plus the health and metrics endpoints.
func NewEngine(service string, cfg *config.Config) (*gin.Engine, error) {
	if logging.IsDebug(cfg.LogLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Register()

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(service),
		middleware.CORSMiddleware(),
		middleware.SecurityHeaders(),
	)

	router.GET(EndPointHealth, handlers.HealthCheck(service))
	router.GET(EndPointMetrics, gin.WrapH(metrics.Handler()))

	return router, nil
}
