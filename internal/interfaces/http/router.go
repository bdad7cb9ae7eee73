// Package http assembles the gin engine and the HTTP server of the
// recognition API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/PlasmidCatalog/internal/interfaces/http/handlers"
	"github.com/turtacn/PlasmidCatalog/internal/interfaces/http/middleware"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

// RouterConfig aggregates the handlers and middleware settings of the route
// tree.  Nil handlers and collectors are skipped.
type RouterConfig struct {
	RecognitionHandler *handlers.RecognitionHandler
	HealthHandler      *handlers.HealthHandler

	Mode        string
	APIKey      string
	MaxBodySize int64
	CORS        *middleware.CORSConfig
	Logging     middleware.LoggingConfig
	RateLimiter *middleware.RateLimiter

	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	Metrics          *prometheus.AppMetrics
}

// NewRouter builds the gin engine: global middleware, public probes and
// metrics, then the /api/v1 group behind the API key and rate limit.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// --- Global middleware ---
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger, cfg.Metrics, cfg.Logging))
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.MaxBodySize > 0 {
		r.Use(bodyLimit(cfg.MaxBodySize))
	}

	// --- Public endpoints ---
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	// --- API v1 ---
	api := r.Group("/api/v1")
	api.Use(middleware.APIKey(cfg.APIKey))
	api.Use(middleware.RateLimit(cfg.RateLimiter))
	if cfg.RecognitionHandler != nil {
		cfg.RecognitionHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, errors.New(errors.ErrCodeNotFound, "route not found").WithDetail(c.Request.URL.Path))
	})
	return r
}

func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

//Personal.AI order the ending
