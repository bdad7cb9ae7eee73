package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/turtacn/PlasmidCatalog/internal/interfaces/http"
	"github.com/turtacn/PlasmidCatalog/internal/interfaces/http/handlers"
	"github.com/turtacn/PlasmidCatalog/internal/interfaces/http/middleware"
)

// Router builds the gin engine for the API server.  extra checkers are
// appended to the backend checks, e.g. a Kafka consumer probe.
func (a *App) Router(extra ...handlers.HealthChecker) *gin.Engine {
	sc := a.Config.Server

	health := handlers.NewHealthHandler(Version, append(a.HealthCheckers(), extra...)...)
	if a.Metrics != nil {
		health.OnCheck(func(component string, healthy bool) {
			prometheus.RecordHealth(a.Metrics, component, healthy)
		})
	}

	cfg := httpapi.RouterConfig{
		RecognitionHandler: handlers.NewRecognitionHandler(a.Service, a.Config.Recognition.MaxContentBytes),
		HealthHandler:      health,
		Mode:               sc.Mode,
		APIKey:             sc.APIKey,
		MaxBodySize:        sc.MaxBodySize,
		Logging:            middleware.DefaultLoggingConfig(),
		Logger:             a.Logger.Named("http"),
		MetricsCollector:   a.Collector,
		Metrics:            a.Metrics,
	}
	if len(sc.CORSAllowOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = sc.CORSAllowOrigins
		cors.AllowWildcard = true
		cfg.CORS = &cors
	}
	if sc.RateLimitRPS > 0 {
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = sc.RateLimitRPS
		if sc.RateLimitBurst > 0 {
			rl.BurstSize = sc.RateLimitBurst
		}
		cfg.RateLimiter = middleware.NewRateLimiter(rl)
	}
	return httpapi.NewRouter(cfg)
}

// Server wraps Router in an http.Server bound to the configured address.
func (a *App) Server(extra ...handlers.HealthChecker) *httpapi.Server {
	return httpapi.NewServer(a.Config.Server, a.Router(extra...), a.Logger.Named("server"))
}

//Personal.AI order the ending
