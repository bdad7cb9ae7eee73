package bootstrap

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/turtacn/PlasmidCatalog/internal/interfaces/http"
	"github.com/turtacn/PlasmidCatalog/internal/interfaces/http/handlers"
)

// Serve runs the API server until ctx is done.  The correction consumer and
// the file watcher run alongside it when configured.
func (a *App) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.Producer != nil {
		c, err := a.CorrectionConsumer()
		if err != nil {
			return err
		}
		if err := c.Start(gctx); err != nil {
			return err
		}
		defer c.Close()
	}

	srv := a.Server()
	a.Logger.Info("API server listening", logging.String("addr", srv.Addr()), logging.String("version", Version))
	a.runHTTP(g, gctx, srv)
	g.Go(func() error { return a.WatchFiles(gctx) })
	return g.Wait()
}

// RunWorker consumes recognition jobs until ctx is done.  Worker.Concurrency
// readers join the shared group; probes and /metrics are served on the
// server address.
func (a *App) RunWorker(ctx context.Context) error {
	n := a.Config.Worker.Concurrency
	if n <= 0 {
		n = 1
	}
	var consumers []*kafka.Consumer
	defer func() {
		for _, c := range consumers {
			_ = c.Close()
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		c, err := a.JobConsumer()
		if err != nil {
			return err
		}
		consumers = append(consumers, c)
		if err := c.Start(gctx); err != nil {
			return err
		}
	}
	corrections, err := a.CorrectionConsumer()
	if err != nil {
		return err
	}
	consumers = append(consumers, corrections)
	if err := corrections.Start(gctx); err != nil {
		return err
	}

	srv := httpapi.NewServer(a.Config.Server, a.ProbeRouter(), a.Logger.Named("probe"))
	a.Logger.Info("Worker started",
		logging.Int("consumers", n),
		logging.String("probe_addr", srv.Addr()),
		logging.String("instance", a.InstanceID))
	a.runHTTP(g, gctx, srv)
	g.Go(func() error { return a.WatchFiles(gctx) })

	err = g.Wait()
	var processed int64
	for _, c := range consumers[:n] {
		processed += c.Processed()
	}
	a.Logger.Info("Worker stopped", logging.Int64("jobs_processed", processed))
	return err
}

// ProbeRouter serves only the health probes and /metrics.
func (a *App) ProbeRouter() *gin.Engine {
	health := handlers.NewHealthHandler(Version, a.HealthCheckers()...)
	if a.Metrics != nil {
		health.OnCheck(func(component string, healthy bool) {
			prometheus.RecordHealth(a.Metrics, component, healthy)
		})
	}
	return httpapi.NewRouter(httpapi.RouterConfig{
		HealthHandler:    health,
		Mode:             a.Config.Server.Mode,
		Logger:           a.Logger.Named("probe"),
		MetricsCollector: a.Collector,
		Metrics:          a.Metrics,
	})
}

// runHTTP serves srv in g and shuts it down once ctx is done.
func (a *App) runHTTP(g *errgroup.Group, ctx context.Context, srv *httpapi.Server) {
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		timeout := a.Config.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
}

//Personal.AI order the ending
