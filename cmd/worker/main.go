// Worker entry point.  It consumes recognition jobs from Kafka, fetches the
// file content from object storage, recognizes it and publishes the result.
// It also follows correction events so its learner matches the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/PlasmidCatalog/internal/bootstrap"
	"github.com/turtacn/PlasmidCatalog/internal/config"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
)

const defaultWorkerConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultWorkerConfigPath, "path to configuration file")
	workers := flag.Int("workers", 0, "number of job consumers in the group (overrides worker.concurrency)")
	probePort := flag.Int("probe-port", 0, "port for health probes and /metrics (overrides server.port)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Worker.Concurrency = *workers
	}
	if *probePort > 0 {
		cfg.Server.Port = *probePort
	}

	logger, err := logging.NewLogger(cfg.Log.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logging.SetDefault(logger)

	if !cfg.Kafka.Enabled {
		logger.Error("Worker requires kafka.enabled")
		_ = logger.Sync()
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Worker exited", logging.Err(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	host, _ := os.Hostname()
	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Entry:      bootstrap.EntryWorker,
		InstanceID: fmt.Sprintf("worker-%s-%d", host, os.Getpid()),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Start(ctx); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- app.RunWorker(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}
	logger.Info("Received shutdown signal, draining consumers")

	select {
	case err := <-done:
		return err
	case <-time.After(cfg.Worker.ShutdownTimeout):
		logger.Warn("Shutdown timeout exceeded, forcing exit", logging.Duration("timeout", cfg.Worker.ShutdownTimeout))
		return nil
	}
}

//Personal.AI order the ending
