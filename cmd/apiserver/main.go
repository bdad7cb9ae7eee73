// API server entry point.  It serves the recognition API, /metrics and the
// health probes, and follows correction events from other instances when
// Kafka is enabled.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/PlasmidCatalog/internal/bootstrap"
	"github.com/turtacn/PlasmidCatalog/internal/config"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(cfg.Log.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logging.SetDefault(logger)

	if err := run(cfg, *configPath, logger); err != nil {
		logger.Error("API server exited", logging.Err(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting plasmid recognition API server",
		logging.String("version", bootstrap.Version),
		logging.String("addr", cfg.Server.Addr()))

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{Entry: bootstrap.EntryHTTP, Logger: logger})
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Start(ctx); err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil {
		if err := app.WatchConfig(ctx, configPath); err != nil {
			logger.Warn("Configuration watch disabled", logging.Err(err))
		}
	}
	if err := app.Serve(ctx); err != nil {
		return err
	}
	logger.Info("API server stopped")
	return nil
}

// loadConfig reads path when it exists and falls back to environment
// variables and defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

//Personal.AI order the ending
