// Package bootstrap wires configuration into a running recognition stack:
// storage backends, messaging, metrics and the application service.  The
// API server, the worker and the CLI all start from New.
package bootstrap

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	recognition "github.com/turtacn/PlasmidCatalog/internal/application/recognition"
	"github.com/turtacn/PlasmidCatalog/internal/config"
	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/database/postgres"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/database/redis"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/storage/filestore"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/storage/minio"
	"github.com/turtacn/PlasmidCatalog/internal/intelligence/common"
	recog "github.com/turtacn/PlasmidCatalog/internal/intelligence/recognition"
	"github.com/turtacn/PlasmidCatalog/internal/interfaces/http/handlers"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

// Version is injected at build time.
var Version = "dev"

// Entry points, used as the "entry" metrics label.
const (
	EntryHTTP   = "http"
	EntryWorker = "worker"
	EntryCLI    = "cli"
)

// Options selects what New starts.
type Options struct {
	// Entry is one of the Entry constants.
	Entry string
	// InstanceID tags published events; a random id is used when empty.
	InstanceID string
	// Offline skips Kafka even when it is enabled in config.
	Offline bool
	Logger  logging.Logger
}

// App holds the wired components.  Close releases them in reverse order.
type App struct {
	Config     *config.Config
	Logger     logging.Logger
	Entry      string
	InstanceID string

	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics

	Engine  *recog.Engine
	Service recognition.Service

	Producer  *kafka.Producer
	Publisher domain.EventPublisher
	Objects   *minio.ObjectStore

	pool     *pgxpool.Pool
	redis    *redis.Client
	rules    domain.RulesSource
	records  domain.RecordRepository
	checkers []handlers.HealthChecker
	closers  []func() error
}

// New builds the stack described by cfg.  It does not load the
// recognition context; call App.Start for that.
func New(ctx context.Context, cfg *config.Config, opts Options) (app *App, err error) {
	if cfg == nil {
		return nil, errors.InvalidParam("config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.Entry == "" {
		opts.Entry = EntryCLI
	}
	if opts.InstanceID == "" {
		opts.InstanceID = defaultInstanceID()
	}

	a := &App{
		Config:     cfg,
		Logger:     logger,
		Entry:      opts.Entry,
		InstanceID: opts.InstanceID,
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	if err := a.initMetrics(); err != nil {
		return nil, err
	}
	if err := a.initStorage(ctx); err != nil {
		return nil, err
	}
	if !opts.Offline && cfg.Kafka.Enabled {
		if err := a.initMessaging(); err != nil {
			return nil, err
		}
	}
	if err := a.initService(); err != nil {
		return nil, err
	}
	return a, nil
}

func defaultInstanceID() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host + "-" + uuid.NewString()[:8]
	}
	return uuid.NewString()
}

func (a *App) initMetrics() error {
	if !a.Config.Metrics.Enabled {
		return nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfigFrom(a.Config.Metrics, "plasmidcat-"+a.Entry), a.Logger)
	if err != nil {
		return err
	}
	a.Collector = collector
	a.Metrics = prometheus.NewAppMetrics(collector)
	return nil
}

// initStorage opens only the backends the recognition section selects.
func (a *App) initStorage(ctx context.Context) error {
	rc := a.Config.Recognition

	needPostgres := rc.CorpusBackend == "postgres" || rc.CorrectionBackend == "postgres"
	if needPostgres {
		pool, err := postgres.NewConnectionPool(ctx, a.Config.Database, a.Logger.Named("postgres"))
		if err != nil {
			return err
		}
		a.pool = pool
		a.closers = append(a.closers, func() error { postgres.Close(pool); return nil })
		a.checkers = append(a.checkers, handlers.CheckFunc{ComponentName: "postgres", Fn: func(ctx context.Context) error {
			return postgres.HealthCheck(ctx, pool, a.Logger)
		}})
	}

	if rc.CorrectionBackend == "redis" {
		client, err := redis.NewClient(a.Config.Redis, a.Logger)
		if err != nil {
			return err
		}
		a.redis = client
		a.closers = append(a.closers, client.Close)
		a.checkers = append(a.checkers, handlers.CheckFunc{ComponentName: "redis", Fn: client.Ping})
	}

	if a.Config.MinIO.Enabled {
		client, err := minio.NewClient(ctx, a.Config.MinIO, a.Logger)
		if err != nil {
			return err
		}
		a.Objects = minio.NewObjectStore(client, a.Logger)
		a.closers = append(a.closers, client.Close)
		a.checkers = append(a.checkers, handlers.CheckFunc{ComponentName: "minio", Fn: client.HealthCheck})
	}

	switch {
	case rc.RulesObjectKey != "" && a.Objects != nil:
		a.rules = minio.NewRulesObject(a.Objects, rc.RulesObjectKey)
	case rc.RulesObjectKey != "":
		return errors.New(errors.ErrCodeValidation, "recognition.rules_object_key requires minio.enabled")
	case rc.RulesPath != "":
		a.rules = filestore.NewRulesFile(rc.RulesPath)
	}

	switch rc.CorpusBackend {
	case "file":
		a.records = filestore.NewRecordFile(rc.CorpusPath, a.Logger)
	case "postgres":
		a.records = repositories.NewRecordRepository(a.pool, a.Logger)
	}
	return nil
}

func (a *App) initMessaging() error {
	producer, err := kafka.NewProducer(kafka.ProducerConfigFrom(a.Config.Kafka), a.Logger)
	if err != nil {
		return err
	}
	a.Producer = producer
	a.Publisher = kafka.NewEventPublisher(producer, a.Config.Kafka, a.InstanceID, a.Logger)
	a.closers = append(a.closers, producer.Close)
	return nil
}

func (a *App) initService() error {
	rc := a.Config.Recognition

	engineMetrics := common.RecognitionMetrics(common.NewNoopRecognitionMetrics())
	if a.Collector != nil {
		m, err := common.NewPrometheusRecognitionMetrics(a.Collector.Registerer())
		if err != nil {
			return err
		}
		engineMetrics = m
	}

	engineCfg := recog.DefaultEngineConfig()
	engineCfg.MinMatchScore = rc.MinMatchScore
	if rc.MaxContentBytes > 0 {
		engineCfg.MaxContentBytes = rc.MaxContentBytes
	}
	opts := []recog.Option{
		recog.WithLogger(a.Logger.Named("engine")),
		recog.WithMetrics(engineMetrics),
	}
	if rc.NounPass {
		opts = append(opts, recog.WithNounExtractor(recog.NewGeneSymbolExtractor(recog.CuratedGeneSymbols())))
	}
	a.Engine = recog.NewEngine(engineCfg, opts...)

	var corrections domain.CorrectionStore
	switch rc.CorrectionBackend {
	case "redis":
		corrections = redis.NewCorrectionStore(a.redis, a.Logger)
	case "postgres":
		corrections = repositories.NewCorrectionRepository(a.pool, a.Logger)
	}

	deps := recognition.Deps{
		Engine:      a.Engine,
		Records:     a.records,
		Rules:       a.rules,
		Corrections: corrections,
		Publisher:   a.Publisher,
		Metrics:     engineMetrics,
		Logger:      a.Logger.Named("recognition"),
		Config:      recognition.ConfigFrom(rc),
		InstanceID:  a.InstanceID,
	}
	if a.Objects != nil {
		deps.Fetcher = a.Objects
	}
	if a.Metrics != nil {
		if deps.Fetcher != nil {
			deps.Fetcher = &instrumentedFetcher{next: deps.Fetcher, metrics: a.Metrics}
		}
		if deps.Records != nil {
			deps.Records = &instrumentedRecords{RecordRepository: deps.Records, backend: rc.CorpusBackend, metrics: a.Metrics}
		}
	}

	svc, err := recognition.NewService(deps)
	if err != nil {
		return err
	}
	if a.Metrics != nil {
		svc = &instrumentedService{Service: svc, entry: a.Entry, metrics: a.Metrics}
	}
	a.Service = svc
	return nil
}

// Start replays stored corrections and loads the recognition context.
func (a *App) Start(ctx context.Context) error {
	start := time.Now()
	if err := a.Service.Start(ctx); err != nil {
		return err
	}
	stats := a.Service.VocabularyStats(ctx)
	logging.LogOperationDuration(a.Logger, "startup", start,
		logging.String("entry", a.Entry),
		logging.Uint64("vocabulary_version", stats.Version),
		logging.Int("records", stats.Records),
		logging.Int("corrections", stats.Corrections))
	return nil
}

// WatchFiles reloads the context on rules or corpus file changes until ctx
// is done.  It returns immediately when watching is disabled or there is
// nothing on disk to watch.
func (a *App) WatchFiles(ctx context.Context) error {
	rc := a.Config.Recognition
	if !rc.WatchFiles {
		return nil
	}
	var paths []string
	if rc.RulesObjectKey == "" && rc.RulesPath != "" {
		paths = append(paths, rc.RulesPath)
	}
	if rc.CorpusBackend == "file" && rc.CorpusPath != "" {
		paths = append(paths, rc.CorpusPath)
	}
	if len(paths) == 0 {
		return nil
	}
	var reloader recognition.Reloader = a.Service
	if is, ok := a.Service.(*instrumentedService); ok {
		reloader = is.withTrigger("watch")
	}
	return recognition.NewFileWatcher(reloader, a.Logger, 0, paths...).Run(ctx)
}

// WatchConfig follows the configuration file at path.  A revision that
// keeps the rules and corpus sources reloads the recognition context; one
// that moves them is only logged, since backends are opened at start-up.
func (a *App) WatchConfig(ctx context.Context, path string) error {
	var reloader recognition.Reloader = a.Service
	if is, ok := a.Service.(*instrumentedService); ok {
		reloader = is.withTrigger("config")
	}
	current := a.Config.Recognition
	return config.Watch(path, func(next *config.Config) {
		rc := next.Recognition
		if rc.RulesPath != current.RulesPath || rc.RulesObjectKey != current.RulesObjectKey ||
			rc.CorpusBackend != current.CorpusBackend || rc.CorpusPath != current.CorpusPath {
			a.Logger.Warn("Recognition sources changed, restart to apply", logging.String("path", path))
			return
		}
		if _, err := reloader.Reload(ctx); err != nil {
			a.Logger.Error("Reload after configuration change failed", logging.Err(err))
			return
		}
		a.Logger.Info("Configuration changed, context reloaded", logging.String("path", path))
	}, func(err error) {
		a.Logger.Warn("Ignoring invalid configuration revision", logging.String("path", path), logging.Err(err))
	})
}

// HealthCheckers returns one checker per opened backend.
func (a *App) HealthCheckers() []handlers.HealthChecker {
	out := make([]handlers.HealthChecker, len(a.checkers))
	copy(out, a.checkers)
	return out
}

// Pool returns the PostgreSQL pool, or nil when no backend uses it.
func (a *App) Pool() *pgxpool.Pool { return a.pool }

// Close releases every opened backend.  It is safe to call more than once.
func (a *App) Close() error {
	var errs []string
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err.Error())
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return errors.New(errors.ErrCodeInternal, "close: "+strings.Join(errs, "; "))
	}
	return nil
}

//Personal.AI order the ending
