package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8080
	DefaultServerMode = "release"
	DefaultMaxBody    = 64 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMinMatchScore     = 0.25
	DefaultCorpusBackend     = "none"
	DefaultCorrectionBackend = "memory"
	DefaultBatchConcurrency  = 8
	DefaultMaxBatchSize      = 500
	DefaultContentTimeout    = 30 * time.Second
	DefaultMaxContentBytes   = 32 << 20

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "plasmid:"

	DefaultKafkaBroker          = "localhost:9092"
	DefaultKafkaGroupID         = "plasmid-recognition"
	DefaultKafkaRequestTopic    = "plasmid.recognition.requests"
	DefaultKafkaResultTopic     = "plasmid.recognition.results"
	DefaultKafkaCorrectionTopic = "plasmid.corrections"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "plasmids"

	DefaultDBHost          = "localhost"
	DefaultDBPort          = 5432
	DefaultDBName          = "plasmid_catalog"
	DefaultDBMaxConns      = 10
	DefaultDBMigrationPath = "file://migrations"

	DefaultWorkerConcurrency = 4
	DefaultMetricsNamespace  = "plasmid"
)

// ApplyDefaults fills every zero-value field in cfg with its default.
// Explicitly configured values are left unchanged.  It must run after
// unmarshalling and before Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBody
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Recognition ───────────────────────────────────────────────────────────
	// min_match_score is seeded by the loader; an explicit 0 is kept.
	if cfg.Recognition.CorpusBackend == "" {
		if cfg.Recognition.CorpusPath != "" {
			cfg.Recognition.CorpusBackend = "file"
		} else {
			cfg.Recognition.CorpusBackend = DefaultCorpusBackend
		}
	}
	if cfg.Recognition.CorrectionBackend == "" {
		if cfg.Redis.Enabled {
			cfg.Recognition.CorrectionBackend = "redis"
		} else {
			cfg.Recognition.CorrectionBackend = DefaultCorrectionBackend
		}
	}
	if cfg.Recognition.BatchConcurrency == 0 {
		cfg.Recognition.BatchConcurrency = DefaultBatchConcurrency
	}
	if cfg.Recognition.MaxBatchSize == 0 {
		cfg.Recognition.MaxBatchSize = DefaultMaxBatchSize
	}
	if cfg.Recognition.ContentTimeout == 0 {
		cfg.Recognition.ContentTimeout = DefaultContentTimeout
	}
	if cfg.Recognition.MaxContentBytes == 0 {
		cfg.Recognition.MaxContentBytes = DefaultMaxContentBytes
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.RequestTopic == "" {
		cfg.Kafka.RequestTopic = DefaultKafkaRequestTopic
	}
	if cfg.Kafka.ResultTopic == "" {
		cfg.Kafka.ResultTopic = DefaultKafkaResultTopic
	}
	if cfg.Kafka.CorrectionTopic == "" {
		cfg.Kafka.CorrectionTopic = DefaultKafkaCorrectionTopic
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = 100
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = 50 * time.Millisecond
	}
	if cfg.Kafka.MaxRetries == 0 {
		cfg.Kafka.MaxRetries = 3
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = DefaultDBMigrationPath
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}

	// ── Worker / Metrics ──────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}
	if cfg.Worker.ShutdownTimeout == 0 {
		cfg.Worker.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Default returns a fully defaulted configuration with no file or
// environment input.  The CLI uses it when --config is not given.
func Default() *Config {
	cfg := &Config{}
	cfg.Recognition.MinMatchScore = DefaultMinMatchScore
	cfg.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}

//Personal.AI order the ending
