// Package config defines the configuration structures for PlasmidCatalog.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	Mode             string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	MaxBodySize      int64         `mapstructure:"max_body_size"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	APIKey           string        `mapstructure:"api_key"`
	// RateLimitRPS is the per-client request rate; zero disables limiting.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// LoggerConfig converts the section into the logging package's settings.
func (l LogConfig) LoggerConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:       logging.Level(l.Level),
		Format:      l.Format,
		OutputPaths: l.OutputPaths,
	}
}

// RecognitionConfig holds recognition engine and service parameters.
type RecognitionConfig struct {
	// MinMatchScore drops candidates whose adjusted score is lower.
	MinMatchScore float64 `mapstructure:"min_match_score"`

	// RulesPath is a local rules document.  RulesObjectKey, when set, takes
	// precedence and is read from object storage.
	RulesPath      string `mapstructure:"rules_path"`
	RulesObjectKey string `mapstructure:"rules_object_key"`

	// CorpusBackend selects where the record snapshot comes from:
	// "file" (CorpusPath), "postgres" or "none".
	CorpusBackend string `mapstructure:"corpus_backend"`
	CorpusPath    string `mapstructure:"corpus_path"`

	// CorrectionBackend selects the correction store: "memory", "redis" or
	// "postgres".
	CorrectionBackend string `mapstructure:"correction_backend"`

	// NounPass enables the gene-symbol noun pass for target genes.
	NounPass bool `mapstructure:"noun_pass"`

	WatchFiles       bool `mapstructure:"watch_files"`
	BatchConcurrency int  `mapstructure:"batch_concurrency"`
	MaxBatchSize     int  `mapstructure:"max_batch_size"`

	// ContentTimeout bounds content decoding.  The decoders check it while
	// scanning, so a large file is cut off mid-read.
	ContentTimeout  time.Duration `mapstructure:"content_timeout"`
	MaxContentBytes int64         `mapstructure:"max_content_bytes"`
}

// RedisConfig holds Redis connection parameters for the correction store.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds Apache Kafka producer/consumer parameters.
type KafkaConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Brokers         []string      `mapstructure:"brokers"`
	GroupID         string        `mapstructure:"group_id"`
	RequestTopic    string        `mapstructure:"request_topic"`
	ResultTopic     string        `mapstructure:"result_topic"`
	CorrectionTopic string        `mapstructure:"correction_topic"`
	BatchSize       int           `mapstructure:"batch_size"`
	BatchTimeout    time.Duration `mapstructure:"batch_timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters.
type MinIOConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the record table.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// DSN returns a postgres:// connection URL usable by pgx and golang-migrate.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// WorkerConfig holds background-worker execution parameters.
type WorkerConfig struct {
	Concurrency     int           `mapstructure:"concurrency"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MetricsConfig controls the Prometheus registry.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Recognition RecognitionConfig `mapstructure:"recognition"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	MinIO       MinIOConfig       `mapstructure:"minio"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Worker      WorkerConfig      `mapstructure:"worker"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a defaulted Config and returns the
// first problem found.  Optional backends are only checked when enabled.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q is invalid; expected json|console", c.Log.Format)
	}

	r := c.Recognition
	if r.MinMatchScore < 0 || r.MinMatchScore > 1 {
		return fmt.Errorf("recognition.min_match_score %.2f is out of range [0, 1]", r.MinMatchScore)
	}
	if r.BatchConcurrency < 1 {
		return fmt.Errorf("recognition.batch_concurrency must be ≥ 1, got %d", r.BatchConcurrency)
	}
	if r.MaxBatchSize < 1 {
		return fmt.Errorf("recognition.max_batch_size must be ≥ 1, got %d", r.MaxBatchSize)
	}
	if r.MaxContentBytes < 1 {
		return fmt.Errorf("recognition.max_content_bytes must be ≥ 1, got %d", r.MaxContentBytes)
	}
	switch r.CorpusBackend {
	case "none":
	case "file":
		if r.CorpusPath == "" {
			return fmt.Errorf("recognition.corpus_path is required when corpus_backend is file")
		}
	case "postgres":
		if !c.Database.Enabled {
			return fmt.Errorf("recognition.corpus_backend postgres requires database.enabled")
		}
	default:
		return fmt.Errorf("recognition.corpus_backend %q is invalid; expected file|postgres|none", r.CorpusBackend)
	}
	switch r.CorrectionBackend {
	case "memory":
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("recognition.correction_backend redis requires redis.enabled")
		}
	case "postgres":
		if !c.Database.Enabled {
			return fmt.Errorf("recognition.correction_backend postgres requires database.enabled")
		}
	default:
		return fmt.Errorf("recognition.correction_backend %q is invalid; expected memory|redis|postgres", r.CorrectionBackend)
	}
	if r.RulesObjectKey != "" && !c.MinIO.Enabled {
		return fmt.Errorf("recognition.rules_object_key requires minio.enabled")
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.GroupID == "" {
			return fmt.Errorf("kafka.group_id is required")
		}
	}

	if c.MinIO.Enabled {
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("minio.endpoint is required")
		}
		if c.MinIO.Bucket == "" {
			return fmt.Errorf("minio.bucket is required")
		}
	}

	if c.Database.Enabled {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("database.port %d is out of range [1, 65535]", c.Database.Port)
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database.db_name is required")
		}
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("database.max_conns must be ≥ 1, got %d", c.Database.MaxConns)
		}
	}

	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("worker.concurrency must be ≥ 1, got %d", c.Worker.Concurrency)
	}
	return nil
}

//Personal.AI order the ending
