package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"score above one", func(c *Config) { c.Recognition.MinMatchScore = 1.5 }, "min_match_score"},
		{"negative score", func(c *Config) { c.Recognition.MinMatchScore = -0.1 }, "min_match_score"},
		{"batch concurrency", func(c *Config) { c.Recognition.BatchConcurrency = 0 }, "batch_concurrency"},
		{"max batch size", func(c *Config) { c.Recognition.MaxBatchSize = 0 }, "max_batch_size"},
		{"max content bytes", func(c *Config) { c.Recognition.MaxContentBytes = 0 }, "max_content_bytes"},
		{"file backend without path", func(c *Config) { c.Recognition.CorpusBackend = "file" }, "corpus_path"},
		{"postgres backend without db", func(c *Config) { c.Recognition.CorpusBackend = "postgres" }, "database.enabled"},
		{"unknown backend", func(c *Config) { c.Recognition.CorpusBackend = "s3" }, "corpus_backend"},
		{"redis corrections without redis", func(c *Config) { c.Recognition.CorrectionBackend = "redis" }, "redis.enabled"},
		{"postgres corrections without db", func(c *Config) { c.Recognition.CorrectionBackend = "postgres" }, "database.enabled"},
		{"unknown correction backend", func(c *Config) { c.Recognition.CorrectionBackend = "etcd" }, "correction_backend"},
		{"rules object without minio", func(c *Config) { c.Recognition.RulesObjectKey = "rules.json" }, "minio.enabled"},
		{"redis without addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, "redis.addr"},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }, "kafka.brokers"},
		{"minio without bucket", func(c *Config) { c.MinIO.Enabled = true; c.MinIO.Bucket = "" }, "minio.bucket"},
		{"database without user", func(c *Config) { c.Database.Enabled = true }, "database.user"},
		{"worker concurrency", func(c *Config) { c.Worker.Concurrency = 0 }, "worker.concurrency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.wantMsg), err.Error())
		})
	}
}

func TestValidate_DisabledBackendsAreNotChecked(t *testing.T) {
	cfg := Default()
	cfg.Redis.Addr = ""
	cfg.Kafka.Brokers = nil
	cfg.MinIO.Bucket = ""
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "lab", Password: "p@ss", DBName: "plasmids", SSLMode: "disable"}
	assert.Equal(t, "postgres://lab:p%40ss@db:5433/plasmids?sslmode=disable", d.DSN())
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:9090", ServerConfig{Host: "127.0.0.1", Port: 9090}.Addr())
}

func TestLogConfig_LoggerConfig(t *testing.T) {
	lc := LogConfig{Level: "debug", Format: "console", OutputPaths: []string{"stderr"}}.LoggerConfig()
	assert.Equal(t, "debug", lc.Level.String())
	assert.Equal(t, "console", lc.Format)
	assert.Equal(t, []string{"stderr"}, lc.OutputPaths)
}

//Personal.AI order the ending
