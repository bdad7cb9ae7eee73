package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultCorpusBackend, cfg.Recognition.CorpusBackend)
	assert.Equal(t, DefaultCorrectionBackend, cfg.Recognition.CorrectionBackend)
	assert.Equal(t, DefaultBatchConcurrency, cfg.Recognition.BatchConcurrency)
	assert.Equal(t, DefaultContentTimeout, cfg.Recognition.ContentTimeout)
	assert.Equal(t, int64(DefaultMaxContentBytes), cfg.Recognition.MaxContentBytes)
	assert.Equal(t, DefaultKafkaRequestTopic, cfg.Kafka.RequestTopic)
	assert.Equal(t, DefaultKafkaCorrectionTopic, cfg.Kafka.CorrectionTopic)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Recognition.ContentTimeout = 5 * time.Second
	cfg.Kafka.ResultTopic = "custom.results"
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Recognition.ContentTimeout)
	assert.Equal(t, "custom.results", cfg.Kafka.ResultTopic)
}

func TestApplyDefaults_CorpusPathImpliesFileBackend(t *testing.T) {
	cfg := &Config{}
	cfg.Recognition.CorpusPath = "/data/plasmids.json"
	ApplyDefaults(cfg)
	assert.Equal(t, "file", cfg.Recognition.CorpusBackend)
}

func TestApplyDefaults_RedisImpliesRedisCorrections(t *testing.T) {
	cfg := &Config{}
	cfg.Redis.Enabled = true
	ApplyDefaults(cfg)
	assert.Equal(t, "redis", cfg.Recognition.CorrectionBackend)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestDefault_MinMatchScore(t *testing.T) {
	assert.InDelta(t, DefaultMinMatchScore, Default().Recognition.MinMatchScore, 1e-9)
}

//Personal.AI order the ending
