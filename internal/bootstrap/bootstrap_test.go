package bootstrap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PlasmidCatalog/internal/config"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/PlasmidCatalog/internal/interfaces/http/handlers"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

const testRules = `{"carriers": ["pMyVec-1"], "fluorescence": ["mStayGold"]}`

const testCorpus = `[
	{"id": "1", "name": "pNovel-7-EGFP", "载体": "pNovel-7", "荧光": ["EGFP"]}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = "test"
	return cfg
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := New(context.Background(), cfg, Options{InstanceID: "test-1"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	require.NoError(t, app.Start(context.Background()))
	return app
}

func scrape(t *testing.T, app *App) string {
	t.Helper()
	rec := httptest.NewRecorder()
	app.Collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil, Options{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestNew_Defaults(t *testing.T) {
	app := newApp(t, testConfig(t))

	assert.Equal(t, EntryCLI, app.Entry)
	assert.Equal(t, "test-1", app.InstanceID)
	assert.Nil(t, app.Producer)
	assert.Nil(t, app.Objects)
	assert.Nil(t, app.Pool())
	assert.Empty(t, app.HealthCheckers())

	resp, err := app.Service.Recognize(context.Background(), &ptypes.RecognizeRequest{Filename: "pcDNA3.1-EGFP-CMV-Puro.fasta"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pcDNA3.1"}, resp.Fields["vector"])

	body := scrape(t, app)
	assert.Contains(t, body, `plasmid_recognition_requests_total{entry="cli",mode="name",service="plasmidcat-cli",status="success"} 1`)
	assert.Contains(t, body, `plasmid_context_reloads_total{service="plasmidcat-cli",status="success",trigger="manual"} 1`)
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	app := newApp(t, cfg)

	assert.Nil(t, app.Collector)
	assert.Nil(t, app.Metrics)
	_, ok := app.Service.(*instrumentedService)
	assert.False(t, ok)
}

func TestNew_FileBackends(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recognition.RulesPath = writeFile(t, "rules.json", testRules)
	cfg.Recognition.CorpusBackend = "file"
	cfg.Recognition.CorpusPath = writeFile(t, "records.json", testCorpus)
	app := newApp(t, cfg)

	stats := app.Service.VocabularyStats(context.Background())
	assert.Equal(t, 1, stats.Records)

	resp, err := app.Service.Recognize(context.Background(), &ptypes.RecognizeRequest{Filename: "pMyVec-1-mStayGold.dna"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pMyVec-1"}, resp.Fields["vector"])
	assert.Contains(t, resp.Fields["fluorophore"], "mStayGold")

	resp, err = app.Service.Recognize(context.Background(), &ptypes.RecognizeRequest{Filename: "pNovel-7_insert.gb"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pNovel-7"}, resp.Fields["vector"])

	assert.Contains(t, scrape(t, app), `plasmid_db_query_duration_seconds_count{db="file",operation="list_records",service="plasmidcat-cli"} 1`)
}

func TestNew_MissingRulesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recognition.RulesPath = filepath.Join(t.TempDir(), "absent.json")

	app, err := New(context.Background(), cfg, Options{})
	require.NoError(t, err)
	defer app.Close()
	assert.Error(t, app.Start(context.Background()))
}

func TestNew_RulesObjectRequiresMinIO(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recognition.RulesObjectKey = "rules/plasmid.json"

	_, err := New(context.Background(), cfg, Options{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestNew_RedisCorrections(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()
	cfg.Recognition.CorrectionBackend = "redis"
	ctx := context.Background()

	first := newApp(t, cfg)
	require.Len(t, first.HealthCheckers(), 1)
	assert.Equal(t, "redis", first.HealthCheckers()[0].Name())

	out, err := first.Service.RecordCorrection(ctx, &ptypes.CorrectionRequest{
		Filename:     "foo.dna",
		Category:     "species",
		OldSignature: "人",
		NewSignature: "小鼠",
	})
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.True(t, out.Persisted)
	assert.NotEmpty(t, mr.Keys())
	assert.Contains(t, scrape(t, first), `plasmid_corrections_total{origin="local",result="applied",service="plasmidcat-cli"} 1`)

	// A fresh instance replays the stored correction on start.
	second := newApp(t, cfg)
	resp, err := second.Service.Recognize(ctx, &ptypes.RecognizeRequest{Filename: "foo.dna"})
	require.NoError(t, err)
	assert.Equal(t, []string{"小鼠"}, resp.Fields["species"])
}

func TestNew_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = addr
	cfg.Recognition.CorrectionBackend = "redis"

	_, err := New(context.Background(), cfg, Options{})
	assert.Error(t, err)
}

func TestApp_Router(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()
	cfg.Recognition.CorrectionBackend = "redis"
	cfg.Server.RateLimitRPS = 100
	cfg.Server.CORSAllowOrigins = []string{"https://*.example.org"}
	app := newApp(t, cfg)

	extra := handlers.CheckFunc{ComponentName: "kafka", Fn: func(context.Context) error { return nil }}
	r := app.Router(extra)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detail", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail handlers.DetailedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, Version, detail.Version)
	assert.Contains(t, detail.Components, "redis")
	assert.Contains(t, detail.Components, "kafka")

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", strings.NewReader(`{"filename": "pcDNA3.1-EGFP.dna"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://lab.example.org")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://lab.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `plasmid_health_check_status{component="redis",service="plasmidcat-cli"} 1`)
	assert.Contains(t, rec.Body.String(), `plasmid_recognition_requests_total{entry="cli",mode="name",service="plasmidcat-cli",status="success"} 1`)
}

func TestApp_Server(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 18089
	app := newApp(t, cfg)

	srv := app.Server()
	assert.Equal(t, "127.0.0.1:18089", srv.Addr())
	assert.NotNil(t, srv.Handler())
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	app := newApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestApp_ProbeRouter(t *testing.T) {
	app := newApp(t, testConfig(t))
	r := app.ProbeRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/recognize", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApp_RunWorkerRequiresKafka(t *testing.T) {
	app := newApp(t, testConfig(t))
	err := app.RunWorker(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
}

func TestApp_ConsumersRequireKafka(t *testing.T) {
	cfg := testConfig(t)
	cfg.Kafka.Enabled = true
	app, err := New(context.Background(), cfg, Options{Offline: true})
	require.NoError(t, err)
	defer app.Close()

	_, err = app.JobConsumer()
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
	_, err = app.CorrectionConsumer()
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
}

func TestApp_MessagingWiring(t *testing.T) {
	cfg := testConfig(t)
	cfg.Kafka.Enabled = true
	cfg.Kafka.Brokers = []string{"127.0.0.1:1"}
	app, err := New(context.Background(), cfg, Options{Entry: EntryWorker, InstanceID: "w-1"})
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Producer)
	require.NotNil(t, app.Publisher)

	jobs, err := app.JobConsumer()
	require.NoError(t, err)
	assert.NoError(t, jobs.Close())

	corrections, err := app.CorrectionConsumer()
	require.NoError(t, err)
	assert.NoError(t, corrections.Close())
}

func TestApp_WatchFilesDisabled(t *testing.T) {
	app := newApp(t, testConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, app.WatchFiles(ctx))
}

func TestNew_NounPass(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recognition.NounPass = true
	app := newApp(t, cfg)

	resp, err := app.Service.Recognize(context.Background(), &ptypes.RecognizeRequest{Filename: "pLKO.1-puro-shKRAS.dna"})
	require.NoError(t, err)
	assert.Contains(t, resp.Fields["target_gene"], "KRAS")
}

func TestApp_WatchConfig(t *testing.T) {
	app := newApp(t, testConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, app.WatchConfig(ctx, filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))
	require.NoError(t, app.WatchConfig(ctx, path))

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))
	assert.Eventually(t, func() bool {
		return strings.Contains(scrape(t, app), `trigger="config"`)
	}, 5*time.Second, 50*time.Millisecond)
}

func TestApp_CloseIsIdempotent(t *testing.T) {
	app, err := New(context.Background(), testConfig(t), Options{})
	require.NoError(t, err)
	assert.NoError(t, app.Close())
	assert.NoError(t, app.Close())
}

func TestInstrumentHandler(t *testing.T) {
	app := newApp(t, testConfig(t))

	calls := 0
	h := instrumentHandler(app.Metrics, kafka.TopicCorrections, func(context.Context, *kafka.Message) error {
		calls++
		return nil
	})
	require.NoError(t, h(context.Background(), &kafka.Message{Topic: kafka.TopicCorrections}))
	assert.Equal(t, 1, calls)
	assert.Contains(t, scrape(t, app), `plasmid_mq_messages_total{service="plasmidcat-cli",status="success",topic="plasmid.corrections"} 1`)

	assert.NotNil(t, instrumentHandler(nil, "t", h))
}

type stubFetcher struct{ data []byte }

func (f stubFetcher) Fetch(context.Context, string, int64) ([]byte, error) { return f.data, nil }

func TestInstrumentedFetcher(t *testing.T) {
	app := newApp(t, testConfig(t))
	f := &instrumentedFetcher{next: stubFetcher{data: []byte("ACGT")}, metrics: app.Metrics}

	data, err := f.Fetch(context.Background(), "a.dna", 16)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(data))
	assert.Contains(t, scrape(t, app), `plasmid_object_fetch_total{service="plasmidcat-cli",status="success"} 1`)
}

//Personal.AI order the ending
