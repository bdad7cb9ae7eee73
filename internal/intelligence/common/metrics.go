/*
 * metrics.go implements the RecognitionMetrics interface in three variants (Prometheus, Noop, InMemory) plus a
 * sorted-slice latencyHistogram with linear interpolation. Prometheus metrics use the plasmid_recognition_ prefix and
 * latency buckets from 0.05ms to 1000ms, since name-only recognition is a sub-millisecond operation.
 */

package common

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// RecognitionMetrics is the telemetry API consumed by the recognition engine
// and the application service.
type RecognitionMetrics interface {
	// RecordRecognition records one recognize or recognizeFromContent call.
	RecordRecognition(ctx context.Context, params *RecognitionMetricParams)

	// RecordContentDecode records which content format was detected.
	RecordContentDecode(ctx context.Context, format string, success bool)

	// RecordCorrection records a correction accepted by the learner.
	RecordCorrection(ctx context.Context, category string)

	// RecordVocabularyReload records a vocabulary swap and its per-category sizes.
	RecordVocabularyReload(ctx context.Context, version uint64, sizes map[string]int)

	// RecordBatchProcessing records a batch recognition run.
	RecordBatchProcessing(ctx context.Context, params *BatchMetricParams)

	GetLatencyHistogram() LatencyHistogram
	GetCurrentStats() *RecognitionStats
}

// LatencyHistogram provides percentile-based latency observation.
type LatencyHistogram interface {
	Observe(durationMs float64)
	// Percentile returns the value at the given percentile (0–100).
	Percentile(p float64) float64
	Count() int64
	Sum() float64
}

// ---------------------------------------------------------------------------
// Parameter structs
// ---------------------------------------------------------------------------

// Recognition modes.
const (
	ModeName    = "name"
	ModeContent = "content"
)

// RecognitionMetricParams carries the data for a single recognition call.
type RecognitionMetricParams struct {
	Mode       string         `json:"mode"`
	DurationMs float64        `json:"duration_ms"`
	Categories int            `json:"categories"`
	Corrected  bool           `json:"corrected"`
	NoSignal   bool           `json:"no_signal"`
	Candidates map[string]int `json:"candidates,omitempty"` // per source
}

// BatchMetricParams carries the data for a batch recognition run.
type BatchMetricParams struct {
	BatchName       string  `json:"batch_name"`
	TotalItems      int     `json:"total_items"`
	SuccessItems    int     `json:"success_items"`
	FailedItems     int     `json:"failed_items"`
	TotalDurationMs float64 `json:"total_duration_ms"`
	MaxConcurrency  int     `json:"max_concurrency"`
}

// RecognitionStats is a point-in-time snapshot.
type RecognitionStats struct {
	TotalRecognitions   int64            `json:"total_recognitions"`
	ContentRecognitions int64            `json:"content_recognitions"`
	NoSignalResults     int64            `json:"no_signal_results"`
	CorrectionsRecorded int64            `json:"corrections_recorded"`
	VocabularyVersion   uint64           `json:"vocabulary_version"`
	AvgLatencyMs        float64          `json:"avg_latency_ms"`
	P50LatencyMs        float64          `json:"p50_latency_ms"`
	P95LatencyMs        float64          `json:"p95_latency_ms"`
	P99LatencyMs        float64          `json:"p99_latency_ms"`
	CandidatesBySource  map[string]int64 `json:"candidates_by_source"`
}

// ---------------------------------------------------------------------------
// Prometheus implementation
// ---------------------------------------------------------------------------

const metricsPrefix = "plasmid_recognition_"

var defaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 50, 250, 1000}

type prometheusRecognitionMetrics struct {
	recognitionLatency *prometheus.HistogramVec
	recognitionTotal   *prometheus.CounterVec
	candidatesTotal    *prometheus.CounterVec
	contentDecodeTotal *prometheus.CounterVec
	correctionsTotal   *prometheus.CounterVec
	vocabularySize     *prometheus.GaugeVec
	vocabularyVersion  prometheus.Gauge
	batchDuration      *prometheus.HistogramVec
	batchItemsTotal    *prometheus.CounterVec

	latencyHist *latencyHistogram
	total       atomic.Int64
	content     atomic.Int64
	noSignal    atomic.Int64
	corrections atomic.Int64
	version     atomic.Uint64
	bySource    sync.Map // source -> *atomic.Int64
}

// NewPrometheusRecognitionMetrics creates a Prometheus-backed collector and
// registers every metric with registerer.
func NewPrometheusRecognitionMetrics(registerer prometheus.Registerer) (*prometheusRecognitionMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &prometheusRecognitionMetrics{latencyHist: newLatencyHistogram()}

	m.recognitionLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    metricsPrefix + "duration_milliseconds",
		Help:    "Histogram of recognition latency in milliseconds.",
		Buckets: defaultLatencyBuckets,
	}, []string{"mode"})

	m.recognitionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "total",
		Help: "Total number of recognition calls.",
	}, []string{"mode", "outcome"})

	m.candidatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "candidates_total",
		Help: "Raw candidates produced by the lexical matcher, by source.",
	}, []string{"source"})

	m.contentDecodeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "content_decode_total",
		Help: "Content decode attempts by detected format.",
	}, []string{"format", "status"})

	m.correctionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "corrections_total",
		Help: "Corrections accepted by the learner.",
	}, []string{"category"})

	m.vocabularySize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: metricsPrefix + "vocabulary_size",
		Help: "Number of vocabulary entries per category.",
	}, []string{"category"})

	m.vocabularyVersion = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: metricsPrefix + "vocabulary_version",
		Help: "Version of the active vocabulary.",
	})

	m.batchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    metricsPrefix + "batch_duration_milliseconds",
		Help:    "Histogram of batch recognition duration in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"batch_name"})

	m.batchItemsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "batch_items_total",
		Help: "Items processed in batch runs.",
	}, []string{"batch_name", "status"})

	collectors := []prometheus.Collector{
		m.recognitionLatency,
		m.recognitionTotal,
		m.candidatesTotal,
		m.contentDecodeTotal,
		m.correctionsTotal,
		m.vocabularySize,
		m.vocabularyVersion,
		m.batchDuration,
		m.batchItemsTotal,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func outcomeOf(p *RecognitionMetricParams) string {
	switch {
	case p.NoSignal:
		return "no_signal"
	case p.Categories == 0:
		return "empty"
	default:
		return "matched"
	}
}

func (m *prometheusRecognitionMetrics) RecordRecognition(_ context.Context, p *RecognitionMetricParams) {
	if p == nil {
		return
	}
	m.recognitionLatency.WithLabelValues(p.Mode).Observe(p.DurationMs)
	m.recognitionTotal.WithLabelValues(p.Mode, outcomeOf(p)).Inc()
	for source, n := range p.Candidates {
		m.candidatesTotal.WithLabelValues(source).Add(float64(n))
		counter, _ := m.bySource.LoadOrStore(source, new(atomic.Int64))
		counter.(*atomic.Int64).Add(int64(n))
	}

	m.latencyHist.Observe(p.DurationMs)
	m.total.Add(1)
	if p.Mode == ModeContent {
		m.content.Add(1)
	}
	if p.NoSignal {
		m.noSignal.Add(1)
	}
}

func (m *prometheusRecognitionMetrics) RecordContentDecode(_ context.Context, format string, success bool) {
	m.contentDecodeTotal.WithLabelValues(format, statusLabel(success)).Inc()
}

func (m *prometheusRecognitionMetrics) RecordCorrection(_ context.Context, category string) {
	m.correctionsTotal.WithLabelValues(category).Inc()
	m.corrections.Add(1)
}

func (m *prometheusRecognitionMetrics) RecordVocabularyReload(_ context.Context, version uint64, sizes map[string]int) {
	m.version.Store(version)
	m.vocabularyVersion.Set(float64(version))
	for category, n := range sizes {
		m.vocabularySize.WithLabelValues(category).Set(float64(n))
	}
}

func (m *prometheusRecognitionMetrics) RecordBatchProcessing(_ context.Context, p *BatchMetricParams) {
	if p == nil {
		return
	}
	m.batchDuration.WithLabelValues(p.BatchName).Observe(p.TotalDurationMs)
	m.batchItemsTotal.WithLabelValues(p.BatchName, "success").Add(float64(p.SuccessItems))
	m.batchItemsTotal.WithLabelValues(p.BatchName, "failed").Add(float64(p.FailedItems))
}

func (m *prometheusRecognitionMetrics) GetLatencyHistogram() LatencyHistogram {
	return m.latencyHist
}

func (m *prometheusRecognitionMetrics) GetCurrentStats() *RecognitionStats {
	bySource := make(map[string]int64)
	m.bySource.Range(func(key, value any) bool {
		bySource[key.(string)] = value.(*atomic.Int64).Load()
		return true
	})
	return buildStats(m.latencyHist, m.total.Load(), m.content.Load(), m.noSignal.Load(),
		m.corrections.Load(), m.version.Load(), bySource)
}

// ---------------------------------------------------------------------------
// Noop implementation
// ---------------------------------------------------------------------------

type noopRecognitionMetrics struct{}

// NewNoopRecognitionMetrics returns a no-op metrics implementation.
func NewNoopRecognitionMetrics() *noopRecognitionMetrics {
	return &noopRecognitionMetrics{}
}

func (n *noopRecognitionMetrics) RecordRecognition(context.Context, *RecognitionMetricParams)    {}
func (n *noopRecognitionMetrics) RecordContentDecode(context.Context, string, bool)              {}
func (n *noopRecognitionMetrics) RecordCorrection(context.Context, string)                       {}
func (n *noopRecognitionMetrics) RecordVocabularyReload(context.Context, uint64, map[string]int) {}
func (n *noopRecognitionMetrics) RecordBatchProcessing(context.Context, *BatchMetricParams)      {}

func (n *noopRecognitionMetrics) GetLatencyHistogram() LatencyHistogram {
	return newLatencyHistogram()
}

func (n *noopRecognitionMetrics) GetCurrentStats() *RecognitionStats {
	return &RecognitionStats{CandidatesBySource: map[string]int64{}}
}

// ---------------------------------------------------------------------------
// In-memory implementation (for testing)
// ---------------------------------------------------------------------------

// InMemoryRecognitionMetrics keeps every recorded event for inspection.
type InMemoryRecognitionMetrics struct {
	mu sync.Mutex

	recognitions []*RecognitionMetricParams
	batches      []*BatchMetricParams
	decodes      map[string]int64
	corrections  map[string]int64
	version      uint64
	sizes        map[string]int
	latencyHist  *latencyHistogram
}

// NewInMemoryRecognitionMetrics returns an in-memory metrics implementation
// suitable for unit tests.
func NewInMemoryRecognitionMetrics() *InMemoryRecognitionMetrics {
	return &InMemoryRecognitionMetrics{
		decodes:     make(map[string]int64),
		corrections: make(map[string]int64),
		sizes:       make(map[string]int),
		latencyHist: newLatencyHistogram(),
	}
}

func (m *InMemoryRecognitionMetrics) RecordRecognition(_ context.Context, p *RecognitionMetricParams) {
	if p == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.recognitions = append(m.recognitions, &cp)
	m.latencyHist.Observe(p.DurationMs)
}

func (m *InMemoryRecognitionMetrics) RecordContentDecode(_ context.Context, format string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decodes[format+"/"+statusLabel(success)]++
}

func (m *InMemoryRecognitionMetrics) RecordCorrection(_ context.Context, category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.corrections[category]++
}

func (m *InMemoryRecognitionMetrics) RecordVocabularyReload(_ context.Context, version uint64, sizes map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version = version
	m.sizes = make(map[string]int, len(sizes))
	for k, v := range sizes {
		m.sizes[k] = v
	}
}

func (m *InMemoryRecognitionMetrics) RecordBatchProcessing(_ context.Context, p *BatchMetricParams) {
	if p == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.batches = append(m.batches, &cp)
}

func (m *InMemoryRecognitionMetrics) GetLatencyHistogram() LatencyHistogram {
	return m.latencyHist
}

func (m *InMemoryRecognitionMetrics) GetCurrentStats() *RecognitionStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var content, noSignal, corrections int64
	bySource := make(map[string]int64)
	for _, r := range m.recognitions {
		if r.Mode == ModeContent {
			content++
		}
		if r.NoSignal {
			noSignal++
		}
		for s, n := range r.Candidates {
			bySource[s] += int64(n)
		}
	}
	for _, n := range m.corrections {
		corrections += n
	}
	return buildStats(m.latencyHist, int64(len(m.recognitions)), content, noSignal, corrections, m.version, bySource)
}

// Recognitions returns a copy of all recorded recognition params.
func (m *InMemoryRecognitionMetrics) Recognitions() []*RecognitionMetricParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*RecognitionMetricParams, len(m.recognitions))
	for i, p := range m.recognitions {
		cp := *p
		out[i] = &cp
	}
	return out
}

// Batches returns a copy of all recorded batch params.
func (m *InMemoryRecognitionMetrics) Batches() []*BatchMetricParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*BatchMetricParams, len(m.batches))
	for i, p := range m.batches {
		cp := *p
		out[i] = &cp
	}
	return out
}

// Decodes returns counts keyed by "format/status".
func (m *InMemoryRecognitionMetrics) Decodes() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.decodes))
	for k, v := range m.decodes {
		out[k] = v
	}
	return out
}

// Corrections returns correction counts keyed by category.
func (m *InMemoryRecognitionMetrics) Corrections() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.corrections))
	for k, v := range m.corrections {
		out[k] = v
	}
	return out
}

// VocabularySizes returns the sizes reported by the last reload.
func (m *InMemoryRecognitionMetrics) VocabularySizes() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.sizes))
	for k, v := range m.sizes {
		out[k] = v
	}
	return out
}

// ---------------------------------------------------------------------------
// latencyHistogram
// ---------------------------------------------------------------------------

type latencyHistogram struct {
	mu      sync.Mutex
	samples []float64
	sum     float64
	sorted  bool
}

func newLatencyHistogram() *latencyHistogram {
	return &latencyHistogram{samples: make([]float64, 0, 1024)}
}

func (h *latencyHistogram) Observe(durationMs float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = append(h.samples, durationMs)
	h.sum += durationMs
	h.sorted = false
}

// Percentile returns the value at percentile p (0–100) using linear
// interpolation between the two nearest ranks (PERCENTILE.INC).
func (h *latencyHistogram) Percentile(p float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.samples)
	if n == 0 {
		return 0
	}
	if !h.sorted {
		sort.Float64s(h.samples)
		h.sorted = true
	}
	if p <= 0 {
		return h.samples[0]
	}
	if p >= 100 {
		return h.samples[n-1]
	}
	rank := (p / 100) * float64(n-1)
	lower := int(math.Floor(rank))
	upper := lower + 1
	if upper >= n {
		return h.samples[n-1]
	}
	frac := rank - float64(lower)
	return h.samples[lower] + frac*(h.samples[upper]-h.samples[lower])
}

func (h *latencyHistogram) Count() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int64(len(h.samples))
}

func (h *latencyHistogram) Sum() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sum
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func buildStats(h *latencyHistogram, total, content, noSignal, corrections int64, version uint64, bySource map[string]int64) *RecognitionStats {
	var avg float64
	if total > 0 {
		avg = h.Sum() / float64(total)
	}
	return &RecognitionStats{
		TotalRecognitions:   total,
		ContentRecognitions: content,
		NoSignalResults:     noSignal,
		CorrectionsRecorded: corrections,
		VocabularyVersion:   version,
		AvgLatencyMs:        avg,
		P50LatencyMs:        h.Percentile(50),
		P95LatencyMs:        h.Percentile(95),
		P99LatencyMs:        h.Percentile(99),
		CandidatesBySource:  bySource,
	}
}

// compile-time interface checks
var (
	_ RecognitionMetrics = (*prometheusRecognitionMetrics)(nil)
	_ RecognitionMetrics = (*noopRecognitionMetrics)(nil)
	_ RecognitionMetrics = (*InMemoryRecognitionMetrics)(nil)
	_ LatencyHistogram   = (*latencyHistogram)(nil)
)
