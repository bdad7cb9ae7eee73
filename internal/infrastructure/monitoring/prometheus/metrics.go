package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds the service-level metrics shared by the API server and
// the worker.  Recognition internals are recorded by the engine's own
// metrics registered on the same collector.
type AppMetrics struct {
	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPRequestSize     HistogramVec
	HTTPActiveRequests  GaugeVec

	// Recognition use cases
	RecognitionRequestsTotal CounterVec
	RecognitionDuration      HistogramVec
	BatchSize                HistogramVec
	CorrectionsTotal         CounterVec
	ContextReloadsTotal      CounterVec
	VocabularyRecords        GaugeVec

	// Storage
	ObjectFetchTotal    CounterVec
	ObjectFetchDuration HistogramVec
	ObjectFetchBytes    HistogramVec
	DBQueryDuration     HistogramVec

	// Messaging
	MessagesProcessedTotal CounterVec
	MessageProcessDuration HistogramVec

	// Health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	DefaultHTTPDurationBuckets        = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultRecognitionDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .05, .1, .5, 1, 5, 10}
	DefaultSizeBuckets                = []float64{1 << 10, 16 << 10, 256 << 10, 1 << 20, 8 << 20, 32 << 20}
	DefaultBatchBuckets               = []float64{1, 10, 50, 100, 250, 500, 1000}
	DefaultDBDurationBuckets          = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPRequestSize = collector.RegisterHistogram("http_request_size_bytes", "HTTP request size", DefaultSizeBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	m.RecognitionRequestsTotal = collector.RegisterCounter("recognition_requests_total", "Recognition requests by entry point and outcome", "entry", "mode", "status")
	m.RecognitionDuration = collector.RegisterHistogram("recognition_request_duration_seconds", "Recognition request duration", DefaultRecognitionDurationBuckets, "entry", "mode")
	m.BatchSize = collector.RegisterHistogram("recognition_batch_size", "Items per batch request", DefaultBatchBuckets, "entry")
	m.CorrectionsTotal = collector.RegisterCounter("corrections_total", "Corrections received", "origin", "result")
	m.ContextReloadsTotal = collector.RegisterCounter("context_reloads_total", "Rules and corpus reloads", "trigger", "status")
	m.VocabularyRecords = collector.RegisterGauge("vocabulary_records", "Records merged into the current vocabulary")

	m.ObjectFetchTotal = collector.RegisterCounter("object_fetch_total", "Object storage reads", "status")
	m.ObjectFetchDuration = collector.RegisterHistogram("object_fetch_duration_seconds", "Object storage read duration", DefaultDBDurationBuckets)
	m.ObjectFetchBytes = collector.RegisterHistogram("object_fetch_bytes", "Object storage read size", DefaultSizeBuckets)
	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "db", "operation")

	m.MessagesProcessedTotal = collector.RegisterCounter("mq_messages_total", "Messages handled", "topic", "status")
	m.MessageProcessDuration = collector.RegisterHistogram("mq_process_duration_seconds", "Message handling duration", DefaultRecognitionDurationBuckets, "topic")

	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime", "service")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_code")

	return m
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration, reqSize int64) {
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	if reqSize > 0 {
		metrics.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	}
}

// RecordRecognition counts one use-case call.  entry is "http", "cli" or
// "worker".
func RecordRecognition(metrics *AppMetrics, entry, mode string, duration time.Duration, err error) {
	metrics.RecognitionRequestsTotal.WithLabelValues(entry, mode, statusLabel(err)).Inc()
	metrics.RecognitionDuration.WithLabelValues(entry, mode).Observe(duration.Seconds())
}

func RecordBatch(metrics *AppMetrics, entry string, items int) {
	metrics.BatchSize.WithLabelValues(entry).Observe(float64(items))
}

// RecordCorrection counts a correction by where it came from ("local" or
// "event") and whether the learner applied it.
func RecordCorrection(metrics *AppMetrics, origin string, applied bool) {
	result := "applied"
	if !applied {
		result = "ignored"
	}
	metrics.CorrectionsTotal.WithLabelValues(origin, result).Inc()
}

func RecordReload(metrics *AppMetrics, trigger string, records int, err error) {
	metrics.ContextReloadsTotal.WithLabelValues(trigger, statusLabel(err)).Inc()
	if err == nil {
		metrics.VocabularyRecords.WithLabelValues().Set(float64(records))
	}
}

func RecordObjectFetch(metrics *AppMetrics, duration time.Duration, size int, err error) {
	metrics.ObjectFetchTotal.WithLabelValues(statusLabel(err)).Inc()
	metrics.ObjectFetchDuration.WithLabelValues().Observe(duration.Seconds())
	if err == nil {
		metrics.ObjectFetchBytes.WithLabelValues().Observe(float64(size))
	}
}

func RecordDBQuery(metrics *AppMetrics, db, operation string, duration time.Duration, err error) {
	metrics.DBQueryDuration.WithLabelValues(db, operation).Observe(duration.Seconds())
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(db, "query_error").Inc()
	}
}

func RecordMessage(metrics *AppMetrics, topic string, duration time.Duration, err error) {
	metrics.MessagesProcessedTotal.WithLabelValues(topic, statusLabel(err)).Inc()
	metrics.MessageProcessDuration.WithLabelValues(topic).Observe(duration.Seconds())
}

func RecordHealth(metrics *AppMetrics, component string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	metrics.HealthCheckStatus.WithLabelValues(component).Set(v)
}

func RecordError(metrics *AppMetrics, component, code string) {
	metrics.ErrorsTotal.WithLabelValues(component, code).Inc()
}

//Personal.AI order the ending
