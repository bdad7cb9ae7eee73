package bootstrap

import (
	"context"
	"time"

	recognition "github.com/turtacn/PlasmidCatalog/internal/application/recognition"
	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// instrumentedService records use-case metrics around a Service.
type instrumentedService struct {
	recognition.Service
	entry   string
	trigger string
	metrics *prometheus.AppMetrics
}

func (s *instrumentedService) withTrigger(trigger string) *instrumentedService {
	cp := *s
	cp.trigger = trigger
	return &cp
}

func (s *instrumentedService) observe(mode string, start time.Time, err error) {
	prometheus.RecordRecognition(s.metrics, s.entry, mode, time.Since(start), err)
	if err != nil {
		prometheus.RecordError(s.metrics, "recognition", string(errors.GetCode(err)))
	}
}

func (s *instrumentedService) Reload(ctx context.Context) (*ptypes.VocabularyStats, error) {
	stats, err := s.Service.Reload(ctx)
	trigger := s.trigger
	if trigger == "" {
		trigger = "manual"
	}
	records := 0
	if stats != nil {
		records = stats.Records
	}
	prometheus.RecordReload(s.metrics, trigger, records, err)
	return stats, err
}

func (s *instrumentedService) Recognize(ctx context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error) {
	start := time.Now()
	resp, err := s.Service.Recognize(ctx, req)
	s.observe(ptypes.ModeName, start, err)
	return resp, err
}

func (s *instrumentedService) RecognizeContent(ctx context.Context, req *ptypes.RecognizeContentRequest) (*ptypes.RecognitionResponse, error) {
	start := time.Now()
	resp, err := s.Service.RecognizeContent(ctx, req)
	s.observe(ptypes.ModeContent, start, err)
	return resp, err
}

func (s *instrumentedService) RecognizeObject(ctx context.Context, key string) (*ptypes.RecognitionResponse, error) {
	start := time.Now()
	resp, err := s.Service.RecognizeObject(ctx, key)
	s.observe(ptypes.ModeContent, start, err)
	return resp, err
}

func (s *instrumentedService) RecognizeBatch(ctx context.Context, req *ptypes.BatchRecognizeRequest) (*ptypes.BatchRecognitionResponse, error) {
	start := time.Now()
	resp, err := s.Service.RecognizeBatch(ctx, req)
	if req != nil {
		prometheus.RecordBatch(s.metrics, s.entry, len(req.Items))
	}
	s.observe("batch", start, err)
	return resp, err
}

func (s *instrumentedService) RecordCorrection(ctx context.Context, req *ptypes.CorrectionRequest) (*recognition.CorrectionResult, error) {
	res, err := s.Service.RecordCorrection(ctx, req)
	if err != nil {
		prometheus.RecordError(s.metrics, "corrections", string(errors.GetCode(err)))
		return res, err
	}
	prometheus.RecordCorrection(s.metrics, "local", res.Applied)
	return res, nil
}

func (s *instrumentedService) ApplyCorrectionEvent(ctx context.Context, ev *domain.CorrectionRecordedEvent) bool {
	applied := s.Service.ApplyCorrectionEvent(ctx, ev)
	prometheus.RecordCorrection(s.metrics, "event", applied)
	return applied
}

// instrumentedFetcher times object storage reads.
type instrumentedFetcher struct {
	next    domain.ContentFetcher
	metrics *prometheus.AppMetrics
}

func (f *instrumentedFetcher) Fetch(ctx context.Context, key string, maxBytes int64) ([]byte, error) {
	start := time.Now()
	data, err := f.next.Fetch(ctx, key, maxBytes)
	prometheus.RecordObjectFetch(f.metrics, time.Since(start), len(data), err)
	return data, err
}

// instrumentedRecords times corpus reads, which happen on every reload.
type instrumentedRecords struct {
	domain.RecordRepository
	backend string
	metrics *prometheus.AppMetrics
}

func (r *instrumentedRecords) List(ctx context.Context) ([]ptypes.Record, error) {
	start := time.Now()
	recs, err := r.RecordRepository.List(ctx)
	prometheus.RecordDBQuery(r.metrics, r.backend, "list_records", time.Since(start), err)
	return recs, err
}

func (r *instrumentedRecords) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := r.RecordRepository.Count(ctx)
	prometheus.RecordDBQuery(r.metrics, r.backend, "count_records", time.Since(start), err)
	return n, err
}

// instrumentHandler wraps a message handler with per-topic metrics.
func instrumentHandler(metrics *prometheus.AppMetrics, topic string, next kafka.MessageHandler) kafka.MessageHandler {
	if metrics == nil {
		return next
	}
	return func(ctx context.Context, msg *kafka.Message) error {
		start := time.Now()
		err := next(ctx, msg)
		prometheus.RecordMessage(metrics, topic, time.Since(start), err)
		return err
	}
}

//Personal.AI order the ending
