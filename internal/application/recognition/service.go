// Package recognition is the application layer around the recognition
// engine.  It loads the rules document and record corpus, persists and
// broadcasts corrections, fetches file content from object storage and fans
// batch requests out over a bounded worker group.
package recognition

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/PlasmidCatalog/internal/config"
	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/internal/intelligence/common"
	recog "github.com/turtacn/PlasmidCatalog/internal/intelligence/recognition"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// Service is the recognition use-case surface shared by the HTTP API, the
// CLI and the worker.
type Service interface {
	// Start replays persisted corrections and performs the first Reload.
	Start(ctx context.Context) error
	Reload(ctx context.Context) (*ptypes.VocabularyStats, error)

	Recognize(ctx context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error)
	RecognizeContent(ctx context.Context, req *ptypes.RecognizeContentRequest) (*ptypes.RecognitionResponse, error)
	RecognizeObject(ctx context.Context, key string) (*ptypes.RecognitionResponse, error)
	RecognizeBatch(ctx context.Context, req *ptypes.BatchRecognizeRequest) (*ptypes.BatchRecognitionResponse, error)

	RecordCorrection(ctx context.Context, req *ptypes.CorrectionRequest) (*CorrectionResult, error)
	// ApplyCorrectionEvent replays a correction published by another
	// instance.  Events from this instance are ignored.
	ApplyCorrectionEvent(ctx context.Context, ev *domain.CorrectionRecordedEvent) bool
	Corrections(ctx context.Context) ([]ptypes.Correction, error)

	VocabularyStats(ctx context.Context) ptypes.VocabularyStats
}

// CorrectionResult reports what RecordCorrection did.  Applied is false for a
// no-op edit.
type CorrectionResult struct {
	Correction ptypes.Correction `json:"correction"`
	Applied    bool              `json:"applied"`
	Persisted  bool              `json:"persisted"`
	Published  bool              `json:"published"`
}

// Config holds the service limits.
type Config struct {
	BatchConcurrency int
	MaxBatchSize     int
	ContentTimeout   time.Duration
	MaxContentBytes  int64
}

// ConfigFrom copies the relevant settings from the recognition section.
func ConfigFrom(rc config.RecognitionConfig) Config {
	return Config{
		BatchConcurrency: rc.BatchConcurrency,
		MaxBatchSize:     rc.MaxBatchSize,
		ContentTimeout:   rc.ContentTimeout,
		MaxContentBytes:  rc.MaxContentBytes,
	}
}

func (c Config) withDefaults() Config {
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = 8
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = 1000
	}
	if c.ContentTimeout <= 0 {
		c.ContentTimeout = 10 * time.Second
	}
	if c.MaxContentBytes <= 0 {
		c.MaxContentBytes = 32 << 20
	}
	return c
}

// Deps holds the collaborators.  Only Engine is required; Corrections
// defaults to an in-memory store.
type Deps struct {
	Engine      *recog.Engine
	Records     domain.RecordRepository
	Rules       domain.RulesSource
	Corrections domain.CorrectionStore
	Fetcher     domain.ContentFetcher
	Publisher   domain.EventPublisher
	Metrics     common.RecognitionMetrics
	Logger      logging.Logger
	Config      Config
	// InstanceID tags published events.
	InstanceID string
	Clock      func() time.Time
}

type serviceImpl struct {
	engine      *recog.Engine
	records     domain.RecordRepository
	rules       domain.RulesSource
	corrections domain.CorrectionStore
	fetcher     domain.ContentFetcher
	publisher   domain.EventPublisher
	metrics     common.RecognitionMetrics
	logger      logging.Logger
	cfg         Config
	instanceID  string
	now         func() time.Time
}

// NewService creates a recognition Service.
func NewService(deps Deps) (Service, error) {
	if deps.Engine == nil {
		return nil, errors.InvalidParam("recognition engine is required")
	}
	s := &serviceImpl{
		engine:      deps.Engine,
		records:     deps.Records,
		rules:       deps.Rules,
		corrections: deps.Corrections,
		fetcher:     deps.Fetcher,
		publisher:   deps.Publisher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		cfg:         deps.Config.withDefaults(),
		instanceID:  deps.InstanceID,
		now:         deps.Clock,
	}
	if s.corrections == nil {
		s.corrections = domain.NewMemoryCorrectionStore()
	}
	if s.metrics == nil {
		s.metrics = common.NewNoopRecognitionMetrics()
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Context
// ---------------------------------------------------------------------------

func (s *serviceImpl) Start(ctx context.Context) error {
	cs, err := s.corrections.List(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCorrectionStore, "load corrections")
	}
	n := s.engine.ReplayCorrections(cs)
	s.logger.Info("corrections replayed", logging.Int("stored", len(cs)), logging.Int("accepted", n))

	_, err = s.Reload(ctx)
	return err
}

// Reload reads the rules document and the corpus and swaps them into the
// engine.  On a source error the engine keeps its current vocabulary.
func (s *serviceImpl) Reload(ctx context.Context) (*ptypes.VocabularyStats, error) {
	start := time.Now()
	var rules []byte
	if s.rules != nil {
		data, err := s.rules.LoadRules(ctx)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeRulesDocumentUnavailable, "load rules document")
		}
		rules = data
	}
	var records []ptypes.Record
	if s.records != nil {
		recs, err := s.records.List(ctx)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCorpusUnavailable, "load record corpus")
		}
		records = recs
	}

	s.engine.SetContext(recog.Context{RulesDocument: rules, Records: records})
	stats := s.engine.Stats()
	logging.LogOperationDuration(s.logger, "reload", start,
		logging.Uint64("version", stats.Version),
		logging.Int("records", stats.Records))
	return &stats, nil
}

// ---------------------------------------------------------------------------
// Recognition
// ---------------------------------------------------------------------------

func (s *serviceImpl) Recognize(ctx context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error) {
	if req == nil || strings.TrimSpace(req.Filename) == "" {
		return nil, errors.InvalidParam("filename is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRecognitionCanceled, "recognition canceled")
	}
	res := s.engine.Recognize(req.Filename, req.Path)
	return toResponse(req.Filename, ptypes.ModeName, res), nil
}

// RecognizeContent recognises a file from its bytes.  Content is read from
// object storage when only ObjectKey is set.  A decode timeout or a file
// without usable signal falls back to a name-only recognition and sets
// FellBack.
func (s *serviceImpl) RecognizeContent(ctx context.Context, req *ptypes.RecognizeContentRequest) (*ptypes.RecognitionResponse, error) {
	if req == nil {
		return nil, errors.InvalidParam("request is required")
	}
	filename, dir := strings.TrimSpace(req.Filename), strings.TrimSpace(req.Path)
	if filename == "" && req.ObjectKey != "" {
		filename = path.Base(req.ObjectKey)
		if dir == "" {
			if d := path.Dir(req.ObjectKey); d != "." {
				dir = d
			}
		}
	}
	if filename == "" {
		return nil, errors.InvalidParam("filename or object_key is required")
	}

	content := req.Content
	if len(content) == 0 && req.ObjectKey != "" {
		if s.fetcher == nil {
			return nil, errors.Unavailable("object storage is not configured")
		}
		data, err := s.fetcher.Fetch(ctx, req.ObjectKey, s.cfg.MaxContentBytes)
		if err != nil {
			return nil, err
		}
		content = data
	}
	if int64(len(content)) > s.cfg.MaxContentBytes {
		return nil, errors.Newf(errors.ErrCodeContentTooLarge, "content exceeds %d bytes", s.cfg.MaxContentBytes)
	}

	if len(content) > 0 {
		cctx, cancel := context.WithTimeout(ctx, s.cfg.ContentTimeout)
		res, err := s.engine.RecognizeFromContent(cctx, content, joinPath(dir, filename))
		cancel()
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, errors.Wrap(ctx.Err(), errors.ErrCodeRecognitionCanceled, "recognition canceled")
		case err != nil:
			s.logger.Warn("content recognition timed out, using filename",
				logging.Filename(filename), logging.Duration("timeout", s.cfg.ContentTimeout))
		case res != nil:
			return toResponse(filename, ptypes.ModeContent, res), nil
		}
	}

	res := s.engine.Recognize(filename, dir)
	resp := toResponse(filename, ptypes.ModeName, res)
	resp.FellBack = true
	return resp, nil
}

func (s *serviceImpl) RecognizeObject(ctx context.Context, key string) (*ptypes.RecognitionResponse, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return nil, errors.InvalidParam("object key is required")
	}
	return s.RecognizeContent(ctx, &ptypes.RecognizeContentRequest{ObjectKey: key})
}

// RecognizeBatch recognises every item with at most BatchConcurrency calls in
// flight.  Item failures are reported per index and do not stop the batch.
func (s *serviceImpl) RecognizeBatch(ctx context.Context, req *ptypes.BatchRecognizeRequest) (*ptypes.BatchRecognitionResponse, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, errors.InvalidParam("items are required")
	}
	if len(req.Items) > s.cfg.MaxBatchSize {
		return nil, errors.Newf(errors.ErrCodeBatchTooLarge, "batch of %d exceeds limit %d", len(req.Items), s.cfg.MaxBatchSize)
	}

	start := time.Now()
	results := make([]*ptypes.RecognitionResponse, len(req.Items))
	var (
		mu       sync.Mutex
		itemErrs []ptypes.BatchItemError
	)

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.BatchConcurrency)
	for i := range req.Items {
		i, item := i, req.Items[i]
		g.Go(func() error {
			res, err := s.Recognize(ctx, &item)
			if err != nil {
				mu.Lock()
				itemErrs = append(itemErrs, ptypes.BatchItemError{
					Index:    i,
					Filename: item.Filename,
					Code:     string(errors.GetCode(err)),
					Message:  err.Error(),
				})
				mu.Unlock()
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRecognitionCanceled, "batch canceled")
	}
	sortItemErrors(itemErrs)
	s.metrics.RecordBatchProcessing(ctx, &common.BatchMetricParams{
		BatchName:       "recognize",
		TotalItems:      len(req.Items),
		SuccessItems:    len(req.Items) - len(itemErrs),
		FailedItems:     len(itemErrs),
		TotalDurationMs: float64(time.Since(start).Microseconds()) / 1000,
		MaxConcurrency:  s.cfg.BatchConcurrency,
	})
	return &ptypes.BatchRecognitionResponse{Results: results, Errors: itemErrs}, nil
}

// ---------------------------------------------------------------------------
// Corrections
// ---------------------------------------------------------------------------

// RecordCorrection applies the edit to the engine, then persists and
// publishes it.  A store failure is returned after the engine has already
// accepted the edit.
func (s *serviceImpl) RecordCorrection(ctx context.Context, req *ptypes.CorrectionRequest) (*CorrectionResult, error) {
	if req == nil {
		return nil, errors.New(errors.ErrCodeCorrectionInvalid, "correction is required")
	}
	c := req.ToCorrection(s.now().UTC())
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorrectionInvalid, "invalid correction")
	}
	cat, ok := recog.ParseCategory(c.Category)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeCategoryUnknown, "unknown category %q", c.Category)
	}
	c.Category = string(cat)
	c.Filename = baseName(c.Filename)

	out := &CorrectionResult{Correction: c}
	if !s.engine.ApplyCorrection(c) {
		return out, nil
	}
	out.Applied = true

	if err := s.corrections.Save(ctx, c); err != nil {
		s.logger.Error("correction not persisted", logging.Filename(c.Filename), logging.Category(c.Category), logging.Err(err))
		return out, errors.Wrap(err, errors.ErrCodeCorrectionStore, "persist correction")
	}
	out.Persisted = true

	if s.publisher != nil {
		if err := s.publisher.PublishCorrection(ctx, domain.NewCorrectionRecordedEvent(c, s.instanceID)); err != nil {
			s.logger.Warn("correction event not published", logging.Filename(c.Filename), logging.Err(err))
		} else {
			out.Published = true
		}
	}
	return out, nil
}

func (s *serviceImpl) ApplyCorrectionEvent(ctx context.Context, ev *domain.CorrectionRecordedEvent) bool {
	if ev == nil || (s.instanceID != "" && ev.Origin == s.instanceID) {
		return false
	}
	return s.engine.ApplyCorrection(ev.Correction)
}

func (s *serviceImpl) Corrections(ctx context.Context) ([]ptypes.Correction, error) {
	cs, err := s.corrections.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorrectionStore, "list corrections")
	}
	return cs, nil
}

func (s *serviceImpl) VocabularyStats(ctx context.Context) ptypes.VocabularyStats {
	return s.engine.Stats()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimRight(dir, `/\`) + "/" + name
}

func baseName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

func sortItemErrors(es []ptypes.BatchItemError) {
	sort.Slice(es, func(i, j int) bool { return es[i].Index < es[j].Index })
}

//Personal.AI order the ending
