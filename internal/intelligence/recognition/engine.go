package recognition

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/internal/intelligence/common"
	"github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

// Context is the input of SetContext.  A nil or malformed RulesDocument
// yields the curated vocabulary; a nil Config keeps the current one.
type Context struct {
	RulesDocument []byte
	Records       []plasmid.Record
	Config        *EngineConfig
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m common.RecognitionMetrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithNounExtractor enables the noun pass.
func WithNounExtractor(n NounExtractor) Option {
	return func(e *Engine) {
		if n != nil {
			e.nouns = n
		}
	}
}

// WithClock overrides time.Now, used to stamp corrections and reloads.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

type engineState struct {
	vocab    *Vocabulary
	cfg      EngineConfig
	loadedAt time.Time
}

// Engine recognises plasmid metadata from filenames, folder paths and file
// content.  Recognition calls read an immutable vocabulary snapshot and may
// run concurrently with each other and with SetContext, MergeCorpus and
// corrections.
type Engine struct {
	state    atomic.Pointer[engineState]
	reloadMu sync.Mutex
	learner  *Learner
	nouns    NounExtractor
	logger   logging.Logger
	metrics  common.RecognitionMetrics
	now      func() time.Time
}

// NewEngine returns an engine over the curated vocabulary.  It is usable
// before any SetContext call.
func NewEngine(cfg EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		nouns:   NopNounExtractor{},
		logger:  logging.NewNopLogger(),
		metrics: common.NewNoopRecognitionMetrics(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.learner = NewLearner(e.now)
	e.state.Store(&engineState{vocab: LoadRules(nil), cfg: cfg.sanitized(), loadedAt: e.now()})
	return e
}

// SetContext rebuilds the vocabulary from a rules document and corpus
// snapshot and swaps it in.  Corrections are kept.  It returns the new
// vocabulary version.
func (e *Engine) SetContext(c Context) uint64 {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	prev := e.state.Load()
	cfg := prev.cfg
	if c.Config != nil {
		cfg = c.Config.sanitized()
	}

	vocab := e.LoadRulesDocument(c.RulesDocument)
	if len(c.Records) > 0 {
		vocab = vocab.MergeCorpus(c.Records)
	}
	vocab = vocab.withVersion(prev.vocab.Version() + 1)
	e.swap(&engineState{vocab: vocab, cfg: cfg, loadedAt: e.now()})
	return vocab.Version()
}

// LoadRulesDocument parses data into a vocabulary.  Missing or malformed
// documents are logged and yield the curated vocabulary.
func (e *Engine) LoadRulesDocument(data []byte) *Vocabulary {
	if len(strings.TrimSpace(string(data))) == 0 {
		return LoadRules(nil)
	}
	doc, err := ParseRulesDocument(data)
	if err != nil {
		e.logger.Warn("rules document rejected, using curated vocabulary", logging.Err(err))
		return LoadRules(nil)
	}
	return LoadRules(doc)
}

// MergeCorpus extends the live vocabulary with values observed in records.
func (e *Engine) MergeCorpus(records []plasmid.Record) uint64 {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	prev := e.state.Load()
	vocab := prev.vocab.MergeCorpus(records)
	e.swap(&engineState{vocab: vocab, cfg: prev.cfg, loadedAt: e.now()})
	return vocab.Version()
}

func (e *Engine) swap(s *engineState) {
	e.state.Store(s)
	sizes := make(map[string]int, len(orderedCategories))
	for c, n := range s.vocab.Sizes() {
		sizes[string(c)] = n
	}
	e.metrics.RecordVocabularyReload(context.Background(), s.vocab.Version(), sizes)
	e.logger.Info("vocabulary loaded",
		logging.Uint64("version", s.vocab.Version()),
		logging.Int("records", s.vocab.Records()),
		logging.Int("backbones", s.vocab.ProfileCount()))
}

// Vocabulary returns the current snapshot.
func (e *Engine) Vocabulary() *Vocabulary { return e.state.Load().vocab }

// Config returns the active configuration.
func (e *Engine) Config() EngineConfig { return e.state.Load().cfg }

// ---------------------------------------------------------------------------
// Recognition
// ---------------------------------------------------------------------------

// Recognize classifies a file by name and folder path.  fullPath may be
// empty; a filename that itself contains separators is split into path and
// base name.  The result is deterministic for a given vocabulary and
// correction table.
func (e *Engine) Recognize(filename, fullPath string) *Result {
	start := time.Now()
	st := e.state.Load()

	filename, fullPath = splitInput(filename, fullPath)
	res := newResult(st.vocab.Version())
	if filename == "" {
		res.Description = Describe(res)
		return res
	}

	cands := newMatcher(st.vocab, e.nouns).matchName(filename, fullPath)
	out := e.finish(st, res, cands, filename)
	e.record(common.ModeName, start, res, &out)
	return res
}

// RecognizeFromContent decodes content, scans its annotations and sequence,
// and merges the findings with a name-only pass over filename.  It returns
// (nil, nil) when content carries no usable signal; callers should fall back
// to Recognize.  Only a cancelled ctx produces an error.
func (e *Engine) RecognizeFromContent(ctx context.Context, content []byte, filename string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	st := e.state.Load()
	name, fullPath := splitInput(filename, "")

	// 1. Decode.
	doc, err := DecodeContentContext(ctx, content, st.cfg.MaxContentBytes, st.cfg.MaxAnnotations)
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		format := string(FormatUnknown)
		if doc != nil {
			format = string(doc.Format)
		}
		e.metrics.RecordContentDecode(ctx, format, false)
		e.logger.Warn("content not decodable", logging.Filename(name), logging.String("format", format), logging.Err(err))
		e.record(common.ModeContent, start, nil, nil)
		return nil, nil
	}
	e.metrics.RecordContentDecode(ctx, string(doc.Format), true)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Content pass.
	found := contentCandidates(doc, st.vocab, st.cfg.MaxAnnotations)
	if len(found) == 0 {
		e.logger.Debug("content carried no signal", logging.Filename(name), logging.String("format", string(doc.Format)))
		e.record(common.ModeContent, start, nil, nil)
		return nil, nil
	}
	for i := range found {
		if MergePolicyFor(found[i].Category) == MergeAuthoritative {
			found[i].Score = ScoreDictionary
			found[i].Confirmed = true
		}
	}

	// 3. Merge with a fresh name pass.
	cands := found
	if name != "" {
		cands = append(newMatcher(st.vocab, e.nouns).matchName(name, fullPath), cands...)
	}
	res := newResult(st.vocab.Version())
	res.Evaluated = make(map[Category]bool, len(contentCategories))
	for _, c := range contentCategories {
		res.Evaluated[c] = true
	}
	out := e.finish(st, res, cands, name)
	e.record(common.ModeContent, start, res, &out)
	return res, nil
}

// finish disambiguates, applies corrections and describes the result.
func (e *Engine) finish(st *engineState, res *Result, cands []Candidate, filename string) resolution {
	d := &disambiguator{vocab: st.vocab, learner: e.learner, filename: filename, minScore: st.cfg.MinMatchScore}
	out := d.resolve(cands)
	for c, vals := range out.fields {
		res.Fields[c] = vals
	}
	if filename != "" {
		e.learner.Apply(res, filename)
	}
	res.Description = Describe(res)
	return out
}

// record reports one call; a nil res means the content carried no signal.
func (e *Engine) record(mode string, start time.Time, res *Result, out *resolution) {
	p := &common.RecognitionMetricParams{
		Mode:       mode,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000,
		NoSignal:   res == nil,
	}
	if res != nil {
		for _, vals := range res.Fields {
			if len(vals) > 0 {
				p.Categories++
			}
		}
		p.Corrected = len(res.Corrected) > 0
	}
	if out != nil {
		p.Candidates = sourceCounts(out.kept)
	}
	e.metrics.RecordRecognition(context.Background(), p)
}

// splitInput normalises the filename and, when no path is given but the
// filename carries separators, uses it as the path.
func splitInput(filename, fullPath string) (string, string) {
	filename = normalizeText(filename)
	if fullPath == "" && strings.ContainsAny(filename, `/\`) {
		fullPath = filename
		if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
			filename = filename[i+1:]
		}
	}
	return strings.TrimSpace(filename), fullPath
}

// contentCandidates runs the dictionary and heuristic scans over every
// annotation line, restricted to the content categories, and adds the
// sequence markers.  Spans are discarded: they do not refer to the filename.
func contentCandidates(doc *ContentDocument, vocab *Vocabulary, limit int) []Candidate {
	only := make(map[Category]bool, len(contentCategories))
	for _, c := range orderedCategories {
		if isContentCategory(c) && c != CategorySpecies {
			only[c] = true
		}
	}

	lines := doc.Annotations
	if doc.Name != "" {
		lines = append([]string{doc.Name}, lines...)
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}

	var out []Candidate
	seen := make(map[string]int)
	add := func(c Candidate) {
		c.Start, c.End = -1, -1
		key := string(c.Category) + "\x00" + strings.ToLower(c.Value)
		if i, ok := seen[key]; ok {
			if c.Confirmed && !out[i].Confirmed {
				out[i] = c
			}
			return
		}
		seen[key] = len(out)
		out = append(out, c)
	}

	for _, raw := range lines {
		line := normalizeText(raw)
		if line == "" {
			continue
		}
		found := scanVocabulary(vocab, line, SourceContent, ScoreContent, delimiterBounded, only)
		found = append(found, scanHeuristics(line, SourceContent, ScoreContent, only)...)
		for _, c := range dropNested(found) {
			add(c)
		}
	}

	for _, org := range doc.Organisms {
		org = normalizeText(org)
		for _, rule := range speciesRules {
			if len(findBounded(rule.re, org)) > 0 {
				add(newCandidate(CategorySpecies, rule.value, SourceContent, ScoreContent, false))
			}
		}
	}

	for _, name := range detectSignatures(doc.Sequence) {
		sig, ok := signatureByName(name)
		if !ok {
			continue
		}
		for _, h := range sig.hits {
			add(newCandidate(h.category, h.value, SourceContent, ScoreContent, true))
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Corrections
// ---------------------------------------------------------------------------

// RecordCorrection stores a human edit of one category for filename.  It
// reports false when the edit is a no-op or the category is unknown.
func (e *Engine) RecordCorrection(filename, category, oldSignature, newSignature string) bool {
	return e.ApplyCorrection(plasmid.Correction{
		Filename:     filename,
		Category:     category,
		OldSignature: oldSignature,
		NewSignature: newSignature,
	})
}

// ApplyCorrection is RecordCorrection for a prepared record.
func (e *Engine) ApplyCorrection(c plasmid.Correction) bool {
	name, _ := splitInput(c.Filename, "")
	c.Filename = name
	cat, ok := e.learner.Record(c)
	if !ok {
		e.logger.Debug("correction ignored", logging.Filename(name), logging.Category(c.Category))
		return false
	}
	e.metrics.RecordCorrection(context.Background(), string(cat))
	e.logger.Info("correction recorded", logging.Filename(name), logging.Category(string(cat)))
	return true
}

// ReplayCorrections loads previously persisted corrections and returns how
// many were accepted.
func (e *Engine) ReplayCorrections(cs []plasmid.Correction) int {
	n := 0
	for _, c := range cs {
		name, _ := splitInput(c.Filename, "")
		c.Filename = name
		if _, ok := e.learner.Record(c); ok {
			n++
		}
	}
	return n
}

// Corrections returns the stored corrections.
func (e *Engine) Corrections() []plasmid.Correction { return e.learner.Corrections() }

// Stats summarises the live vocabulary and correction table.
func (e *Engine) Stats() plasmid.VocabularyStats {
	st := e.state.Load()
	sizes := make(map[string]int, len(orderedCategories))
	for c, n := range st.vocab.Sizes() {
		sizes[string(c)] = n
	}
	return plasmid.VocabularyStats{
		Version:     st.vocab.Version(),
		Sizes:       sizes,
		Backbones:   st.vocab.ProfileCount(),
		Corrections: e.learner.Len(),
		Records:     st.vocab.Records(),
		LoadedAt:    st.loadedAt,
	}
}

//Personal.AI order the ending
