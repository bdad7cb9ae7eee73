package recognition

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/intelligence/common"
	recog "github.com/turtacn/PlasmidCatalog/internal/intelligence/recognition"
	"github.com/turtacn/PlasmidCatalog/internal/testutil"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

const egfpMotif = "CTGACCCTGAAGTTCATCTGCACCACC"

// failingStore rejects every write.
type failingStore struct {
	domain.CorrectionStore
}

func (failingStore) Save(context.Context, ptypes.Correction) error {
	return stderrors.New("connection refused")
}

func newTestService(t *testing.T, mutate func(*Deps)) (Service, *Deps) {
	t.Helper()
	deps := &Deps{
		Engine:     recog.NewEngine(recog.DefaultEngineConfig()),
		Metrics:    common.NewInMemoryRecognitionMetrics(),
		InstanceID: "node-a",
	}
	if mutate != nil {
		mutate(deps)
	}
	svc, err := NewService(*deps)
	require.NoError(t, err)
	return svc, deps
}

func fasta(name string) []byte {
	pad := strings.Repeat("ACGT", 10)
	return []byte(">" + name + "\n" + pad + egfpMotif + pad + "\n")
}

func TestNewService_RequiresEngine(t *testing.T) {
	_, err := NewService(Deps{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestService_Recognize(t *testing.T) {
	svc, _ := newTestService(t, nil)

	resp, err := svc.Recognize(context.Background(), &ptypes.RecognizeRequest{Filename: "pcDNA3.1-EGFP-CMV-Puro.fasta"})
	require.NoError(t, err)
	assert.Equal(t, ptypes.ModeName, resp.Mode)
	assert.Equal(t, []string{"pcDNA3.1"}, resp.Fields["vector"])
	assert.Contains(t, resp.Fields["fluorophore"], "EGFP")
	assert.Contains(t, resp.Fields["mammal_resistance"], "Puro")
	assert.Len(t, resp.Fields, len(recog.Categories()))
	assert.NotEmpty(t, resp.Description)
	assert.False(t, resp.FellBack)

	_, err = svc.Recognize(context.Background(), &ptypes.RecognizeRequest{Filename: "  "})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Recognize(ctx, &ptypes.RecognizeRequest{Filename: "a.dna"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeRecognitionCanceled))
}

func TestService_RecognizeContent(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.RecognizeContent(ctx, &ptypes.RecognizeContentRequest{
		Filename: "clone-12.fa",
		Content:  fasta("clone-12"),
	})
	require.NoError(t, err)
	assert.Equal(t, ptypes.ModeContent, resp.Mode)
	assert.False(t, resp.FellBack)
	assert.Contains(t, resp.Fields["fluorophore"], "EGFP")
	assert.True(t, resp.Evaluated["fluorophore"])
}

func TestService_RecognizeContent_FallsBack(t *testing.T) {
	svc, _ := newTestService(t, nil)

	tests := []struct {
		name    string
		content []byte
	}{
		{"prose", []byte("Dear colleague, please find the plasmid attached.")},
		{"binary noise", []byte{0x00, 0xff, 0x13, 0x37}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.RecognizeContent(context.Background(), &ptypes.RecognizeContentRequest{
				Filename: "pLKO.1-puro-shKRAS.dna",
				Content:  tt.content,
			})
			require.NoError(t, err)
			assert.True(t, resp.FellBack)
			assert.Equal(t, ptypes.ModeName, resp.Mode)
			assert.Equal(t, []string{"pLKO.1-puro"}, resp.Fields["vector"])
		})
	}
}

func TestService_RecognizeContent_TimeoutFallsBack(t *testing.T) {
	svc, _ := newTestService(t, func(d *Deps) { d.Config.ContentTimeout = time.Nanosecond })

	var b strings.Builder
	b.WriteString(">clone-12\n")
	for i := 0; i < 4096; i++ {
		b.WriteString(strings.Repeat("ACGT", 16) + "\n")
	}
	resp, err := svc.RecognizeContent(context.Background(), &ptypes.RecognizeContentRequest{
		Filename: "pLKO.1-puro-shKRAS.dna",
		Content:  []byte(b.String()),
	})
	require.NoError(t, err)
	assert.True(t, resp.FellBack, "an expired decode falls back to the filename")
	assert.Equal(t, ptypes.ModeName, resp.Mode)
	assert.Equal(t, []string{"pLKO.1-puro"}, resp.Fields["vector"])
}

func TestService_RecognizeContent_Validation(t *testing.T) {
	svc, _ := newTestService(t, func(d *Deps) { d.Config.MaxContentBytes = 16 })
	ctx := context.Background()

	_, err := svc.RecognizeContent(ctx, &ptypes.RecognizeContentRequest{Content: []byte("ACGT")})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, err = svc.RecognizeContent(ctx, &ptypes.RecognizeContentRequest{Filename: "a.fa", Content: fasta("a")})
	assert.True(t, errors.IsCode(err, errors.ErrCodeContentTooLarge))

	_, err = svc.RecognizeContent(ctx, nil)
	assert.Error(t, err)
}

func TestService_RecognizeObject(t *testing.T) {
	fetcher := new(testutil.MockFetcher)
	svc, deps := newTestService(t, func(d *Deps) { d.Fetcher = fetcher })
	ctx := context.Background()

	fetcher.On("Fetch", mock.Anything, "incoming/pcDNA3.1-mCherry.fa", deps.Config.withDefaults().MaxContentBytes).
		Return(fasta("pcDNA3.1-mCherry"), nil).Once()

	resp, err := svc.RecognizeObject(ctx, "/incoming/pcDNA3.1-mCherry.fa")
	require.NoError(t, err)
	assert.Equal(t, "pcDNA3.1-mCherry.fa", resp.Filename)
	assert.Equal(t, ptypes.ModeContent, resp.Mode)
	assert.Contains(t, resp.Fields["vector"], "pcDNA3.1")
	assert.Contains(t, resp.Fields["fluorophore"], "EGFP")
	fetcher.AssertExpectations(t)

	fetcher.On("Fetch", mock.Anything, "missing.dna", mock.Anything).
		Return(nil, errors.New(errors.ErrCodeObjectNotFound, "no such key")).Once()
	_, err = svc.RecognizeObject(ctx, "missing.dna")
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.RecognizeObject(ctx, " / ")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestService_RecognizeObject_WithoutStorage(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.RecognizeObject(context.Background(), "a/b.dna")
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
}

func TestService_RecognizeBatch(t *testing.T) {
	svc, deps := newTestService(t, func(d *Deps) { d.Config.BatchConcurrency = 2 })
	req := &ptypes.BatchRecognizeRequest{Items: []ptypes.RecognizeRequest{
		{Filename: "pcDNA3.1-EGFP.dna"},
		{Filename: ""},
		{Filename: "pLKO.1-puro-shControl.gb"},
		{Filename: "mScarlet-I_in_pUC19.dna"},
	}}

	resp, err := svc.RecognizeBatch(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)
	assert.Nil(t, resp.Results[1])
	assert.Equal(t, []string{"pcDNA3.1"}, resp.Results[0].Fields["vector"])
	assert.Equal(t, []string{"pLKO.1-puro"}, resp.Results[2].Fields["vector"])
	assert.Equal(t, "pLKO.1-puro-shControl.gb", resp.Results[2].Filename)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 1, resp.Errors[0].Index)
	assert.Equal(t, string(errors.ErrCodeBadRequest), resp.Errors[0].Code)

	batches := deps.Metrics.(*common.InMemoryRecognitionMetrics).Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, 4, batches[0].TotalItems)
	assert.Equal(t, 1, batches[0].FailedItems)
	assert.Equal(t, 2, batches[0].MaxConcurrency)
}

func TestService_RecognizeBatch_Limits(t *testing.T) {
	svc, _ := newTestService(t, func(d *Deps) { d.Config.MaxBatchSize = 2 })
	ctx := context.Background()

	_, err := svc.RecognizeBatch(ctx, &ptypes.BatchRecognizeRequest{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	items := []ptypes.RecognizeRequest{{Filename: "a"}, {Filename: "b"}, {Filename: "c"}}
	_, err = svc.RecognizeBatch(ctx, &ptypes.BatchRecognizeRequest{Items: items})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBatchTooLarge))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.RecognizeBatch(cctx, &ptypes.BatchRecognizeRequest{Items: items[:2]})
	assert.True(t, errors.IsCode(err, errors.ErrCodeRecognitionCanceled))
}

func TestService_RecordCorrection(t *testing.T) {
	pub := new(testutil.MockPublisher)
	store := domain.NewMemoryCorrectionStore()
	svc, _ := newTestService(t, func(d *Deps) {
		d.Publisher = pub
		d.Corrections = store
	})
	ctx := context.Background()

	pub.On("PublishCorrection", mock.Anything, mock.MatchedBy(func(ev *domain.CorrectionRecordedEvent) bool {
		return ev.Origin == "node-a" && ev.Correction.Category == "species"
	})).Return(nil).Once()

	out, err := svc.RecordCorrection(ctx, &ptypes.CorrectionRequest{
		Filename:     "archive/foo.dna",
		Category:     "物种",
		OldSignature: "人",
		NewSignature: "小鼠",
	})
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.True(t, out.Persisted)
	assert.True(t, out.Published)
	assert.Equal(t, "foo.dna", out.Correction.Filename)
	assert.Equal(t, "species", out.Correction.Category)

	resp, err := svc.Recognize(ctx, &ptypes.RecognizeRequest{Filename: "foo.dna"})
	require.NoError(t, err)
	assert.Equal(t, []string{"小鼠"}, resp.Fields["species"])
	assert.Equal(t, []string{"species"}, resp.Corrected)

	stored, err := svc.Corrections(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "小鼠", stored[0].NewSignature)

	// A no-op edit is neither stored nor published.
	out, err = svc.RecordCorrection(ctx, &ptypes.CorrectionRequest{
		Filename: "bar.dna", Category: "species", OldSignature: "人", NewSignature: "人",
	})
	require.NoError(t, err)
	assert.False(t, out.Applied)
	pub.AssertNumberOfCalls(t, "PublishCorrection", 1)
}

func TestService_RecordCorrection_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown category", func(t *testing.T) {
		svc, _ := newTestService(t, nil)
		_, err := svc.RecordCorrection(ctx, &ptypes.CorrectionRequest{Filename: "a.dna", Category: "colour", NewSignature: "red"})
		assert.True(t, errors.IsCode(err, errors.ErrCodeCategoryUnknown))
	})

	t.Run("missing filename", func(t *testing.T) {
		svc, _ := newTestService(t, nil)
		_, err := svc.RecordCorrection(ctx, &ptypes.CorrectionRequest{Category: "vector", NewSignature: "pUC19"})
		assert.True(t, errors.IsCode(err, errors.ErrCodeCorrectionInvalid))
	})

	t.Run("store failure", func(t *testing.T) {
		svc, _ := newTestService(t, func(d *Deps) { d.Corrections = failingStore{} })
		out, err := svc.RecordCorrection(ctx, &ptypes.CorrectionRequest{Filename: "a.dna", Category: "vector", NewSignature: "pUC19"})
		assert.True(t, errors.IsCode(err, errors.ErrCodeCorrectionStore))
		require.NotNil(t, out)
		assert.True(t, out.Applied)
		assert.False(t, out.Persisted)
	})

	t.Run("publish failure is not fatal", func(t *testing.T) {
		pub := new(testutil.MockPublisher)
		pub.On("PublishCorrection", mock.Anything, mock.Anything).Return(stderrors.New("broker down"))
		svc, _ := newTestService(t, func(d *Deps) { d.Publisher = pub })
		out, err := svc.RecordCorrection(ctx, &ptypes.CorrectionRequest{Filename: "a.dna", Category: "vector", NewSignature: "pUC19"})
		require.NoError(t, err)
		assert.True(t, out.Persisted)
		assert.False(t, out.Published)
	})
}

func TestService_ApplyCorrectionEvent(t *testing.T) {
	svc, _ := newTestService(t, nil)
	c := ptypes.Correction{Filename: "x.dna", Category: "vector", NewSignature: "pUC57"}

	assert.False(t, svc.ApplyCorrectionEvent(context.Background(), domain.NewCorrectionRecordedEvent(c, "node-a")))
	assert.True(t, svc.ApplyCorrectionEvent(context.Background(), domain.NewCorrectionRecordedEvent(c, "node-b")))
	assert.False(t, svc.ApplyCorrectionEvent(context.Background(), nil))

	resp, err := svc.Recognize(context.Background(), &ptypes.RecognizeRequest{Filename: "x.dna"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pUC57"}, resp.Fields["vector"])
}

func TestService_StartAndReload(t *testing.T) {
	ctx := context.Background()
	rules := new(testutil.MockRulesSource)
	rules.On("LoadRules", mock.Anything).Return([]byte(`{"carriers": ["pMyVec-1"]}`), nil)

	store := domain.NewMemoryCorrectionStore()
	require.NoError(t, store.Save(ctx, ptypes.Correction{Filename: "pMyVec-1_a.dna", Category: "species", NewSignature: "大鼠"}))

	repo := domain.NewMemoryRecordRepository(ptypes.Record{
		ID:     "1",
		Fields: map[string]ptypes.FieldValues{"载体": {"pNovel-7"}},
	})

	svc, _ := newTestService(t, func(d *Deps) {
		d.Rules = rules
		d.Records = repo
		d.Corrections = store
	})
	require.NoError(t, svc.Start(ctx))

	stats := svc.VocabularyStats(ctx)
	assert.Greater(t, stats.Version, uint64(1))
	assert.Equal(t, 1, stats.Records)
	assert.Equal(t, 1, stats.Corrections)

	resp, err := svc.Recognize(ctx, &ptypes.RecognizeRequest{Filename: "pMyVec-1_a.dna"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pMyVec-1"}, resp.Fields["vector"])
	assert.Equal(t, []string{"大鼠"}, resp.Fields["species"])

	resp, err = svc.Recognize(ctx, &ptypes.RecognizeRequest{Filename: "pNovel-7_EGFP.dna"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pNovel-7"}, resp.Fields["vector"])
}

func TestService_Reload_SourceErrorKeepsVocabulary(t *testing.T) {
	rules := new(testutil.MockRulesSource)
	rules.On("LoadRules", mock.Anything).Return(nil, stderrors.New("bucket offline"))
	svc, _ := newTestService(t, func(d *Deps) { d.Rules = rules })

	before := svc.VocabularyStats(context.Background()).Version
	_, err := svc.Reload(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeRulesDocumentUnavailable))
	assert.Equal(t, before, svc.VocabularyStats(context.Background()).Version)
}

func TestService_Start_CorrectionStoreError(t *testing.T) {
	store := new(testutil.MockCorrectionStore)
	store.On("List", mock.Anything).Return(nil, stderrors.New("redis: connection refused"))
	svc, _ := newTestService(t, func(d *Deps) { d.Corrections = store })

	err := svc.Start(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorrectionStore))
	store.AssertExpectations(t)
}

func TestService_Reload_CorpusErrorKeepsVocabulary(t *testing.T) {
	repo := new(testutil.MockRecordRepository)
	repo.On("List", mock.Anything).Return(nil, stderrors.New("pool closed"))
	logger := testutil.NewMockLogger()
	svc, _ := newTestService(t, func(d *Deps) {
		d.Records = repo
		d.Logger = logger
	})

	before := svc.VocabularyStats(context.Background()).Version
	_, err := svc.Reload(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorpusUnavailable))
	assert.Equal(t, before, svc.VocabularyStats(context.Background()).Version)
	assert.False(t, logger.HasMessage("info", "operation completed"))
	repo.AssertExpectations(t)
}

func TestService_Start_LogsReplay(t *testing.T) {
	store := new(testutil.MockCorrectionStore)
	store.On("List", mock.Anything).Return([]ptypes.Correction{
		{Filename: "a.dna", Category: "vector", NewSignature: "pUC19"},
		{Filename: "b.dna", Category: "colour", NewSignature: "red"},
	}, nil)
	logger := testutil.NewMockLogger()
	svc, _ := newTestService(t, func(d *Deps) {
		d.Corrections = store
		d.Logger = logger
	})
	require.NoError(t, svc.Start(context.Background()))

	msg, ok := logger.Find("info", "corrections replayed")
	require.True(t, ok)
	stored, _ := msg.Field("stored")
	assert.Equal(t, 2, stored)
	accepted, _ := msg.Field("accepted")
	assert.Equal(t, 1, accepted)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "a.dna", baseName(`C:\plasmids\a.dna`))
	assert.Equal(t, "a.dna", baseName("x/y/a.dna"))
	assert.Equal(t, "a.dna", joinPath("", "a.dna"))
	assert.Equal(t, "dir/a.dna", joinPath("dir/", "a.dna"))
	assert.Empty(t, toResponse("a", ptypes.ModeName, nil).Description)
}

//Personal.AI order the ending
