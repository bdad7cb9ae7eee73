package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/turtacn/PlasmidCatalog/internal/bootstrap"
	"github.com/turtacn/PlasmidCatalog/pkg/client"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// backend is what the recognize, correct and vocab commands need.  The
// local backend runs the engine in-process; the remote one calls the API.
type backend interface {
	Recognize(ctx context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error)
	RecognizeContent(ctx context.Context, req *ptypes.RecognizeContentRequest) (*ptypes.RecognitionResponse, error)
	RecognizeBatch(ctx context.Context, req *ptypes.BatchRecognizeRequest) (*ptypes.BatchRecognitionResponse, error)
	RecordCorrection(ctx context.Context, req *ptypes.CorrectionRequest) (*correctionOutcome, error)
	Vocabulary(ctx context.Context) (*ptypes.VocabularyStats, error)
	Close() error
}

// correctionOutcome is the common shape of a recorded correction.
type correctionOutcome struct {
	Correction ptypes.Correction `json:"correction"`
	Applied    bool              `json:"applied"`
	Persisted  bool              `json:"persisted"`
	Published  bool              `json:"published"`

	// ephemeral is set when the local store does not outlive the process.
	ephemeral bool
}

// openBackend is replaced in tests.
var openBackend = func(cmd *cobra.Command, cliCtx *CLIContext) (backend, error) {
	if cliCtx.ServerAddr != "" {
		return newRemoteBackend(cliCtx)
	}
	return newLocalBackend(cmd.Context(), cliCtx)
}

type localBackend struct {
	app       *bootstrap.App
	ephemeral bool
}

func newLocalBackend(ctx context.Context, cliCtx *CLIContext) (*localBackend, error) {
	app, err := bootstrap.New(ctx, cliCtx.Config, bootstrap.Options{
		Entry:   bootstrap.EntryCLI,
		Offline: true,
		Logger:  cliCtx.Logger,
	})
	if err != nil {
		return nil, err
	}
	if err := app.Start(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return &localBackend{app: app, ephemeral: cliCtx.Config.Recognition.CorrectionBackend == "memory"}, nil
}

func (b *localBackend) Recognize(ctx context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error) {
	return b.app.Service.Recognize(ctx, req)
}

func (b *localBackend) RecognizeContent(ctx context.Context, req *ptypes.RecognizeContentRequest) (*ptypes.RecognitionResponse, error) {
	return b.app.Service.RecognizeContent(ctx, req)
}

func (b *localBackend) RecognizeBatch(ctx context.Context, req *ptypes.BatchRecognizeRequest) (*ptypes.BatchRecognitionResponse, error) {
	return b.app.Service.RecognizeBatch(ctx, req)
}

func (b *localBackend) RecordCorrection(ctx context.Context, req *ptypes.CorrectionRequest) (*correctionOutcome, error) {
	res, err := b.app.Service.RecordCorrection(ctx, req)
	if err != nil {
		return nil, err
	}
	return &correctionOutcome{
		Correction: res.Correction,
		Applied:    res.Applied,
		Persisted:  res.Persisted,
		Published:  res.Published,
		ephemeral:  b.ephemeral,
	}, nil
}

func (b *localBackend) Vocabulary(ctx context.Context) (*ptypes.VocabularyStats, error) {
	stats := b.app.Service.VocabularyStats(ctx)
	return &stats, nil
}

func (b *localBackend) Close() error { return b.app.Close() }

type remoteBackend struct {
	client *client.Client
}

func newRemoteBackend(cliCtx *CLIContext) (*remoteBackend, error) {
	opts := []client.Option{
		client.WithTimeout(cliCtx.Timeout),
		client.WithUserAgent("plasmidcat-cli/" + bootstrap.Version),
	}
	if cliCtx.APIKey != "" {
		opts = append(opts, client.WithAPIKey(cliCtx.APIKey))
	} else if key := cliCtx.Config.Server.APIKey; key != "" {
		opts = append(opts, client.WithAPIKey(key))
	}
	c, err := client.NewClient(cliCtx.ServerAddr, opts...)
	if err != nil {
		return nil, err
	}
	return &remoteBackend{client: c}, nil
}

func (b *remoteBackend) Recognize(ctx context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error) {
	return b.client.Recognition().Recognize(ctx, req.Filename, req.Path)
}

func (b *remoteBackend) RecognizeContent(ctx context.Context, req *ptypes.RecognizeContentRequest) (*ptypes.RecognitionResponse, error) {
	if req.ObjectKey != "" {
		return b.client.Recognition().RecognizeObject(ctx, req.ObjectKey)
	}
	return b.client.Recognition().Upload(ctx, req.Filename, req.Path, req.Content)
}

func (b *remoteBackend) RecognizeBatch(ctx context.Context, req *ptypes.BatchRecognizeRequest) (*ptypes.BatchRecognitionResponse, error) {
	return b.client.Recognition().RecognizeBatch(ctx, req.Items)
}

func (b *remoteBackend) RecordCorrection(ctx context.Context, req *ptypes.CorrectionRequest) (*correctionOutcome, error) {
	res, err := b.client.Corrections().Record(ctx, req)
	if err != nil {
		return nil, err
	}
	return &correctionOutcome{Correction: res.Correction, Applied: res.Applied, Persisted: res.Persisted, Published: res.Published}, nil
}

func (b *remoteBackend) Vocabulary(ctx context.Context) (*ptypes.VocabularyStats, error) {
	return b.client.Recognition().Vocabulary(ctx)
}

func (b *remoteBackend) Close() error { return nil }

//Personal.AI order the ending
