package kafka

import (
	"context"
	"strings"
	"time"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// CorrectionApplier replays correction events from other instances.
type CorrectionApplier interface {
	ApplyCorrectionEvent(ctx context.Context, ev *domain.CorrectionRecordedEvent) bool
}

// JobRecognizer runs recognition for a queued job.
type JobRecognizer interface {
	Recognize(ctx context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error)
	RecognizeObject(ctx context.Context, key string) (*ptypes.RecognitionResponse, error)
}

// NewCorrectionHandler returns a handler for the correction topic.
func NewCorrectionHandler(applier CorrectionApplier, logger logging.Logger) MessageHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(ctx context.Context, msg *Message) error {
		env, err := MessageToEventEnvelope(msg)
		if err != nil {
			return err
		}
		if env.EventType != EventCorrectionRecorded {
			logger.Debug("Skipping event", logging.String("event_type", env.EventType))
			return nil
		}
		var ev domain.CorrectionRecordedEvent
		if err := env.DecodePayload(&ev); err != nil {
			return err
		}
		if applier.ApplyCorrectionEvent(ctx, &ev) {
			logger.Info("Correction replayed",
				logging.Filename(ev.Correction.Filename),
				logging.Category(ev.Correction.Category),
				logging.String("origin", ev.Origin))
		}
		return nil
	}
}

// NewJobHandler returns a handler for the request topic.  Jobs with an
// object key are recognized from content, others by name.  Recognition
// failures are published as failed results rather than retried; only a
// failed publish is returned to the consumer.
func NewJobHandler(rec JobRecognizer, pub domain.EventPublisher, logger logging.Logger) MessageHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(ctx context.Context, msg *Message) error {
		env, err := MessageToEventEnvelope(msg)
		if err != nil {
			return err
		}
		var job ptypes.RecognitionJob
		if err := env.DecodePayload(&job); err != nil {
			return err
		}
		if job.JobID == "" {
			job.JobID = env.EventID
		}
		if strings.TrimSpace(job.ObjectKey) == "" && strings.TrimSpace(job.Filename) == "" {
			return errors.New(errors.ErrCodeMessageMalformed, "job has neither object key nor filename")
		}

		var resp *ptypes.RecognitionResponse
		if job.ObjectKey != "" {
			resp, err = rec.RecognizeObject(ctx, job.ObjectKey)
		} else {
			resp, err = rec.Recognize(ctx, &ptypes.RecognizeRequest{Filename: job.Filename, Path: job.Path})
		}

		out := &ptypes.RecognitionJobResult{
			JobID:       job.JobID,
			Filename:    job.Filename,
			Result:      resp,
			CompletedAt: time.Now().UTC(),
		}
		if resp != nil {
			out.Filename = resp.Filename
		}
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeRecognitionCanceled) {
				return err
			}
			out.ErrorCode = string(errors.GetCode(err))
			out.Error = err.Error()
			logger.Warn("Job failed", logging.String("job_id", job.JobID), logging.Err(err))
		}
		return pub.PublishResult(ctx, out)
	}
}

//Personal.AI order the ending
