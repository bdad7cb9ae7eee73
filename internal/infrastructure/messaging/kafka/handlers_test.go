package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PlasmidCatalog/internal/config"
	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

type stubApplier struct {
	got []*domain.CorrectionRecordedEvent
}

func (s *stubApplier) ApplyCorrectionEvent(_ context.Context, ev *domain.CorrectionRecordedEvent) bool {
	s.got = append(s.got, ev)
	return true
}

type stubRecognizer struct {
	byName   []string
	byObject []string
	err      error
}

func (s *stubRecognizer) Recognize(_ context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error) {
	s.byName = append(s.byName, req.Filename)
	if s.err != nil {
		return nil, s.err
	}
	return &ptypes.RecognitionResponse{Filename: req.Filename, Mode: ptypes.ModeName}, nil
}

func (s *stubRecognizer) RecognizeObject(_ context.Context, key string) (*ptypes.RecognitionResponse, error) {
	s.byObject = append(s.byObject, key)
	if s.err != nil {
		return nil, s.err
	}
	return &ptypes.RecognitionResponse{Filename: "from-object.dna", Mode: ptypes.ModeContent}, nil
}

type stubResultPublisher struct {
	results []*ptypes.RecognitionJobResult
	err     error
}

func (s *stubResultPublisher) PublishCorrection(context.Context, *domain.CorrectionRecordedEvent) error {
	return nil
}

func (s *stubResultPublisher) PublishResult(_ context.Context, r *ptypes.RecognitionJobResult) error {
	if s.err != nil {
		return s.err
	}
	s.results = append(s.results, r)
	return nil
}

func envelopeMessage(t *testing.T, eventType string, payload interface{}) *Message {
	t.Helper()
	env, err := NewEventEnvelope(eventType, "test", payload)
	require.NoError(t, err)
	pm, err := env.ToMessage("t", "")
	require.NoError(t, err)
	return &Message{Topic: pm.Topic, Value: pm.Value}
}

func TestEventPublisher_PublishCorrection(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewEventPublisher(rec, config.KafkaConfig{CorrectionTopic: "corr"}, "api", nil)

	c := ptypes.Correction{Filename: "foo.dna", Category: "species", OldSignature: "人", NewSignature: "小鼠", RecordedAt: time.Now().UTC()}
	ctx := logging.WithRequestID(context.Background(), "req-9")
	require.NoError(t, p.PublishCorrection(ctx, domain.NewCorrectionRecordedEvent(c, "api-1")))

	sent := rec.published()
	require.Len(t, sent, 1)
	assert.Equal(t, "corr", sent[0].Topic)
	assert.Equal(t, []byte("foo.dna"), sent[0].Key)
	assert.Equal(t, "req-9", sent[0].Headers["trace_id"])

	var env EventEnvelope
	require.NoError(t, json.Unmarshal(sent[0].Value, &env))
	assert.Equal(t, EventCorrectionRecorded, env.EventType)
	assert.Equal(t, "api", env.Source)

	assert.Error(t, p.PublishCorrection(ctx, nil))
}

func TestEventPublisher_PublishResult(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewEventPublisher(rec, config.KafkaConfig{}, "worker", nil)

	require.NoError(t, p.PublishResult(context.Background(), &ptypes.RecognitionJobResult{JobID: "j1"}))
	sent := rec.published()
	require.Len(t, sent, 1)
	assert.Equal(t, TopicRecognitionResults, sent[0].Topic)
	assert.Equal(t, []byte("j1"), sent[0].Key)

	rec.err = errors.New("down")
	assert.Error(t, p.PublishResult(context.Background(), &ptypes.RecognitionJobResult{JobID: "j2"}))
	assert.Error(t, p.PublishResult(context.Background(), nil))
}

func TestCorrectionHandler(t *testing.T) {
	applier := &stubApplier{}
	h := NewCorrectionHandler(applier, nil)

	c := ptypes.Correction{Filename: "foo.dna", Category: "species", NewSignature: "小鼠"}
	ev := domain.NewCorrectionRecordedEvent(c, "api-2")
	require.NoError(t, h(context.Background(), envelopeMessage(t, EventCorrectionRecorded, ev)))
	require.Len(t, applier.got, 1)
	assert.Equal(t, c.Filename, applier.got[0].Correction.Filename)
	assert.Equal(t, "api-2", applier.got[0].Origin)

	require.NoError(t, h(context.Background(), envelopeMessage(t, "other.event", ev)))
	assert.Len(t, applier.got, 1, "other event types are skipped")

	err := h(context.Background(), &Message{Value: []byte("garbage")})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMessageMalformed))
}

func TestJobHandler(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		rec, pub := &stubRecognizer{}, &stubResultPublisher{}
		h := NewJobHandler(rec, pub, nil)

		job := ptypes.RecognitionJob{JobID: "j1", Filename: "pLKO.1-puro.dna"}
		require.NoError(t, h(context.Background(), envelopeMessage(t, EventRecognitionRequested, job)))
		assert.Equal(t, []string{"pLKO.1-puro.dna"}, rec.byName)
		require.Len(t, pub.results, 1)
		assert.Equal(t, "j1", pub.results[0].JobID)
		assert.Empty(t, pub.results[0].ErrorCode)
	})

	t.Run("by object key", func(t *testing.T) {
		rec, pub := &stubRecognizer{}, &stubResultPublisher{}
		h := NewJobHandler(rec, pub, nil)

		job := ptypes.RecognitionJob{ObjectKey: "uploads/a.dna"}
		msg := envelopeMessage(t, EventRecognitionRequested, job)
		require.NoError(t, h(context.Background(), msg))
		assert.Equal(t, []string{"uploads/a.dna"}, rec.byObject)
		require.Len(t, pub.results, 1)
		assert.NotEmpty(t, pub.results[0].JobID, "job id falls back to the event id")
		assert.Equal(t, "from-object.dna", pub.results[0].Filename)
	})

	t.Run("recognition failure is published", func(t *testing.T) {
		rec := &stubRecognizer{err: apperrors.New(apperrors.ErrCodeObjectNotFound, "missing")}
		pub := &stubResultPublisher{}
		h := NewJobHandler(rec, pub, nil)

		require.NoError(t, h(context.Background(), envelopeMessage(t, EventRecognitionRequested, ptypes.RecognitionJob{JobID: "j", ObjectKey: "x"})))
		require.Len(t, pub.results, 1)
		assert.Equal(t, string(apperrors.ErrCodeObjectNotFound), pub.results[0].ErrorCode)
		assert.Nil(t, pub.results[0].Result)
	})

	t.Run("cancellation is returned", func(t *testing.T) {
		rec := &stubRecognizer{err: apperrors.New(apperrors.ErrCodeRecognitionCanceled, "stop")}
		pub := &stubResultPublisher{}
		h := NewJobHandler(rec, pub, nil)

		err := h(context.Background(), envelopeMessage(t, EventRecognitionRequested, ptypes.RecognitionJob{Filename: "a.dna"}))
		assert.Error(t, err)
		assert.Empty(t, pub.results)
	})

	t.Run("empty job is malformed", func(t *testing.T) {
		h := NewJobHandler(&stubRecognizer{}, &stubResultPublisher{}, nil)
		err := h(context.Background(), envelopeMessage(t, EventRecognitionRequested, ptypes.RecognitionJob{JobID: "j"}))
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMessageMalformed))
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		h := NewJobHandler(&stubRecognizer{}, &stubResultPublisher{err: errors.New("down")}, nil)
		assert.Error(t, h(context.Background(), envelopeMessage(t, EventRecognitionRequested, ptypes.RecognitionJob{Filename: "a.dna"})))
	})
}

//Personal.AI order the ending
