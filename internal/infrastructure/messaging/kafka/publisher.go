package kafka

import (
	"context"

	"github.com/turtacn/PlasmidCatalog/internal/config"
	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// EventPublisher sends domain events as enveloped Kafka messages.
type EventPublisher struct {
	producer        Publisher
	source          string
	correctionTopic string
	resultTopic     string
	logger          logging.Logger
}

var _ domain.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher returns a publisher writing through p.  source names the
// emitting service in every envelope.
func NewEventPublisher(p Publisher, kc config.KafkaConfig, source string, logger logging.Logger) *EventPublisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &EventPublisher{
		producer:        p,
		source:          source,
		correctionTopic: orDefault(kc.CorrectionTopic, TopicCorrections),
		resultTopic:     orDefault(kc.ResultTopic, TopicRecognitionResults),
		logger:          logger.Named("kafka-publisher"),
	}
}

// PublishCorrection keys the message by filename so all edits of one file
// land on the same partition in order.
func (p *EventPublisher) PublishCorrection(ctx context.Context, ev *domain.CorrectionRecordedEvent) error {
	if ev == nil {
		return errors.New(errors.ErrCodeValidation, "event is nil")
	}
	return p.publish(ctx, p.correctionTopic, EventCorrectionRecorded, ev.Correction.Filename, ev)
}

func (p *EventPublisher) PublishResult(ctx context.Context, res *ptypes.RecognitionJobResult) error {
	if res == nil {
		return errors.New(errors.ErrCodeValidation, "result is nil")
	}
	return p.publish(ctx, p.resultTopic, EventRecognitionCompleted, res.JobID, res)
}

func (p *EventPublisher) publish(ctx context.Context, topic, eventType, key string, payload interface{}) error {
	env, err := NewEventEnvelope(eventType, p.source, payload)
	if err != nil {
		return err
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		env.TraceID = id
	}
	msg, err := env.ToMessage(topic, key)
	if err != nil {
		return err
	}
	if err := p.producer.Publish(ctx, msg); err != nil {
		return err
	}
	p.logger.Debug("Event published",
		logging.String("topic", topic),
		logging.String("event_type", eventType),
		logging.String("event_id", env.EventID))
	return nil
}

//Personal.AI order the ending
