package bootstrap

import (
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

var errMessagingDisabled = errors.New(errors.ErrCodeServiceUnavailable, "kafka is not enabled")

func (a *App) topic(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}

// CorrectionConsumer subscribes to correction events from other instances.
// Every instance uses its own group so each one sees every event.
func (a *App) CorrectionConsumer() (*kafka.Consumer, error) {
	if a.Producer == nil {
		return nil, errMessagingDisabled
	}
	kc := a.Config.Kafka
	topic := a.topic(kc.CorrectionTopic, kafka.TopicCorrections)
	group := kc.GroupID + "-" + a.InstanceID

	c, err := kafka.NewConsumer(kafka.ConsumerConfigFrom(kc, group, topic), a.Producer, a.Logger.Named("corrections"))
	if err != nil {
		return nil, err
	}
	c.Subscribe(topic, instrumentHandler(a.Metrics, topic, kafka.NewCorrectionHandler(a.Service, a.Logger)))
	return c, nil
}

// JobConsumer subscribes to queued recognition jobs.  Workers share the
// configured group so each job is handled once.
func (a *App) JobConsumer() (*kafka.Consumer, error) {
	if a.Producer == nil || a.Publisher == nil {
		return nil, errMessagingDisabled
	}
	kc := a.Config.Kafka
	topic := a.topic(kc.RequestTopic, kafka.TopicRecognitionRequests)

	c, err := kafka.NewConsumer(kafka.ConsumerConfigFrom(kc, "", topic), a.Producer, a.Logger.Named("jobs"))
	if err != nil {
		return nil, err
	}
	c.Subscribe(topic, instrumentHandler(a.Metrics, topic, kafka.NewJobHandler(a.Service, a.Publisher, a.Logger)))
	return c, nil
}

//Personal.AI order the ending
