package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/toomate/cashier/pkg/logctx"
)

const EventPauseRemoved = "subscription.pause_removed"

// PauseRemovedEvent is emitted after a queued downgrade, suspension or
// cancellation has been withdrawn and logged.
type PauseRemovedEvent struct {
	SubscriptionID string    `json:"subscriptionId"`
	UserID         string    `json:"userId"`
	Message        string    `json:"message"`
	OriginalType   string    `json:"originalType"`
	Action         string    `json:"action"`
	PlanID         string    `json:"planId,omitempty"`
	LogID          string    `json:"logId"`
	TraceID        string    `json:"traceId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Publisher delivers subscription events to downstream consumers.
type Publisher interface {
	PublishPauseRemoved(ctx context.Context, ev *PauseRemovedEvent) error
	Close() error
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.SugaredLogger
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, log *zap.SugaredLogger) Publisher {
	return &kafkaPublisher{producer: producer, topic: topic, log: log}
}

func (p *kafkaPublisher) PublishPauseRemoved(ctx context.Context, ev *PauseRemovedEvent) error {
	if ev.TraceID == "" {
		ev.TraceID = logctx.TraceID(ctx)
	}
	msg, err := newMessage(p.topic, EventPauseRemoved, ev.SubscriptionID, ev)
	if err != nil {
		return err
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", EventPauseRemoved, err)
	}
	logctx.FromCtx(ctx, p.log).Infow("event_published",
		"topic", p.topic, "event_type", EventPauseRemoved, "partition", partition, "offset", offset)
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// newMessage keys by subscription so events for one subscription stay ordered.
func newMessage(topic, eventType, key string, payload any) (*sarama.ProducerMessage, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
		},
		Timestamp: time.Now(),
	}, nil
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishPauseRemoved(context.Context, *PauseRemovedEvent) error { return nil }
func (NopPublisher) Close() error                                                 { return nil }
