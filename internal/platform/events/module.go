package events

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/toomate/cashier/pkg/config"
)

func newProducerConfig() *sarama.Config {
	c := sarama.NewConfig()
	c.ClientID = "cashier"
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Return.Successes = true
	c.Producer.Retry.Max = 3
	c.Producer.Retry.Backoff = 200 * time.Millisecond
	c.Producer.Timeout = 5 * time.Second
	return c
}

// NewPublisher falls back to NopPublisher when Kafka is not configured or
// unreachable at startup; event delivery never gates the API.
func NewPublisher(lc fx.Lifecycle, cfg *cfgpkg.Config, l *zap.SugaredLogger) Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		l.Infow("kafka brokers empty, event publishing disabled")
		return NopPublisher{}
	}
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newProducerConfig())
	if err != nil {
		l.Errorw("kafka producer init failed, event publishing disabled", "brokers", cfg.Kafka.Brokers, "error", err)
		return NopPublisher{}
	}
	p := NewKafkaPublisher(producer, cfg.Kafka.Topic, l)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Infow("closing kafka producer")
			return p.Close()
		},
	})
	l.Infow("kafka producer ready", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return p
}

var Module = fx.Options(
	fx.Provide(NewPublisher),
)
