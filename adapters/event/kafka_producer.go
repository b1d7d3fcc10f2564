package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/analytics"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const TopicViewEvents = "view.events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaViewProducer struct {
	writer messageWriter
	logger logger.Logger
}

var _ service.ViewPublisher = (*KafkaViewProducer)(nil)

func NewKafkaViewProducer(cfg config.Config, log logger.Logger) (*KafkaViewProducer, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicViewEvents,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Kafka view producer initialized")
	return &KafkaViewProducer{writer: writer, logger: log}, nil
}

func (p *KafkaViewProducer) PublishView(ctx context.Context, ev analytics.ViewEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal view event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Path),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write view event: %w", err)
	}
	return nil
}

func (p *KafkaViewProducer) Close() {
	if p.writer != nil {
		if err := p.writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka view producer", err)
			return
		}
	}
	p.logger.Info("Closed Kafka view producer")
}

// NopPublisher drops every event. It stands in when analytics is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishView(context.Context, analytics.ViewEvent) error { return nil }
