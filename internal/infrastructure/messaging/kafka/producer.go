package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"ecommerce_dataset/internal/config"
	"ecommerce_dataset/pkg/logger"
)

var ErrProducerClosed = errors.New("kafka producer is not connected")

type OrderProducer struct {
	client *kgo.Client
	topic  string
	logger logger.Logger
}

func NewOrderProducer(cfg config.KafkaConfig, log logger.Logger) (*OrderProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers is empty")
	}
	if cfg.OrderTopic == "" {
		return nil, fmt.Errorf("kafka order topic is empty")
	}
	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithFields(logger.String("topic", cfg.OrderTopic))

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.OrderTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.DisableIdempotentWrite(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Info("Kafka producer created", logger.Any("brokers", cfg.Brokers))

	return &OrderProducer{
		client: client,
		topic:  cfg.OrderTopic,
		logger: log,
	}, nil
}

// PublishOrder produces payload synchronously under key. Each record
// carries a unique message-id header.
func (p *OrderProducer) PublishOrder(ctx context.Context, key, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is empty")
	}
	if p.client == nil {
		return ErrProducerClosed
	}

	rec := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "message-id", Value: []byte(uuid.NewString())},
			{Key: "content-type", Value: []byte("avro/binary")},
		},
		Timestamp: time.Now().UTC(),
	}

	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		p.logger.Error("Failed to publish order",
			logger.String("key", string(key)),
			logger.Int("payload_bytes", len(payload)),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Published order", logger.String("key", string(key)))
	return nil
}

func (p *OrderProducer) Close(ctx context.Context) error {
	p.logger.Info("Closing Kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
	return nil
}
