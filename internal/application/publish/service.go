package publish

import (
	"context"
	"fmt"
	"strconv"

	"ecommerce_dataset/internal/domain/dataset"
	"ecommerce_dataset/internal/domain/repository"
	"ecommerce_dataset/pkg/logger"
)

// OrderEncoder turns an order into a wire payload.
type OrderEncoder interface {
	EncodeOrder(o dataset.PlacedOrder) ([]byte, error)
}

type Publisher interface {
	PublishOrder(ctx context.Context, key, payload []byte) error
}

type Service struct {
	source    repository.OrderSource
	encoder   OrderEncoder
	publisher Publisher
	log       logger.Logger
}

func NewService(source repository.OrderSource, encoder OrderEncoder, publisher Publisher, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		source:    source,
		encoder:   encoder,
		publisher: publisher,
		log:       log,
	}
}

// Sync publishes every stored order keyed by its id. It stops at the first
// failure and returns how many orders were published before it.
func (s *Service) Sync(ctx context.Context) (int, error) {
	orders, err := s.source.ListOrders(ctx)
	if err != nil {
		return 0, fmt.Errorf("list orders: %w", err)
	}

	count := 0
	for _, o := range orders {
		payload, err := s.encoder.EncodeOrder(o)
		if err != nil {
			return count, fmt.Errorf("encode order %d: %w", o.ID, err)
		}
		key := []byte(strconv.FormatInt(o.ID, 10))
		if err := s.publisher.PublishOrder(ctx, key, payload); err != nil {
			return count, fmt.Errorf("publish order %d: %w", o.ID, err)
		}
		count++
	}

	s.log.Info("orders published", logger.Int("count", count))
	return count, nil
}
