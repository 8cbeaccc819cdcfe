package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecommerce_dataset/internal/application/generator"
	"ecommerce_dataset/internal/domain/dataset"
	"ecommerce_dataset/internal/domain/repository"
	"ecommerce_dataset/pkg/logger"
)

type Service struct {
	writer repository.DatasetWriter
	log    logger.Logger
}

// Summary describes a completed run.
type Summary struct {
	RunID  string         `json:"run_id"`
	Seed   uint64         `json:"seed"`
	Counts dataset.Counts `json:"counts"`
	Took   time.Duration  `json:"took"`
}

func NewService(writer repository.DatasetWriter, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{writer: writer, log: log}
}

// Run generates a dataset from cfg and catalog and hands it to the writer.
// Configuration problems are reported before any storage is touched.
func (s *Service) Run(ctx context.Context, cfg generator.Config, catalog []dataset.Product, seed uint64) (Summary, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return Summary{}, fmt.Errorf("validate config: %w", err)
	}
	if err := dataset.ValidateCatalog(catalog); err != nil {
		return Summary{}, fmt.Errorf("validate catalog: %w", err)
	}

	rng, used := generator.NewSource(seed)
	runID := uuid.NewString()
	ctx = logger.ContextWithRunID(ctx, runID)
	log := s.log.WithContext(ctx)

	log.Info("generating dataset",
		logger.Uint64("seed", used),
		logger.Int("customers", cfg.Customers),
		logger.String("orders_per_customer", cfg.OrdersPerCustomer.String()),
		logger.String("items_per_order", cfg.ItemsPerOrder.String()),
	)

	ds, err := generator.Generate(cfg, catalog, rng)
	if err != nil {
		return Summary{}, fmt.Errorf("generate dataset: %w", err)
	}
	if err := ds.Verify(); err != nil {
		return Summary{}, fmt.Errorf("generate dataset: %w", err)
	}

	counts := ds.Counts()
	if err := s.writer.Replace(ctx, ds); err != nil {
		log.Error("write dataset failed", logger.Error(err))
		return Summary{}, fmt.Errorf("write dataset: %w", err)
	}

	summary := Summary{RunID: runID, Seed: used, Counts: counts, Took: time.Since(start)}
	log.Info("dataset written",
		logger.Int("customers", counts.Customers),
		logger.Int("products", counts.Products),
		logger.Int("orders", counts.Orders),
		logger.Int("order_items", counts.OrderItems),
		logger.Duration("took", summary.Took),
	)
	return summary, nil
}
