package postgres

import (
	"context"
	"fmt"
	"time"

	"ecommerce_dataset/internal/config"
	"ecommerce_dataset/internal/domain/dataset"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: parse dsn: %v", dataset.ErrInvalidConfig, err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dataset.ErrStorageUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", dataset.ErrStorageUnavailable, err)
	}

	return pool, nil
}
