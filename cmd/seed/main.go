package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"ecommerce_dataset/internal/application/seed"
	"ecommerce_dataset/internal/config"
	"ecommerce_dataset/internal/domain/dataset"
	"ecommerce_dataset/internal/domain/repository"
	"ecommerce_dataset/internal/infrastructure/persistence/postgres"
	"ecommerce_dataset/internal/infrastructure/persistence/sqlite"
	"ecommerce_dataset/pkg/logger"
)

// Generates the synthetic dataset and replaces the SQLite file with it.
// With STORE_POSTGRES_ENABLED=true the same dataset is mirrored to Postgres.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("create logger failed: %v", err)
	}
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := sqlite.NewDatasetRepository(cfg.SQLite.Path)
	writers := repository.MultiWriter{store}

	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(cfg.DB)
		if err != nil {
			appLog.Fatal("postgres connection failed", logger.Error(err))
		}
		defer pool.Close()
		writers = append(writers, postgres.NewDatasetRepository(pool))
	}

	svc := seed.NewService(writers, appLog)
	summary, err := svc.Run(ctx, cfg.Generator.ToGeneratorConfig(), dataset.DefaultCatalog(), cfg.Generator.Seed)
	if err != nil {
		appLog.Error("seed failed", logger.Error(err))
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		appLog.Sync()
		os.Exit(1)
	}

	fmt.Printf("Database created at %s (seed %d)\n", store.Path(), summary.Seed)
	fmt.Printf("  customers:   %s\n", humanize.Comma(int64(summary.Counts.Customers)))
	fmt.Printf("  products:    %s\n", humanize.Comma(int64(summary.Counts.Products)))
	fmt.Printf("  orders:      %s\n", humanize.Comma(int64(summary.Counts.Orders)))
	fmt.Printf("  order_items: %s\n", humanize.Comma(int64(summary.Counts.OrderItems)))
}
