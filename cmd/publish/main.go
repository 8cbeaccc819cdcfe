package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecommerce_dataset/internal/application/publish"
	"ecommerce_dataset/internal/config"
	"ecommerce_dataset/internal/infrastructure/encoding/avro"
	kafkaInfra "ecommerce_dataset/internal/infrastructure/messaging/kafka"
	"ecommerce_dataset/internal/infrastructure/persistence/sqlite"
	"ecommerce_dataset/pkg/logger"
)

// Publishes every order in the SQLite database to KAFKA_ORDER_TOPIC as an
// Avro record keyed by order id.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	if cfg.Kafka.OrderTopic == "" {
		log.Fatal("KAFKA_ORDER_TOPIC is empty (e.g. ecommerce_orders)")
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("KAFKA_BOOTSTRAP_SERVERS is empty (e.g. localhost:19092,localhost:29092)")
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("create logger failed: %v", err)
	}
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.SQLite.Path, true)
	if err != nil {
		appLog.Fatal("open database failed", logger.String("path", cfg.SQLite.Path), logger.Error(err))
	}
	defer db.Close()

	encoder, err := avro.NewOrderEncoder()
	if err != nil {
		appLog.Fatal("build avro codec failed", logger.Error(err))
	}

	producer, err := kafkaInfra.NewOrderProducer(cfg.Kafka, appLog)
	if err != nil {
		appLog.Fatal("create kafka producer failed", logger.Error(err))
	}
	defer producer.Close(context.Background())

	svc := publish.NewService(sqlite.NewReportRepository(db), encoder, producer, appLog)
	n, err := svc.Sync(ctx)
	if err != nil {
		producer.Close(context.Background())
		appLog.Fatal("publish failed", logger.Int("published", n), logger.Error(err))
	}

	appLog.Info("publish complete", logger.Int("published", n), logger.String("topic", cfg.Kafka.OrderTopic))
}
