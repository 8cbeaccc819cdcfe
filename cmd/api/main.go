package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecommerce_dataset/internal/config"
	ginserver "ecommerce_dataset/internal/infrastructure/http/gin"
	"ecommerce_dataset/internal/infrastructure/persistence/sqlite"
	"ecommerce_dataset/internal/interfaces/http/handler"
	"ecommerce_dataset/internal/interfaces/http/router"
	"ecommerce_dataset/pkg/logger"
)

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

	db, err := sqlite.Open(cfg.SQLite.Path, true)
	if err != nil {
		appLog.Fatal("open database failed", logger.String("path", cfg.SQLite.Path), logger.Error(err))
	}
	defer db.Close()

	reportHandler := handler.NewReportHandler(
		sqlite.NewReportRepository(db),
		handler.Limits{RecentOrders: cfg.Report.RecentLimit, TopProducts: cfg.Report.TopProducts},
		appLog,
	)
	engine := ginserver.NewEngine(appLog)
	router.RegisterRoutes(engine, reportHandler)

	server := ginserver.NewServer(cfg.Server, engine, appLog)
	if err := server.Run(ctx); err != nil {
		appLog.Fatal("server run failed", logger.Error(err))
	}
}
