package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecommerce_dataset/internal/application/report"
	"ecommerce_dataset/internal/config"
	"ecommerce_dataset/internal/infrastructure/chart"
	"ecommerce_dataset/internal/infrastructure/persistence/sqlite"
	"ecommerce_dataset/pkg/logger"
)

// Prints the analytical overview of the generated database and renders the
// charts into REPORT_OUTPUT_DIR.
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

	svc := report.NewService(
		sqlite.NewReportRepository(db),
		chart.NewRenderer(),
		appLog,
		report.Options{RecentOrders: cfg.Report.RecentLimit, TopProducts: cfg.Report.TopProducts},
	)

	overview, err := svc.Overview(ctx)
	if err != nil {
		appLog.Fatal("overview failed", logger.Error(err))
	}
	if err := report.WriteOverview(os.Stdout, overview); err != nil {
		appLog.Fatal("print overview failed", logger.Error(err))
	}

	visuals, err := svc.Visualize(ctx, cfg.Report.OutputDir)
	if err != nil {
		appLog.Fatal("render charts failed", logger.Error(err))
	}
	if err := report.WriteSummary(os.Stdout, visuals); err != nil {
		appLog.Fatal("print summary failed", logger.Error(err))
	}
}
