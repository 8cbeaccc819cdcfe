package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ecommerce_dataset/internal/domain/dataset"
	"ecommerce_dataset/internal/domain/report"
)

// DatasetWriter replaces whatever the store holds with ds, atomically.
type DatasetWriter interface {
	Replace(ctx context.Context, ds *dataset.Dataset) error
}

// ReportReader runs the read-only analytical queries.
type ReportReader interface {
	TableCounts(ctx context.Context) ([]report.TableCount, error)
	CustomersByCity(ctx context.Context) ([]report.CityCount, error)
	ProductMargins(ctx context.Context) ([]report.ProductMargin, error)
	RecentOrders(ctx context.Context, limit int) ([]report.RecentOrder, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	MonthlyRevenue(ctx context.Context) ([]report.MonthlyRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]report.ProductSales, error)
	CategoryRevenue(ctx context.Context) ([]report.CategoryRevenue, error)
}

type OrderSource interface {
	ListOrders(ctx context.Context) ([]dataset.PlacedOrder, error)
}

// PendingWrite is a replacement that has been fully written but is not yet
// visible to readers of the store.
type PendingWrite interface {
	Commit(ctx context.Context) error
	Abort(ctx context.Context) error
}

// DatasetStager prepares a replacement without publishing it.
type DatasetStager interface {
	Stage(ctx context.Context, ds *dataset.Dataset) (PendingWrite, error)
}

// MultiWriter replaces the dataset in several stores as one unit. Every store
// is staged first; nothing is committed unless all stages succeed. Commits run
// in reverse order, so the first store switches over last.
type MultiWriter []DatasetStager

func (m MultiWriter) Replace(ctx context.Context, ds *dataset.Dataset) error {
	if len(m) == 0 {
		return errors.New("no dataset writers configured")
	}

	pending := make([]PendingWrite, 0, len(m))
	for _, w := range m {
		p, err := w.Stage(ctx, ds)
		if err != nil {
			return errors.Join(err, abortAll(ctx, pending))
		}
		pending = append(pending, p)
	}

	for i := len(pending) - 1; i >= 0; i-- {
		if err := pending[i].Commit(ctx); err != nil {
			return errors.Join(err, abortAll(ctx, pending[:i]))
		}
	}
	return nil
}

func abortAll(ctx context.Context, pending []PendingWrite) error {
	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		if err := pending[i].Abort(ctx); err != nil {
			errs = append(errs, fmt.Errorf("abort: %w", err))
		}
	}
	return errors.Join(errs...)
}
