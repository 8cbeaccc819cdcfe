package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecommerce_dataset/internal/domain/dataset"
	"ecommerce_dataset/internal/domain/repository"
)

var resetStatements = []string{
	`DROP TABLE IF EXISTS order_items, orders, products, customers CASCADE`,
	`CREATE TABLE customers (
		customer_id BIGINT PRIMARY KEY,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		email       TEXT UNIQUE,
		signup_date DATE,
		city        TEXT,
		country     TEXT
	)`,
	`CREATE TABLE products (
		product_id   BIGINT PRIMARY KEY,
		product_name TEXT NOT NULL,
		category     TEXT,
		price        NUMERIC(10,2),
		cost         NUMERIC(10,2)
	)`,
	`CREATE TABLE orders (
		order_id    BIGINT PRIMARY KEY,
		customer_id BIGINT REFERENCES customers(customer_id),
		order_date  DATE,
		status      TEXT
	)`,
	`CREATE TABLE order_items (
		order_item_id BIGINT PRIMARY KEY,
		order_id      BIGINT REFERENCES orders(order_id),
		product_id    BIGINT REFERENCES products(product_id),
		quantity      INT,
		unit_price    NUMERIC(10,2)
	)`,
}

// Execer is the subset of pgxpool.Pool used by the repository.
type Execer interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DatasetRepository mirrors a dataset into Postgres, dropping the previous
// tables inside the same transaction.
type DatasetRepository struct {
	db Execer
}

func NewDatasetRepository(pool *pgxpool.Pool) *DatasetRepository {
	return &DatasetRepository{db: pool}
}

func (r *DatasetRepository) Replace(ctx context.Context, ds *dataset.Dataset) error {
	p, err := r.Stage(ctx, ds)
	if err != nil {
		return err
	}
	return p.Commit(ctx)
}

// Stage loads ds inside an open transaction. Readers keep seeing the previous
// tables until Commit.
func (r *DatasetRepository) Stage(ctx context.Context, ds *dataset.Dataset) (_ repository.PendingWrite, err error) {
	if err := ds.Verify(); err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", dataset.ErrStorageUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, stmt := range resetStatements {
		if _, err = tx.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("reset schema: %w", err)
		}
	}

	batch := buildBatch(ds)
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err = results.Exec(); err != nil {
			_ = results.Close()
			return nil, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err = results.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}

	return &stagedTx{tx: tx}, nil
}

type stagedTx struct {
	tx pgx.Tx
}

func (s *stagedTx) Commit(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *stagedTx) Abort(ctx context.Context) error {
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// buildBatch queues one INSERT per row, parents before children.
func buildBatch(ds *dataset.Dataset) *pgx.Batch {
	b := &pgx.Batch{}
	for _, c := range ds.Customers {
		b.Queue(`INSERT INTO customers VALUES ($1, $2, $3, $4, $5::date, $6, $7)`,
			c.ID, c.FirstName, c.LastName, c.Email, c.SignupDate, c.City, c.Country)
	}
	for _, p := range ds.Products {
		b.Queue(`INSERT INTO products VALUES ($1, $2, $3, $4::numeric, $5::numeric)`,
			p.ID, p.Name, p.Category, p.Price.String(), p.Cost.String())
	}
	for _, o := range ds.Orders {
		b.Queue(`INSERT INTO orders VALUES ($1, $2, $3::date, $4)`,
			o.ID, o.CustomerID, o.OrderDate, string(o.Status))
	}
	for _, it := range ds.OrderItems {
		b.Queue(`INSERT INTO order_items VALUES ($1, $2, $3, $4, $5::numeric)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice.String())
	}
	return b
}
