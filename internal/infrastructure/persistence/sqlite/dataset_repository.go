package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ecommerce_dataset/internal/domain/dataset"
	"ecommerce_dataset/internal/domain/repository"
)

// DatasetRepository recreates the database file at path for each dataset.
type DatasetRepository struct {
	path string
}

func NewDatasetRepository(path string) *DatasetRepository {
	return &DatasetRepository{path: path}
}

func (r *DatasetRepository) Path() string {
	return r.path
}

// Replace builds the database next to the target path and renames it into
// place once the transaction has committed. On failure the previous file is
// left as it was.
func (r *DatasetRepository) Replace(ctx context.Context, ds *dataset.Dataset) error {
	p, err := r.Stage(ctx, ds)
	if err != nil {
		return err
	}
	return p.Commit(ctx)
}

// Stage writes ds into <path>.tmp. The target file is only touched by Commit.
func (r *DatasetRepository) Stage(ctx context.Context, ds *dataset.Dataset) (repository.PendingWrite, error) {
	if err := ds.Verify(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create directory %s: %v", dataset.ErrStorageUnavailable, dir, err)
	}

	tmp := r.path + ".tmp"
	if err := removeIfExists(tmp); err != nil {
		return nil, fmt.Errorf("%w: %v", dataset.ErrStorageUnavailable, err)
	}

	if err := r.build(ctx, tmp, ds); err != nil {
		_ = removeIfExists(tmp)
		return nil, err
	}
	return &stagedFile{tmp: tmp, path: r.path}, nil
}

// stagedFile is a complete database waiting to be renamed over path.
type stagedFile struct {
	tmp  string
	path string
}

func (f *stagedFile) Commit(_ context.Context) error {
	if err := os.Rename(f.tmp, f.path); err != nil {
		_ = removeIfExists(f.tmp)
		return fmt.Errorf("%w: replace %s: %v", dataset.ErrStorageUnavailable, f.path, err)
	}
	return nil
}

func (f *stagedFile) Abort(_ context.Context) error {
	return removeIfExists(f.tmp)
}

func (r *DatasetRepository) build(ctx context.Context, path string, ds *dataset.Dataset) (err error) {
	db, err := Open(path, false)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}()
	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range schemaStatements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	if err = insertCustomers(ctx, tx, ds.Customers); err != nil {
		return err
	}
	if err = insertProducts(ctx, tx, ds.Products); err != nil {
		return err
	}
	if err = insertOrders(ctx, tx, ds.Orders); err != nil {
		return err
	}
	if err = insertOrderItems(ctx, tx, ds.OrderItems); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// insertMany runs one prepared statement for every row.
func insertMany(ctx context.Context, tx *sql.Tx, table, query string, n int, args func(i int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i+1, err)
		}
	}
	return nil
}

func insertCustomers(ctx context.Context, tx *sql.Tx, rows []dataset.Customer) error {
	return insertMany(ctx, tx, "customers",
		`INSERT INTO customers VALUES (?, ?, ?, ?, ?, ?, ?)`,
		len(rows), func(i int) []any {
			c := rows[i]
			return []any{c.ID, c.FirstName, c.LastName, c.Email, c.SignupDate, c.City, c.Country}
		})
}

func insertProducts(ctx context.Context, tx *sql.Tx, rows []dataset.Product) error {
	return insertMany(ctx, tx, "products",
		`INSERT INTO products VALUES (?, ?, ?, ?, ?)`,
		len(rows), func(i int) []any {
			p := rows[i]
			return []any{p.ID, p.Name, p.Category, p.Price, p.Cost}
		})
}

func insertOrders(ctx context.Context, tx *sql.Tx, rows []dataset.Order) error {
	return insertMany(ctx, tx, "orders",
		`INSERT INTO orders VALUES (?, ?, ?, ?)`,
		len(rows), func(i int) []any {
			o := rows[i]
			return []any{o.ID, o.CustomerID, o.OrderDate, string(o.Status)}
		})
}

func insertOrderItems(ctx context.Context, tx *sql.Tx, rows []dataset.OrderItem) error {
	return insertMany(ctx, tx, "order_items",
		`INSERT INTO order_items VALUES (?, ?, ?, ?, ?)`,
		len(rows), func(i int) []any {
			it := rows[i]
			return []any{it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice}
		})
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
