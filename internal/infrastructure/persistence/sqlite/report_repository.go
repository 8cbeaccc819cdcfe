package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"ecommerce_dataset/internal/domain/dataset"
	"ecommerce_dataset/internal/domain/report"
)

// Date columns are selected through date() so the driver hands back the
// stored YYYY-MM-DD text instead of a parsed time.Time.
const (
	customersByCityQuery = `
		SELECT city, COUNT(*) AS customer_count
		FROM customers
		GROUP BY city
		ORDER BY customer_count DESC, city ASC;
	`

	productMarginsQuery = `
		SELECT
			product_name,
			category,
			price,
			cost,
			ROUND(price - cost, 2) AS profit,
			ROUND((price - cost) / price * 100, 2) AS profit_percentage
		FROM products
		ORDER BY profit_percentage DESC, product_id ASC;
	`

	recentOrdersQuery = `
		SELECT
			o.order_id,
			date(o.order_date) AS order_date,
			c.first_name || ' ' || c.last_name AS customer_name,
			o.status
		FROM orders o
		JOIN customers c ON o.customer_id = c.customer_id
		ORDER BY o.order_date DESC, o.order_id DESC
		LIMIT ?;
	`

	totalRevenueQuery = `
		SELECT COALESCE(ROUND(SUM(oi.unit_price * oi.quantity), 2), 0) AS total_revenue
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.order_id
		WHERE o.status = ?;
	`

	monthlyRevenueQuery = `
		SELECT
			strftime('%Y-%m', o.order_date) AS month,
			ROUND(SUM(oi.quantity * oi.unit_price), 2) AS monthly_revenue
		FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		WHERE o.status = ?
		GROUP BY month
		ORDER BY month;
	`

	topProductsQuery = `
		SELECT
			p.product_name,
			p.category,
			SUM(oi.quantity) AS total_quantity_sold,
			ROUND(SUM(oi.quantity * oi.unit_price), 2) AS total_revenue
		FROM products p
		JOIN order_items oi ON p.product_id = oi.product_id
		JOIN orders o ON oi.order_id = o.order_id
		WHERE o.status = ?
		GROUP BY p.product_id
		ORDER BY total_revenue DESC
		LIMIT ?;
	`

	categoryRevenueQuery = `
		SELECT
			p.category,
			ROUND(SUM(oi.quantity * oi.unit_price), 2) AS total_revenue
		FROM products p
		JOIN order_items oi ON p.product_id = oi.product_id
		JOIN orders o ON oi.order_id = o.order_id
		WHERE o.status = ?
		GROUP BY p.category
		ORDER BY total_revenue DESC;
	`

	listTablesQuery = `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY rowid;
	`

	listOrdersQuery = `
		SELECT order_id, customer_id, date(order_date), status
		FROM orders
		ORDER BY order_id;
	`

	listOrderItemsQuery = `
		SELECT order_item_id, order_id, product_id, quantity, unit_price
		FROM order_items
		ORDER BY order_item_id;
	`
)

// ReportRepository runs the analytical queries against a database handle.
type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) TableCounts(ctx context.Context) ([]report.TableCount, error) {
	names, err := queryRows(ctx, r.db, listTablesQuery, nil, func(rows *sql.Rows) (string, error) {
		var name string
		err := rows.Scan(&name)
		return name, err
	})
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	counts := make([]report.TableCount, 0, len(names))
	for _, name := range names {
		var n int64
		// name comes from sqlite_master, not from user input.
		q := fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, name)
		if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		counts = append(counts, report.TableCount{Table: name, Rows: n})
	}
	return counts, nil
}

func (r *ReportRepository) CustomersByCity(ctx context.Context) ([]report.CityCount, error) {
	return queryRows(ctx, r.db, customersByCityQuery, nil, func(rows *sql.Rows) (report.CityCount, error) {
		var c report.CityCount
		err := rows.Scan(&c.City, &c.CustomerCount)
		return c, err
	})
}

func (r *ReportRepository) ProductMargins(ctx context.Context) ([]report.ProductMargin, error) {
	return queryRows(ctx, r.db, productMarginsQuery, nil, func(rows *sql.Rows) (report.ProductMargin, error) {
		var m report.ProductMargin
		err := rows.Scan(&m.ProductName, &m.Category, &m.Price, &m.Cost, &m.Profit, &m.ProfitPercent)
		return m, err
	})
}

func (r *ReportRepository) RecentOrders(ctx context.Context, limit int) ([]report.RecentOrder, error) {
	return queryRows(ctx, r.db, recentOrdersQuery, []any{limit}, func(rows *sql.Rows) (report.RecentOrder, error) {
		var o report.RecentOrder
		err := rows.Scan(&o.OrderID, &o.OrderDate, &o.CustomerName, &o.Status)
		return o, err
	})
}

// TotalRevenue sums completed order items.
func (r *ReportRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, totalRevenueQuery, string(dataset.StatusCompleted)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total revenue: %w", err)
	}
	return total, nil
}

func (r *ReportRepository) MonthlyRevenue(ctx context.Context) ([]report.MonthlyRevenue, error) {
	return queryRows(ctx, r.db, monthlyRevenueQuery, []any{string(dataset.StatusCompleted)},
		func(rows *sql.Rows) (report.MonthlyRevenue, error) {
			var m report.MonthlyRevenue
			err := rows.Scan(&m.Month, &m.Revenue)
			return m, err
		})
}

func (r *ReportRepository) TopProducts(ctx context.Context, limit int) ([]report.ProductSales, error) {
	return queryRows(ctx, r.db, topProductsQuery, []any{string(dataset.StatusCompleted), limit},
		func(rows *sql.Rows) (report.ProductSales, error) {
			var p report.ProductSales
			err := rows.Scan(&p.ProductName, &p.Category, &p.QuantitySold, &p.Revenue)
			return p, err
		})
}

func (r *ReportRepository) CategoryRevenue(ctx context.Context) ([]report.CategoryRevenue, error) {
	return queryRows(ctx, r.db, categoryRevenueQuery, []any{string(dataset.StatusCompleted)},
		func(rows *sql.Rows) (report.CategoryRevenue, error) {
			var c report.CategoryRevenue
			err := rows.Scan(&c.Category, &c.Revenue)
			return c, err
		})
}

// ListOrders reads every order with its items in id order.
func (r *ReportRepository) ListOrders(ctx context.Context) ([]dataset.PlacedOrder, error) {
	orders, err := queryRows(ctx, r.db, listOrdersQuery, nil, func(rows *sql.Rows) (dataset.PlacedOrder, error) {
		var o dataset.PlacedOrder
		var status string
		err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &status)
		o.Status = dataset.OrderStatus(status)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	items, err := queryRows(ctx, r.db, listOrderItemsQuery, nil, func(rows *sql.Rows) (dataset.OrderItem, error) {
		var it dataset.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		index[o.ID] = i
	}
	for _, it := range items {
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return orders, nil
}

func queryRows[T any](ctx context.Context, db *sql.DB, query string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
