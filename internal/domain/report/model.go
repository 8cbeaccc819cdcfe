// Package report holds the read models returned by analytical queries.
package report

import "github.com/shopspring/decimal"

type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

type CityCount struct {
	City          string `json:"city"`
	CustomerCount int64  `json:"customer_count"`
}

type ProductMargin struct {
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitPercent decimal.Decimal `json:"profit_percentage"`
}

type RecentOrder struct {
	OrderID      int64  `json:"order_id"`
	OrderDate    string `json:"order_date"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
}

type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"monthly_revenue"`
}

type ProductSales struct {
	ProductName  string          `json:"product_name"`
	Category     string          `json:"category"`
	QuantitySold int64           `json:"total_quantity_sold"`
	Revenue      decimal.Decimal `json:"total_revenue"`
}

type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"total_revenue"`
}

// Point is one labelled value on a chart.
type Point struct {
	Label string
	Value float64
}

// ChartSpec describes a chart independently of the rendering backend.
type ChartSpec struct {
	Title  string
	XLabel string
	YLabel string
	Points []Point
	// Money formats value labels as whole dollars.
	Money bool
}
