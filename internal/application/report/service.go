package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"

	domain "ecommerce_dataset/internal/domain/report"
	"ecommerce_dataset/internal/domain/repository"
	"ecommerce_dataset/pkg/logger"
)

// ChartRenderer draws a chart spec into an image file.
type ChartRenderer interface {
	Line(path string, spec domain.ChartSpec) error
	Bar(path string, spec domain.ChartSpec) error
	Pie(path string, spec domain.ChartSpec) error
}

type Options struct {
	RecentOrders int
	TopProducts  int
}

type Service struct {
	reader   repository.ReportReader
	renderer ChartRenderer
	log      logger.Logger
	opts     Options
}

func NewService(reader repository.ReportReader, renderer ChartRenderer, log logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.RecentOrders <= 0 {
		opts.RecentOrders = 10
	}
	if opts.TopProducts <= 0 {
		opts.TopProducts = 10
	}
	return &Service{reader: reader, renderer: renderer, log: log, opts: opts}
}

// Overview is the result of the basic analysis queries.
type Overview struct {
	Tables          []domain.TableCount    `json:"tables"`
	CustomersByCity []domain.CityCount     `json:"customers_by_city"`
	ProductMargins  []domain.ProductMargin `json:"product_margins"`
	RecentOrders    []domain.RecentOrder   `json:"recent_orders"`
	TotalRevenue    decimal.Decimal        `json:"total_revenue"`
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var (
		out Overview
		err error
	)
	if out.Tables, err = s.reader.TableCounts(ctx); err != nil {
		return nil, fmt.Errorf("table counts: %w", err)
	}
	if out.CustomersByCity, err = s.reader.CustomersByCity(ctx); err != nil {
		return nil, fmt.Errorf("customers by city: %w", err)
	}
	if out.ProductMargins, err = s.reader.ProductMargins(ctx); err != nil {
		return nil, fmt.Errorf("product margins: %w", err)
	}
	if out.RecentOrders, err = s.reader.RecentOrders(ctx, s.opts.RecentOrders); err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	if out.TotalRevenue, err = s.reader.TotalRevenue(ctx); err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}
	return &out, nil
}

// Chart file names written by Visualize.
const (
	MonthlyRevenueChart    = "monthly_revenue.png"
	TopProductsChart       = "top_products.png"
	CategoryRevenueChart   = "revenue_by_category.png"
	CustomerGeographyChart = "customer_geography.png"
)

// Visuals lists the rendered files and the headline numbers behind them.
type Visuals struct {
	Files          []string                 `json:"files"`
	Monthly        []domain.MonthlyRevenue  `json:"monthly_revenue"`
	TopProducts    []domain.ProductSales    `json:"top_products"`
	Categories     []domain.CategoryRevenue `json:"categories"`
	Geography      []domain.CityCount       `json:"geography"`
	TotalRevenue   decimal.Decimal          `json:"total_revenue"`
	TotalCustomers int64                    `json:"total_customers"`
	TopProduct     string                   `json:"top_product,omitempty"`
	TopCategory    string                   `json:"top_category,omitempty"`
}

// Visualize renders the four standard charts into outDir.
func (s *Service) Visualize(ctx context.Context, outDir string) (*Visuals, error) {
	var (
		v   Visuals
		err error
	)
	if v.Monthly, err = s.reader.MonthlyRevenue(ctx); err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	if v.TopProducts, err = s.reader.TopProducts(ctx, s.opts.TopProducts); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	if v.Categories, err = s.reader.CategoryRevenue(ctx); err != nil {
		return nil, fmt.Errorf("category revenue: %w", err)
	}
	if v.Geography, err = s.reader.CustomersByCity(ctx); err != nil {
		return nil, fmt.Errorf("customer geography: %w", err)
	}

	charts := []struct {
		file string
		draw func(string, domain.ChartSpec) error
		spec domain.ChartSpec
	}{
		{MonthlyRevenueChart, s.renderer.Line, monthlySpec(v.Monthly)},
		{TopProductsChart, s.renderer.Bar, topProductsSpec(v.TopProducts)},
		{CategoryRevenueChart, s.renderer.Pie, categorySpec(v.Categories)},
		{CustomerGeographyChart, s.renderer.Bar, geographySpec(v.Geography)},
	}

	for _, c := range charts {
		path := filepath.Join(outDir, c.file)
		s.log.Info("rendering chart", logger.String("title", c.spec.Title), logger.String("path", path))
		if err := c.draw(path, c.spec); err != nil {
			return nil, fmt.Errorf("render %s: %w", c.spec.Title, err)
		}
		v.Files = append(v.Files, path)
	}

	v.TotalRevenue = decimal.Zero
	for _, m := range v.Monthly {
		v.TotalRevenue = v.TotalRevenue.Add(m.Revenue)
	}
	for _, g := range v.Geography {
		v.TotalCustomers += g.CustomerCount
	}
	if len(v.TopProducts) > 0 {
		v.TopProduct = v.TopProducts[0].ProductName
	}
	if len(v.Categories) > 0 {
		v.TopCategory = v.Categories[0].Category
	}
	return &v, nil
}

func monthlySpec(rows []domain.MonthlyRevenue) domain.ChartSpec {
	spec := domain.ChartSpec{Title: "Monthly Revenue Trend", XLabel: "Month", YLabel: "Revenue ($)", Money: true}
	for _, r := range rows {
		spec.Points = append(spec.Points, domain.Point{Label: r.Month, Value: r.Revenue.InexactFloat64()})
	}
	return spec
}

func topProductsSpec(rows []domain.ProductSales) domain.ChartSpec {
	spec := domain.ChartSpec{Title: "Top Selling Products by Revenue", XLabel: "Product Name", YLabel: "Total Revenue ($)", Money: true}
	for _, r := range rows {
		spec.Points = append(spec.Points, domain.Point{Label: r.ProductName, Value: r.Revenue.InexactFloat64()})
	}
	return spec
}

func categorySpec(rows []domain.CategoryRevenue) domain.ChartSpec {
	spec := domain.ChartSpec{Title: "Revenue Distribution by Product Category", Money: true}
	for _, r := range rows {
		spec.Points = append(spec.Points, domain.Point{Label: r.Category, Value: r.Revenue.InexactFloat64()})
	}
	return spec
}

func geographySpec(rows []domain.CityCount) domain.ChartSpec {
	spec := domain.ChartSpec{Title: "Customer Distribution by City", XLabel: "City", YLabel: "Number of Customers"}
	for _, r := range rows {
		spec.Points = append(spec.Points, domain.Point{Label: r.City, Value: float64(r.CustomerCount)})
	}
	return spec
}
