package dataset

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var catalogRows = []struct {
	id       int64
	name     string
	category string
	price    string
	cost     string
}{
	{1, "Laptop", "Electronics", "999.99", "650.00"},
	{2, "Smartphone", "Electronics", "699.99", "450.00"},
	{3, "Headphones", "Electronics", "149.99", "80.00"},
	{4, "Desk Chair", "Furniture", "199.99", "120.00"},
	{5, "Coffee Maker", "Home Appliances", "79.99", "45.00"},
	{6, "Water Bottle", "Sports", "24.99", "12.00"},
	{7, "Backpack", "Fashion", "59.99", "35.00"},
	{8, "Book: Data Science", "Books", "49.99", "25.00"},
	{9, "Monitor", "Electronics", "299.99", "180.00"},
	{10, "Keyboard", "Electronics", "89.99", "50.00"},
}

// DefaultCatalog returns a fresh copy of the fixed product catalog.
func DefaultCatalog() []Product {
	out := make([]Product, 0, len(catalogRows))
	for _, r := range catalogRows {
		out = append(out, Product{
			ID:       r.id,
			Name:     r.name,
			Category: r.category,
			Price:    decimal.RequireFromString(r.price),
			Cost:     decimal.RequireFromString(r.cost),
		})
	}
	return out
}

func ValidateCatalog(products []Product) error {
	if len(products) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrInvalidCatalog)
	}
	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %d", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = struct{}{}
		if _, err := NewProduct(p.ID, p.Name, p.Category, p.Price, p.Cost); err != nil {
			return err
		}
	}
	return nil
}
