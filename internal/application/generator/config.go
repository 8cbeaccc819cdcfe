package generator

import (
	"fmt"
	"strings"

	"ecommerce_dataset/internal/domain/dataset"
)

var (
	DefaultFirstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Lisa", "Robert", "Emily", "Chris", "Amanda", "Brian", "Nicole"}
	DefaultLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Wilson", "Moore", "Taylor", "Anderson"}
	DefaultCities     = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose"}

	// DefaultStatusPool weights completed 3/5, shipped 1/5, processing 1/5.
	// Sampling is uniform over the pool, so repeats carry the weight.
	DefaultStatusPool = []dataset.OrderStatus{
		dataset.StatusCompleted,
		dataset.StatusCompleted,
		dataset.StatusCompleted,
		dataset.StatusShipped,
		dataset.StatusProcessing,
	}
)

type Config struct {
	Customers   int
	FirstNames  []string
	LastNames   []string
	Cities      []string
	Country     string
	EmailDomain string

	SignupWindow dataset.DateWindow
	OrderWindow  dataset.DateWindow

	OrdersPerCustomer dataset.Range
	ItemsPerOrder     dataset.Range
	Quantity          dataset.Range

	StatusPool []dataset.OrderStatus
}

func DefaultConfig() Config {
	return Config{
		Customers:   100,
		FirstNames:  append([]string(nil), DefaultFirstNames...),
		LastNames:   append([]string(nil), DefaultLastNames...),
		Cities:      append([]string(nil), DefaultCities...),
		Country:     "USA",
		EmailDomain: "email.com",
		SignupWindow: dataset.DateWindow{
			Start:    dataset.MustDate("2023-01-01"),
			SpanDays: 365,
		},
		OrderWindow: dataset.DateWindow{
			Start:    dataset.MustDate("2024-01-01"),
			SpanDays: 90,
		},
		OrdersPerCustomer: dataset.Range{Low: 1, High: 5},
		ItemsPerOrder:     dataset.Range{Low: 1, High: 4},
		Quantity:          dataset.Range{Low: 1, High: 3},
		StatusPool:        append([]dataset.OrderStatus(nil), DefaultStatusPool...),
	}
}

// Validate rejects configurations the generators cannot satisfy.
func (c Config) Validate() error {
	if c.Customers < 0 {
		return fmt.Errorf("%w: customer count must be >= 0, got %d", dataset.ErrInvalidConfig, c.Customers)
	}
	if strings.TrimSpace(c.Country) == "" {
		return fmt.Errorf("%w: country is empty", dataset.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.EmailDomain) == "" {
		return fmt.Errorf("%w: email domain is empty", dataset.ErrInvalidConfig)
	}

	ranges := []struct {
		name string
		r    dataset.Range
	}{
		{"orders per customer", c.OrdersPerCustomer},
		{"items per order", c.ItemsPerOrder},
		{"quantity", c.Quantity},
	}
	for _, r := range ranges {
		if err := r.r.Validate(); err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
	}

	if err := c.SignupWindow.Validate(); err != nil {
		return fmt.Errorf("signup window: %w", err)
	}
	if err := c.OrderWindow.Validate(); err != nil {
		return fmt.Errorf("order window: %w", err)
	}

	if c.Customers == 0 {
		return nil
	}
	pools := []struct {
		name string
		size int
	}{
		{"first names", len(c.FirstNames)},
		{"last names", len(c.LastNames)},
		{"cities", len(c.Cities)},
		{"status pool", len(c.StatusPool)},
	}
	for _, p := range pools {
		if p.size == 0 {
			return fmt.Errorf("%w: %s pool is empty", dataset.ErrInvalidConfig, p.name)
		}
	}
	return nil
}
