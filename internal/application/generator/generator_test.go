package generator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce_dataset/internal/domain/dataset"
)

func threeProducts() []dataset.Product {
	return []dataset.Product{
		{ID: 1, Name: "Laptop", Category: "Electronics", Price: decimal.RequireFromString("999.99"), Cost: decimal.RequireFromString("650.00")},
		{ID: 2, Name: "Backpack", Category: "Fashion", Price: decimal.RequireFromString("59.99"), Cost: decimal.RequireFromString("35.00")},
		{ID: 3, Name: "Keyboard", Category: "Electronics", Price: decimal.RequireFromString("89.99"), Cost: decimal.RequireFromString("50.00")},
	}
}

func TestGenerate_DefaultConfigInvariants(t *testing.T) {
	cfg := DefaultConfig()
	rng, _ := NewSource(42)

	ds, err := Generate(cfg, dataset.DefaultCatalog(), rng)
	require.NoError(t, err)
	require.NoError(t, ds.Verify())

	assert.Len(t, ds.Customers, 100)
	assert.Len(t, ds.Products, 10)

	emails := make(map[string]bool)
	for i, c := range ds.Customers {
		assert.Equal(t, int64(i+1), c.ID)
		assert.False(t, emails[c.Email], "duplicate email %s", c.Email)
		emails[c.Email] = true
		assert.Equal(t, "USA", c.Country)
		assert.True(t, cfg.SignupWindow.Contains(c.SignupDate), "signup %s outside window", c.SignupDate)
	}

	ordersPerCustomer := make(map[int64]int)
	for _, o := range ds.Orders {
		ordersPerCustomer[o.CustomerID]++
		assert.True(t, cfg.OrderWindow.Contains(o.OrderDate), "order date %s outside window", o.OrderDate)
		assert.Contains(t, []dataset.OrderStatus{dataset.StatusCompleted, dataset.StatusShipped, dataset.StatusProcessing}, o.Status)
	}
	for _, c := range ds.Customers {
		assert.True(t, cfg.OrdersPerCustomer.Contains(ordersPerCustomer[c.ID]),
			"customer %d has %d orders", c.ID, ordersPerCustomer[c.ID])
	}

	itemsPerOrder := make(map[int64]int)
	for _, it := range ds.OrderItems {
		itemsPerOrder[it.OrderID]++
		assert.True(t, cfg.Quantity.Contains(it.Quantity))
	}
	for _, o := range ds.Orders {
		assert.True(t, cfg.ItemsPerOrder.Contains(itemsPerOrder[o.ID]),
			"order %d has %d items", o.ID, itemsPerOrder[o.ID])
	}
}

func TestGenerate_IDsStrictlyIncreasing(t *testing.T) {
	rng, _ := NewSource(7)
	ds, err := Generate(DefaultConfig(), dataset.DefaultCatalog(), rng)
	require.NoError(t, err)

	for i, o := range ds.Orders {
		assert.Equal(t, int64(i+1), o.ID)
	}
	for i, it := range ds.OrderItems {
		assert.Equal(t, int64(i+1), it.ID)
	}
}

func TestGenerate_SameSeedSameOutput(t *testing.T) {
	cfg := DefaultConfig()

	rngA, _ := NewSource(2024)
	a, err := Generate(cfg, dataset.DefaultCatalog(), rngA)
	require.NoError(t, err)

	rngB, _ := NewSource(2024)
	b, err := Generate(cfg, dataset.DefaultCatalog(), rngB)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_DifferentSeedsDiverge(t *testing.T) {
	rngA, _ := NewSource(1)
	a, err := Generate(DefaultConfig(), dataset.DefaultCatalog(), rngA)
	require.NoError(t, err)

	rngB, _ := NewSource(2)
	b, err := Generate(DefaultConfig(), dataset.DefaultCatalog(), rngB)
	require.NoError(t, err)

	assert.NotEqual(t, a.Customers, b.Customers)
}

func TestNewSource_ZeroSeedIsReplaced(t *testing.T) {
	rng, seed := NewSource(0)
	assert.NotNil(t, rng)
	assert.NotZero(t, seed)
}

func TestGenerateOrdersAndItems_FixedCardinality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Customers = 5
	cfg.OrdersPerCustomer = dataset.Range{Low: 1, High: 1}
	cfg.ItemsPerOrder = dataset.Range{Low: 2, High: 2}
	products := threeProducts()
	rng, _ := NewSource(99)

	customers := GenerateCustomers(cfg, rng)
	orders, items := GenerateOrdersAndItems(customers, products, cfg, rng)

	require.Len(t, orders, 5)
	require.Len(t, items, 10)

	for i, o := range orders {
		assert.Equal(t, int64(i+1), o.ID)
		assert.Equal(t, customers[i].ID, o.CustomerID)
	}

	prices := map[string]bool{}
	for _, p := range products {
		prices[p.Price.String()] = true
	}
	for i, it := range items {
		assert.Equal(t, int64(i+1), it.ID)
		assert.Equal(t, orders[i/2].ID, it.OrderID)
		assert.True(t, prices[it.UnitPrice.String()], "unit price %s not in catalog", it.UnitPrice)
	}
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		name string
		n    int
		per  int
		want int
	}{
		{"product", 5, 2, 10},
		{"no customers", 0, 4, 0},
		{"wide range is capped", 100, 1 << 40, 1 << 20},
		{"would overflow int", 1 << 40, 1 << 40, 1 << 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capacity(tt.n, tt.per))
		})
	}
}

func TestDefaultStatusPool_Weights(t *testing.T) {
	assert.Equal(t, []dataset.OrderStatus{
		dataset.StatusCompleted,
		dataset.StatusCompleted,
		dataset.StatusCompleted,
		dataset.StatusShipped,
		dataset.StatusProcessing,
	}, DefaultStatusPool)
}

func TestGenerate_StatusFrequencies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Customers = 2000
	rng, _ := NewSource(2024)

	ds, err := Generate(cfg, threeProducts(), rng)
	require.NoError(t, err)

	counts := map[dataset.OrderStatus]int{}
	for _, o := range ds.Orders {
		counts[o.Status]++
	}
	total := float64(len(ds.Orders))
	require.Greater(t, total, 1000.0)

	assert.InDelta(t, 0.6, float64(counts[dataset.StatusCompleted])/total, 0.05)
	assert.InDelta(t, 0.2, float64(counts[dataset.StatusShipped])/total, 0.05)
	assert.InDelta(t, 0.2, float64(counts[dataset.StatusProcessing])/total, 0.05)
	assert.Len(t, counts, 3)
}

func TestGenerateOrdersAndItems_NoCustomers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Customers = 0
	rng, _ := NewSource(1)

	ds, err := Generate(cfg, threeProducts(), rng)
	require.NoError(t, err)

	assert.Empty(t, ds.Customers)
	assert.NotNil(t, ds.Orders)
	assert.Empty(t, ds.Orders)
	assert.NotNil(t, ds.OrderItems)
	assert.Empty(t, ds.OrderItems)
}

func TestGenerateOrdersAndItems_UnitPriceIsSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Customers = 3
	products := threeProducts()
	rng, _ := NewSource(5)

	customers := GenerateCustomers(cfg, rng)
	_, items := GenerateOrdersAndItems(customers, products, cfg, rng)
	require.NotEmpty(t, items)

	original := make(map[int64]decimal.Decimal)
	for _, p := range products {
		original[p.ID] = p.Price
	}
	for i := range products {
		products[i].Price = products[i].Price.Mul(decimal.NewFromInt(2))
	}

	for _, it := range items {
		assert.True(t, it.UnitPrice.Equal(original[it.ProductID]),
			"item %d price %s changed after catalog update", it.ID, it.UnitPrice)
	}
}

func TestGenerateCustomers_EmailCollision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Customers = 2
	cfg.FirstNames = []string{"John"}
	cfg.LastNames = []string{"Smith"}
	rng, _ := NewSource(3)

	customers := GenerateCustomers(cfg, rng)

	require.Len(t, customers, 2)
	assert.Equal(t, "john.smith@email.com", customers[0].Email)
	assert.Equal(t, "john.smith1@email.com", customers[1].Email)
}

func TestGenerateCustomers_ManyCollisionsStayUnique(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Customers = 50
	cfg.FirstNames = []string{"Ann"}
	cfg.LastNames = []string{"Lee"}
	rng, _ := NewSource(3)

	customers := GenerateCustomers(cfg, rng)

	assert.Equal(t, "ann.lee@email.com", customers[0].Email)
	assert.Equal(t, "ann.lee49@email.com", customers[49].Email)
	seen := map[string]bool{}
	for _, c := range customers {
		assert.False(t, seen[c.Email])
		seen[c.Email] = true
	}
}

func TestEmailRegistry_SuffixSkipsIssuedAddresses(t *testing.T) {
	r := newEmailRegistry("email.com")
	r.used["jane.doe1@email.com"] = struct{}{}

	assert.Equal(t, "jane.doe@email.com", r.issue("Jane", "Doe"))
	assert.Equal(t, "jane.doe2@email.com", r.issue("JANE", "doe"))
}

func TestGenerate_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		catalog []dataset.Product
		wantErr error
	}{
		{
			name:    "inverted orders range",
			mutate:  func(c *Config) { c.OrdersPerCustomer = dataset.Range{Low: 3, High: 1} },
			catalog: threeProducts(),
			wantErr: dataset.ErrInvalidConfig,
		},
		{
			name:    "zero items low",
			mutate:  func(c *Config) { c.ItemsPerOrder = dataset.Range{Low: 0, High: 2} },
			catalog: threeProducts(),
			wantErr: dataset.ErrInvalidConfig,
		},
		{
			name:    "negative customers",
			mutate:  func(c *Config) { c.Customers = -1 },
			catalog: threeProducts(),
			wantErr: dataset.ErrInvalidConfig,
		},
		{
			name:    "empty city pool",
			mutate:  func(c *Config) { c.Cities = nil },
			catalog: threeProducts(),
			wantErr: dataset.ErrInvalidConfig,
		},
		{
			name:    "negative signup span",
			mutate:  func(c *Config) { c.SignupWindow.SpanDays = -1 },
			catalog: threeProducts(),
			wantErr: dataset.ErrInvalidConfig,
		},
		{
			name:    "empty catalog",
			mutate:  func(c *Config) {},
			catalog: nil,
			wantErr: dataset.ErrInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			rng, _ := NewSource(1)

			ds, err := Generate(cfg, tt.catalog, rng)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, ds)
		})
	}
}

func TestConfig_EmptyPoolsAllowedWithoutCustomers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Customers = 0
	cfg.FirstNames = nil
	cfg.LastNames = nil

	assert.NoError(t, cfg.Validate())
}
