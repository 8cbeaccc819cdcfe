package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce_dataset/internal/domain/dataset"
)

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name   string
		server ServerConfig
		want   string
	}{
		{
			name:   "localhost default port",
			server: ServerConfig{Host: "localhost", Port: 8030},
			want:   "localhost:8030",
		},
		{
			name:   "bind all interfaces",
			server: ServerConfig{Host: "0.0.0.0", Port: 8080},
			want:   "0.0.0.0:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.server.Address())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Generator.Customers)
	assert.Equal(t, dataset.Range{Low: 1, High: 5}, cfg.Generator.OrdersPerCustomer)
	assert.Equal(t, dataset.Range{Low: 1, High: 4}, cfg.Generator.ItemsPerOrder)
	assert.Equal(t, dataset.Range{Low: 1, High: 3}, cfg.Generator.Quantity)
	assert.Equal(t, "2023-01-01", dataset.FormatDate(cfg.Generator.SignupStart))
	assert.Equal(t, "databases/ecommerce.db", cfg.SQLite.Path)
	assert.False(t, cfg.DB.Enabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GEN_CUSTOMERS", "5")
	t.Setenv("GEN_ORDERS_PER_CUSTOMER", "1")
	t.Setenv("GEN_ITEMS_PER_ORDER", "2-2")
	t.Setenv("GEN_SEED", "77")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "a:9092, b:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	gen := cfg.Generator.ToGeneratorConfig()
	assert.Equal(t, 5, gen.Customers)
	assert.Equal(t, dataset.Range{Low: 1, High: 1}, gen.OrdersPerCustomer)
	assert.Equal(t, dataset.Range{Low: 2, High: 2}, gen.ItemsPerOrder)
	assert.Equal(t, uint64(77), cfg.Generator.Seed)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_InvalidRange(t *testing.T) {
	t.Setenv("GEN_ITEMS_PER_ORDER", "4-1")

	_, err := Load()

	assert.ErrorIs(t, err, dataset.ErrInvalidConfig)
}

func TestLoad_MalformedGeneratorNumbers(t *testing.T) {
	cases := map[string]string{
		"GEN_SEED":             "not-a-number",
		"GEN_CUSTOMERS":        "1O0",
		"GEN_SIGNUP_SPAN_DAYS": "a year",
		"GEN_ORDER_SPAN_DAYS":  "90d",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := Load()

			require.Error(t, err)
			assert.ErrorIs(t, err, dataset.ErrInvalidConfig)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_NegativeSeedRejected(t *testing.T) {
	t.Setenv("GEN_SEED", "-1")

	_, err := Load()

	assert.ErrorIs(t, err, dataset.ErrInvalidConfig)
}

func TestLoad_InvalidDate(t *testing.T) {
	t.Setenv("GEN_ORDER_START", "2024/01/01")

	_, err := Load()

	assert.ErrorIs(t, err, dataset.ErrInvalidConfig)
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{User: "u", Password: "p", Host: "db", Port: 5432, DBName: "shop", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@db:5432/shop?sslmode=disable", p.DSN())
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		raw     string
		want    dataset.Range
		wantErr bool
	}{
		{raw: "1-5", want: dataset.Range{Low: 1, High: 5}},
		{raw: " 2 - 3 ", want: dataset.Range{Low: 2, High: 3}},
		{raw: "4", want: dataset.Range{Low: 4, High: 4}},
		{raw: "x-2", wantErr: true},
		{raw: "0-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseRange(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
