package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ecommerce_dataset/internal/application/generator"
	"ecommerce_dataset/internal/domain/dataset"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Generator GeneratorConfig
	SQLite    SQLiteConfig
	DB        PostgresConfig
	Kafka     KafkaConfig
	Report    ReportConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

type GeneratorConfig struct {
	Seed              uint64
	Customers         int
	OrdersPerCustomer dataset.Range
	ItemsPerOrder     dataset.Range
	Quantity          dataset.Range
	SignupStart       time.Time
	SignupSpanDays    int
	OrderStart        time.Time
	OrderSpanDays     int
	Country           string
	EmailDomain       string
}

type SQLiteConfig struct {
	Path string
}

type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
}

type ReportConfig struct {
	OutputDir   string
	TopProducts int
	RecentLimit int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []string
	rangeVal := func(key, def string) dataset.Range {
		r, err := parseRange(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return r
	}
	// Generator keys reject malformed values instead of using the default.
	intVal := func(key string, def int) int {
		raw, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(raw) == "" {
			return def
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: not an integer: %q", key, raw))
			return def
		}
		return n
	}
	seedVal := func(key string) uint64 {
		raw, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(raw) == "" {
			return 0
		}
		n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: not an unsigned integer: %q", key, raw))
			return 0
		}
		return n
	}
	dateVal := func(key, def string) time.Time {
		t, err := time.Parse(dataset.DateLayout, getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return t
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "ecommerce_dataset"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8030),
		},
		Generator: GeneratorConfig{
			Seed:              seedVal("GEN_SEED"),
			Customers:         intVal("GEN_CUSTOMERS", 100),
			OrdersPerCustomer: rangeVal("GEN_ORDERS_PER_CUSTOMER", "1-5"),
			ItemsPerOrder:     rangeVal("GEN_ITEMS_PER_ORDER", "1-4"),
			Quantity:          rangeVal("GEN_QUANTITY", "1-3"),
			SignupStart:       dateVal("GEN_SIGNUP_START", "2023-01-01"),
			SignupSpanDays:    intVal("GEN_SIGNUP_SPAN_DAYS", 365),
			OrderStart:        dateVal("GEN_ORDER_START", "2024-01-01"),
			OrderSpanDays:     intVal("GEN_ORDER_SPAN_DAYS", 90),
			Country:           getEnv("GEN_COUNTRY", "USA"),
			EmailDomain:       getEnv("GEN_EMAIL_DOMAIN", "email.com"),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "databases/ecommerce.db"),
		},
		DB: PostgresConfig{
			Enabled:  getEnvAsBool("STORE_POSTGRES_ENABLED", false),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 4),
		},
		Kafka: KafkaConfig{
			Brokers:    splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")),
			OrderTopic: getEnv("KAFKA_ORDER_TOPIC", "ecommerce_orders"),
		},
		Report: ReportConfig{
			OutputDir:   getEnv("REPORT_OUTPUT_DIR", "visualisations"),
			TopProducts: getEnvAsInt("REPORT_TOP_PRODUCTS", 10),
			RecentLimit: getEnvAsInt("REPORT_RECENT_ORDERS", 10),
		},
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("%w: %s", dataset.ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// ToGeneratorConfig overlays the env settings on generator.DefaultConfig.
func (g GeneratorConfig) ToGeneratorConfig() generator.Config {
	cfg := generator.DefaultConfig()
	cfg.Customers = g.Customers
	cfg.OrdersPerCustomer = g.OrdersPerCustomer
	cfg.ItemsPerOrder = g.ItemsPerOrder
	cfg.Quantity = g.Quantity
	cfg.SignupWindow = dataset.DateWindow{Start: g.SignupStart, SpanDays: g.SignupSpanDays}
	cfg.OrderWindow = dataset.DateWindow{Start: g.OrderStart, SpanDays: g.OrderSpanDays}
	cfg.Country = g.Country
	cfg.EmailDomain = g.EmailDomain
	return cfg
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("%w: HTTP_PORT is invalid", dataset.ErrInvalidConfig)
	}
	if c.SQLite.Path == "" {
		return fmt.Errorf("%w: SQLITE_PATH is empty", dataset.ErrInvalidConfig)
	}
	if c.DB.Enabled && (c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "") {
		return fmt.Errorf("%w: postgres config is incomplete", dataset.ErrInvalidConfig)
	}
	if c.Report.TopProducts <= 0 || c.Report.RecentLimit <= 0 {
		return fmt.Errorf("%w: report limits must be positive", dataset.ErrInvalidConfig)
	}
	return c.Generator.ToGeneratorConfig().Validate()
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}

// parseRange accepts "lo-hi" or a single "n" meaning "n-n".
func parseRange(raw string) (dataset.Range, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(raw), "-")
	if !found {
		hi = lo
	}
	low, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return dataset.Range{}, fmt.Errorf("parse range %q: %w", raw, err)
	}
	high, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return dataset.Range{}, fmt.Errorf("parse range %q: %w", raw, err)
	}
	return dataset.NewRange(low, high)
}
