package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Port string
	}
	Postgres struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}
	Checkout struct {
		TaxRate      decimal.Decimal
		DiscountRate decimal.Decimal
		MaxQuantity  int
		NoteLimit    int
	}
	Client struct {
		BaseURL string
		Timeout time.Duration
	}
	MigrationsPath string
	SeedDemo       bool
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. Missing connection settings are fatal; tunables fall back to
// their defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = getEnv("APP_PORT", "8080")

	cfg.Postgres.Host = mustEnv("DB_HOST")
	cfg.Postgres.Port = mustEnv("DB_PORT")
	cfg.Postgres.User = mustEnv("DB_USER")
	cfg.Postgres.Password = mustEnv("DB_PASSWORD")
	cfg.Postgres.DBName = mustEnv("DB_NAME")
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = mustEnv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = intEnv("REDIS_DB", 0)

	cfg.Auth.JWTSecret = mustEnv("JWT_SECRET")
	cfg.Auth.TokenTTL = durationEnv("TOKEN_TTL", 24*time.Hour)

	cfg.Checkout.TaxRate = decimalEnv("CHECKOUT_TAX_RATE", "0.08")
	cfg.Checkout.DiscountRate = decimalEnv("CHECKOUT_DISCOUNT_RATE", "0")
	cfg.Checkout.MaxQuantity = intEnv("CHECKOUT_MAX_QUANTITY", 0)
	cfg.Checkout.NoteLimit = intEnv("CHECKOUT_NOTE_LIMIT", 500)

	cfg.Client.BaseURL = getEnv("CLIENT_BASE_URL", "http://localhost:"+cfg.App.Port)
	cfg.Client.Timeout = durationEnv("CLIENT_TIMEOUT", 10*time.Second)

	cfg.MigrationsPath = getEnv("MIGRATIONS_PATH", "migrations")
	cfg.SeedDemo = boolEnv("SEED_DEMO", false)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s is required", key)
	}

	return value
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}

	return value
}

func boolEnv(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("%s must be a boolean: %v", key, err)
	}

	return value
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s must be a duration: %v", key, err)
	}

	return value
}

func decimalEnv(key, fallback string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("%s must be a decimal: %v", key, err)
	}

	return value
}
