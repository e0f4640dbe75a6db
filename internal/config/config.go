// Package config loads the storefront configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/zahrafashion/storefront/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB   string `env:"POSTGRES_DB_NAME" envDefault:"storefront_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Rate oracle (RajaOngkir-compatible API)
	RajaOngkirBaseURL  string `env:"RAJAONGKIR_BASE_URL" envDefault:"https://rajaongkir.komerce.id/api/v1"`
	RajaOngkirAPIKey   string `env:"RAJAONGKIR_API_KEY"`
	RajaOngkirOriginID string `env:"RAJAONGKIR_ORIGIN_ID" envDefault:"2425"`
	RajaOngkirTimeout  int    `env:"RAJAONGKIR_TIMEOUT_SECONDS" envDefault:"10"`

	// Session and cache lifetimes
	CartTTLHours      int `env:"CART_TTL_HOURS" envDefault:"168"`
	CheckoutTTLHours  int `env:"CHECKOUT_TTL_HOURS" envDefault:"2"`
	ShippingCacheDays int `env:"SHIPPING_CACHE_DAYS" envDefault:"30"`

	// Auth
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"24"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresUser == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.RajaOngkirBaseURL == "" {
		return fmt.Errorf("RAJAONGKIR_BASE_URL is required")
	}
	if _, err := url.ParseRequestURI(c.RajaOngkirBaseURL); err != nil {
		return fmt.Errorf("invalid RAJAONGKIR_BASE_URL %q: %w", c.RajaOngkirBaseURL, err)
	}
	if c.RajaOngkirOriginID == "" {
		return fmt.Errorf("RAJAONGKIR_ORIGIN_ID is required")
	}
	if c.ShippingCacheDays < 1 {
		return fmt.Errorf("SHIPPING_CACHE_DAYS must be at least 1, got %d", c.ShippingCacheDays)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}

// CartTTL returns the cart lifetime as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// CheckoutTTL returns the checkout session lifetime as a duration.
func (c *Config) CheckoutTTL() time.Duration {
	return time.Duration(c.CheckoutTTLHours) * time.Hour
}

// ShippingCacheTTL returns the rate cache lifetime as a duration.
func (c *Config) ShippingCacheTTL() time.Duration {
	return time.Duration(c.ShippingCacheDays) * 24 * time.Hour
}

// RajaOngkirRequestTimeout returns the oracle request timeout as a duration.
func (c *Config) RajaOngkirRequestTimeout() time.Duration {
	return time.Duration(c.RajaOngkirTimeout) * time.Second
}
