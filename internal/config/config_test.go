package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "2425", cfg.RajaOngkirOriginID)
	assert.Equal(t, 30*24*time.Hour, cfg.ShippingCacheTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.CartTTL())
	assert.Equal(t, 2*time.Hour, cfg.CheckoutTTL())
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("SHIPPING_CACHE_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 7*24*time.Hour, cfg.ShippingCacheTTL())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "99999")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad oracle url", func(t *testing.T) {
		t.Setenv("RAJAONGKIR_BASE_URL", "not a url")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("zero cache ttl", func(t *testing.T) {
		t.Setenv("SHIPPING_CACHE_DAYS", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db",
		PostgresPort: 5432,
		PostgresUser: "storefront",
		PostgresPass: "s3cret",
		PostgresDB:   "storefront_db",
		PostgresSSL:  "disable",
	}
	assert.Equal(t, "postgres://storefront:s3cret@db:5432/storefront_db?sslmode=disable", cfg.PostgresDSN())
}
