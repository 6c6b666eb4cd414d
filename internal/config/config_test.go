package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "REQUEST_TIMEOUT", "STOCK_MAX", "SEED", "KAFKA_BROKERS", "CATALOG_FILE", "CURRENCY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 50, cfg.StockMax)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.CatalogFile)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("STOCK_MAX", "10")
	t.Setenv("SEED", "42")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CATALOG_FILE", "/etc/shop/catalog.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.StockMax)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "/etc/shop/catalog.yaml", cfg.CatalogFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"REQUEST_TIMEOUT":  "soon",
		"SHUTDOWN_TIMEOUT": "-",
		"STOCK_MAX":        "0",
		"SEED":             "abc",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
