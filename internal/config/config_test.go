package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SHIPPING_FEE", "")
	t.Setenv("ORDER_STATUS_PERMISSIVE", "")
	t.Setenv("CORS_ORIGIN", "")

	cfg := Load()
	assert.Equal(t, ":4000", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 80.0, cfg.ShippingFee)
	assert.False(t, cfg.StatusPermissive)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("SHIPPING_FEE", "120.5")
	t.Setenv("ORDER_STATUS_PERMISSIVE", "true")
	t.Setenv("CORS_ORIGIN", " https://a.example , ,https://b.example")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 120.5, cfg.ShippingFee)
	assert.True(t, cfg.StatusPermissive)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidShippingFallsBack(t *testing.T) {
	t.Setenv("SHIPPING_FEE", "-3")
	assert.Equal(t, 80.0, Load().ShippingFee)
}
