package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, decimal.RequireFromString("0.18").Equal(cfg.Invoice.TaxRate))
	assert.True(t, decimal.RequireFromString("0.01").Equal(cfg.Invoice.ReconcileTolerance))
	assert.Equal(t, "INR", cfg.Invoice.Currency)
	assert.Equal(t, "₹", cfg.Invoice.CurrencySymbol)
	assert.Equal(t, "INV-", cfg.Invoice.Prefix)
	assert.Equal(t, "Rupees", cfg.Invoice.MajorUnit)
	assert.Equal(t, "Paise", cfg.Invoice.MinorUnit)
	assert.Equal(t, "pdf", cfg.Export.DefaultFormat)
	assert.False(t, cfg.Export.Upload)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_INVOICE_TAX_RATE", "0.05")
	t.Setenv("STOREFRONT_INVOICE_PREFIX", "SF/")
	t.Setenv("STOREFRONT_INVOICE_SELLER_GSTIN", "29ABCDE1234F1Z5")
	t.Setenv("STOREFRONT_EXPORT_UPLOAD", "true")
	t.Setenv("STOREFRONT_DB_PORT", "6543")
	t.Setenv("STOREFRONT_LOG_FILE", "/var/log/storefront/api.log")
	t.Setenv("STOREFRONT_LOG_MAX_BACKUPS", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.05").Equal(cfg.Invoice.TaxRate))
	assert.Equal(t, "SF/", cfg.Invoice.Prefix)
	assert.Equal(t, "29ABCDE1234F1Z5", cfg.Invoice.Seller.GSTIN)
	assert.True(t, cfg.Export.Upload)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "/var/log/storefront/api.log", cfg.Log.File)
	assert.Equal(t, 2, cfg.Log.MaxBackups)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_InvalidTaxRate(t *testing.T) {
	t.Setenv("STOREFRONT_INVOICE_TAX_RATE", "eighteen")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("STOREFRONT_INVOICE_TAX_RATE", "-0.18")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", db.DSN())
}
