package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("INVOICE_TAX_PERCENT", "18")
	t.Setenv("HOME_BANNERS", "banners/a.jpg,banners/b.png")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 18.0, cfg.Invoice.TaxPercent)
	assert.Equal(t, []string{"banners/a.jpg", "banners/b.png"}, cfg.Web.Banners)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "cart_session", cfg.Cart.CookieName)
	assert.Equal(t, 168*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "Storefront", cfg.Web.SiteName)
	assert.Empty(t, cfg.Web.Banners)
	assert.Equal(t, time.Hour, cfg.Web.BannerTTL)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("unparseable int", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "many")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("tax out of range", func(t *testing.T) {
		t.Setenv("INVOICE_TAX_PERCENT", "150")
		_, err := Load()
		assert.ErrorContains(t, err, "INVOICE_TAX_PERCENT")
	})
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{TimeZone: "Asia/Kolkata"}
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())

	cfg.TimeZone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}
