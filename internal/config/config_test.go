package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmbm-clothing/storefront/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WHATSAPP_PHONE", "233503561270")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, time.Hour, cfg.Cart.SessionTTL)
	assert.Equal(t, "233503561270", cfg.WhatsApp.Phone)
	assert.Equal(t, 60*time.Second, cfg.Imaging.Timeout)
	assert.Empty(t, cfg.Imaging.Endpoint)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CART_SESSION_TTL", "30m")
	t.Setenv("WHATSAPP_PHONE", "233501112233")
	t.Setenv("IMAGING_ENDPOINT", "https://imaging.internal/remove")
	t.Setenv("IMAGING_TIMEOUT", "90s")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 30*time.Minute, cfg.Cart.SessionTTL)
	assert.Equal(t, "https://imaging.internal/remove", cfg.Imaging.Endpoint)
	assert.Equal(t, 90*time.Second, cfg.Imaging.Timeout)
}

func TestLoad_MissingPhone(t *testing.T) {
	t.Setenv("WHATSAPP_PHONE", "")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("WHATSAPP_PHONE", "233503561270")
	t.Setenv("CART_SESSION_TTL", "soon")

	_, err := config.Load("")
	assert.Error(t, err)
}
