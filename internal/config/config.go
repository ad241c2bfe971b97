package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the storefront needs at startup. Values come
// from the environment, optionally preloaded from a .env file.
type Config struct {
	App struct {
		Port string
	}
	Cart struct {
		SessionTTL time.Duration
	}
	WhatsApp struct {
		Phone string
	}
	Imaging struct {
		Endpoint string
		Timeout  time.Duration
	}
}

// Load reads configuration from the environment. When path is non-empty the
// .env file at that location is loaded first; a missing file is not an
// error.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = getEnv("APP_PORT", "8080")

	ttl, err := getDuration("CART_SESSION_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.Cart.SessionTTL = ttl

	cfg.WhatsApp.Phone = os.Getenv("WHATSAPP_PHONE")
	if cfg.WhatsApp.Phone == "" {
		return nil, fmt.Errorf("config: WHATSAPP_PHONE is required")
	}

	cfg.Imaging.Endpoint = os.Getenv("IMAGING_ENDPOINT")
	timeout, err := getDuration("IMAGING_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Imaging.Timeout = timeout

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
