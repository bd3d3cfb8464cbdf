package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// Location fetched at start-up and refreshed by the scheduler.
	DefaultCity    string
	DefaultCountry string

	// RefreshInterval controls how often the dashboard location is refetched (0 = never).
	RefreshInterval time.Duration

	// Outbound Open-Meteo calls.
	HTTPTimeout        time.Duration
	GeocodingBaseURL   string
	ForecastBaseURL    string
	ProviderMaxRetries int

	// In-memory snapshot history retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DefaultCity = strings.TrimSpace(getenvDefault("DEFAULT_CITY", "New York"))
	cfg.DefaultCountry = strings.ToUpper(strings.TrimSpace(getenvDefault("DEFAULT_COUNTRY", "US")))

	var err error
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	cfg.GeocodingBaseURL = getenvDefault("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com/v1/search")
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.ProviderMaxRetries = getenvInt("PROVIDER_MAX_RETRIES", 2)
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	if cfg.DefaultCity == "" {
		return nil, fmt.Errorf("DEFAULT_CITY must not be empty")
	}
	if cfg.ProviderMaxRetries < 0 {
		return nil, fmt.Errorf("PROVIDER_MAX_RETRIES must be >= 0")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
