package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-screen/internal/device"
)

var validate = validator.New()

type AppConfig struct {
	AppEnv   string `validate:"oneof=dev prod"`
	LogLevel slog.Level

	WeatherAPIKey  string `validate:"required"`
	WeatherAPIBase string `validate:"required,url"`
	GeminiAPIKey   string `validate:"required"`
	GeminiModel    string `validate:"required"`
	GeocoderAPIKey string

	// DefaultCity is used when location permission is denied and when a
	// refresh finds nothing persisted. FallbackCity covers locator errors.
	DefaultCity  string `validate:"required"`
	FallbackCity string `validate:"required"`
	ForecastDays int    `validate:"min=1,max=14"`

	HTTPTimeout     time.Duration `validate:"gt=0"`
	SearchDelay     time.Duration `validate:"gte=0"`
	RefreshInterval time.Duration `validate:"gte=0"` // 0 disables auto-refresh

	StorePath string `validate:"required"`
	ViewAddr  string `validate:"required"`

	// Device location. DeviceAddress switches to the geocoding locator.
	LocationPermission device.Permission
	DeviceLat          *float64 `validate:"omitempty,latitude"`
	DeviceLon          *float64 `validate:"omitempty,longitude"`
	DeviceAddress      string
}

// ErrMissingAPIKey is returned when a required provider key is not set.
var ErrMissingAPIKey = errors.New("missing api key")

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.WeatherAPIKey = strings.TrimSpace(os.Getenv("WEATHERAPI_API_KEY"))
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHERAPI_API_KEY: %w", ErrMissingAPIKey)
	}
	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY: %w", ErrMissingAPIKey)
	}
	cfg.WeatherAPIBase = getenvDefault("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1")
	cfg.GeminiModel = getenvDefault("GEMINI_MODEL", "gemini-1.5-flash")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "London")
	cfg.FallbackCity = getenvDefault("FALLBACK_CITY", "New York")
	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 7)

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.SearchDelay, err = getenvDuration("SEARCH_DELAY", "1200ms"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "30m"); err != nil {
		return nil, err
	}

	cfg.StorePath = getenvDefault("STORE_PATH", "weather-screen.db")
	cfg.ViewAddr = getenvDefault("VIEW_ADDR", "127.0.0.1:8080")

	if cfg.LocationPermission, err = device.ParsePermission(os.Getenv("LOCATION_PERMISSION")); err != nil {
		return nil, err
	}
	if cfg.DeviceLat, err = getenvFloat("DEVICE_LAT"); err != nil {
		return nil, err
	}
	if cfg.DeviceLon, err = getenvFloat("DEVICE_LON"); err != nil {
		return nil, err
	}
	if (cfg.DeviceLat == nil) != (cfg.DeviceLon == nil) {
		return nil, fmt.Errorf("DEVICE_LAT and DEVICE_LON must be set together")
	}
	cfg.DeviceAddress = strings.TrimSpace(os.Getenv("DEVICE_ADDRESS"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Locator builds the device locator the settings describe.
func (c *AppConfig) Locator() device.Locator {
	if c.DeviceAddress != "" {
		return device.NewGeocodingLocator(c.GeocoderAPIKey, c.DeviceAddress)
	}
	loc := device.StaticLocator{Permission: c.LocationPermission}
	if c.DeviceLat != nil && c.DeviceLon != nil {
		loc.Coords = &device.Coordinates{Lat: *c.DeviceLat, Lon: *c.DeviceLon}
	}
	return loc
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
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
	s := getenvDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string) (*float64, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
