package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

type AppConfig struct {
	// DataSource is a file path or an http(s) URL of the daily CSV.
	DataSource string
	Load       rental.LoadOptions

	// HTTPTimeout bounds outbound fetches of a remote DataSource.
	HTTPTimeout time.Duration

	// ReloadInterval controls how often the dataset is re-read (0 = never).
	ReloadInterval time.Duration

	Port string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is applied first if present.
func Load() (*AppConfig, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	cfg.DataSource = getenvDefault("DATA_SOURCE", "data/day_clean.csv")

	cfg.Load = rental.DefaultLoadOptions()
	cfg.Load.DateLayout = getenvDefault("DATE_LAYOUT", cfg.Load.DateLayout)
	cfg.Load.DateColumn = getenvDefault("DATE_COLUMN", cfg.Load.DateColumn)
	cfg.Load.SeasonColumn = getenvDefault("SEASON_COLUMN", cfg.Load.SeasonColumn)

	delim := getenvDefault("CSV_DELIMITER", ",")
	if utf8.RuneCountInString(delim) != 1 {
		return nil, fmt.Errorf("invalid CSV_DELIMITER %q: must be a single character", delim)
	}
	cfg.Load.Delimiter, _ = utf8.DecodeRuneInString(delim)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Reload interval: disabled unless set.
	reload, err := time.ParseDuration(getenvDefault("RELOAD_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL: %w", err)
	}
	if reload < 0 {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL: must not be negative")
	}
	cfg.ReloadInterval = reload

	port := getenvInt("PORT", 8080)
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", port)
	}
	cfg.Port = strconv.Itoa(port)

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or console", cfg.LogFormat)
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
