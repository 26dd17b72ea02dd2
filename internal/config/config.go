package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultDatabasePath   = "products.db"
	DefaultAddr           = ":8080"
	DefaultMetricsPort    = "9090"
	DefaultProductBaseURL = "https://systembolaget.se"
	DefaultWebTitle       = "Systemet"
	DefaultPageLength     = 25
	DefaultLogLevel       = "info"
)

type Config struct {
	DatabasePath   string
	Addr           string
	MetricsPort    string
	ProductBaseURL string
	WebTitle       string
	PageLength     int
	LanguageURL    string
	LogLevel       string
}

// Load reads the configuration from the environment, after merging a .env
// file from the working directory when one exists. A malformed integer
// keeps its default and is reported through the returned error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:   getEnv("SYSTEMET_DB_NAME", DefaultDatabasePath),
		Addr:           getEnv("SYSTEMET_ADDR", DefaultAddr),
		MetricsPort:    getEnv("METRICS_PORT", DefaultMetricsPort),
		ProductBaseURL: getEnv("SYSTEMET_BASE_URL", DefaultProductBaseURL),
		WebTitle:       getEnv("SYSTEMET_WEB_TITLE", DefaultWebTitle),
		LanguageURL:    os.Getenv("SYSTEMET_LANGUAGE_URL"),
		LogLevel:       getEnv("SYSTEMET_LOG_LEVEL", DefaultLogLevel),
	}

	pageLength, err := getEnvInt("SYSTEMET_PAGE_LENGTH", DefaultPageLength)
	cfg.PageLength = pageLength
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return d, fmt.Errorf("invalid int for %s: %q", k, v)
	}
	return n, nil
}
