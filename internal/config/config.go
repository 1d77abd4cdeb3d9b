package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the report generator needs for one run.
// JSON keys match the historical config-file layout.
type Config struct {
	ReportSize   int     `json:"REPORT_SIZE"`
	ReportDir    string  `json:"REPORT_DIR"`
	LogDir       string  `json:"LOG_DIR"`
	ErrorsLimit  float64 `json:"ERRORS_LIMIT"`
	LogFile      string  `json:"LOG_FILE"`
	LogLevel     string  `json:"LOG_LEVEL"`
	DBPath       string  `json:"DB_PATH"`
	MetricsFile  string  `json:"METRICS_FILE"`
	TemplatePath string  `json:"TEMPLATE_PATH"`
	Chart        bool    `json:"CHART"`
}

func Default() Config {
	return Config{
		ReportSize:   1000,
		ReportDir:    "./reports",
		LogDir:       "./log",
		ErrorsLimit:  0.05,
		LogLevel:     "info",
		DBPath:       "./log-report.db",
		TemplatePath: "report.html",
		Chart:        true,
	}
}

// Load builds the effective config: defaults, overridden by the optional
// JSON config file, overridden by environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.ReportSize = getEnvInt("REPORT_SIZE", cfg.ReportSize)
	cfg.ReportDir = getEnv("REPORT_DIR", cfg.ReportDir)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)
	cfg.ErrorsLimit = getEnvFloat("ERRORS_LIMIT", cfg.ErrorsLimit)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.MetricsFile = getEnv("METRICS_FILE", cfg.MetricsFile)
	cfg.TemplatePath = getEnv("TEMPLATE_PATH", cfg.TemplatePath)
	cfg.Chart = getEnvBool("CHART", cfg.Chart)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
