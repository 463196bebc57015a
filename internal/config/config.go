package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Snapshot source
	DataBackend  string
	DataDir      string
	SQLiteDBPath string

	// Report
	ReportPeriod       string
	SavingsPeriodsBack int
	TopCategoriesLimit int

	// Logging
	LogLevel string
}

var (
	validBackends = []string{"memory", "sqlite"}
	validPeriods  = []string{"week", "month", "year"}
	validLevels   = []string{"debug", "info", "warn", "error"}
)

func Load() *Config {
	return &Config{
		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finance.db"),

		ReportPeriod:       strings.ToLower(getEnv("REPORT_PERIOD", "month")),
		SavingsPeriodsBack: getEnvInt("SAVINGS_PERIODS_BACK", 6),
		TopCategoriesLimit: getEnvInt("TOP_CATEGORIES_LIMIT", 5),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "memory":
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using memory backend")
		} else if info, err := os.Stat(c.DataDir); err != nil {
			errors = append(errors, fmt.Sprintf("data directory '%s' is not accessible: %v", c.DataDir, err))
		} else if !info.IsDir() {
			errors = append(errors, fmt.Sprintf("data directory '%s' is not a directory", c.DataDir))
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if !contains(validPeriods, c.ReportPeriod) {
		errors = append(errors, fmt.Sprintf("invalid report period '%s': must be one of %v", c.ReportPeriod, validPeriods))
	}

	if c.SavingsPeriodsBack < 1 || c.SavingsPeriodsBack > 120 {
		errors = append(errors, fmt.Sprintf("invalid savings periods back %d: must be between 1 and 120", c.SavingsPeriodsBack))
	}

	if c.TopCategoriesLimit < 1 || c.TopCategoriesLimit > 50 {
		errors = append(errors, fmt.Sprintf("invalid top categories limit %d: must be between 1 and 50", c.TopCategoriesLimit))
	}

	if !contains(validLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
