package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		DataBackend:        "memory",
		DataDir:            t.TempDir(),
		SQLiteDBPath:       "./data/finance.db",
		ReportPeriod:       "month",
		SavingsPeriodsBack: 6,
		TopCategoriesLimit: 5,
		LogLevel:           "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid memory backend config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid sqlite backend config",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = filepath.Join(c.DataDir, "nested", "finance.db")
			},
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite]",
		},
		{
			name:        "memory backend with missing directory",
			mutate:      func(c *Config) { c.DataDir = filepath.Join(c.DataDir, "missing") },
			wantErr:     true,
			errorString: "is not accessible",
		},
		{
			name:        "memory backend with empty directory",
			mutate:      func(c *Config) { c.DataDir = "" },
			wantErr:     true,
			errorString: "data directory cannot be empty when using memory backend",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "invalid report period",
			mutate:      func(c *Config) { c.ReportPeriod = "fortnight" },
			wantErr:     true,
			errorString: "invalid report period 'fortnight': must be one of [week month year]",
		},
		{
			name:        "savings periods out of range",
			mutate:      func(c *Config) { c.SavingsPeriodsBack = 0 },
			wantErr:     true,
			errorString: "invalid savings periods back 0: must be between 1 and 120",
		},
		{
			name:        "top categories out of range",
			mutate:      func(c *Config) { c.TopCategoriesLimit = 51 },
			wantErr:     true,
			errorString: "invalid top categories limit 51: must be between 1 and 50",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "trace" },
			wantErr:     true,
			errorString: "invalid log level 'trace'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.ReportPeriod = "decade"
	cfg.LogLevel = "loud"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Count(err.Error(), "\n- ") != 2 {
		t.Fatalf("expected two aggregated problems, got %q", err.Error())
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("REPORT_PERIOD", "WEEK")
	t.Setenv("SAVINGS_PERIODS_BACK", "12")
	t.Setenv("TOP_CATEGORIES_LIMIT", "not-a-number")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DATA_DIR", "")

	cfg := Load()
	if cfg.DataBackend != "sqlite" || cfg.ReportPeriod != "week" || cfg.SavingsPeriodsBack != 12 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.TopCategoriesLimit != 5 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.TopCategoriesLimit)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("empty value should fall back to default, got %q", cfg.LogLevel)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("expected default data dir, got %q", cfg.DataDir)
	}
}
