// Package cli provides common command bootstrap: dotenv, logging, config
// and signal handling.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"familyfinance/internal/config"
	"familyfinance/internal/log"
)

// SetupLogger builds a text logger at the given level, writing to stderr so
// stdout stays free for report output, and installs it as the default.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	cfg.Output = os.Stderr
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env files for local development. A missing file is
// not an error.
func LoadEnvFile(paths ...string) {
	_ = godotenv.Load(paths...)
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithComponent(log.ComponentConfig).Error("Configuration validation failed",
			log.NewFields().WithOperation(log.OpValidate).WithError(err).ToSlice()...)
		os.Exit(1)
	}
	return cfg
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
