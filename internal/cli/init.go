// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/ledgerdesk and cmd/ledgerdesk-report.
package cli

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"ledgerdesk/internal/config"
	"ledgerdesk/internal/log"
	"ledgerdesk/internal/security"
	"ledgerdesk/internal/services"
)

// SetupLogger initializes structured logging at the given level and sets
// the result as the default logger.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	return cfg
}

// InitService builds the fully wired ledger service from the config,
// creating the data directory if needed.
// Returns the service or exits the process on failure.
func InitService(logger *log.Logger, cfg *config.Config) *services.LedgerService {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("Failed to create data directory", log.FieldError, err.Error())
		os.Exit(1)
	}
	manager, err := security.NewManager(filepath.Join(cfg.DataDir, "ledgerdesk.key"))
	if err != nil {
		logger.Error("Failed to initialize security manager", log.FieldError, err.Error())
		os.Exit(1)
	}
	users, err := security.LoadUsers(manager, filepath.Join(cfg.DataDir, "users.json"))
	if err != nil {
		logger.Error("Failed to load user store", log.FieldError, err.Error())
		os.Exit(1)
	}
	settings := config.NewSettingsStore(manager, cfg.DataDir)
	return services.NewLedgerService(cfg, users, settings, logger)
}
