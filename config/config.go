// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig
	Input     InputConfig
	Reconcile ReconcileConfig
	Logging   LoggingConfig
}

// DatabaseConfig holds SQLite configuration.
type DatabaseConfig struct {
	Path string
}

// InputConfig holds paths to the source exports.
type InputConfig struct {
	// LedgerFile is the owner's ledger CSV export.
	LedgerFile string

	// ManagerGLFile is the property manager's general ledger CSV export.
	ManagerGLFile string

	// RentPlatformFile is the rent collection platform's payments CSV export.
	RentPlatformFile string

	// MortgageStatementDir holds the downloaded mortgage statement PDFs.
	MortgageStatementDir string

	// SourcesFile is the YAML file declaring the income/expense report sources.
	SourcesFile string

	// LedgerFilterRules and ManagerFilterRules are YAML exclusion rule files.
	LedgerFilterRules  string
	ManagerFilterRules string
}

// ReconcileConfig holds matching engine defaults.
type ReconcileConfig struct {
	// Year restricts matching to one calendar year; 0 means all years.
	Year int

	// RentPlatformPayeeToken identifies rent platform deposits by payee.
	RentPlatformPayeeToken string
}

// LoggingConfig holds structured logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "reconciler.db"),
		},
		Input: InputConfig{
			LedgerFile:           getEnv("LEDGER_FILE", "data/ledger.csv"),
			ManagerGLFile:        getEnv("MANAGER_GL_FILE", "data/manager_gl.csv"),
			RentPlatformFile:     getEnv("RENT_PLATFORM_FILE", "data/rent_platform.csv"),
			MortgageStatementDir: getEnv("MORTGAGE_STATEMENT_DIR", "data/statements"),
			SourcesFile:          getEnv("SOURCES_FILE", "data/sources.yaml"),
			LedgerFilterRules:    getEnv("LEDGER_FILTER_RULES", "data/ledger_filters.yaml"),
			ManagerFilterRules:   getEnv("MANAGER_FILTER_RULES", "data/manager_filters.yaml"),
		},
		Reconcile: ReconcileConfig{
			Year:                   getEnvAsInt("RECONCILE_YEAR", time.Now().Year()),
			RentPlatformPayeeToken: getEnv("RENT_PLATFORM_PAYEE_TOKEN", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
