// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string

	// Database
	DBPath string

	// Domain
	// Timezone anchors "today" so the budget window stays stable no
	// matter where the process runs.
	Timezone            string
	DefaultBudgetAmount decimal.Decimal

	// Pipeline
	// API key expected from the external market-data script on the
	// portfolio update endpoint. Empty disables the endpoint.
	PipelineAPIKey string

	location *time.Location
}

var appConfig *Config

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "fintrack.db"),
		Timezone:       getEnv("TIMEZONE", "America/Toronto"),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),
	}

	amountStr := getEnv("DEFAULT_BUDGET_AMOUNT", "500.00")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.IsNegative() {
		log.Printf("Warning: invalid DEFAULT_BUDGET_AMOUNT value '%s', falling back to 500.00\n", amountStr)
		amount = decimal.NewFromInt(500)
	}
	config.DefaultBudgetAmount = amount

	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE value '%s', falling back to UTC\n", config.Timezone)
		loc = time.UTC
	}
	config.location = loc

	appConfig = config
	return config, nil
}

// Get returns the application configuration.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Location returns the time.Location all "today" computations are anchored to.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
