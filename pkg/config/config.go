package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	SalesCSVGlob   string
	LedgerPath     string
	RateAPIBaseURL string
	RateAPITimeout time.Duration
	MigrationsPath string
	Port           string
	IsProduction   bool
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Defaults are overridden by .env values, which are overridden
// by real environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SALES_CSV_GLOB", "data/*.csv")
	viper.SetDefault("LEDGER_PATH", "processed_files.json")
	viper.SetDefault("RATE_API_BASE_URL", "https://api.frankfurter.app")
	viper.SetDefault("RATE_API_TIMEOUT", "30s")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.SalesCSVGlob = viper.GetString("SALES_CSV_GLOB")
	cfg.LedgerPath = viper.GetString("LEDGER_PATH")
	cfg.RateAPIBaseURL = viper.GetString("RATE_API_BASE_URL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	timeoutStr := viper.GetString("RATE_API_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for RATE_API_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
		}
	}
	cfg.RateAPITimeout = timeout

	return cfg, nil
}
