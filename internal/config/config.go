package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Currency    string
	Catalog     CatalogConfig
	PayPal      PayPalConfig
	Database    DatabaseConfig
	LogLevel    string
}

type CatalogConfig struct {
	URL string
}

type PayPalConfig struct {
	ClientID string
	Secret   string
	// Env selects the API host: "sandbox" (default) or "live".
	Env string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// Enabled reports whether the optional event journal database was configured.
// Without DB_NAME the service runs with a no-op recorder.
func (c DatabaseConfig) Enabled() bool {
	return c.DBName != ""
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("CURRENCY", "EUR")
	viper.SetDefault("PAYPAL_ENV", "sandbox")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Currency:    getEnvOrViper("CURRENCY", "EUR"),
		Catalog: CatalogConfig{
			URL: getEnvOrViper("CATALOG_URL", ""),
		},
		PayPal: PayPalConfig{
			ClientID: getEnvOrViper("PAYPAL_CLIENT_ID", ""),
			Secret:   getEnvOrViper("PAYPAL_SECRET", ""),
			Env:      getEnvOrViper("PAYPAL_ENV", "sandbox"),
		},
		Database: DatabaseConfig{
			Host:           getEnvOrViper("DB_HOST", "localhost"),
			Port:           getEnvOrViper("DB_PORT", "5432"),
			User:           getEnvOrViper("DB_USER", "postgres"),
			Password:       getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:         getEnvOrViper("DB_NAME", ""),
			SSLMode:        getEnvOrViper("DB_SSLMODE", "disable"),
			MigrationsPath: getEnvOrViper("MIGRATIONS_PATH", "./internal/repository/postgres/migrations"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Catalog.URL == "" {
		return nil, fmt.Errorf("CATALOG_URL is required")
	}
	if cfg.PayPal.ClientID == "" {
		return nil, fmt.Errorf("PAYPAL_CLIENT_ID is required")
	}
	if cfg.PayPal.Secret == "" {
		return nil, fmt.Errorf("PAYPAL_SECRET is required")
	}
	if cfg.PayPal.Env != "sandbox" && cfg.PayPal.Env != "live" {
		return nil, fmt.Errorf("PAYPAL_ENV must be 'sandbox' or 'live', got %q", cfg.PayPal.Env)
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
