package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Pricing   PricingConfig
	Alerts    AlertConfig
	Scheduler SchedulerConfig
	Settings  SettingsConfig
	CORS      CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// PricingConfig holds configuration for the external price lookup.
// Currency is the reporting currency every valuation is expressed in.
type PricingConfig struct {
	BaseURL  string
	Currency string
	Timeout  time.Duration
}

// AlertConfig holds the take-profit / stop-loss thresholds and the category
// label that makes a coin eligible for alerting. Two threshold pairs have
// been used historically (+20/-15 and +50/-30); both are supported through
// environment overrides, with +20/-15 as the default.
type AlertConfig struct {
	RiskCategory  string
	TakeProfitPct float64
	StopLossPct   float64
}

// SchedulerConfig holds configuration for the periodic analysis runner.
// An interval of 0 disables automatic analysis.
type SchedulerConfig struct {
	AnalysisInterval time.Duration
}

// SettingsConfig holds the fernet key used to encrypt stored provider
// credentials at rest. Empty means API keys cannot be stored.
type SettingsConfig struct {
	EncryptionKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/crypto_portfolio.db"),
		},
		Pricing: PricingConfig{
			BaseURL:  getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
			Currency: getEnv("PRICE_CURRENCY", "cad"),
			Timeout:  time.Duration(getEnvInt("PRICE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Alerts: AlertConfig{
			RiskCategory:  getEnv("ALERT_RISK_CATEGORY", "risk"),
			TakeProfitPct: getEnvFloat("ALERT_TAKE_PROFIT_PCT", 20),
			StopLossPct:   getEnvFloat("ALERT_STOP_LOSS_PCT", -15),
		},
		Scheduler: SchedulerConfig{
			AnalysisInterval: time.Duration(getEnvInt("AUTO_ANALYSIS_INTERVAL_MINUTES", 0)) * time.Minute,
		},
		Settings: SettingsConfig{
			EncryptionKey: getEnv("SETTINGS_ENCRYPTION_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
